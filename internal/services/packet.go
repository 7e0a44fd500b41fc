package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/transferdesk/advising-backend/internal/apierr"
	"github.com/transferdesk/advising-backend/internal/logger"
	"github.com/transferdesk/advising-backend/internal/repos"
	"github.com/transferdesk/advising-backend/internal/types"
)

type PacketService interface {
	Get(ctx context.Context, tx *gorm.DB, packetID uuid.UUID) (*types.Packet, error)
	// Finalize moves a packet to finalized. Finalizing an already-finalized
	// packet succeeds without change; there is no way back to draft.
	Finalize(ctx context.Context, tx *gorm.DB, packetID uuid.UUID) (*types.Packet, error)
	UpdateSectionContent(ctx context.Context, tx *gorm.DB, packetID, sectionID uuid.UUID, content string) (*types.PacketSection, error)
	// AddInfoBlock appends one info_block section after generation. Unlike
	// generation-time extras it does not reflow other sections; a caller
	// passing an explicit display_order owns collision avoidance.
	AddInfoBlock(ctx context.Context, tx *gorm.DB, packetID, blockID uuid.UUID, titleOverride *string, displayOrder *int) (*types.PacketSection, error)
}

type packetService struct {
	db                *gorm.DB
	log               *logger.Logger
	packetRepo        repos.PacketRepo
	packetSectionRepo repos.PacketSectionRepo
	blockRepo         repos.ContentBlockRepo
}

func NewPacketService(
	db *gorm.DB,
	baseLog *logger.Logger,
	packetRepo repos.PacketRepo,
	packetSectionRepo repos.PacketSectionRepo,
	blockRepo repos.ContentBlockRepo,
) PacketService {
	return &packetService{
		db:                db,
		log:               baseLog.With("service", "PacketService"),
		packetRepo:        packetRepo,
		packetSectionRepo: packetSectionRepo,
		blockRepo:         blockRepo,
	}
}

func (s *packetService) loadPacket(ctx context.Context, tx *gorm.DB, packetID uuid.UUID) (*types.Packet, error) {
	packets, err := s.packetRepo.GetByIDs(ctx, tx, []uuid.UUID{packetID})
	if err != nil {
		return nil, fmt.Errorf("load packet: %w", err)
	}
	if len(packets) == 0 {
		return nil, apierr.NotFound("packet %s not found", packetID)
	}
	return packets[0], nil
}

func (s *packetService) Get(ctx context.Context, tx *gorm.DB, packetID uuid.UUID) (*types.Packet, error) {
	packet, err := s.loadPacket(ctx, tx, packetID)
	if err != nil {
		return nil, err
	}
	sections, err := s.packetSectionRepo.GetByPacketID(ctx, tx, packetID)
	if err != nil {
		return nil, fmt.Errorf("load packet sections: %w", err)
	}
	packet.Sections = sections
	return packet, nil
}

func (s *packetService) Finalize(ctx context.Context, tx *gorm.DB, packetID uuid.UUID) (*types.Packet, error) {
	packet, err := s.loadPacket(ctx, tx, packetID)
	if err != nil {
		return nil, err
	}
	if packet.Status == types.PacketFinalized {
		return packet, nil
	}
	if err := s.packetRepo.UpdateStatus(ctx, tx, packetID, types.PacketFinalized); err != nil {
		return nil, fmt.Errorf("finalize packet: %w", err)
	}
	packet.Status = types.PacketFinalized
	s.log.Info("Packet finalized", "packet_id", packetID)
	return packet, nil
}

// UpdateSectionContent is the advisor's per-student editing surface. Only
// degree_audit and advisor_notes sections accept edits, and only while the
// packet is still a draft.
func (s *packetService) UpdateSectionContent(ctx context.Context, tx *gorm.DB, packetID, sectionID uuid.UUID, content string) (*types.PacketSection, error) {
	packet, err := s.loadPacket(ctx, tx, packetID)
	if err != nil {
		return nil, err
	}
	if packet.Status == types.PacketFinalized {
		return nil, apierr.Forbidden("packet %s is finalized", packetID)
	}
	sections, err := s.packetSectionRepo.GetByIDs(ctx, tx, []uuid.UUID{sectionID})
	if err != nil {
		return nil, fmt.Errorf("load packet section: %w", err)
	}
	if len(sections) == 0 || sections[0].PacketID != packetID {
		return nil, apierr.NotFound("packet section %s not found", sectionID)
	}
	section := sections[0]
	if !section.SectionKind.Mutable() {
		return nil, apierr.InvalidInput("section kind %q is not editable", section.SectionKind)
	}
	if err := s.packetSectionRepo.UpdateContent(ctx, tx, sectionID, content); err != nil {
		return nil, fmt.Errorf("update packet section: %w", err)
	}
	section.Content = content
	return section, nil
}

func (s *packetService) AddInfoBlock(ctx context.Context, tx *gorm.DB, packetID, blockID uuid.UUID, titleOverride *string, displayOrder *int) (*types.PacketSection, error) {
	if _, err := s.loadPacket(ctx, tx, packetID); err != nil {
		return nil, err
	}
	blocks, err := s.blockRepo.GetActiveByIDs(ctx, tx, []uuid.UUID{blockID})
	if err != nil {
		return nil, fmt.Errorf("load content block: %w", err)
	}
	if len(blocks) == 0 {
		return nil, apierr.NotFound("content block %s not found or inactive", blockID)
	}
	block := blocks[0]

	order := 0
	if displayOrder != nil {
		order = *displayOrder
	} else {
		max, err := s.packetSectionRepo.MaxDisplayOrder(ctx, tx, packetID)
		if err != nil {
			return nil, fmt.Errorf("max display order: %w", err)
		}
		order = max + 1
	}
	title := block.Title
	if titleOverride != nil && strings.TrimSpace(*titleOverride) != "" {
		title = strings.TrimSpace(*titleOverride)
	}

	section := &types.PacketSection{
		ID:           uuid.New(),
		PacketID:     packetID,
		Title:        title,
		DisplayOrder: order,
		SectionKind:  types.SectionInfoBlock,
		ContentKind:  block.Kind,
		Content:      block.Body,
	}
	if _, err := s.packetSectionRepo.Create(ctx, tx, []*types.PacketSection{section}); err != nil {
		return nil, fmt.Errorf("create packet section: %w", err)
	}
	return section, nil
}
