package assembler

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/transferdesk/advising-backend/internal/apierr"
	"github.com/transferdesk/advising-backend/internal/logger"
	"github.com/transferdesk/advising-backend/internal/repos"
	"github.com/transferdesk/advising-backend/internal/types"
)

// GenerateInput is everything one generation reads besides stored state.
type GenerateInput struct {
	RequestID         uuid.UUID
	TemplateID        uuid.UUID
	IncludeSectionIDs []uuid.UUID
	ExtraContentIDs   []uuid.UUID
}

// Service materializes packets: it freezes a template plus per-student
// inputs into an ordered, typed, immutable set of packet sections.
type Service interface {
	Generate(ctx context.Context, tx *gorm.DB, in GenerateInput) (*types.Packet, error)
}

type service struct {
	db          *gorm.DB
	log         *logger.Logger
	requestRepo repos.StudentRequestRepo
	templateRepo repos.TemplateRepo
	sectionRepo repos.TemplateSectionRepo
	blockRepo   repos.ContentBlockRepo
	packetRepo  repos.PacketRepo
	packetSectionRepo repos.PacketSectionRepo
}

func NewService(
	db *gorm.DB,
	baseLog *logger.Logger,
	requestRepo repos.StudentRequestRepo,
	templateRepo repos.TemplateRepo,
	sectionRepo repos.TemplateSectionRepo,
	blockRepo repos.ContentBlockRepo,
	packetRepo repos.PacketRepo,
	packetSectionRepo repos.PacketSectionRepo,
) Service {
	return &service{
		db:                db,
		log:               baseLog.With("service", "AssemblerService"),
		requestRepo:       requestRepo,
		templateRepo:      templateRepo,
		sectionRepo:       sectionRepo,
		blockRepo:         blockRepo,
		packetRepo:        packetRepo,
		packetSectionRepo: packetSectionRepo,
	}
}

// Generate runs the whole assembly inside one transaction: resolve the two
// required entities (NotFound aborts before any write), freeze each included
// template section per its kind, splice extras around the conclusion anchor,
// then persist packet and sections together.
func (s *service) Generate(ctx context.Context, tx *gorm.DB, in GenerateInput) (*types.Packet, error) {
	var packet *types.Packet

	run := func(transaction *gorm.DB) error {
		requests, err := s.requestRepo.GetByIDs(ctx, transaction, []uuid.UUID{in.RequestID})
		if err != nil {
			return fmt.Errorf("load student request: %w", err)
		}
		if len(requests) == 0 {
			return apierr.NotFound("student request %s not found", in.RequestID)
		}
		studentReq := requests[0]

		templates, err := s.templateRepo.GetByIDs(ctx, transaction, []uuid.UUID{in.TemplateID})
		if err != nil {
			return fmt.Errorf("load template: %w", err)
		}
		if len(templates) == 0 {
			return apierr.NotFound("template %s not found", in.TemplateID)
		}
		tpl := templates[0]

		templateSections, err := s.sectionRepo.GetByTemplateID(ctx, transaction, tpl.ID)
		if err != nil {
			return fmt.Errorf("load template sections: %w", err)
		}

		include := make(map[uuid.UUID]bool, len(in.IncludeSectionIDs))
		for _, id := range in.IncludeSectionIDs {
			include[id] = true
		}

		sections := make([]*types.PacketSection, 0, len(templateSections))
		for _, ts := range templateSections {
			// Only optional info blocks are filterable by advisor choice;
			// every other section is always included.
			if ts.Optional && ts.SectionKind == types.SectionInfoBlock && !include[ts.ID] {
				continue
			}
			contentKind, body := ResolveContent(ts.SectionKind, ts.ContentBlock, studentReq)
			sections = append(sections, &types.PacketSection{
				Title:        ts.Title,
				DisplayOrder: ts.DisplayOrder,
				SectionKind:  ts.SectionKind,
				ContentKind:  contentKind,
				Content:      body,
			})
		}

		extras, err := s.resolveExtras(ctx, transaction, in.ExtraContentIDs)
		if err != nil {
			return err
		}
		sections = SpliceExtras(sections, extras)

		metadata, err := json.Marshal(map[string]interface{}{
			"include_section_ids": in.IncludeSectionIDs,
			"extra_content_ids":   in.ExtraContentIDs,
		})
		if err != nil {
			return fmt.Errorf("marshal generation metadata: %w", err)
		}

		p := &types.Packet{
			ID:         uuid.New(),
			RequestID:  studentReq.ID,
			TemplateID: tpl.ID,
			Status:     types.PacketDraft,
			Metadata:   metadata,
		}
		if _, err := s.packetRepo.Create(ctx, transaction, []*types.Packet{p}); err != nil {
			return fmt.Errorf("create packet: %w", err)
		}
		for _, sec := range sections {
			sec.ID = uuid.New()
			sec.PacketID = p.ID
		}
		if _, err := s.packetSectionRepo.Create(ctx, transaction, sections); err != nil {
			return fmt.Errorf("create packet sections: %w", err)
		}

		p.Request = studentReq
		p.Sections = sections
		packet = p
		return nil
	}

	if tx != nil {
		if err := run(tx); err != nil {
			return nil, err
		}
		return packet, nil
	}
	if err := s.db.WithContext(ctx).Transaction(run); err != nil {
		return nil, err
	}
	return packet, nil
}

// resolveExtras maps the given ids to active content blocks, preserving the
// caller's order. Ids that do not resolve to an active block are silently
// dropped rather than failed.
func (s *service) resolveExtras(ctx context.Context, tx *gorm.DB, extraIDs []uuid.UUID) ([]*types.ContentBlock, error) {
	if len(extraIDs) == 0 {
		return nil, nil
	}
	blocks, err := s.blockRepo.GetActiveByIDs(ctx, tx, extraIDs)
	if err != nil {
		return nil, fmt.Errorf("load extra content blocks: %w", err)
	}
	byID := make(map[uuid.UUID]*types.ContentBlock, len(blocks))
	for _, b := range blocks {
		byID[b.ID] = b
	}
	out := make([]*types.ContentBlock, 0, len(extraIDs))
	for _, id := range extraIDs {
		if b, ok := byID[id]; ok {
			out = append(out, b)
		} else {
			s.log.Debug("Skipping unresolvable extra content block", "content_block_id", id)
		}
	}
	return out, nil
}
