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

type ContentInput struct {
	Title    string            `json:"title"`
	Kind     types.ContentKind `json:"kind"`
	Body     string            `json:"body"`
	UsageTag string            `json:"usage_tag"`
	Active   *bool             `json:"active"`
}

type ContentService interface {
	Create(ctx context.Context, tx *gorm.DB, in ContentInput) (*types.ContentBlock, error)
	Update(ctx context.Context, tx *gorm.DB, blockID uuid.UUID, in ContentInput) (*types.ContentBlock, error)
	List(ctx context.Context, tx *gorm.DB, activeOnly bool) ([]*types.ContentBlock, error)
	SetActive(ctx context.Context, tx *gorm.DB, blockID uuid.UUID, active bool) error
}

type contentService struct {
	db        *gorm.DB
	log       *logger.Logger
	blockRepo repos.ContentBlockRepo
}

func NewContentService(db *gorm.DB, baseLog *logger.Logger, blockRepo repos.ContentBlockRepo) ContentService {
	return &contentService{
		db:        db,
		log:       baseLog.With("service", "ContentService"),
		blockRepo: blockRepo,
	}
}

func validKind(k types.ContentKind) bool {
	switch k {
	case types.ContentText, types.ContentMarkdown, types.ContentTable, types.ContentAuditTable:
		return true
	}
	return false
}

func (s *contentService) Create(ctx context.Context, tx *gorm.DB, in ContentInput) (*types.ContentBlock, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, apierr.InvalidInput("content block title is required")
	}
	kind := in.Kind
	if kind == "" {
		kind = types.ContentText
	}
	if !validKind(kind) {
		return nil, apierr.InvalidInput("unknown content kind %q", kind)
	}
	active := true
	if in.Active != nil {
		active = *in.Active
	}
	block := &types.ContentBlock{
		ID:       uuid.New(),
		Title:    title,
		Kind:     kind,
		Body:     in.Body,
		Active:   active,
		UsageTag: strings.TrimSpace(in.UsageTag),
	}
	if _, err := s.blockRepo.Create(ctx, tx, []*types.ContentBlock{block}); err != nil {
		return nil, fmt.Errorf("create content block: %w", err)
	}
	return block, nil
}

// Update edits the canonical block. Packets generated earlier keep their
// frozen copies; nothing here touches packet sections.
func (s *contentService) Update(ctx context.Context, tx *gorm.DB, blockID uuid.UUID, in ContentInput) (*types.ContentBlock, error) {
	blocks, err := s.blockRepo.GetByIDs(ctx, tx, []uuid.UUID{blockID})
	if err != nil {
		return nil, fmt.Errorf("load content block: %w", err)
	}
	if len(blocks) == 0 {
		return nil, apierr.NotFound("content block %s not found", blockID)
	}
	block := blocks[0]
	if title := strings.TrimSpace(in.Title); title != "" {
		block.Title = title
	}
	if in.Kind != "" {
		if !validKind(in.Kind) {
			return nil, apierr.InvalidInput("unknown content kind %q", in.Kind)
		}
		block.Kind = in.Kind
	}
	block.Body = in.Body
	if in.UsageTag != "" {
		block.UsageTag = strings.TrimSpace(in.UsageTag)
	}
	if in.Active != nil {
		block.Active = *in.Active
	}
	if err := s.blockRepo.Update(ctx, tx, block); err != nil {
		return nil, fmt.Errorf("update content block: %w", err)
	}
	return block, nil
}

func (s *contentService) List(ctx context.Context, tx *gorm.DB, activeOnly bool) ([]*types.ContentBlock, error) {
	return s.blockRepo.List(ctx, tx, activeOnly)
}

func (s *contentService) SetActive(ctx context.Context, tx *gorm.DB, blockID uuid.UUID, active bool) error {
	blocks, err := s.blockRepo.GetByIDs(ctx, tx, []uuid.UUID{blockID})
	if err != nil {
		return fmt.Errorf("load content block: %w", err)
	}
	if len(blocks) == 0 {
		return apierr.NotFound("content block %s not found", blockID)
	}
	return s.blockRepo.SetActive(ctx, tx, blockID, active)
}
