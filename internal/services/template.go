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

type SectionInput struct {
	Title          string            `json:"title"`
	SectionKind    types.SectionKind `json:"section_kind"`
	Optional       bool              `json:"optional"`
	DisplayOrder   *int              `json:"display_order"`
	ContentBlockID *uuid.UUID        `json:"content_block_id"`
}

type CreateTemplateInput struct {
	ProgramID uuid.UUID      `json:"program_id"`
	Name      string         `json:"name"`
	Sections  []SectionInput `json:"sections"`
}

// BuilderSection is the advisor-facing view of one template section: enough
// to decide whether to include an optional block when generating.
type BuilderSection struct {
	TemplateSectionID uuid.UUID         `json:"template_section_id"`
	Title             string            `json:"title"`
	DisplayOrder      int               `json:"display_order"`
	SectionKind       types.SectionKind `json:"section_kind"`
	Optional          bool              `json:"optional"`
	ContentPreview    *ContentPreview   `json:"content_preview,omitempty"`
}

type ContentPreview struct {
	ContentBlockID uuid.UUID         `json:"content_block_id"`
	Title          string            `json:"title"`
	Kind           types.ContentKind `json:"kind"`
	BodyPreview    string            `json:"body_preview"`
}

type BuilderView struct {
	TemplateID   uuid.UUID        `json:"template_id"`
	TemplateName string           `json:"template_name"`
	ProgramName  string           `json:"program_name,omitempty"`
	Sections     []BuilderSection `json:"sections"`
}

type TemplateService interface {
	Create(ctx context.Context, tx *gorm.DB, in CreateTemplateInput) (*types.Template, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.Template, error)
	BuilderView(ctx context.Context, tx *gorm.DB, templateID uuid.UUID) (*BuilderView, error)
	AddSection(ctx context.Context, tx *gorm.DB, templateID uuid.UUID, in SectionInput) (*types.TemplateSection, error)
	UpdateSection(ctx context.Context, tx *gorm.DB, sectionID uuid.UUID, in SectionInput) (*types.TemplateSection, error)
	DeleteSection(ctx context.Context, tx *gorm.DB, sectionID uuid.UUID) error
	Delete(ctx context.Context, tx *gorm.DB, templateID uuid.UUID) error
}

type templateService struct {
	db           *gorm.DB
	log          *logger.Logger
	programRepo  repos.SourceProgramRepo
	templateRepo repos.TemplateRepo
	sectionRepo  repos.TemplateSectionRepo
	blockRepo    repos.ContentBlockRepo
}

func NewTemplateService(
	db *gorm.DB,
	baseLog *logger.Logger,
	programRepo repos.SourceProgramRepo,
	templateRepo repos.TemplateRepo,
	sectionRepo repos.TemplateSectionRepo,
	blockRepo repos.ContentBlockRepo,
) TemplateService {
	return &templateService{
		db:           db,
		log:          baseLog.With("service", "TemplateService"),
		programRepo:  programRepo,
		templateRepo: templateRepo,
		sectionRepo:  sectionRepo,
		blockRepo:    blockRepo,
	}
}

// requireActiveBlock rejects a section definition whose content ref does not
// resolve to an existing active block, naming the offending id.
func (s *templateService) requireActiveBlock(ctx context.Context, tx *gorm.DB, blockID *uuid.UUID) error {
	if blockID == nil {
		return nil
	}
	blocks, err := s.blockRepo.GetActiveByIDs(ctx, tx, []uuid.UUID{*blockID})
	if err != nil {
		return fmt.Errorf("resolve content block: %w", err)
	}
	if len(blocks) == 0 {
		return apierr.NotFound("content block %s not found or inactive", *blockID)
	}
	return nil
}

func (s *templateService) Create(ctx context.Context, tx *gorm.DB, in CreateTemplateInput) (*types.Template, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, apierr.InvalidInput("template name is required")
	}
	programs, err := s.programRepo.GetByIDs(ctx, tx, []uuid.UUID{in.ProgramID})
	if err != nil {
		return nil, fmt.Errorf("load program: %w", err)
	}
	if len(programs) == 0 {
		return nil, apierr.NotFound("program %s not found", in.ProgramID)
	}

	var tpl *types.Template
	run := func(transaction *gorm.DB) error {
		tpl = &types.Template{
			ID:        uuid.New(),
			ProgramID: in.ProgramID,
			Name:      name,
			Active:    true,
		}
		if _, err := s.templateRepo.Create(ctx, transaction, []*types.Template{tpl}); err != nil {
			return fmt.Errorf("create template: %w", err)
		}
		sections := make([]*types.TemplateSection, 0, len(in.Sections))
		for i, sec := range in.Sections {
			if err := s.requireActiveBlock(ctx, transaction, sec.ContentBlockID); err != nil {
				return err
			}
			order := i
			if sec.DisplayOrder != nil {
				order = *sec.DisplayOrder
			}
			title := strings.TrimSpace(sec.Title)
			if title == "" {
				title = fmt.Sprintf("Section %d", i+1)
			}
			sections = append(sections, &types.TemplateSection{
				ID:             uuid.New(),
				TemplateID:     tpl.ID,
				Title:          title,
				DisplayOrder:   order,
				SectionKind:    sec.SectionKind,
				Optional:       sec.Optional,
				ContentBlockID: sec.ContentBlockID,
			})
		}
		if _, err := s.sectionRepo.Create(ctx, transaction, sections); err != nil {
			return fmt.Errorf("create template sections: %w", err)
		}
		tpl.Sections = sections
		return nil
	}

	if tx != nil {
		if err := run(tx); err != nil {
			return nil, err
		}
		return tpl, nil
	}
	if err := s.db.WithContext(ctx).Transaction(run); err != nil {
		return nil, err
	}
	return tpl, nil
}

func (s *templateService) List(ctx context.Context, tx *gorm.DB) ([]*types.Template, error) {
	templates, err := s.templateRepo.List(ctx, tx)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	for _, tpl := range templates {
		sections, err := s.sectionRepo.GetByTemplateID(ctx, tx, tpl.ID)
		if err != nil {
			return nil, fmt.Errorf("load sections for template %s: %w", tpl.ID, err)
		}
		tpl.Sections = sections
	}
	return templates, nil
}

func (s *templateService) BuilderView(ctx context.Context, tx *gorm.DB, templateID uuid.UUID) (*BuilderView, error) {
	templates, err := s.templateRepo.GetByIDs(ctx, tx, []uuid.UUID{templateID})
	if err != nil {
		return nil, fmt.Errorf("load template: %w", err)
	}
	if len(templates) == 0 {
		return nil, apierr.NotFound("template %s not found", templateID)
	}
	tpl := templates[0]

	sections, err := s.sectionRepo.GetByTemplateID(ctx, tx, tpl.ID)
	if err != nil {
		return nil, fmt.Errorf("load template sections: %w", err)
	}

	view := &BuilderView{
		TemplateID:   tpl.ID,
		TemplateName: tpl.Name,
		Sections:     make([]BuilderSection, 0, len(sections)),
	}
	if tpl.Program != nil {
		view.ProgramName = tpl.Program.Name
	}
	for _, sec := range sections {
		bs := BuilderSection{
			TemplateSectionID: sec.ID,
			Title:             sec.Title,
			DisplayOrder:      sec.DisplayOrder,
			SectionKind:       sec.SectionKind,
			Optional:          sec.Optional,
		}
		if sec.ContentBlock != nil {
			preview := sec.ContentBlock.Body
			if len(preview) > 300 {
				preview = preview[:300]
			}
			bs.ContentPreview = &ContentPreview{
				ContentBlockID: sec.ContentBlock.ID,
				Title:          sec.ContentBlock.Title,
				Kind:           sec.ContentBlock.Kind,
				BodyPreview:    preview,
			}
		}
		view.Sections = append(view.Sections, bs)
	}
	return view, nil
}

// AddSection appends after the current maximum display_order when the caller
// does not pick one.
func (s *templateService) AddSection(ctx context.Context, tx *gorm.DB, templateID uuid.UUID, in SectionInput) (*types.TemplateSection, error) {
	templates, err := s.templateRepo.GetByIDs(ctx, tx, []uuid.UUID{templateID})
	if err != nil {
		return nil, fmt.Errorf("load template: %w", err)
	}
	if len(templates) == 0 {
		return nil, apierr.NotFound("template %s not found", templateID)
	}
	if err := s.requireActiveBlock(ctx, tx, in.ContentBlockID); err != nil {
		return nil, err
	}

	order := 0
	if in.DisplayOrder != nil {
		order = *in.DisplayOrder
	} else {
		max, err := s.sectionRepo.MaxDisplayOrder(ctx, tx, templateID)
		if err != nil {
			return nil, fmt.Errorf("max display order: %w", err)
		}
		order = max + 1
	}
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, apierr.InvalidInput("section title is required")
	}
	section := &types.TemplateSection{
		ID:             uuid.New(),
		TemplateID:     templateID,
		Title:          title,
		DisplayOrder:   order,
		SectionKind:    in.SectionKind,
		Optional:       in.Optional,
		ContentBlockID: in.ContentBlockID,
	}
	if _, err := s.sectionRepo.Create(ctx, tx, []*types.TemplateSection{section}); err != nil {
		return nil, fmt.Errorf("create template section: %w", err)
	}
	return section, nil
}

func (s *templateService) UpdateSection(ctx context.Context, tx *gorm.DB, sectionID uuid.UUID, in SectionInput) (*types.TemplateSection, error) {
	sections, err := s.sectionRepo.GetByIDs(ctx, tx, []uuid.UUID{sectionID})
	if err != nil {
		return nil, fmt.Errorf("load template section: %w", err)
	}
	if len(sections) == 0 {
		return nil, apierr.NotFound("template section %s not found", sectionID)
	}
	section := sections[0]

	if in.ContentBlockID != nil {
		if err := s.requireActiveBlock(ctx, tx, in.ContentBlockID); err != nil {
			return nil, err
		}
		section.ContentBlockID = in.ContentBlockID
		section.ContentBlock = nil
	}
	if title := strings.TrimSpace(in.Title); title != "" {
		section.Title = title
	}
	if in.SectionKind != "" {
		section.SectionKind = in.SectionKind
	}
	if in.DisplayOrder != nil {
		section.DisplayOrder = *in.DisplayOrder
	}
	section.Optional = in.Optional

	if err := s.sectionRepo.Update(ctx, tx, section); err != nil {
		return nil, fmt.Errorf("update template section: %w", err)
	}
	return section, nil
}

// DeleteSection leaves a gap in display_order; no renumbering happens here.
func (s *templateService) DeleteSection(ctx context.Context, tx *gorm.DB, sectionID uuid.UUID) error {
	sections, err := s.sectionRepo.GetByIDs(ctx, tx, []uuid.UUID{sectionID})
	if err != nil {
		return fmt.Errorf("load template section: %w", err)
	}
	if len(sections) == 0 {
		return apierr.NotFound("template section %s not found", sectionID)
	}
	return s.sectionRepo.Delete(ctx, tx, sectionID)
}

func (s *templateService) Delete(ctx context.Context, tx *gorm.DB, templateID uuid.UUID) error {
	templates, err := s.templateRepo.GetByIDs(ctx, tx, []uuid.UUID{templateID})
	if err != nil {
		return fmt.Errorf("load template: %w", err)
	}
	if len(templates) == 0 {
		return apierr.NotFound("template %s not found", templateID)
	}
	return s.templateRepo.Delete(ctx, tx, templateID)
}
