package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/transferdesk/advising-backend/internal/logger"
	"github.com/transferdesk/advising-backend/internal/types"
)

type TemplateSectionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, sections []*types.TemplateSection) ([]*types.TemplateSection, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, sectionIDs []uuid.UUID) ([]*types.TemplateSection, error)
	// GetByTemplateID returns the template's sections in ascending
	// display_order with their content blocks resolved.
	GetByTemplateID(ctx context.Context, tx *gorm.DB, templateID uuid.UUID) ([]*types.TemplateSection, error)
	MaxDisplayOrder(ctx context.Context, tx *gorm.DB, templateID uuid.UUID) (int, error)
	Update(ctx context.Context, tx *gorm.DB, section *types.TemplateSection) error
	Delete(ctx context.Context, tx *gorm.DB, sectionID uuid.UUID) error
}

type templateSectionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTemplateSectionRepo(db *gorm.DB, baseLog *logger.Logger) TemplateSectionRepo {
	return &templateSectionRepo{db: db, log: baseLog.With("repo", "TemplateSectionRepo")}
}

func (r *templateSectionRepo) Create(ctx context.Context, tx *gorm.DB, sections []*types.TemplateSection) ([]*types.TemplateSection, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(sections) == 0 {
		return []*types.TemplateSection{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&sections).Error; err != nil {
		return nil, err
	}
	return sections, nil
}

func (r *templateSectionRepo) GetByIDs(ctx context.Context, tx *gorm.DB, sectionIDs []uuid.UUID) ([]*types.TemplateSection, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.TemplateSection
	if len(sectionIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Preload("ContentBlock").
		Where("id IN ?", sectionIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *templateSectionRepo) GetByTemplateID(ctx context.Context, tx *gorm.DB, templateID uuid.UUID) ([]*types.TemplateSection, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.TemplateSection
	if err := transaction.WithContext(ctx).
		Preload("ContentBlock").
		Where("template_id = ?", templateID).
		Order("display_order asc").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *templateSectionRepo) MaxDisplayOrder(ctx context.Context, tx *gorm.DB, templateID uuid.UUID) (int, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var max *int
	if err := transaction.WithContext(ctx).
		Model(&types.TemplateSection{}).
		Where("template_id = ?", templateID).
		Select("max(display_order)").
		Scan(&max).Error; err != nil {
		return -1, err
	}
	if max == nil {
		return -1, nil
	}
	return *max, nil
}

func (r *templateSectionRepo) Update(ctx context.Context, tx *gorm.DB, section *types.TemplateSection) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).Save(section).Error
}

func (r *templateSectionRepo) Delete(ctx context.Context, tx *gorm.DB, sectionID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).
		Where("id = ?", sectionID).
		Delete(&types.TemplateSection{}).Error
}
