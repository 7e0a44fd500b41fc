package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/transferdesk/advising-backend/internal/logger"
	"github.com/transferdesk/advising-backend/internal/types"
)

type TemplateRepo interface {
	Create(ctx context.Context, tx *gorm.DB, templates []*types.Template) ([]*types.Template, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, templateIDs []uuid.UUID) ([]*types.Template, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.Template, error)
	Delete(ctx context.Context, tx *gorm.DB, templateID uuid.UUID) error
}

type templateRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTemplateRepo(db *gorm.DB, baseLog *logger.Logger) TemplateRepo {
	return &templateRepo{db: db, log: baseLog.With("repo", "TemplateRepo")}
}

func (r *templateRepo) Create(ctx context.Context, tx *gorm.DB, templates []*types.Template) ([]*types.Template, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(templates) == 0 {
		return []*types.Template{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&templates).Error; err != nil {
		return nil, err
	}
	return templates, nil
}

func (r *templateRepo) GetByIDs(ctx context.Context, tx *gorm.DB, templateIDs []uuid.UUID) ([]*types.Template, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.Template
	if len(templateIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Preload("Program").
		Where("id IN ?", templateIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *templateRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Template, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.Template
	if err := transaction.WithContext(ctx).
		Preload("Program").
		Order("created_at asc").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// Delete removes the template row; section rows go with it via the cascade
// configured at migration time. Section deletion is issued here as well so
// sqlite-backed tests keep the same semantics without FK enforcement.
func (r *templateRepo) Delete(ctx context.Context, tx *gorm.DB, templateID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if err := transaction.WithContext(ctx).
		Where("template_id = ?", templateID).
		Delete(&types.TemplateSection{}).Error; err != nil {
		return err
	}
	return transaction.WithContext(ctx).
		Where("id = ?", templateID).
		Delete(&types.Template{}).Error
}
