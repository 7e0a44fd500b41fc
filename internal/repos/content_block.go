package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/transferdesk/advising-backend/internal/logger"
	"github.com/transferdesk/advising-backend/internal/types"
)

type ContentBlockRepo interface {
	Create(ctx context.Context, tx *gorm.DB, blocks []*types.ContentBlock) ([]*types.ContentBlock, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, blockIDs []uuid.UUID) ([]*types.ContentBlock, error)
	GetActiveByIDs(ctx context.Context, tx *gorm.DB, blockIDs []uuid.UUID) ([]*types.ContentBlock, error)
	List(ctx context.Context, tx *gorm.DB, activeOnly bool) ([]*types.ContentBlock, error)
	Update(ctx context.Context, tx *gorm.DB, block *types.ContentBlock) error
	SetActive(ctx context.Context, tx *gorm.DB, blockID uuid.UUID, active bool) error
}

type contentBlockRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewContentBlockRepo(db *gorm.DB, baseLog *logger.Logger) ContentBlockRepo {
	return &contentBlockRepo{db: db, log: baseLog.With("repo", "ContentBlockRepo")}
}

func (r *contentBlockRepo) Create(ctx context.Context, tx *gorm.DB, blocks []*types.ContentBlock) ([]*types.ContentBlock, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(blocks) == 0 {
		return []*types.ContentBlock{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&blocks).Error; err != nil {
		return nil, err
	}
	return blocks, nil
}

func (r *contentBlockRepo) GetByIDs(ctx context.Context, tx *gorm.DB, blockIDs []uuid.UUID) ([]*types.ContentBlock, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.ContentBlock
	if len(blockIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("id IN ?", blockIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *contentBlockRepo) GetActiveByIDs(ctx context.Context, tx *gorm.DB, blockIDs []uuid.UUID) ([]*types.ContentBlock, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.ContentBlock
	if len(blockIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("id IN ? AND active = ?", blockIDs, true).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *contentBlockRepo) List(ctx context.Context, tx *gorm.DB, activeOnly bool) ([]*types.ContentBlock, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	query := transaction.WithContext(ctx).Order("created_at asc")
	if activeOnly {
		query = query.Where("active = ?", true)
	}
	var results []*types.ContentBlock
	if err := query.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *contentBlockRepo) Update(ctx context.Context, tx *gorm.DB, block *types.ContentBlock) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).Save(block).Error
}

func (r *contentBlockRepo) SetActive(ctx context.Context, tx *gorm.DB, blockID uuid.UUID, active bool) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).
		Model(&types.ContentBlock{}).
		Where("id = ?", blockID).
		Update("active", active).Error
}
