package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/transferdesk/advising-backend/internal/logger"
	"github.com/transferdesk/advising-backend/internal/types"
)

type SourceProgramRepo interface {
	Create(ctx context.Context, tx *gorm.DB, programs []*types.SourceProgram) ([]*types.SourceProgram, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, programIDs []uuid.UUID) ([]*types.SourceProgram, error)
	GetByNames(ctx context.Context, tx *gorm.DB, names []string) ([]*types.SourceProgram, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.SourceProgram, error)
}

type sourceProgramRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSourceProgramRepo(db *gorm.DB, baseLog *logger.Logger) SourceProgramRepo {
	return &sourceProgramRepo{db: db, log: baseLog.With("repo", "SourceProgramRepo")}
}

func (r *sourceProgramRepo) Create(ctx context.Context, tx *gorm.DB, programs []*types.SourceProgram) ([]*types.SourceProgram, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(programs) == 0 {
		return []*types.SourceProgram{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&programs).Error; err != nil {
		return nil, err
	}
	return programs, nil
}

func (r *sourceProgramRepo) GetByIDs(ctx context.Context, tx *gorm.DB, programIDs []uuid.UUID) ([]*types.SourceProgram, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.SourceProgram
	if len(programIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("id IN ?", programIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *sourceProgramRepo) GetByNames(ctx context.Context, tx *gorm.DB, names []string) ([]*types.SourceProgram, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.SourceProgram
	if len(names) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("name IN ?", names).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *sourceProgramRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.SourceProgram, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.SourceProgram
	if err := transaction.WithContext(ctx).
		Order("name asc").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
