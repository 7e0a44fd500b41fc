package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/transferdesk/advising-backend/internal/logger"
	"github.com/transferdesk/advising-backend/internal/types"
)

type StudentRequestRepo interface {
	Create(ctx context.Context, tx *gorm.DB, requests []*types.StudentRequest) ([]*types.StudentRequest, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, requestIDs []uuid.UUID) ([]*types.StudentRequest, error)
	ListNewestFirst(ctx context.Context, tx *gorm.DB) ([]*types.StudentRequest, error)
}

type studentRequestRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewStudentRequestRepo(db *gorm.DB, baseLog *logger.Logger) StudentRequestRepo {
	return &studentRequestRepo{db: db, log: baseLog.With("repo", "StudentRequestRepo")}
}

func (r *studentRequestRepo) Create(ctx context.Context, tx *gorm.DB, requests []*types.StudentRequest) ([]*types.StudentRequest, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(requests) == 0 {
		return []*types.StudentRequest{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *studentRequestRepo) GetByIDs(ctx context.Context, tx *gorm.DB, requestIDs []uuid.UUID) ([]*types.StudentRequest, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.StudentRequest
	if len(requestIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("id IN ?", requestIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *studentRequestRepo) ListNewestFirst(ctx context.Context, tx *gorm.DB) ([]*types.StudentRequest, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.StudentRequest
	if err := transaction.WithContext(ctx).
		Order("created_at desc").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
