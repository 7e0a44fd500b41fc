package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/transferdesk/advising-backend/internal/logger"
	"github.com/transferdesk/advising-backend/internal/types"
)

type PacketRepo interface {
	Create(ctx context.Context, tx *gorm.DB, packets []*types.Packet) ([]*types.Packet, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, packetIDs []uuid.UUID) ([]*types.Packet, error)
	// GetByRequestIDs returns packets newest-first per request for the
	// listing view's latest-status column.
	GetByRequestIDs(ctx context.Context, tx *gorm.DB, requestIDs []uuid.UUID) ([]*types.Packet, error)
	UpdateStatus(ctx context.Context, tx *gorm.DB, packetID uuid.UUID, status types.PacketStatus) error
}

type packetRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPacketRepo(db *gorm.DB, baseLog *logger.Logger) PacketRepo {
	return &packetRepo{db: db, log: baseLog.With("repo", "PacketRepo")}
}

func (r *packetRepo) Create(ctx context.Context, tx *gorm.DB, packets []*types.Packet) ([]*types.Packet, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(packets) == 0 {
		return []*types.Packet{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&packets).Error; err != nil {
		return nil, err
	}
	return packets, nil
}

func (r *packetRepo) GetByIDs(ctx context.Context, tx *gorm.DB, packetIDs []uuid.UUID) ([]*types.Packet, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.Packet
	if len(packetIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Preload("Request").
		Where("id IN ?", packetIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *packetRepo) GetByRequestIDs(ctx context.Context, tx *gorm.DB, requestIDs []uuid.UUID) ([]*types.Packet, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.Packet
	if len(requestIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("request_id IN ?", requestIDs).
		Order("created_at desc").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *packetRepo) UpdateStatus(ctx context.Context, tx *gorm.DB, packetID uuid.UUID, status types.PacketStatus) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).
		Model(&types.Packet{}).
		Where("id = ?", packetID).
		Update("status", status).Error
}
