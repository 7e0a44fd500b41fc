package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/transferdesk/advising-backend/internal/logger"
	"github.com/transferdesk/advising-backend/internal/types"
)

type PacketSectionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, sections []*types.PacketSection) ([]*types.PacketSection, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, sectionIDs []uuid.UUID) ([]*types.PacketSection, error)
	// GetByPacketID returns the packet's sections in ascending display_order.
	GetByPacketID(ctx context.Context, tx *gorm.DB, packetID uuid.UUID) ([]*types.PacketSection, error)
	MaxDisplayOrder(ctx context.Context, tx *gorm.DB, packetID uuid.UUID) (int, error)
	UpdateContent(ctx context.Context, tx *gorm.DB, sectionID uuid.UUID, content string) error
}

type packetSectionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPacketSectionRepo(db *gorm.DB, baseLog *logger.Logger) PacketSectionRepo {
	return &packetSectionRepo{db: db, log: baseLog.With("repo", "PacketSectionRepo")}
}

func (r *packetSectionRepo) Create(ctx context.Context, tx *gorm.DB, sections []*types.PacketSection) ([]*types.PacketSection, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(sections) == 0 {
		return []*types.PacketSection{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&sections).Error; err != nil {
		return nil, err
	}
	return sections, nil
}

func (r *packetSectionRepo) GetByIDs(ctx context.Context, tx *gorm.DB, sectionIDs []uuid.UUID) ([]*types.PacketSection, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.PacketSection
	if len(sectionIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("id IN ?", sectionIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *packetSectionRepo) GetByPacketID(ctx context.Context, tx *gorm.DB, packetID uuid.UUID) ([]*types.PacketSection, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.PacketSection
	if err := transaction.WithContext(ctx).
		Where("packet_id = ?", packetID).
		Order("display_order asc").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *packetSectionRepo) MaxDisplayOrder(ctx context.Context, tx *gorm.DB, packetID uuid.UUID) (int, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var max *int
	if err := transaction.WithContext(ctx).
		Model(&types.PacketSection{}).
		Where("packet_id = ?", packetID).
		Select("max(display_order)").
		Scan(&max).Error; err != nil {
		return -1, err
	}
	if max == nil {
		return -1, nil
	}
	return *max, nil
}

func (r *packetSectionRepo) UpdateContent(ctx context.Context, tx *gorm.DB, sectionID uuid.UUID, content string) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).
		Model(&types.PacketSection{}).
		Where("id = ?", sectionID).
		Update("content", content).Error
}
