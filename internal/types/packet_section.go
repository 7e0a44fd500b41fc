package types

import (
	"time"

	"github.com/google/uuid"
)

// PacketSection is a frozen section in a generated packet. Content is a
// snapshot, never a reference back to a ContentBlock.
type PacketSection struct {
	ID           uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	PacketID     uuid.UUID   `gorm:"type:uuid;not null;index" json:"packet_id"`
	Title        string      `gorm:"not null;column:title" json:"title"`
	DisplayOrder int         `gorm:"not null;default:0;column:display_order" json:"display_order"`
	SectionKind  SectionKind `gorm:"not null;column:section_kind" json:"section_kind"`
	ContentKind  ContentKind `gorm:"not null;default:text;column:content_kind" json:"content_kind"`
	Content      string      `gorm:"type:text;column:content" json:"content"`
	UpdatedAt    time.Time   `gorm:"not null" json:"updated_at"`
}

func (PacketSection) TableName() string { return "packet_section" }
