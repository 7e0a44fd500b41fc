package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Packet is a generated, per-student, frozen instance of a template. After
// generation the sections stand on their own; later edits to canonical
// content blocks must not show up here.
//
// Metadata records the generation inputs (included optional sections, extra
// content ids as given) for audit.
type Packet struct {
	ID         uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	RequestID  uuid.UUID        `gorm:"type:uuid;not null;index" json:"request_id"`
	Request    *StudentRequest  `gorm:"constraint:OnDelete:CASCADE;foreignKey:RequestID;references:ID" json:"request,omitempty"`
	TemplateID uuid.UUID        `gorm:"type:uuid;not null;index" json:"template_id"`
	Template   *Template        `gorm:"constraint:OnDelete:CASCADE;foreignKey:TemplateID;references:ID" json:"template,omitempty"`
	Status     PacketStatus     `gorm:"not null;default:draft;column:status" json:"status"`
	Metadata   datatypes.JSON   `gorm:"column:metadata" json:"metadata,omitempty"`
	Sections   []*PacketSection `gorm:"constraint:OnDelete:CASCADE;foreignKey:PacketID;references:ID" json:"sections,omitempty"`
	CreatedAt  time.Time        `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time        `gorm:"not null" json:"updated_at"`
}

func (Packet) TableName() string { return "packet" }
