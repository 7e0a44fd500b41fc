package types

import (
	"time"

	"github.com/google/uuid"
)

// ContentBlock is a canonical reusable content block: intro scripts with
// placeholders, plan tables (JSON body), info blocks, conclusion text.
// Editing a block never changes packets that were generated from it; the
// assembler copies the body by value at generation time.
type ContentBlock struct {
	ID        uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	Title     string      `gorm:"not null;column:title" json:"title"`
	Kind      ContentKind `gorm:"not null;default:text;column:content_kind" json:"kind"`
	Body      string      `gorm:"type:text;not null;column:body" json:"body"`
	Active    bool        `gorm:"not null;default:true;column:active" json:"active"`
	UsageTag  string      `gorm:"column:usage_tag" json:"usage_tag"`
	CreatedAt time.Time   `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time   `gorm:"not null" json:"updated_at"`
}

func (ContentBlock) TableName() string { return "content_block" }
