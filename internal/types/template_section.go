package types

import (
	"github.com/google/uuid"
)

// TemplateSection is one section definition in a template.
//
// DisplayOrder is unique within a template and ascending order is render
// order. Gaps are permitted after deletes; the assembler treats the values
// as a dense ascending key at generation time.
//
// Optional is only meaningful for info_block sections; every other kind is
// mandatory by convention, not enforcement.
type TemplateSection struct {
	ID             uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	TemplateID     uuid.UUID     `gorm:"type:uuid;not null;index" json:"template_id"`
	Title          string        `gorm:"not null;column:title" json:"title"`
	DisplayOrder   int           `gorm:"not null;default:0;column:display_order" json:"display_order"`
	SectionKind    SectionKind   `gorm:"not null;column:section_kind" json:"section_kind"`
	Optional       bool          `gorm:"not null;default:false;column:optional" json:"optional"`
	ContentBlockID *uuid.UUID    `gorm:"type:uuid;column:content_block_id" json:"content_block_id,omitempty"`
	ContentBlock   *ContentBlock `gorm:"constraint:OnDelete:SET NULL;foreignKey:ContentBlockID;references:ID" json:"content_block,omitempty"`
}

func (TemplateSection) TableName() string { return "template_section" }
