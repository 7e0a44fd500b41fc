package types

import (
	"time"

	"github.com/google/uuid"
)

// Template defines the fixed, ordered section structure for packets of one
// program. Deleting a template deletes its sections.
type Template struct {
	ID        uuid.UUID          `gorm:"type:uuid;primaryKey" json:"id"`
	ProgramID uuid.UUID          `gorm:"type:uuid;not null;index" json:"program_id"`
	Program   *SourceProgram     `gorm:"constraint:OnDelete:CASCADE;foreignKey:ProgramID;references:ID" json:"program,omitempty"`
	Name      string             `gorm:"not null;column:name" json:"name"`
	Active    bool               `gorm:"not null;default:true;column:active" json:"active"`
	Sections  []*TemplateSection `gorm:"constraint:OnDelete:CASCADE;foreignKey:TemplateID;references:ID" json:"sections,omitempty"`
	CreatedAt time.Time          `gorm:"not null" json:"created_at"`
}

func (Template) TableName() string { return "template" }
