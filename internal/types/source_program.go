package types

import (
	"time"

	"github.com/google/uuid"
)

// SourceProgram is a receiving program/major/track ("Computer Science BS").
// A template is tied to exactly one program.
type SourceProgram struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;not null;column:name" json:"name"`
	Active    bool      `gorm:"not null;default:true;column:active" json:"active"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (SourceProgram) TableName() string { return "source_program" }
