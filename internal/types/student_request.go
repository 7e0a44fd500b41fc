package types

import (
	"time"

	"github.com/google/uuid"
)

// StudentRequest is a request to generate a packet for one student.
type StudentRequest struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	StudentName       string    `gorm:"not null;column:student_name" json:"student_name"`
	StudentEmail      string    `gorm:"not null;column:student_email" json:"student_email"`
	SourceInstitution string    `gorm:"column:source_institution" json:"source_institution"`
	TargetProgram     string    `gorm:"column:target_program" json:"target_program"`
	AdvisorID         uuid.UUID `gorm:"type:uuid;not null;index" json:"advisor_id"`
	Advisor           *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:AdvisorID;references:ID" json:"advisor,omitempty"`
	CreatedAt         time.Time `gorm:"not null" json:"created_at"`
}

func (StudentRequest) TableName() string { return "student_request" }
