package model

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
)

type Student struct {
	ID             uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID         uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	User           User           `json:"user,omitempty"`
	University     string         `gorm:"not null" json:"university"`
	Major          string         `gorm:"not null" json:"major"`
	GraduationYear int            `json:"graduation_year"`
	GPA            string         `json:"gpa,omitempty"`
	Skills         pq.StringArray `gorm:"type:text[]" json:"skills"`
	Interests      pq.StringArray `gorm:"type:text[]" json:"interests"`
	Location       string         `gorm:"not null;default:'India'" json:"location"`
	ResumeText     string         `gorm:"type:text" json:"resume_text,omitempty"`
}
