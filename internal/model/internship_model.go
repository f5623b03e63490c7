package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/pgvector/pgvector-go"
)

const (
	InternshipStatusOpen   = "open"
	InternshipStatusClosed = "closed"
	InternshipStatusFilled = "filled"
)

type Internship struct {
	ID                  uuid.UUID       `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	EmployerID          uuid.UUID       `gorm:"type:uuid;not null;index" json:"employer_id"`
	Employer            Employer        `json:"employer,omitempty"`
	Title               string          `gorm:"not null" json:"title"`
	Description         string          `gorm:"type:text;not null" json:"description"`
	Requirements        pq.StringArray  `gorm:"type:text[]" json:"requirements"`
	Skills              pq.StringArray  `gorm:"type:text[]" json:"skills"`
	Location            string          `gorm:"not null;default:'India'" json:"location"`
	Duration            string          `gorm:"not null" json:"duration"`
	Stipend             string          `json:"stipend,omitempty"`
	Status              string          `gorm:"type:varchar(20);not null;default:'open';index" json:"status"`
	MaxApplications     int             `gorm:"default:100" json:"max_applications"`
	CurrentApplications int             `gorm:"default:0" json:"current_applications"`
	Embedding           pgvector.Vector `gorm:"type:vector(768)" json:"-"`
	Deadline            *time.Time      `json:"deadline,omitempty"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
}
