package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const (
	ApplicationStatusPending   = "pending"
	ApplicationStatusAccepted  = "accepted"
	ApplicationStatusRejected  = "rejected"
	ApplicationStatusWithdrawn = "withdrawn"
)

// TerminalApplicationStatus reports whether an application can no longer change state.
func TerminalApplicationStatus(status string) bool {
	return status == ApplicationStatusAccepted ||
		status == ApplicationStatusRejected ||
		status == ApplicationStatusWithdrawn
}

type Application struct {
	ID           uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	StudentID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"student_id"`
	Student      Student        `json:"student,omitempty"`
	InternshipID uuid.UUID      `gorm:"type:uuid;not null;index" json:"internship_id"`
	Internship   Internship     `json:"internship,omitempty"`
	Status       string         `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	AIMatchScore *int           `json:"ai_match_score,omitempty"`
	MatchReasons pq.StringArray `gorm:"type:text[]" json:"match_reasons"`
	AppliedAt    time.Time      `gorm:"autoCreateTime" json:"applied_at"`
	ReviewedAt   *time.Time     `json:"reviewed_at,omitempty"`
}
