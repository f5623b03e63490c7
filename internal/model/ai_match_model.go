package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// AIMatch is the persisted scoring result for one (student, internship) pair.
// At most one logical row per pair; a newer write supersedes the old one and
// reads resolve by created_at.
type AIMatch struct {
	ID                uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	StudentID         uuid.UUID      `gorm:"type:uuid;not null;index:idx_ai_matches_pair" json:"student_id"`
	InternshipID      uuid.UUID      `gorm:"type:uuid;not null;index:idx_ai_matches_pair" json:"internship_id"`
	MatchScore        int            `gorm:"not null" json:"match_score"`
	Confidence        int            `gorm:"not null" json:"confidence"`
	KeyStrengths      pq.StringArray `gorm:"type:text[]" json:"key_strengths"`
	PotentialConcerns pq.StringArray `gorm:"type:text[]" json:"potential_concerns"`
	SkillGaps         pq.StringArray `gorm:"type:text[]" json:"skill_gaps"`
	CareerImpact      string         `gorm:"type:text" json:"career_impact"`
	EmployerBenefits  pq.StringArray `gorm:"type:text[]" json:"employer_benefits"`
	ActionableAdvice  pq.StringArray `gorm:"type:text[]" json:"actionable_advice"`
	SkillsMatch       int            `json:"skills_match"`
	ExperienceMatch   int            `json:"experience_match"`
	LocationMatch     int            `json:"location_match"`
	CultureMatch      int            `json:"culture_match"`
	CareerFitMatch    int            `json:"career_fit_match"`
	CreatedAt         time.Time      `json:"created_at"`
}

func (m *AIMatch) TableName() string {
	return "ai_matches"
}
