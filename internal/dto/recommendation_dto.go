package dto

import (
	"github.com/internmatch-ai/internmatch-api/internal/model"
)

// ScoredInternship is an open posting annotated with the student's match.
type ScoredInternship struct {
	model.Internship
	MatchScore   int            `json:"match_score"`
	MatchReasons []string       `json:"match_reasons"`
	Analysis     *MatchAnalysis `json:"analysis,omitempty"`
}

// ScoredCandidate is a student profile annotated with the posting's match.
type ScoredCandidate struct {
	model.Student
	MatchScore   int            `json:"match_score"`
	MatchReasons []string       `json:"match_reasons"`
	Analysis     *MatchAnalysis `json:"analysis,omitempty"`
}
