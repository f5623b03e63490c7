package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/internmatch-ai/internmatch-api/internal/dto"
	"github.com/internmatch-ai/internmatch-api/internal/model"
	"gorm.io/gorm"
)

// MatchCache is the keyed store for computed match analyses. The cached value
// is a reproducible derived artifact, not a source of truth: concurrent
// writers for the same pair race and the last write wins.
type MatchCache interface {
	Get(ctx context.Context, studentID, internshipID uuid.UUID) (*dto.MatchAnalysis, bool, error)
	Put(ctx context.Context, studentID, internshipID uuid.UUID, analysis *dto.MatchAnalysis) error
	InvalidateForStudent(ctx context.Context, studentID uuid.UUID) error
	InvalidateForInternship(ctx context.Context, internshipID uuid.UUID) error
}

type MatchCacheRepository struct {
	db *gorm.DB
}

func NewMatchCacheRepository(db *gorm.DB) *MatchCacheRepository {
	return &MatchCacheRepository{db}
}

// Get returns the most recently written analysis for the pair, or absent.
func (r *MatchCacheRepository) Get(ctx context.Context, studentID, internshipID uuid.UUID) (*dto.MatchAnalysis, bool, error) {
	var row model.AIMatch
	err := r.db.WithContext(ctx).
		Where("student_id = ? AND internship_id = ?", studentID, internshipID).
		Order("created_at DESC").
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return rowToAnalysis(&row), true, nil
}

// Put upserts the analysis for the pair, superseding any existing row.
func (r *MatchCacheRepository) Put(ctx context.Context, studentID, internshipID uuid.UUID, analysis *dto.MatchAnalysis) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("student_id = ? AND internship_id = ?", studentID, internshipID).
			Delete(&model.AIMatch{}).Error; err != nil {
			return err
		}
		return tx.Create(analysisToRow(studentID, internshipID, analysis)).Error
	})
}

func (r *MatchCacheRepository) InvalidateForStudent(ctx context.Context, studentID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Delete(&model.AIMatch{}).Error
}

func (r *MatchCacheRepository) InvalidateForInternship(ctx context.Context, internshipID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("internship_id = ?", internshipID).
		Delete(&model.AIMatch{}).Error
}

func rowToAnalysis(row *model.AIMatch) *dto.MatchAnalysis {
	return &dto.MatchAnalysis{
		OverallMatch:      row.MatchScore,
		Confidence:        row.Confidence,
		KeyStrengths:      append([]string{}, row.KeyStrengths...),
		PotentialConcerns: append([]string{}, row.PotentialConcerns...),
		SkillGaps:         append([]string{}, row.SkillGaps...),
		CareerImpact:      row.CareerImpact,
		EmployerBenefits:  append([]string{}, row.EmployerBenefits...),
		ActionableAdvice:  append([]string{}, row.ActionableAdvice...),
		Breakdown: dto.MatchBreakdown{
			SkillsMatch:     row.SkillsMatch,
			ExperienceMatch: row.ExperienceMatch,
			LocationMatch:   row.LocationMatch,
			CultureMatch:    row.CultureMatch,
			CareerFitMatch:  row.CareerFitMatch,
		},
	}
}

func analysisToRow(studentID, internshipID uuid.UUID, analysis *dto.MatchAnalysis) *model.AIMatch {
	return &model.AIMatch{
		StudentID:         studentID,
		InternshipID:      internshipID,
		MatchScore:        analysis.OverallMatch,
		Confidence:        analysis.Confidence,
		KeyStrengths:      analysis.KeyStrengths,
		PotentialConcerns: analysis.PotentialConcerns,
		SkillGaps:         analysis.SkillGaps,
		CareerImpact:      analysis.CareerImpact,
		EmployerBenefits:  analysis.EmployerBenefits,
		ActionableAdvice:  analysis.ActionableAdvice,
		SkillsMatch:       analysis.Breakdown.SkillsMatch,
		ExperienceMatch:   analysis.Breakdown.ExperienceMatch,
		LocationMatch:     analysis.Breakdown.LocationMatch,
		CultureMatch:      analysis.Breakdown.CultureMatch,
		CareerFitMatch:    analysis.Breakdown.CareerFitMatch,
	}
}
