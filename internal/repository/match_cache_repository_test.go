package repository

import (
	"reflect"
	"testing"

	"github.com/google/uuid"
	"github.com/internmatch-ai/internmatch-api/internal/dto"
)

func TestAnalysisRowRoundTrip(t *testing.T) {
	studentID, internshipID := uuid.New(), uuid.New()

	cases := []struct {
		name     string
		analysis *dto.MatchAnalysis
	}{
		{
			name: "fully populated",
			analysis: &dto.MatchAnalysis{
				OverallMatch:      87,
				Confidence:        75,
				KeyStrengths:      []string{"Go experience", "Location fit"},
				PotentialConcerns: []string{"No production work"},
				SkillGaps:         []string{"Kubernetes"},
				CareerImpact:      "Strong first role in backend engineering.",
				EmployerBenefits:  []string{"Ready on day one"},
				ActionableAdvice:  []string{"Learn Kubernetes basics"},
				Breakdown: dto.MatchBreakdown{
					SkillsMatch:     90,
					ExperienceMatch: 70,
					LocationMatch:   95,
					CultureMatch:    80,
					CareerFitMatch:  85,
				},
			},
		},
		{
			name: "empty lists",
			analysis: &dto.MatchAnalysis{
				OverallMatch:      0,
				Confidence:        0,
				KeyStrengths:      []string{},
				PotentialConcerns: []string{"Analysis failed"},
				SkillGaps:         []string{},
				CareerImpact:      "Analysis unavailable",
				EmployerBenefits:  []string{},
				ActionableAdvice:  []string{},
				Breakdown:         dto.MatchBreakdown{},
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			row := analysisToRow(studentID, internshipID, tc.analysis)

			if row.StudentID != studentID || row.InternshipID != internshipID {
				t.Errorf("row keyed to (%s, %s), want (%s, %s)",
					row.StudentID, row.InternshipID, studentID, internshipID)
			}

			got := rowToAnalysis(row)
			if !reflect.DeepEqual(got, tc.analysis) {
				t.Errorf("round-trip changed the analysis:\ngot  %+v\nwant %+v", got, tc.analysis)
			}
		})
	}
}

func TestRowToAnalysisCopiesLists(t *testing.T) {
	analysis := &dto.MatchAnalysis{
		OverallMatch: 60,
		Confidence:   50,
		KeyStrengths: []string{"original"},
		CareerImpact: "ok",
	}
	row := analysisToRow(uuid.New(), uuid.New(), analysis)

	got := rowToAnalysis(row)
	got.KeyStrengths[0] = "mutated"
	if row.KeyStrengths[0] != "original" {
		t.Error("mutating the returned analysis leaked into the row")
	}
}
