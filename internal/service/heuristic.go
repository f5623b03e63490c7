package service

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/internmatch-ai/internmatch-api/internal/dto"
	"github.com/internmatch-ai/internmatch-api/internal/model"
)

// Heuristic scoring is the keyless-deployment path: deterministic, cheap, and
// honest about its own confidence. It mirrors the weighting of the AI rubric
// (skills first, then interests or academics, then timing) so rankings stay
// comparable if a deployment later gains an API key.

// ScoreInternshipHeuristically ranks one open posting for a student using
// skill overlap, interest overlap, and graduation timing.
func ScoreInternshipHeuristically(student *model.Student, internship *model.Internship) *dto.MatchAnalysis {
	score := 50
	reasons := []string{}

	matching := overlap(student.Skills, internship.Skills)
	if len(matching) > 0 {
		score += len(matching) * 10
		reasons = append(reasons, fmt.Sprintf("Skills match: %s", strings.Join(head(matching, 3), ", ")))
	}

	interests := overlap(student.Interests, internship.Skills)
	if len(interests) > 0 {
		score += len(interests) * 8
		reasons = append(reasons, "Interests align with role requirements")
	}

	if student.GraduationYear > 0 && student.GraduationYear <= time.Now().Year()+1 {
		score += 15
		reasons = append(reasons, "Graduation timeline matches internship duration")
	}

	return heuristicAnalysis(score, reasons, matching, internship.Skills)
}

// ScoreCandidateHeuristically ranks one student for a posting using skill
// overlap, GPA, and availability.
func ScoreCandidateHeuristically(internship *model.Internship, student *model.Student) *dto.MatchAnalysis {
	score := 50
	reasons := []string{}

	matching := overlap(student.Skills, internship.Skills)
	if len(matching) > 0 {
		score += len(matching) * 12
		reasons = append(reasons, fmt.Sprintf("Strong skills match: %s", strings.Join(head(matching, 3), ", ")))
	}

	if gpa, err := strconv.ParseFloat(student.GPA, 64); err == nil {
		switch {
		case gpa >= 3.5:
			score += 20
			reasons = append(reasons, "High academic performance")
		case gpa >= 3.0:
			score += 10
			reasons = append(reasons, "Good academic performance")
		}
	}

	if student.GraduationYear >= time.Now().Year() {
		score += 10
		reasons = append(reasons, "Available for upcoming internship period")
	}

	return heuristicAnalysis(score, reasons, matching, internship.Skills)
}

func heuristicAnalysis(score int, reasons, matching, required []string) *dto.MatchAnalysis {
	score = clampScore(int64(score))

	gaps := []string{}
	matched := map[string]bool{}
	for _, skill := range matching {
		matched[strings.ToLower(skill)] = true
	}
	for _, skill := range required {
		if !matched[strings.ToLower(skill)] {
			gaps = append(gaps, skill)
		}
	}

	skillsScore := clampScore(int64(50 + len(matching)*10))
	return &dto.MatchAnalysis{
		OverallMatch:      score,
		Confidence:        60,
		KeyStrengths:      reasons,
		PotentialConcerns: []string{},
		SkillGaps:         gaps,
		CareerImpact:      "Scored with profile heuristics; enable AI analysis for a detailed assessment.",
		EmployerBenefits:  []string{},
		ActionableAdvice:  []string{},
		Breakdown: dto.MatchBreakdown{
			SkillsMatch:     skillsScore,
			ExperienceMatch: 50,
			LocationMatch:   50,
			CultureMatch:    50,
			CareerFitMatch:  score,
		},
	}
}

// overlap returns the entries of a that fuzzily match any entry of b,
// preserving a's order.
func overlap(a, b []string) []string {
	matches := []string{}
	for _, left := range a {
		ll := strings.ToLower(left)
		for _, right := range b {
			rl := strings.ToLower(right)
			if strings.Contains(rl, ll) || strings.Contains(ll, rl) {
				matches = append(matches, left)
				break
			}
		}
	}
	return matches
}

func head(items []string, n int) []string {
	if len(items) <= n {
		return items
	}
	return items[:n]
}
