package service

import (
	"fmt"

	"github.com/internmatch-ai/internmatch-api/internal/dto"
	"github.com/internmatch-ai/internmatch-api/internal/model"
)

// BuildMatchRequest assembles the normalized comparison payload for one
// (student, internship) pair. It has no side effects and fails only when a
// required field is missing, in which case the caller must not score.
func BuildMatchRequest(student *model.Student, studentName string, internship *model.Internship, employer *model.Employer) (*dto.MatchRequest, error) {
	if student == nil {
		return nil, fmt.Errorf("student is required")
	}
	if internship == nil {
		return nil, fmt.Errorf("internship is required")
	}
	if student.University == "" {
		return nil, fmt.Errorf("student %s: university is required", student.ID)
	}
	if student.Major == "" {
		return nil, fmt.Errorf("student %s: major is required", student.ID)
	}
	if internship.Title == "" {
		return nil, fmt.Errorf("internship %s: title is required", internship.ID)
	}
	if internship.Description == "" {
		return nil, fmt.Errorf("internship %s: description is required", internship.ID)
	}

	company := dto.MatchCompany{}
	if employer != nil {
		company = dto.MatchCompany{
			Name:        employer.CompanyName,
			Industry:    employer.Industry,
			Description: employer.Description,
		}
	}

	return &dto.MatchRequest{
		Student: dto.MatchStudent{
			Name:           studentName,
			University:     student.University,
			Major:          student.Major,
			GraduationYear: student.GraduationYear,
			GPA:            student.GPA,
			Skills:         append([]string{}, student.Skills...),
			Interests:      append([]string{}, student.Interests...),
			Location:       student.Location,
			ResumeText:     student.ResumeText,
		},
		Internship: dto.MatchInternship{
			Title:        internship.Title,
			Description:  internship.Description,
			Requirements: append([]string{}, internship.Requirements...),
			Skills:       append([]string{}, internship.Skills...),
			Location:     internship.Location,
			Duration:     internship.Duration,
			Stipend:      internship.Stipend,
			Company:      company,
		},
	}, nil
}
