package service

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/internmatch-ai/internmatch-api/internal/model"
	"github.com/lib/pq"
)

func validStudent() *model.Student {
	return &model.Student{
		ID:             uuid.New(),
		University:     "IIT Bombay",
		Major:          "Computer Science",
		GraduationYear: 2026,
		GPA:            "3.7",
		Skills:         pq.StringArray{"Go", "SQL"},
		Interests:      pq.StringArray{"backend"},
		Location:       "Mumbai",
	}
}

func validInternship() *model.Internship {
	return &model.Internship{
		ID:          uuid.New(),
		Title:       "Backend Intern",
		Description: "Build APIs in Go",
		Skills:      pq.StringArray{"Go"},
		Location:    "Mumbai",
		Duration:    "3 months",
	}
}

func TestBuildMatchRequest(t *testing.T) {
	student := validStudent()
	internship := validInternship()
	employer := &model.Employer{CompanyName: "Acme", Industry: "SaaS", Description: "builds things"}

	req, err := BuildMatchRequest(student, "Asha Rao", internship, employer)
	if err != nil {
		t.Fatal(err)
	}

	if req.Student.Name != "Asha Rao" {
		t.Errorf("Student.Name = %q", req.Student.Name)
	}
	if req.Student.University != "IIT Bombay" || req.Student.Major != "Computer Science" {
		t.Errorf("academic fields not carried over: %+v", req.Student)
	}
	if req.Internship.Company.Name != "Acme" || req.Internship.Company.Industry != "SaaS" {
		t.Errorf("company fields not carried over: %+v", req.Internship.Company)
	}
	if req.Context != nil {
		t.Errorf("Context should start empty, got %+v", req.Context)
	}
}

func TestBuildMatchRequestRequiredFields(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*model.Student, *model.Internship)
		wantErr string
	}{
		{"missing university", func(s *model.Student, _ *model.Internship) { s.University = "" }, "university"},
		{"missing major", func(s *model.Student, _ *model.Internship) { s.Major = "" }, "major"},
		{"missing title", func(_ *model.Student, i *model.Internship) { i.Title = "" }, "title"},
		{"missing description", func(_ *model.Student, i *model.Internship) { i.Description = "" }, "description"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			student := validStudent()
			internship := validInternship()
			tc.mutate(student, internship)

			_, err := BuildMatchRequest(student, "Asha", internship, nil)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("error %q does not mention %q", err, tc.wantErr)
			}
		})
	}
}

func TestBuildMatchRequestNilEmployer(t *testing.T) {
	req, err := BuildMatchRequest(validStudent(), "Asha", validInternship(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if req.Internship.Company.Name != "" {
		t.Errorf("expected empty company, got %+v", req.Internship.Company)
	}
}

func TestBuildMatchRequestCopiesSlices(t *testing.T) {
	student := validStudent()
	internship := validInternship()

	req, err := BuildMatchRequest(student, "Asha", internship, nil)
	if err != nil {
		t.Fatal(err)
	}

	req.Student.Skills[0] = "mutated"
	req.Internship.Skills[0] = "mutated"
	if student.Skills[0] != "Go" {
		t.Error("request mutation leaked into the student record")
	}
	if internship.Skills[0] != "Go" {
		t.Error("request mutation leaked into the internship record")
	}
}
