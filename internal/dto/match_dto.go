package dto

import "github.com/google/uuid"

// MatchRequest is the normalized comparison payload sent to the scoring
// service. It carries exactly the fields both sides need, nothing else.
type MatchRequest struct {
	Student    MatchStudent    `json:"student"`
	Internship MatchInternship `json:"internship"`
	Context    *MatchContext   `json:"context,omitempty"`
}

type MatchStudent struct {
	Name           string   `json:"name"`
	University     string   `json:"university"`
	Major          string   `json:"major"`
	GraduationYear int      `json:"graduationYear"`
	GPA            string   `json:"gpa,omitempty"`
	Skills         []string `json:"skills"`
	Interests      []string `json:"interests"`
	Location       string   `json:"location"`
	ResumeText     string   `json:"resumeText,omitempty"`
}

type MatchInternship struct {
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	Requirements []string     `json:"requirements"`
	Skills       []string     `json:"skills"`
	Location     string       `json:"location"`
	Duration     string       `json:"duration"`
	Stipend      string       `json:"stipend,omitempty"`
	Company      MatchCompany `json:"company"`
}

type MatchCompany struct {
	Name        string `json:"name"`
	Industry    string `json:"industry"`
	Description string `json:"description,omitempty"`
}

// MatchContext carries optional hints. Absence of any of them must not change
// the well-formedness of a scoring request.
type MatchContext struct {
	CurrentMarketTrends      []string `json:"currentMarketTrends,omitempty"`
	SimilarSuccessfulMatches []string `json:"similarSuccessfulMatches,omitempty"`
	StudentCareerGoals       string   `json:"studentCareerGoals,omitempty"`
}

// MatchBreakdown holds the five dimension sub-scores, each in [0,100].
type MatchBreakdown struct {
	SkillsMatch     int `json:"skillsMatch"`
	ExperienceMatch int `json:"experienceMatch"`
	LocationMatch   int `json:"locationMatch"`
	CultureMatch    int `json:"cultureMatch"`
	CareerFitMatch  int `json:"careerFitMatch"`
}

// MatchAnalysis is the scored relationship between one student and one
// internship. OverallMatch and every breakdown value are in [0,100].
type MatchAnalysis struct {
	OverallMatch      int            `json:"overallMatch"`
	Confidence        int            `json:"confidence"`
	KeyStrengths      []string       `json:"keyStrengths"`
	PotentialConcerns []string       `json:"potentialConcerns"`
	SkillGaps         []string       `json:"skillGaps"`
	CareerImpact      string         `json:"careerImpact"`
	EmployerBenefits  []string       `json:"employerBenefits"`
	ActionableAdvice  []string       `json:"actionableAdvice"`
	Breakdown         MatchBreakdown `json:"breakdown"`
}

// CandidateInput is one student in a batch scoring call, keyed so results can
// be traced back to the profile they were computed for.
type CandidateInput struct {
	StudentID uuid.UUID
	Student   MatchStudent
}

// InternshipInput is one posting in a batch scoring call.
type InternshipInput struct {
	InternshipID uuid.UUID
	Internship   MatchInternship
}

// CandidateAnalysis pairs a batch analysis with the student it belongs to.
type CandidateAnalysis struct {
	StudentID uuid.UUID `json:"student_id"`
	MatchAnalysis
}

// InternshipAnalysis pairs a batch analysis with the internship it belongs to.
type InternshipAnalysis struct {
	InternshipID uuid.UUID `json:"internship_id"`
	MatchAnalysis
}
