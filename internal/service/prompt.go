package service

import (
	"fmt"
	"strings"

	"github.com/internmatch-ai/internmatch-api/internal/dto"
)

func buildMatchAnalysisPrompt(req *dto.MatchRequest) string {
	var b strings.Builder

	b.WriteString("Analyze this student-internship match comprehensively and provide detailed insights:\n\n")

	b.WriteString("STUDENT PROFILE:\n")
	fmt.Fprintf(&b, "- Name: %s\n", req.Student.Name)
	fmt.Fprintf(&b, "- University: %s\n", req.Student.University)
	fmt.Fprintf(&b, "- Major: %s\n", req.Student.Major)
	fmt.Fprintf(&b, "- Graduation Year: %d\n", req.Student.GraduationYear)
	fmt.Fprintf(&b, "- GPA: %s\n", orNotProvided(req.Student.GPA))
	fmt.Fprintf(&b, "- Location: %s\n", req.Student.Location)
	fmt.Fprintf(&b, "- Skills: %s\n", strings.Join(req.Student.Skills, ", "))
	fmt.Fprintf(&b, "- Interests: %s\n", strings.Join(req.Student.Interests, ", "))

	if req.Student.ResumeText != "" {
		b.WriteString("\nRESUME ANALYSIS:\n")
		b.WriteString(req.Student.ResumeText)
		b.WriteString("\n")
	}

	b.WriteString("\nINTERNSHIP DETAILS:\n")
	fmt.Fprintf(&b, "- Title: %s\n", req.Internship.Title)
	fmt.Fprintf(&b, "- Company: %s (%s)\n", req.Internship.Company.Name, req.Internship.Company.Industry)
	fmt.Fprintf(&b, "- Location: %s\n", req.Internship.Location)
	fmt.Fprintf(&b, "- Duration: %s\n", req.Internship.Duration)
	fmt.Fprintf(&b, "- Stipend: %s\n", orNotSpecified(req.Internship.Stipend))

	b.WriteString("\nJob Description:\n")
	b.WriteString(req.Internship.Description)
	b.WriteString("\n\nRequirements:\n")
	b.WriteString(strings.Join(req.Internship.Requirements, "\n"))
	b.WriteString("\n\nRequired Skills:\n")
	b.WriteString(strings.Join(req.Internship.Skills, ", "))
	b.WriteString("\n\nCompany Background:\n")
	b.WriteString(orNotProvided(req.Internship.Company.Description))
	b.WriteString("\n")

	if req.Context != nil {
		b.WriteString("\nCONTEXT:\n")
		if len(req.Context.CurrentMarketTrends) > 0 {
			fmt.Fprintf(&b, "- Market Trends: %s\n", strings.Join(req.Context.CurrentMarketTrends, ", "))
		}
		if len(req.Context.SimilarSuccessfulMatches) > 0 {
			fmt.Fprintf(&b, "- Similar Successful Matches: %s\n", strings.Join(req.Context.SimilarSuccessfulMatches, ", "))
		}
		if req.Context.StudentCareerGoals != "" {
			fmt.Fprintf(&b, "- Career Goals: %s\n", req.Context.StudentCareerGoals)
		}
	}

	b.WriteString(`
Provide a comprehensive analysis in the following JSON format:

{
  "overallMatch": <number 0-100>,
  "confidence": <number 0-100>,
  "keyStrengths": [
    "<specific strength 1>",
    "<specific strength 2>",
    "<specific strength 3>"
  ],
  "potentialConcerns": [
    "<concern 1>",
    "<concern 2>"
  ],
  "skillGaps": [
    "<skill gap 1>",
    "<skill gap 2>"
  ],
  "careerImpact": "<detailed explanation of how this internship will impact their career>",
  "employerBenefits": [
    "<benefit to employer 1>",
    "<benefit to employer 2>",
    "<benefit to employer 3>"
  ],
  "actionableAdvice": [
    "<specific actionable advice 1>",
    "<specific actionable advice 2>",
    "<specific actionable advice 3>"
  ],
  "breakdown": {
    "skillsMatch": <number 0-100>,
    "experienceMatch": <number 0-100>,
    "locationMatch": <number 0-100>,
    "cultureMatch": <number 0-100>,
    "careerFitMatch": <number 0-100>
  }
}

Analysis Guidelines:
1. Consider both explicit skills and transferable skills from resume
2. Evaluate growth potential and learning opportunities
3. Assess cultural fit based on company industry and student background
4. Provide specific, actionable advice for improvement
5. Consider geographic and timing factors
6. Be honest about potential challenges while highlighting opportunities
7. Focus on mutual benefits for both student and employer

Return ONLY the JSON response with no additional text.
`)

	return b.String()
}

func orNotProvided(s string) string {
	if s == "" {
		return "Not provided"
	}
	return s
}

func orNotSpecified(s string) string {
	if s == "" {
		return "Not specified"
	}
	return s
}
