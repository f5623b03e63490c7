package dto

type UpdateStudentProfileRequest struct {
	University     *string  `json:"university"`
	Major          *string  `json:"major"`
	GraduationYear *int     `json:"graduation_year"`
	GPA            *string  `json:"gpa"`
	Skills         []string `json:"skills"`
	Interests      []string `json:"interests"`
	Location       *string  `json:"location"`
	ResumeText     *string  `json:"resume_text"`
}
