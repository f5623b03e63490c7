package dto

import "time"

type CreateInternshipRequest struct {
	EmployerID   string     `json:"employer_id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Requirements []string   `json:"requirements"`
	Skills       []string   `json:"skills"`
	Location     string     `json:"location"`
	Duration     string     `json:"duration"`
	Stipend      string     `json:"stipend"`
	Deadline     *time.Time `json:"deadline"`
}

type UpdateInternshipRequest struct {
	Title        *string    `json:"title"`
	Description  *string    `json:"description"`
	Requirements []string   `json:"requirements"`
	Skills       []string   `json:"skills"`
	Location     *string    `json:"location"`
	Duration     *string    `json:"duration"`
	Stipend      *string    `json:"stipend"`
	Status       *string    `json:"status"`
	Deadline     *time.Time `json:"deadline"`
}
