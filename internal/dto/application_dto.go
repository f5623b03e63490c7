package dto

type CreateApplicationRequest struct {
	StudentID string `json:"student_id"`
}

type UpdateApplicationStatusRequest struct {
	Status string `json:"status"`
}
