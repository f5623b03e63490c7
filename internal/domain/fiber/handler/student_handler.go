package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/internmatch-ai/internmatch-api/internal/dto"
	"github.com/internmatch-ai/internmatch-api/internal/usecase"
	"github.com/internmatch-ai/internmatch-api/internal/util"
	"gorm.io/gorm"
)

type StudentHandler struct {
	profiles *usecase.ProfileUsecase
}

func NewStudentHandler(profiles *usecase.ProfileUsecase) *StudentHandler {
	return &StudentHandler{profiles: profiles}
}

func (h *StudentHandler) RegisterRoutes(app *fiber.App) {
	app.Put("/api/students/:id/profile", h.UpdateProfile)
}

func (h *StudentHandler) UpdateProfile(c *fiber.Ctx) error {
	studentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid student id",
		}, err)
	}

	var req dto.UpdateStudentProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid request body",
		}, err)
	}

	student, err := h.profiles.UpdateStudentProfile(c.UserContext(), studentID, &req)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusNotFound,
			Message: "student not found",
		}, err)
	}
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to update profile",
		}, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success update student profile",
		Data:    student,
	})
}
