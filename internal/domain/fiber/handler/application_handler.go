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

type ApplicationHandler struct {
	applications *usecase.ApplicationUsecase
}

func NewApplicationHandler(applications *usecase.ApplicationUsecase) *ApplicationHandler {
	return &ApplicationHandler{applications: applications}
}

func (h *ApplicationHandler) RegisterRoutes(app *fiber.App) {
	app.Post("/api/internships/:id/applications", h.Apply)
	app.Get("/api/internships/:id/applicants/ranked", h.RankedApplicants)
	app.Get("/api/students/:id/applications", h.ListForStudent)
	app.Get("/api/students/:id/applications/ranked", h.RankedApplications)
	app.Put("/api/applications/:id/status", h.UpdateStatus)
}

func (h *ApplicationHandler) Apply(c *fiber.Ctx) error {
	internshipID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid internship id",
		}, err)
	}

	var req dto.CreateApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid request body",
		}, err)
	}
	studentID, err := uuid.Parse(req.StudentID)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid student id",
		}, err)
	}

	application, err := h.applications.Apply(c.UserContext(), studentID, internshipID)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusNotFound,
			Message: "internship not found",
		}, err)
	case errors.Is(err, usecase.ErrInternshipClosed),
		errors.Is(err, usecase.ErrInternshipFull):
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusUnprocessableEntity,
			Message: err.Error(),
		}, err)
	case errors.Is(err, usecase.ErrAlreadyApplied):
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusConflict,
			Message: err.Error(),
		}, err)
	case err != nil:
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to create application",
		}, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Success create application",
		Data:    application,
	})
}

func (h *ApplicationHandler) RankedApplicants(c *fiber.Ctx) error {
	internshipID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid internship id",
		}, err)
	}

	ranked, err := h.applications.RankApplicants(c.UserContext(), internshipID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusNotFound,
			Message: "internship not found",
		}, err)
	}
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to rank applicants",
		}, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success rank applicants",
		Data:    ranked,
	})
}

func (h *ApplicationHandler) RankedApplications(c *fiber.Ctx) error {
	studentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid student id",
		}, err)
	}

	ranked, err := h.applications.RankApplications(c.UserContext(), studentID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusNotFound,
			Message: "student not found",
		}, err)
	}
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to rank applications",
		}, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success rank applications",
		Data:    ranked,
	})
}

func (h *ApplicationHandler) ListForStudent(c *fiber.Ctx) error {
	studentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid student id",
		}, err)
	}

	applications, err := h.applications.ListForStudent(c.UserContext(), studentID)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to list applications",
		}, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get applications",
		Data:    applications,
	})
}

func (h *ApplicationHandler) UpdateStatus(c *fiber.Ctx) error {
	applicationID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid application id",
		}, err)
	}

	var req dto.UpdateApplicationStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid request body",
		}, err)
	}

	application, err := h.applications.Decide(c.UserContext(), applicationID, req.Status)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusNotFound,
			Message: "application not found",
		}, err)
	case errors.Is(err, usecase.ErrInvalidStatusChange):
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: err.Error(),
		}, err)
	case errors.Is(err, usecase.ErrApplicationFinal):
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusConflict,
			Message: err.Error(),
		}, err)
	case err != nil:
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to update application",
		}, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success update application status",
		Data:    application,
	})
}
