package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/internmatch-ai/internmatch-api/internal/dto"
	"github.com/internmatch-ai/internmatch-api/internal/response"
	"github.com/internmatch-ai/internmatch-api/internal/usecase"
	"github.com/internmatch-ai/internmatch-api/internal/util"
	"gorm.io/gorm"
)

type InternshipHandler struct {
	internships *usecase.InternshipUsecase
}

func NewInternshipHandler(internships *usecase.InternshipUsecase) *InternshipHandler {
	return &InternshipHandler{internships: internships}
}

func (h *InternshipHandler) RegisterRoutes(app *fiber.App) {
	app.Post("/api/internships", h.Create)
	app.Get("/api/internships", h.List)
	app.Get("/api/internships/:id", h.Get)
	app.Put("/api/internships/:id", h.Update)
}

func (h *InternshipHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateInternshipRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid request body",
		}, err)
	}

	employerID, err := uuid.Parse(req.EmployerID)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid employer id",
		}, err)
	}
	if req.Title == "" || req.Description == "" {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "title and description are required",
		})
	}

	internship, err := h.internships.Create(c.UserContext(), employerID, &req)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusNotFound,
			Message: "employer not found",
		}, err)
	}
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to create internship",
		}, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Success create internship",
		Data:    internship,
	})
}

func (h *InternshipHandler) List(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	pageSize := c.QueryInt("page_size", 20)

	internships, total, err := h.internships.ListOpenPaged(c.UserContext(), page, pageSize)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to list internships",
		}, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message:    "Success get internships",
		Data:       internships,
		Pagination: response.NewPagination(page, pageSize, total),
	})
}

func (h *InternshipHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid internship id",
		}, err)
	}

	internship, err := h.internships.Get(c.UserContext(), id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusNotFound,
			Message: "internship not found",
		}, err)
	}
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to get internship",
		}, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get internship",
		Data:    internship,
	})
}

func (h *InternshipHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid internship id",
		}, err)
	}

	var req dto.UpdateInternshipRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid request body",
		}, err)
	}

	internship, err := h.internships.Update(c.UserContext(), id, &req)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusNotFound,
			Message: "internship not found",
		}, err)
	}
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to update internship",
		}, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success update internship",
		Data:    internship,
	})
}
