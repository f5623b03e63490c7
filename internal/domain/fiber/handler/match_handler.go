package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/internmatch-ai/internmatch-api/internal/usecase"
	"github.com/internmatch-ai/internmatch-api/internal/util"
	"gorm.io/gorm"
)

type MatchHandler struct {
	matches *usecase.MatchUsecase
}

func NewMatchHandler(matches *usecase.MatchUsecase) *MatchHandler {
	return &MatchHandler{matches: matches}
}

func (h *MatchHandler) RegisterRoutes(app *fiber.App) {
	app.Get("/api/students/:id/recommended-internships", h.RecommendedInternships)
	app.Get("/api/internships/:id/recommended-candidates", h.RecommendedCandidates)
	app.Post("/api/match/analyze", h.Analyze)
}

func (h *MatchHandler) RecommendedInternships(c *fiber.Ctx) error {
	studentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid student id",
		}, err)
	}

	limit := c.QueryInt("limit", 10)
	recommendations, err := h.matches.RecommendInternships(c.UserContext(), studentID, limit)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to load recommendations",
		}, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get recommended internships",
		Data:    recommendations,
	})
}

func (h *MatchHandler) RecommendedCandidates(c *fiber.Ctx) error {
	internshipID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid internship id",
		}, err)
	}

	limit := c.QueryInt("limit", 10)
	recommendations, err := h.matches.RecommendCandidates(c.UserContext(), internshipID, limit)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to load recommended candidates",
		}, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get recommended candidates",
		Data:    recommendations,
	})
}

type analyzeRequest struct {
	StudentID    string `json:"student_id"`
	InternshipID string `json:"internship_id"`
}

func (h *MatchHandler) Analyze(c *fiber.Ctx) error {
	var req analyzeRequest
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
	internshipID, err := uuid.Parse(req.InternshipID)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid internship id",
		}, err)
	}

	analysis, err := h.matches.AnalyzePair(c.UserContext(), studentID, internshipID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusNotFound,
			Message: "student or internship not found",
		}, err)
	}
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "failed to analyze match",
		}, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success analyze match",
		Data:    analysis,
	})
}
