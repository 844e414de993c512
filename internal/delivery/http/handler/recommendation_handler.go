package handler

import (
	"errors"
	"strconv"

	"career-match/internal/delivery/http/dto"
	"career-match/internal/delivery/http/middleware"
	"career-match/internal/embedding"
	"career-match/internal/pkg/response"
	"career-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type RecommendationHandler struct {
	uc usecase.RecommendationUsecase
}

func NewRecommendationHandler(uc usecase.RecommendationUsecase) *RecommendationHandler {
	return &RecommendationHandler{uc: uc}
}

func (h *RecommendationHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/:id/recommendations", h.GetRecommendations)
	r.Get("/:id/jobs/:jobID/gap", h.GetGapReport)
}

func (h *RecommendationHandler) GetRecommendations(c fiber.Ctx) error {
	profileID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	limit := parseQueryInt(c, "limit", 0)
	if limit < 0 {
		limit = 0
	}

	res, err := h.uc.GetRecommendations(c.Context(), profileID, usecase.RecommendationParams{Limit: limit})
	if err != nil {
		return mapUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewRecommendationListResponse(res))
}

func (h *RecommendationHandler) GetGapReport(c fiber.Ctx) error {
	profileID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	jobID, err := parseUUIDParam(c, "jobID")
	if err != nil {
		return err
	}

	report, err := h.uc.GetGapReport(c.Context(), profileID, jobID)
	if err != nil {
		return mapUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewGapReportResponse(report))
}

func parseQueryInt(c fiber.Ctx, key string, defaultVal int) int {
	s := c.Query(key)
	if s == "" {
		return defaultVal
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return defaultVal
	}
	return v
}

func parseUUIDParam(c fiber.Ctx, key string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(key))
	if err != nil {
		return uuid.Nil, middleware.NewAppError(fiber.StatusBadRequest, "invalid "+key, nil, err)
	}
	return id, nil
}

func mapUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	case errors.Is(err, usecase.ErrProfileNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "profile not found", nil, err)
	case errors.Is(err, usecase.ErrJobNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "job not found", nil, err)
	case errors.Is(err, usecase.ErrNoJobsFound):
		return middleware.NewAppError(fiber.StatusNotFound, "no jobs found", nil, err)
	case errors.Is(err, usecase.ErrSkillProfileEmpty):
		return middleware.NewAppError(fiber.StatusBadRequest, "skill profile empty", nil, err)
	case errors.Is(err, embedding.ErrProviderUnavailable):
		return middleware.NewAppError(fiber.StatusServiceUnavailable, "embedding provider unavailable", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
