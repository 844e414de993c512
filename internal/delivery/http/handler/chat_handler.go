package handler

import (
	"career-match/internal/delivery/http/dto"
	"career-match/internal/delivery/http/middleware"
	"career-match/internal/pkg/response"
	"career-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type ChatHandler struct {
	uc usecase.ChatUsecase
}

func NewChatHandler(uc usecase.ChatUsecase) *ChatHandler {
	return &ChatHandler{uc: uc}
}

func (h *ChatHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/:id/chat", h.Send)
	r.Post("/:id/chat/suggest-skills", h.SuggestSkills)
	r.Post("/:id/chat/learning-path", h.LearningPath)
}

func (h *ChatHandler) Send(c fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	var req dto.ChatRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	}

	reply, err := h.uc.Send(c.Context(), id, req.SessionID, req.Message)
	if err != nil {
		return mapUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.ChatResponse{
		SessionID: reply.SessionID,
		Reply:     reply.Text,
		Provider:  reply.Provider,
		Degraded:  reply.Degraded,
	})
}

func (h *ChatHandler) SuggestSkills(c fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	reply, err := h.uc.SuggestSkills(c.Context(), id)
	if err != nil {
		return mapUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.ChatResponse{
		Reply:    reply.Text,
		Provider: reply.Provider,
		Degraded: reply.Degraded,
	})
}

func (h *ChatHandler) LearningPath(c fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	var req dto.LearningPathRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	}

	reply, err := h.uc.LearningPath(c.Context(), id, req.TargetSkill)
	if err != nil {
		return mapUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.ChatResponse{
		Reply:    reply.Text,
		Provider: reply.Provider,
		Degraded: reply.Degraded,
	})
}
