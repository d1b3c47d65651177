package handler

import (
	"time"

	"github.com/labstack/echo/v4"

	"messengerpulse/internal/domain/entity"
	"messengerpulse/internal/usecase"
	"messengerpulse/pkg/response"
)

type InboxHandler struct {
	inboxUseCase    *usecase.InboxUseCase
	followUpUseCase *usecase.FollowUpUseCase
}

func NewInboxHandler(inboxUseCase *usecase.InboxUseCase, followUpUseCase *usecase.FollowUpUseCase) *InboxHandler {
	return &InboxHandler{
		inboxUseCase:    inboxUseCase,
		followUpUseCase: followUpUseCase,
	}
}

type sendMessageRequest struct {
	Text string `json:"text" validate:"required"`
}

func (h *InboxHandler) ListConversations(c echo.Context) error {
	return response.Success(c, h.inboxUseCase.List())
}

func (h *InboxHandler) GetConversation(c echo.Context) error {
	conversation, err := h.inboxUseCase.Get(c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, conversation)
}

func (h *InboxHandler) RefreshConversations(c echo.Context) error {
	session := c.Get("session").(*entity.Session)

	conversations, err := h.inboxUseCase.Refresh(c.Request().Context(), session)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, conversations)
}

func (h *InboxHandler) SendMessage(c echo.Context) error {
	var req sendMessageRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	session := c.Get("session").(*entity.Session)

	message, err := h.inboxUseCase.SendMessage(c.Request().Context(), session, c.Param("id"), req.Text)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, message)
}

func (h *InboxHandler) DraftFollowUp(c echo.Context) error {
	draft, err := h.followUpUseCase.Draft(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]string{"draft": draft})
}

func (h *InboxHandler) GetStats(c echo.Context) error {
	return response.Success(c, h.inboxUseCase.Stats(time.Now()))
}
