package handler

import (
	"github.com/labstack/echo/v4"

	"messengerpulse/internal/domain/entity"
	"messengerpulse/internal/usecase"
	"messengerpulse/pkg/logger"
	"messengerpulse/pkg/response"
)

type AuthHandler struct {
	authUseCase  *usecase.AuthUseCase
	inboxUseCase *usecase.InboxUseCase
}

func NewAuthHandler(authUseCase *usecase.AuthUseCase, inboxUseCase *usecase.InboxUseCase) *AuthHandler {
	return &AuthHandler{
		authUseCase:  authUseCase,
		inboxUseCase: inboxUseCase,
	}
}

type loginRequest struct {
	// Empty token switches to demo mode with simulated data
	AccessToken string `json:"access_token"`
}

type authResponse struct {
	Token         string                `json:"token"`
	PageID        string                `json:"page_id"`
	PageName      string                `json:"page_name"`
	Conversations []entity.Conversation `json:"conversations"`
	Warning       string                `json:"warning,omitempty"`
}

// Login validates the token, opens a session and performs the initial
// conversation load. A failed initial load degrades to an empty list
// instead of blocking the login.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	result, err := h.authUseCase.Login(c.Request().Context(), req.AccessToken)
	if err != nil {
		return response.Error(c, err)
	}

	resp := authResponse{
		Token:         result.Token,
		PageID:        result.Session.PageID,
		PageName:      result.Session.PageName,
		Conversations: []entity.Conversation{},
	}

	conversations, err := h.inboxUseCase.Refresh(c.Request().Context(), result.Session)
	if err != nil {
		logger.Error("Data fetch error on login: %v", err)
		resp.Warning = "Authentication succeeded, but conversations could not be fetched. Check the page permissions."
	} else {
		resp.Conversations = conversations
	}

	return response.Success(c, resp)
}

// Refresh re-validates the stored credential and re-fetches conversations.
func (h *AuthHandler) Refresh(c echo.Context) error {
	result, err := h.authUseCase.Refresh(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}

	conversations, err := h.inboxUseCase.Refresh(c.Request().Context(), result.Session)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, authResponse{
		Token:         result.Token,
		PageID:        result.Session.PageID,
		PageName:      result.Session.PageName,
		Conversations: conversations,
	})
}

func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.authUseCase.Logout(c.Request().Context()); err != nil {
		return response.Error(c, err)
	}
	h.inboxUseCase.Clear()
	return response.Success(c, map[string]string{"status": "logged_out"})
}
