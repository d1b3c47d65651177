package router

import (
	"github.com/labstack/echo/v4"

	"messengerpulse/internal/adapter/api/handler"
	"messengerpulse/internal/adapter/api/middleware"
)

// SetupInboxRouter sets up all conversation-related routes
func SetupInboxRouter(e *echo.Echo, inboxHandler *handler.InboxHandler, authMiddleware *middleware.AuthMiddleware) {
	inboxGroup := e.Group("/v1/conversations")
	inboxGroup.Use(authMiddleware.Authenticate) // All inbox endpoints require an open session

	inboxGroup.GET("", inboxHandler.ListConversations)        // GET /v1/conversations - normalized list, newest activity first
	inboxGroup.POST("/refresh", inboxHandler.RefreshConversations)
	inboxGroup.GET("/:id", inboxHandler.GetConversation)      // GET /v1/conversations/:id
	inboxGroup.POST("/:id/messages", inboxHandler.SendMessage) // POST /v1/conversations/:id/messages - optimistic send
	inboxGroup.POST("/:id/followup", inboxHandler.DraftFollowUp)

	statsGroup := e.Group("/v1/stats")
	statsGroup.Use(authMiddleware.Authenticate)
	statsGroup.GET("", inboxHandler.GetStats)
}
