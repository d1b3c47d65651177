package router

import (
	"github.com/labstack/echo/v4"

	"messengerpulse/internal/adapter/api/handler"
	"messengerpulse/internal/adapter/api/middleware"
)

func Setup(
	e *echo.Echo,
	authHandler *handler.AuthHandler,
	inboxHandler *handler.InboxHandler,
	settingsHandler *handler.SettingsHandler,
	wsHandler *handler.WebSocketHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	SetupAuthRouter(e, authHandler, authMiddleware)
	SetupInboxRouter(e, inboxHandler, authMiddleware)
	SetupSettingsRouter(e, settingsHandler, authMiddleware)
	SetupWebSocketRouter(e, wsHandler)
	SetupHealthRouter(e)
}
