package router

import (
	"github.com/labstack/echo/v4"

	"messengerpulse/internal/adapter/api/handler"
	"messengerpulse/internal/adapter/api/middleware"
)

func SetupAuthRouter(e *echo.Echo, authHandler *handler.AuthHandler, authMiddleware *middleware.AuthMiddleware) {
	authGroup := e.Group("/v1/auth")

	authGroup.POST("/login", authHandler.Login) // POST /v1/auth/login - validate token, open session
	// Refresh reconnects from the persisted credential after a restart or
	// an expired JWT, so it cannot itself require a live JWT. The stored
	// access token is re-validated against the Graph API instead.
	authGroup.POST("/refresh", authHandler.Refresh)
	authGroup.POST("/logout", authHandler.Logout, authMiddleware.Authenticate)
}
