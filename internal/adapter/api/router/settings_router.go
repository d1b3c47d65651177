package router

import (
	"github.com/labstack/echo/v4"

	"messengerpulse/internal/adapter/api/handler"
	"messengerpulse/internal/adapter/api/middleware"
)

func SetupSettingsRouter(e *echo.Echo, settingsHandler *handler.SettingsHandler, authMiddleware *middleware.AuthMiddleware) {
	settingsGroup := e.Group("/v1/settings")
	settingsGroup.Use(authMiddleware.Authenticate)

	settingsGroup.GET("", settingsHandler.GetSettings)
	settingsGroup.PUT("", settingsHandler.UpdateSettings)
	settingsGroup.POST("/reset-preset", settingsHandler.ResetPreset)
}
