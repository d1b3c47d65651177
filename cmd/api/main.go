package main

import (
	"context"
	"log"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"messengerpulse/internal/adapter/api"
	"messengerpulse/internal/adapter/api/handler"
	apimiddleware "messengerpulse/internal/adapter/api/middleware"
	"messengerpulse/internal/adapter/api/router"
	"messengerpulse/internal/adapter/repository"
	"messengerpulse/internal/domain/service"
	"messengerpulse/internal/infrastructure/websocket"
	"messengerpulse/internal/usecase"
	"messengerpulse/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	facebookService := service.NewFacebookService(service.FacebookConfig{
		BaseURL:       cfg.GraphAPIBase,
		RetryAttempts: cfg.RetryAttempts,
		RetryDelay:    time.Duration(cfg.RetryDelayMs) * time.Millisecond,
		MaxPages:      cfg.FetchMaxPages,
		BatchSize:     cfg.FetchBatchSize,
		MessageLimit:  cfg.FetchMessageLimit,
		MockDelay:     time.Duration(cfg.MockDelayMs) * time.Millisecond,
	})
	followUpService := service.NewFollowUpService(cfg.GeminiAPIKey, cfg.GeminiAPIBase, cfg.GeminiModel)

	sessionRepo := repository.NewFileSessionRepository(cfg.SessionFile)

	wsManager := websocket.NewManager()
	wsManager.Start(ctx)

	authUseCase := usecase.NewAuthUseCase(sessionRepo, facebookService, cfg.JWTSecret, time.Duration(cfg.JWTExpiry)*time.Second)
	inboxUseCase := usecase.NewInboxUseCase(facebookService, wsManager)
	followUpUseCase := usecase.NewFollowUpUseCase(inboxUseCase, followUpService)
	settingsUseCase := usecase.NewSettingsUseCase(followUpService, cfg.GeminiAPIKey)

	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.Validator = api.NewValidator()

	authMiddleware := apimiddleware.NewAuthMiddleware(authUseCase)

	authHandler := handler.NewAuthHandler(authUseCase, inboxUseCase)
	inboxHandler := handler.NewInboxHandler(inboxUseCase, followUpUseCase)
	settingsHandler := handler.NewSettingsHandler(settingsUseCase)
	wsHandler := handler.NewWebSocketHandler(wsManager)

	router.Setup(e, authHandler, inboxHandler, settingsHandler, wsHandler, authMiddleware)

	// Serve the inbox UI
	e.Static("/", "web")

	log.Printf("Starting server on port %s...", cfg.ServerPort)
	if err := e.Start(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
