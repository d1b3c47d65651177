package handler

import (
	"github.com/labstack/echo/v4"

	"messengerpulse/internal/usecase"
	"messengerpulse/pkg/response"
)

type SettingsHandler struct {
	settingsUseCase *usecase.SettingsUseCase
}

func NewSettingsHandler(settingsUseCase *usecase.SettingsUseCase) *SettingsHandler {
	return &SettingsHandler{
		settingsUseCase: settingsUseCase,
	}
}

type updateSettingsRequest struct {
	PresetMessage *string `json:"preset_message"`
	GeminiAPIKey  *string `json:"gemini_api_key"`
}

func (h *SettingsHandler) GetSettings(c echo.Context) error {
	return response.Success(c, h.settingsUseCase.Get())
}

func (h *SettingsHandler) UpdateSettings(c echo.Context) error {
	var req updateSettingsRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	settings := h.settingsUseCase.Update(usecase.UpdateSettingsInput{
		PresetMessage: req.PresetMessage,
		GeminiAPIKey:  req.GeminiAPIKey,
	})
	return response.Success(c, settings)
}

func (h *SettingsHandler) ResetPreset(c echo.Context) error {
	return response.Success(c, h.settingsUseCase.ResetPreset())
}
