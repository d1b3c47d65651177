package usecase

import (
	"sync"

	"messengerpulse/internal/domain/entity"
)

// SettingsUseCase holds the operator-tunable settings: the preset follow-up
// text and the Gemini API key. Key changes are pushed into the generator so
// the next draft uses them.
type SettingsUseCase struct {
	mu        sync.RWMutex
	settings  entity.Settings
	generator FollowUpGenerator
}

func NewSettingsUseCase(generator FollowUpGenerator, initialGeminiKey string) *SettingsUseCase {
	return &SettingsUseCase{
		settings: entity.Settings{
			PresetMessage: entity.DefaultPresetMessage,
			GeminiAPIKey:  initialGeminiKey,
		},
		generator: generator,
	}
}

func (uc *SettingsUseCase) Get() entity.Settings {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return uc.settings
}

type UpdateSettingsInput struct {
	PresetMessage *string
	GeminiAPIKey  *string
}

func (uc *SettingsUseCase) Update(input UpdateSettingsInput) entity.Settings {
	uc.mu.Lock()
	if input.PresetMessage != nil {
		uc.settings.PresetMessage = *input.PresetMessage
	}
	if input.GeminiAPIKey != nil {
		uc.settings.GeminiAPIKey = *input.GeminiAPIKey
	}
	settings := uc.settings
	uc.mu.Unlock()

	if input.GeminiAPIKey != nil && uc.generator != nil {
		uc.generator.SetAPIKey(*input.GeminiAPIKey)
	}
	return settings
}

// ResetPreset restores the stock follow-up text.
func (uc *SettingsUseCase) ResetPreset() entity.Settings {
	uc.mu.Lock()
	uc.settings.PresetMessage = entity.DefaultPresetMessage
	settings := uc.settings
	uc.mu.Unlock()
	return settings
}
