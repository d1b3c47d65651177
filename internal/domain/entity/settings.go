package entity

// DefaultPresetMessage is the stock follow-up text offered in the composer.
const DefaultPresetMessage = "Salut! Nu am mai primit niciun raspuns. Mai esti interesat de oferta?"

type Settings struct {
	PresetMessage string `json:"preset_message"`
	GeminiAPIKey  string `json:"gemini_api_key,omitempty"`
}
