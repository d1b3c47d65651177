package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"messengerpulse/internal/domain/entity"
	apperrors "messengerpulse/pkg/errors"
	"messengerpulse/pkg/logger"
)

// MissingAPIKeyMessage is returned (not raised) when no Gemini key is
// configured, so the UI needs no separate error path for this case.
const MissingAPIKeyMessage = "Follow-up drafting is unavailable: no Gemini API key is configured. Add one in Settings."

const emptyCompletionMessage = "Could not generate a follow-up message."

// FollowUpService drafts re-engagement messages through Gemini's
// OpenAI-compatible endpoint. The key is runtime-updatable from Settings,
// so the client is built per call with the current key.
type FollowUpService struct {
	mu      sync.RWMutex
	apiKey  string
	baseURL string
	model   string
}

func NewFollowUpService(apiKey, baseURL, model string) *FollowUpService {
	if baseURL == "" {
		baseURL = "https://generativelanguage.googleapis.com/v1beta/openai/"
	}
	if model == "" {
		model = "gemini-2.5-flash"
	}
	return &FollowUpService{
		apiKey:  apiKey,
		baseURL: baseURL,
		model:   model,
	}
}

func (s *FollowUpService) SetAPIKey(key string) {
	s.mu.Lock()
	s.apiKey = key
	s.mu.Unlock()
}

func (s *FollowUpService) HasAPIKey() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.apiKey != ""
}

// GenerateFollowUp produces a short follow-up draft for a conversation the
// partner stopped replying to. A missing key is a normal return value, not
// an error.
func (s *FollowUpService) GenerateFollowUp(ctx context.Context, partnerName string, history []entity.Message) (string, error) {
	s.mu.RLock()
	key := s.apiKey
	s.mu.RUnlock()

	if key == "" {
		return MissingAPIKeyMessage, nil
	}

	client := openai.NewClient(
		option.WithAPIKey(key),
		option.WithBaseURL(s.baseURL),
	)

	prompt := BuildFollowUpPrompt(partnerName, history)
	resp, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(s.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		logger.Error("Gemini API error: %v", err)
		return "", apperrors.Internal("Failed to generate the follow-up message. Check the API key in Settings.", err)
	}

	if len(resp.Choices) == 0 {
		return emptyCompletionMessage, nil
	}
	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return emptyCompletionMessage, nil
	}
	return text, nil
}

// BuildTranscript renders the history as "<speaker>: <text>" lines, the
// page speaking as "Me (Page)".
func BuildTranscript(partnerName string, history []entity.Message) string {
	lines := make([]string, 0, len(history))
	for _, m := range history {
		speaker := partnerName
		if m.Sender == entity.SenderMe {
			speaker = "Me (Page)"
		}
		lines = append(lines, fmt.Sprintf("%s: %s", speaker, m.Text))
	}
	return strings.Join(lines, "\n")
}

func BuildFollowUpPrompt(partnerName string, history []entity.Message) string {
	return fmt.Sprintf(`You are a smart assistant for a Facebook page.
Your task is to write a short, polite and friendly follow-up message.

Context: We talked with %q but they have not replied to our last message for over 24 hours.
The conversation needs to be reactivated without being pushy.

Conversation history:
%s

Please generate only the text of the follow-up message, without quotes or introductory text. The message must sound natural.`,
		partnerName, BuildTranscript(partnerName, history))
}
