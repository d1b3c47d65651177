package usecase

import (
	"context"
	"fmt"
	"time"

	"messengerpulse/internal/infrastructure/ratelimit"
	apperrors "messengerpulse/pkg/errors"
)

type FollowUpUseCase struct {
	inbox       *InboxUseCase
	generator   FollowUpGenerator
	rateLimiter *ratelimit.RateLimiter
}

func NewFollowUpUseCase(inbox *InboxUseCase, generator FollowUpGenerator) *FollowUpUseCase {
	return &FollowUpUseCase{
		inbox:       inbox,
		generator:   generator,
		rateLimiter: ratelimit.NewRateLimiter(),
	}
}

// Draft generates a follow-up message proposal from the conversation's
// history. A missing Gemini key comes back as a normal explanatory string
// from the generator, never as an error.
func (uc *FollowUpUseCase) Draft(ctx context.Context, conversationID string) (string, error) {
	conversation, err := uc.inbox.Get(conversationID)
	if err != nil {
		return "", err
	}

	if allowed, wait := uc.rateLimiter.AllowFollowUp(); !allowed {
		return "", apperrors.TooManyRequests(fmt.Sprintf("Draft limit reached, retry in %s", wait.Round(time.Second)))
	}

	return uc.generator.GenerateFollowUp(ctx, conversation.PartnerName, conversation.Messages)
}
