package usecase

import (
	"context"

	"messengerpulse/internal/domain/entity"
	"messengerpulse/internal/domain/service"
)

// FacebookGateway is what the usecases need from the Graph API client.
type FacebookGateway interface {
	GetPageDetails(ctx context.Context, accessToken string) (*service.PageDetails, error)
	FetchConversations(ctx context.Context, pageID, accessToken string) ([]entity.Conversation, error)
	SendMessage(ctx context.Context, recipientID, text, accessToken string) error
}

// FollowUpGenerator drafts re-engagement messages.
type FollowUpGenerator interface {
	GenerateFollowUp(ctx context.Context, partnerName string, history []entity.Message) (string, error)
	SetAPIKey(key string)
}
