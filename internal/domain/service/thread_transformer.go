package service

import (
	"net/url"
	"time"

	"messengerpulse/internal/domain/entity"
)

// FallbackPartnerName is used when the counterparty cannot be resolved from
// participants or messages.
const FallbackPartnerName = "Facebook User"

const attachmentPlaceholder = "[Media/Attachment]"

// TransformThreads maps raw Graph API threads into the normalized
// conversation model. Pure function; input thread order is preserved, final
// display ordering is the API layer's concern.
func TransformThreads(threads []Thread, pageID string) []entity.Conversation {
	conversations := make([]entity.Conversation, 0, len(threads))
	for _, thread := range threads {
		conversations = append(conversations, transformThread(thread, pageID))
	}
	return conversations
}

func transformThread(thread Thread, pageID string) entity.Conversation {
	partner := findPartner(thread, pageID)

	partnerName := FallbackPartnerName
	partnerID := ""
	if partner != nil {
		partnerID = partner.ID
		if partner.Name != "" {
			partnerName = partner.Name
		}
	}

	messages := make([]entity.Message, 0, len(thread.Messages.Data))
	for _, raw := range thread.Messages.Data {
		text := raw.Message
		if text == "" {
			text = attachmentPlaceholder
		}
		// Binary classification on purpose: anything that is not the page
		// counts as the partner, the UI only models two parties.
		sender := entity.SenderPartner
		if raw.From != nil && raw.From.ID == pageID {
			sender = entity.SenderMe
		}
		messages = append(messages, entity.Message{
			ID:        raw.ID,
			Sender:    sender,
			Text:      text,
			Timestamp: parseGraphTime(raw.CreatedTime),
		})
	}
	// The provider returns messages most-recent-first; reverse for display.
	reverseMessages(messages)

	status := entity.StatusActive
	if len(messages) > 0 {
		if messages[len(messages)-1].Sender == entity.SenderMe {
			status = entity.StatusWaitingForPartner
		} else {
			status = entity.StatusWaitingForMe
		}
	}

	return entity.Conversation{
		ID:          thread.ID,
		PartnerID:   partnerID,
		PartnerName: partnerName,
		AvatarURL:   AvatarURL(partnerName),
		Messages:    messages,
		Status:      status,
	}
}

// findPartner picks the participant whose id differs from the page's own.
// When the participant list is empty or malformed it falls back to the
// first message sent by someone other than the page.
func findPartner(thread Thread, pageID string) *Participant {
	for i := range thread.Participants.Data {
		if thread.Participants.Data[i].ID != pageID {
			return &thread.Participants.Data[i]
		}
	}
	for i := range thread.Messages.Data {
		from := thread.Messages.Data[i].From
		if from != nil && from.ID != pageID {
			return from
		}
	}
	return nil
}

// AvatarURL synthesizes a deterministic presentation avatar from the
// partner's display name; the Graph photo endpoint is not used.
func AvatarURL(name string) string {
	return "https://ui-avatars.com/api/?name=" + url.QueryEscape(name) + "&background=random&color=fff"
}

var graphTimeLayouts = []string{
	"2006-01-02T15:04:05-0700",
	time.RFC3339,
}

func parseGraphTime(value string) int64 {
	for _, layout := range graphTimeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UnixMilli()
		}
	}
	return 0
}

func reverseMessages(messages []entity.Message) {
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
}
