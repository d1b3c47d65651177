package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"messengerpulse/internal/domain/entity"
	"messengerpulse/internal/infrastructure/ratelimit"
	ws "messengerpulse/internal/infrastructure/websocket"
	apperrors "messengerpulse/pkg/errors"
	"messengerpulse/pkg/logger"
)

// InboxUseCase owns the in-memory conversation list. The list is replaced
// atomically on every refresh; nothing else mutates it except the optimistic
// append on send.
type InboxUseCase struct {
	facebook    FacebookGateway
	wsManager   *ws.Manager
	rateLimiter *ratelimit.RateLimiter

	mu            sync.RWMutex
	conversations []entity.Conversation
}

func NewInboxUseCase(facebook FacebookGateway, wsManager *ws.Manager) *InboxUseCase {
	rateLimiter := ratelimit.NewRateLimiter()
	rateLimiter.StartCleanupRoutine()

	return &InboxUseCase{
		facebook:    facebook,
		wsManager:   wsManager,
		rateLimiter: rateLimiter,
	}
}

// Refresh fetches the conversation list from the provider and swaps it in
// wholesale. Connected UI clients are notified over the websocket.
func (uc *InboxUseCase) Refresh(ctx context.Context, session *entity.Session) ([]entity.Conversation, error) {
	conversations, err := uc.facebook.FetchConversations(ctx, session.PageID, session.AccessToken)
	if err != nil {
		return nil, err
	}

	uc.mu.Lock()
	uc.conversations = conversations
	uc.mu.Unlock()

	uc.notifyUpdated()
	return uc.List(), nil
}

// List returns a snapshot ordered by most-recent message timestamp,
// descending. Display ordering lives here, not in the transformer.
// Message slices are copied so published snapshots never share backing
// arrays with the internal state setDelivery mutates.
func (uc *InboxUseCase) List() []entity.Conversation {
	uc.mu.RLock()
	out := make([]entity.Conversation, 0, len(uc.conversations))
	for i := range uc.conversations {
		out = append(out, cloneConversation(&uc.conversations[i]))
	}
	uc.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return lastTimestamp(&out[i]) > lastTimestamp(&out[j])
	})
	return out
}

func (uc *InboxUseCase) Get(conversationID string) (*entity.Conversation, error) {
	uc.mu.RLock()
	defer uc.mu.RUnlock()

	for i := range uc.conversations {
		if uc.conversations[i].ID == conversationID {
			conv := cloneConversation(&uc.conversations[i])
			return &conv, nil
		}
	}
	return nil, apperrors.NotFound("Conversation", nil)
}

// Clear drops the in-memory state on logout.
func (uc *InboxUseCase) Clear() {
	uc.mu.Lock()
	uc.conversations = nil
	uc.mu.Unlock()
}

// SendMessage appends the outbound message optimistically (delivery
// "pending"), then performs the real send. On failure the appended message
// is marked "failed" rather than silently kept.
func (uc *InboxUseCase) SendMessage(ctx context.Context, session *entity.Session, conversationID, text string) (*entity.Message, error) {
	conversation, err := uc.Get(conversationID)
	if err != nil {
		return nil, err
	}
	if conversation.PartnerID == "" {
		return nil, apperrors.BadRequest("Could not identify the partner's PSID; the message cannot be sent", nil)
	}

	if allowed, wait := uc.rateLimiter.AllowSend(conversationID); !allowed {
		return nil, apperrors.TooManyRequests(fmt.Sprintf("Send limit reached for this conversation, retry in %s", wait.Round(time.Second)))
	}

	message := entity.Message{
		ID:        uuid.New().String(),
		Sender:    entity.SenderMe,
		Text:      text,
		Timestamp: time.Now().UnixMilli(),
		Delivery:  entity.DeliveryPending,
	}
	uc.appendMessage(conversationID, message)

	if err := uc.facebook.SendMessage(ctx, conversation.PartnerID, text, session.AccessToken); err != nil {
		logger.Error("Failed to send message to %s: %v", conversation.PartnerID, err)
		uc.setDelivery(conversationID, message.ID, entity.DeliveryFailed)
		uc.notifyUpdated()
		return nil, err
	}

	uc.setDelivery(conversationID, message.ID, entity.DeliverySent)
	uc.notifyUpdated()

	message.Delivery = entity.DeliverySent
	return &message, nil
}

// Stats derives the dashboard counters from the current snapshot.
func (uc *InboxUseCase) Stats(now time.Time) entity.DashboardStats {
	uc.mu.RLock()
	defer uc.mu.RUnlock()

	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).UnixMilli()

	stats := entity.DashboardStats{Total: len(uc.conversations)}
	for i := range uc.conversations {
		conv := &uc.conversations[i]
		if conv.IsOverdue(now) {
			stats.Overdue++
		}
		if conv.Status == entity.StatusWaitingForPartner {
			stats.Responded++
		}
		for _, m := range conv.Messages {
			if m.Timestamp >= dayStart {
				stats.MessagesToday++
			}
		}
	}
	return stats
}

func (uc *InboxUseCase) appendMessage(conversationID string, message entity.Message) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	for i := range uc.conversations {
		if uc.conversations[i].ID == conversationID {
			uc.conversations[i].Messages = append(uc.conversations[i].Messages, message)
			uc.conversations[i].Status = entity.StatusWaitingForPartner
			return
		}
	}
}

func (uc *InboxUseCase) setDelivery(conversationID, messageID string, state entity.DeliveryState) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	for i := range uc.conversations {
		if uc.conversations[i].ID != conversationID {
			continue
		}
		messages := uc.conversations[i].Messages
		for j := range messages {
			if messages[j].ID == messageID {
				messages[j].Delivery = state
				return
			}
		}
	}
}

func (uc *InboxUseCase) notifyUpdated() {
	if uc.wsManager == nil {
		return
	}
	event, err := json.Marshal(map[string]interface{}{
		"type":  "conversations_updated",
		"stats": uc.Stats(time.Now()),
	})
	if err != nil {
		return
	}
	uc.wsManager.Broadcast(event)
}

func cloneConversation(c *entity.Conversation) entity.Conversation {
	out := *c
	out.Messages = append([]entity.Message(nil), c.Messages...)
	return out
}

func lastTimestamp(c *entity.Conversation) int64 {
	if last := c.LastMessage(); last != nil {
		return last.Timestamp
	}
	return 0
}
