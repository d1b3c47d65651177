package entity

import "time"

type Sender string

const (
	SenderMe      Sender = "me"
	SenderPartner Sender = "partner"
)

type ConversationStatus string

const (
	StatusActive            ConversationStatus = "active"
	StatusWaitingForPartner ConversationStatus = "waiting_for_partner"
	StatusWaitingForMe      ConversationStatus = "waiting_for_me"
)

type DeliveryState string

const (
	// DeliveryPending marks a locally appended message whose send has not
	// resolved yet. Messages fetched from the provider carry no state.
	DeliveryPending DeliveryState = "pending"
	DeliverySent    DeliveryState = "sent"
	DeliveryFailed  DeliveryState = "failed"
)

type Message struct {
	ID        string        `json:"id"`
	Sender    Sender        `json:"sender"`
	Text      string        `json:"text"`
	Timestamp int64         `json:"timestamp"` // epoch millis
	Delivery  DeliveryState `json:"delivery,omitempty"`
}

type Conversation struct {
	ID          string             `json:"id"`
	PartnerID   string             `json:"partner_id,omitempty"` // PSID; empty means sending is blocked
	PartnerName string             `json:"partner_name"`
	AvatarURL   string             `json:"avatar_url"`
	Messages    []Message          `json:"messages"` // chronological, oldest first
	Status      ConversationStatus `json:"status"`
}

// LastMessage returns the chronologically last message, or nil when the
// conversation is empty.
func (c *Conversation) LastMessage() *Message {
	if len(c.Messages) == 0 {
		return nil
	}
	return &c.Messages[len(c.Messages)-1]
}

const OverdueThreshold = 24 * time.Hour

// IsOverdue reports whether the page replied last and has been waiting for
// more than 24 hours.
func (c *Conversation) IsOverdue(now time.Time) bool {
	last := c.LastMessage()
	if last == nil {
		return false
	}
	return last.Sender == SenderMe && now.UnixMilli()-last.Timestamp > OverdueThreshold.Milliseconds()
}

type DashboardStats struct {
	Total         int `json:"total"`
	Overdue       int `json:"overdue"`
	Responded     int `json:"responded"`
	MessagesToday int `json:"messages_today"`
}
