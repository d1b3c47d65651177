package service

import (
	"time"

	"messengerpulse/internal/domain/entity"
)

// MockConversations returns the fixed demo dataset used when operating on a
// mock credential. Timestamps are derived from now so the overdue math in
// the dashboard behaves the same as with live data.
func MockConversations(now time.Time) []entity.Conversation {
	hoursAgo := func(hours int64) int64 {
		return now.UnixMilli() - hours*time.Hour.Milliseconds()
	}

	return []entity.Conversation{
		{
			ID:          "c1",
			PartnerID:   "mock_p1",
			PartnerName: "Ion Popescu",
			AvatarURL:   "https://picsum.photos/seed/ion/200/200",
			Status:      entity.StatusWaitingForPartner,
			Messages: []entity.Message{
				{ID: "m1", Sender: entity.SenderPartner, Text: "Buna ziua, cat costa serviciul?", Timestamp: hoursAgo(48)},
				{ID: "m2", Sender: entity.SenderMe, Text: "Buna Ion, pretul este de 200 RON.", Timestamp: hoursAgo(47)},
			},
		},
		{
			ID:          "c2",
			PartnerID:   "mock_p2",
			PartnerName: "Maria Ionescu",
			AvatarURL:   "https://picsum.photos/seed/maria/200/200",
			Status:      entity.StatusWaitingForPartner,
			Messages: []entity.Message{
				{ID: "m3", Sender: entity.SenderPartner, Text: "Aveti livrare in Cluj?", Timestamp: hoursAgo(5)},
				{ID: "m4", Sender: entity.SenderMe, Text: "Da, livram oriunde in tara.", Timestamp: hoursAgo(2)},
			},
		},
		{
			ID:          "c3",
			PartnerID:   "mock_p3",
			PartnerName: "Andrei Radu",
			AvatarURL:   "https://picsum.photos/seed/andrei/200/200",
			Status:      entity.StatusWaitingForMe,
			Messages: []entity.Message{
				{ID: "m5", Sender: entity.SenderMe, Text: "Iata detaliile cerute.", Timestamp: hoursAgo(30)},
				{ID: "m6", Sender: entity.SenderPartner, Text: "Multumesc, revin cu un telefon.", Timestamp: hoursAgo(29)},
			},
		},
		{
			ID:          "c4",
			PartnerID:   "mock_p4",
			PartnerName: "Elena Dumitrescu",
			AvatarURL:   "https://picsum.photos/seed/elena/200/200",
			Status:      entity.StatusWaitingForPartner,
			Messages: []entity.Message{
				{ID: "m7", Sender: entity.SenderPartner, Text: "Vreau sa fac o rezervare.", Timestamp: hoursAgo(100)},
				{ID: "m8", Sender: entity.SenderMe, Text: "Sigur, pentru ce data?", Timestamp: hoursAgo(99)},
			},
		},
		{
			ID:          "c5",
			PartnerID:   "mock_p5",
			PartnerName: "George Marin",
			AvatarURL:   "https://picsum.photos/seed/george/200/200",
			Status:      entity.StatusWaitingForPartner,
			Messages: []entity.Message{
				{ID: "m9", Sender: entity.SenderPartner, Text: "Aveti pe stoc?", Timestamp: hoursAgo(26)},
				{ID: "m10", Sender: entity.SenderMe, Text: "Momentan nu, dar aducem saptamana viitoare.", Timestamp: hoursAgo(25)},
			},
		},
	}
}
