package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLastMessage(t *testing.T) {
	empty := Conversation{ID: "c1"}
	assert.Nil(t, empty.LastMessage())

	conv := Conversation{Messages: []Message{
		{ID: "m1", Timestamp: 1},
		{ID: "m2", Timestamp: 2},
	}}
	assert.Equal(t, "m2", conv.LastMessage().ID)
}

func TestIsOverdue(t *testing.T) {
	now := time.Now()

	cases := []struct {
		name string
		conv Conversation
		want bool
	}{
		{
			name: "page waited more than a day",
			conv: Conversation{Messages: []Message{
				{Sender: SenderMe, Timestamp: now.Add(-25 * time.Hour).UnixMilli()},
			}},
			want: true,
		},
		{
			name: "page waited less than a day",
			conv: Conversation{Messages: []Message{
				{Sender: SenderMe, Timestamp: now.Add(-23 * time.Hour).UnixMilli()},
			}},
			want: false,
		},
		{
			name: "partner spoke last, the ball is in our court",
			conv: Conversation{Messages: []Message{
				{Sender: SenderPartner, Timestamp: now.Add(-48 * time.Hour).UnixMilli()},
			}},
			want: false,
		},
		{
			name: "no messages",
			conv: Conversation{},
			want: false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.conv.IsOverdue(now))
		})
	}
}
