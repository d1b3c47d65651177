package service

// Wire types for the Graph API conversation endpoints. Provider responses
// are decoded into these at the boundary; untyped maps never leave this
// package.

type GraphError struct {
	Message   string `json:"message"`
	Type      string `json:"type,omitempty"`
	Code      int    `json:"code"`
	Subcode   int    `json:"error_subcode,omitempty"`
	FBTraceID string `json:"fbtrace_id,omitempty"`
}

type PageDetails struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Participant struct {
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

type ParticipantList struct {
	Data []Participant `json:"data"`
}

// ThreadMessage is one raw message inside a thread. The provider returns
// them most-recent-first.
type ThreadMessage struct {
	ID          string           `json:"id"`
	Message     string           `json:"message"`
	CreatedTime string           `json:"created_time"`
	From        *Participant     `json:"from,omitempty"`
	To          *ParticipantList `json:"to,omitempty"`
}

type ThreadMessageList struct {
	Data []ThreadMessage `json:"data"`
}

type Thread struct {
	ID           string            `json:"id"`
	UpdatedTime  string            `json:"updated_time,omitempty"`
	Participants ParticipantList   `json:"participants"`
	Messages     ThreadMessageList `json:"messages"`
}

type Paging struct {
	Next string `json:"next,omitempty"`
}

type pageDetailsResponse struct {
	ID    string      `json:"id"`
	Name  string      `json:"name"`
	Error *GraphError `json:"error,omitempty"`
}

type conversationListResponse struct {
	Data   []Thread    `json:"data"`
	Paging *Paging     `json:"paging,omitempty"`
	Error  *GraphError `json:"error,omitempty"`
}

type idRef struct {
	ID string `json:"id"`
}

type textRef struct {
	Text string `json:"text"`
}

type sendMessageRequest struct {
	Recipient     idRef   `json:"recipient"`
	Message       textRef `json:"message"`
	MessagingType string  `json:"messaging_type"`
}

type sendMessageResponse struct {
	RecipientID string      `json:"recipient_id,omitempty"`
	MessageID   string      `json:"message_id,omitempty"`
	Error       *GraphError `json:"error,omitempty"`
}
