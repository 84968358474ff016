package entity

import (
	"time"

	"github.com/google/uuid"
)

// Message senders.
const (
	SenderBot  = "bot"
	SenderUser = "user"
)

// Delivery statuses for user-authored messages. Bot messages carry none.
const (
	StatusSent      = "sent"
	StatusDelivered = "delivered"
	StatusRead      = "read"
)

// ChatMessage is a single entry in a chat session transcript.
type ChatMessage struct {
	ID             string    `json:"id" bson:"id"`
	SessionID      string    `json:"session_id" bson:"session_id"`
	Sender         string    `json:"sender" bson:"sender"`
	Text           string    `json:"text" bson:"text"`
	DeliveryStatus string    `json:"delivery_status,omitempty" bson:"delivery_status,omitempty"`
	CreatedAt      time.Time `json:"created_at" bson:"created_at"`
}

// NewBotMessage creates a bot message. Bot messages have no delivery status.
func NewBotMessage(sessionID, text string) *ChatMessage {
	return &ChatMessage{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		Sender:    SenderBot,
		Text:      text,
		CreatedAt: time.Now(),
	}
}

// NewUserMessage creates a user message in the "sent" state.
func NewUserMessage(sessionID, text string) *ChatMessage {
	return &ChatMessage{
		ID:             uuid.NewString(),
		SessionID:      sessionID,
		Sender:         SenderUser,
		Text:           text,
		DeliveryStatus: StatusSent,
		CreatedAt:      time.Now(),
	}
}

func statusRank(status string) int {
	switch status {
	case StatusSent:
		return 1
	case StatusDelivered:
		return 2
	case StatusRead:
		return 3
	}
	return 0
}

// AdvanceStatus moves the delivery status forward. Moving backwards or
// setting a status on a bot message is refused.
func (m *ChatMessage) AdvanceStatus(status string) bool {
	if m.Sender != SenderUser {
		return false
	}
	if statusRank(status) <= statusRank(m.DeliveryStatus) {
		return false
	}
	m.DeliveryStatus = status
	return true
}
