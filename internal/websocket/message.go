package websocket

import (
	"encoding/json"
	"time"
)

type MessageType string

const (
	// Server to Client
	MessageTypeWelcome      MessageType = "WELCOME"
	MessageTypeHeroCreated  MessageType = "HERO_CREATED"
	MessageTypeHeroUpdated  MessageType = "HERO_UPDATED"
	MessageTypeHeroDeleted  MessageType = "HERO_DELETED"
	MessageTypeReviewPosted MessageType = "REVIEW_POSTED"
)

type Message struct {
	Type      MessageType     `json:"type"`
	Payload   json.RawMessage `json:"payload"`
	Timestamp int64           `json:"timestamp"`
}

func NewMessage(msgType MessageType, payload interface{}) (*Message, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &Message{
		Type:      msgType,
		Payload:   payloadBytes,
		Timestamp: time.Now().UnixMilli(),
	}, nil
}

type WelcomePayload struct {
	Authenticated bool   `json:"authenticated"`
	DisplayName   string `json:"displayName,omitempty"`
}

type HeroDeletedPayload struct {
	ID uint `json:"id"`
}
