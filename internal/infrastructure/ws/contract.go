package ws

import (
	"encoding/json"
	"time"

	"github.com/driftroom/driftroom/internal/domain"
)

// Event is the outbound JSON envelope.
type Event struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

// Inbound is the client -> server envelope; Data stays raw until the
// router knows which payload to decode.
type Inbound struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// Payload structs
type JoinRoomPayload struct {
	RoomID string `json:"roomId"`
}

type ChatPayload struct {
	Text      string `json:"text,omitempty"`
	MediaURL  string `json:"mediaUrl,omitempty"`
	MediaType string `json:"mediaType,omitempty"`
}

type RoomPayload struct {
	RoomID    string `json:"roomId"`
	ExpiresIn int64  `json:"expiresIn"` // seconds until expiry
}

type MessagePayload struct {
	SenderLabel     string `json:"senderLabel"`
	Text            string `json:"text,omitempty"`
	MediaURL        string `json:"mediaUrl,omitempty"`
	MediaType       string `json:"mediaType,omitempty"`
	ServerTimestamp string `json:"serverTimestamp"`
}

type UserCountPayload struct {
	Count int `json:"count"`
}

type ExpiryWarningPayload struct {
	SecondsLeft int64 `json:"secondsLeft"`
}

type TypingPayload struct {
	SenderLabel string `json:"senderLabel"`
}

type ErrorPayload struct {
	Reason string `json:"reason"`
}

func NewRoomCreated(roomID string, expiresIn time.Duration) *Event {
	return &Event{
		Type: RoomCreated,
		Data: RoomPayload{RoomID: roomID, ExpiresIn: int64(expiresIn.Seconds())},
	}
}

func NewRoomJoined(roomID string, expiresIn time.Duration) *Event {
	return &Event{
		Type: RoomJoined,
		Data: RoomPayload{RoomID: roomID, ExpiresIn: int64(expiresIn.Seconds())},
	}
}

func NewMessage(label string, m *domain.Message) *Event {
	return &Event{
		Type: MessageEvent,
		Data: MessagePayload{
			SenderLabel:     label,
			Text:            m.Text,
			MediaURL:        m.MediaURL,
			MediaType:       string(m.MediaType),
			ServerTimestamp: m.ServerTimestamp.UTC().Format(time.RFC3339),
		},
	}
}

func NewUserCount(count int) *Event {
	return &Event{Type: UserCount, Data: UserCountPayload{Count: count}}
}

func NewExpiryWarning(left time.Duration) *Event {
	return &Event{
		Type: ExpiryWarning,
		Data: ExpiryWarningPayload{SecondsLeft: int64(left.Seconds())},
	}
}

func NewRoomExpired() *Event {
	return &Event{Type: RoomExpired}
}

func NewTyping(label string) *Event {
	return &Event{Type: TypingEvent, Data: TypingPayload{SenderLabel: label}}
}

func NewError(reason string) *Event {
	return &Event{Type: ErrorEvent, Data: ErrorPayload{Reason: reason}}
}
