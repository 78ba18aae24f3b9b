package messaging

import (
	"time"

	"github.com/driftroom/driftroom/internal/domain"
)

const (
	AuditQueue      = "room_audit"
	DeadLetterQueue = "dead_letter_queue"
)

// RoomEventData is the payload carried by every room lifecycle event.
// Counts and timings only; no message content, no member identity.
type RoomEventData struct {
	RoomID      string               `json:"roomId"`
	EventType   domain.RoomEventType `json:"eventType"`
	MemberCount int                  `json:"memberCount,omitempty"`
	TTLSeconds  float64              `json:"ttlSeconds,omitempty"`
	OccurredAt  time.Time            `json:"occurredAt"`
}

func (d RoomEventData) TTL() time.Duration {
	return time.Duration(d.TTLSeconds * float64(time.Second))
}
