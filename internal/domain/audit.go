package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type RoomEventType string

const (
	AuditRoomCreated  RoomEventType = "room_created"
	AuditRoomExpired  RoomEventType = "room_expired"
	AuditRoomDrained  RoomEventType = "room_drained"
	AuditMemberJoined RoomEventType = "member_joined"
	AuditMemberLeft   RoomEventType = "member_left"
)

// RoomAuditLog records room lifecycle transitions for operational
// visibility. Entries carry counts and timestamps only; message content
// and member identity are never written.
type RoomAuditLog struct {
	ID        string         `bson:"_id" json:"id"`
	RoomID    string         `bson:"room_id" json:"roomId"`
	EventType RoomEventType  `bson:"event_type" json:"eventType"`
	Timestamp time.Time      `bson:"timestamp" json:"timestamp"`
	Metadata  map[string]any `bson:"metadata,omitempty" json:"metadata,omitempty"`
}

// RoomAuditRepository stores and queries lifecycle entries. Retention
// is the TTL index armed by EnsureIndexes; there is no manual sweep.
type RoomAuditRepository interface {
	Log(ctx context.Context, log *RoomAuditLog) error
	GetByRoomID(ctx context.Context, roomID string, limit int) ([]RoomAuditLog, error)
	GetByEventType(ctx context.Context, eventType RoomEventType, from, to time.Time) ([]RoomAuditLog, error)
	EnsureIndexes(ctx context.Context) error
}

// ParseRoomEventType validates a query-supplied event type.
func ParseRoomEventType(s string) (RoomEventType, bool) {
	switch RoomEventType(s) {
	case AuditRoomCreated, AuditRoomExpired, AuditRoomDrained, AuditMemberJoined, AuditMemberLeft:
		return RoomEventType(s), true
	default:
		return "", false
	}
}

func NewRoomCreatedLog(roomID string, ttl time.Duration) *RoomAuditLog {
	return &RoomAuditLog{
		ID:        uuid.NewString(),
		RoomID:    roomID,
		EventType: AuditRoomCreated,
		Timestamp: time.Now(),
		Metadata: map[string]any{
			"ttl_seconds": ttl.Seconds(),
		},
	}
}

func NewRoomExpiredLog(roomID string, memberCount int) *RoomAuditLog {
	return &RoomAuditLog{
		ID:        uuid.NewString(),
		RoomID:    roomID,
		EventType: AuditRoomExpired,
		Timestamp: time.Now(),
		Metadata: map[string]any{
			"member_count": memberCount,
		},
	}
}

func NewRoomDrainedLog(roomID string) *RoomAuditLog {
	return &RoomAuditLog{
		ID:        uuid.NewString(),
		RoomID:    roomID,
		EventType: AuditRoomDrained,
		Timestamp: time.Now(),
	}
}

func NewMemberJoinedLog(roomID string, memberCount int) *RoomAuditLog {
	return &RoomAuditLog{
		ID:        uuid.NewString(),
		RoomID:    roomID,
		EventType: AuditMemberJoined,
		Timestamp: time.Now(),
		Metadata: map[string]any{
			"member_count": memberCount,
		},
	}
}

func NewMemberLeftLog(roomID string, memberCount int) *RoomAuditLog {
	return &RoomAuditLog{
		ID:        uuid.NewString(),
		RoomID:    roomID,
		EventType: AuditMemberLeft,
		Timestamp: time.Now(),
		Metadata: map[string]any{
			"member_count": memberCount,
		},
	}
}
