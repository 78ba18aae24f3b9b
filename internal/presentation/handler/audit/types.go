package audit

import (
	"time"

	"github.com/driftroom/driftroom/internal/domain"
)

// auditEntryResponse is one lifecycle row, as stored: counts and
// timestamps only.
type auditEntryResponse struct {
	ID        string         `json:"id" example:"6f1d9c2e-0000-4000-8000-000000000000"`
	RoomID    string         `json:"roomId" example:"k7m2x9pq"`
	EventType string         `json:"eventType" example:"room_created" enum:"room_created,room_expired,room_drained,member_joined,member_left"`
	Timestamp time.Time      `json:"timestamp" example:"2024-01-01T12:00:00Z"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

func toResponses(logs []domain.RoomAuditLog) []auditEntryResponse {
	out := make([]auditEntryResponse, 0, len(logs))
	for _, l := range logs {
		out = append(out, auditEntryResponse{
			ID:        l.ID,
			RoomID:    l.RoomID,
			EventType: string(l.EventType),
			Timestamp: l.Timestamp,
			Metadata:  l.Metadata,
		})
	}
	return out
}
