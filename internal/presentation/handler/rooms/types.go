package rooms

import "time"

// createRoomResponse is returned after allocating a room
type createRoomResponse struct {
	RoomID    string    `json:"roomId" example:"k7m2x9pq"`                // Server-generated room identifier
	ExpiresAt time.Time `json:"expiresAt" example:"2024-01-01T12:00:00Z"` // Moment the room is torn down
	ExpiresIn int64     `json:"expiresIn" example:"43200"`                // Seconds until expiry
}

// roomInfoResponse describes a live room
type roomInfoResponse struct {
	RoomID    string `json:"roomId" example:"k7m2x9pq"` // Room identifier
	ExpiresIn int64  `json:"expiresIn" example:"41230"` // Seconds until expiry
	UserCount int    `json:"userCount" example:"3"`     // Members currently joined
}

// existsResponse answers the shell's page-gate check
type existsResponse struct {
	Exists bool `json:"exists" example:"true"` // Whether the room is live
}
