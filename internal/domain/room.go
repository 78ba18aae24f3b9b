package domain

import (
	"crypto/rand"
	"errors"
	"math/big"
	"strings"
	"time"
)

const (
	roomIDLength = 8

	// Excludes 0/O, 1/I/l and similar so ids survive being read aloud
	// or retyped from a shared URL.
	roomIDChars = "abcdefghjkmnpqrstuvwxyz23456789"
)

var (
	charsetLen = big.NewInt(int64(len(roomIDChars)))

	ErrRoomNotFound   = errors.New("room not found")
	ErrRoomIDTaken    = errors.New("room id already in use")
	ErrNotInRoom      = errors.New("not in a room")
	ErrEmptyMessage   = errors.New("message has no text or media")
	ErrBadMediaType   = errors.New("unsupported media type")
	ErrIDSpaceExhaust = errors.New("could not generate a free room id")
)

// Room is a time-bounded, anonymous group-chat channel. The registry
// exclusively owns every Room; other components hold only its id.
type Room struct {
	ID             string
	CreatedAt      time.Time
	ExpiryDeadline time.Time

	// WarningFired and Expired guard the two terminal lifecycle events
	// so each fires at most once, even if a timer races a teardown.
	WarningFired bool
	Expired      bool

	members map[string]struct{}
}

func NewRoom(id string, now time.Time, ttl time.Duration) *Room {
	return &Room{
		ID:             id,
		CreatedAt:      now,
		ExpiryDeadline: now.Add(ttl),
		members:        make(map[string]struct{}),
	}
}

// AddMember reports whether the connection was newly added.
func (r *Room) AddMember(connID string) bool {
	if _, ok := r.members[connID]; ok {
		return false
	}
	r.members[connID] = struct{}{}
	return true
}

// RemoveMember reports whether the connection was a member.
func (r *Room) RemoveMember(connID string) bool {
	if _, ok := r.members[connID]; !ok {
		return false
	}
	delete(r.members, connID)
	return true
}

func (r *Room) HasMember(connID string) bool {
	_, ok := r.members[connID]
	return ok
}

func (r *Room) MemberCount() int {
	return len(r.members)
}

func (r *Room) MemberIDs() []string {
	ids := make([]string, 0, len(r.members))
	for id := range r.members {
		ids = append(ids, id)
	}
	return ids
}

// Remaining is the time left until expiry, clamped at zero. Activity
// never extends the deadline.
func (r *Room) Remaining(now time.Time) time.Duration {
	left := r.ExpiryDeadline.Sub(now)
	if left < 0 {
		return 0
	}
	return left
}

func NewRoomID() (string, error) {
	var sb strings.Builder
	sb.Grow(roomIDLength)

	for i := 0; i < roomIDLength; i++ {
		n, err := rand.Int(rand.Reader, charsetLen)
		if err != nil {
			return "", err
		}
		sb.WriteByte(roomIDChars[n.Int64()])
	}

	return sb.String(), nil
}
