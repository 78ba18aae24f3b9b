// Package registry owns the mapping from room id to live room state:
// creation, membership, expiry and teardown. All room-affecting
// operations, including the delayed expiry transitions, serialize on
// one mutex so a join can never race an expiry into a half-joined
// state.
package registry

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/driftroom/driftroom/internal/clock"
	"github.com/driftroom/driftroom/internal/domain"
	"github.com/driftroom/driftroom/internal/infrastructure/metrics"
	"github.com/driftroom/driftroom/internal/infrastructure/ws"
)

const idAttempts = 8

// Channel is the slice of the connection layer the registry drives:
// group bookkeeping plus room-wide notices. Sends are fire-and-forget.
type Channel interface {
	Attach(roomID, connID string)
	Detach(roomID, connID string)
	DetachAll(roomID string)
	ToRoom(roomID string, ev *ws.Event)
}

// EventSink receives room lifecycle notifications (audit/event bus).
// Implementations must not block; a nil sink disables publishing.
type EventSink interface {
	RoomCreated(roomID string, ttl time.Duration)
	MemberJoined(roomID string, count int)
	MemberLeft(roomID string, count int)
	RoomExpired(roomID string, memberCount int)
	RoomDrained(roomID string)
}

type Config struct {
	TTL           time.Duration
	WarningWindow time.Duration
}

type liveRoom struct {
	*domain.Room
	warning clock.Task
	expiry  clock.Task
}

type Registry struct {
	cfg     Config
	clk     clock.Clock
	sched   clock.Scheduler
	channel Channel
	sink    EventSink
	logger  *zap.SugaredLogger

	mu     sync.Mutex
	rooms  map[string]*liveRoom
	byConn map[string]string // connID -> roomID
}

func New(cfg Config, clk clock.Clock, sched clock.Scheduler, channel Channel, sink EventSink, logger *zap.SugaredLogger) *Registry {
	return &Registry{
		cfg:     cfg,
		clk:     clk,
		sched:   sched,
		channel: channel,
		sink:    sink,
		logger:  logger,
		rooms:   make(map[string]*liveRoom),
		byConn:  make(map[string]string),
	}
}

// Create allocates a room with a fresh server-generated id and arms
// its warning and expiry transitions. Rooms only ever come into
// existence here; joining an unknown id is not-found, never an
// implicit create.
func (r *Registry) Create() (string, time.Duration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var id string
	for i := 0; ; i++ {
		candidate, err := domain.NewRoomID()
		if err != nil {
			return "", 0, err
		}
		if _, taken := r.rooms[candidate]; !taken {
			id = candidate
			break
		}
		if i+1 >= idAttempts {
			return "", 0, domain.ErrIDSpaceExhaust
		}
	}

	now := r.clk.Now()
	room := domain.NewRoom(id, now, r.cfg.TTL)
	live := &liveRoom{Room: room}

	if r.cfg.WarningWindow > 0 && r.cfg.WarningWindow < r.cfg.TTL {
		live.warning = r.sched.Schedule(r.cfg.TTL-r.cfg.WarningWindow, func() {
			r.fireWarning(live)
		})
	}
	live.expiry = r.sched.Schedule(r.cfg.TTL, func() {
		r.fireExpiry(live)
	})

	r.rooms[id] = live

	metrics.RoomsCreatedTotal.Inc()
	metrics.RoomsActive.Set(float64(len(r.rooms)))
	r.logger.Infow("room created", "room", id, "expires_at", room.ExpiryDeadline)

	if r.sink != nil {
		r.sink.RoomCreated(id, r.cfg.TTL)
	}

	return id, r.cfg.TTL, nil
}

// Join adds a connection to a room's membership and to its channel
// group, then broadcasts the updated member count to the whole room.
// ok is false iff the room is unknown or already expired; that is the
// normal not-found signal, not an error.
func (r *Registry) Join(connID, roomID string) (time.Duration, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	live, ok := r.rooms[roomID]
	if !ok {
		return 0, false
	}

	// A connection belongs to at most one room at a time.
	if prev, in := r.byConn[connID]; in && prev != roomID {
		r.leaveLocked(connID, prev)
	}

	if live.AddMember(connID) {
		r.byConn[connID] = roomID
		r.channel.Attach(roomID, connID)
		r.channel.ToRoom(roomID, ws.NewUserCount(live.MemberCount()))

		if r.sink != nil {
			r.sink.MemberJoined(roomID, live.MemberCount())
		}
	}

	return live.Remaining(r.clk.Now()), true
}

// Leave is idempotent. When the last member leaves, the room is
// deleted immediately and its pending expiry transitions cancelled.
func (r *Registry) Leave(connID, roomID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.leaveLocked(connID, roomID)
}

// Disconnect is the implicit leave for whatever room, if any, the
// connection currently belongs to.
func (r *Registry) Disconnect(connID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if roomID, ok := r.byConn[connID]; ok {
		r.leaveLocked(connID, roomID)
	}
}

// RoomOf is the routing authority for "which room is this event for".
func (r *Registry) RoomOf(connID string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	roomID, ok := r.byConn[connID]
	return roomID, ok
}

func (r *Registry) Exists(roomID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.rooms[roomID]
	return ok
}

// Info reports a room's remaining lifetime and member count.
func (r *Registry) Info(roomID string) (remaining time.Duration, count int, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	live, found := r.rooms[roomID]
	if !found {
		return 0, 0, false
	}
	return live.Remaining(r.clk.Now()), live.MemberCount(), true
}

// Remove force-tears a room down: terminal notice to the group, every
// member detached, entry deleted. Safe when members are already gone.
func (r *Registry) Remove(roomID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.removeLocked(roomID)
}

func (r *Registry) leaveLocked(connID, roomID string) {
	live, ok := r.rooms[roomID]
	if !ok || !live.RemoveMember(connID) {
		return
	}

	delete(r.byConn, connID)
	r.channel.Detach(roomID, connID)
	r.channel.ToRoom(roomID, ws.NewUserCount(live.MemberCount()))

	if r.sink != nil {
		r.sink.MemberLeft(roomID, live.MemberCount())
	}

	if live.MemberCount() == 0 {
		r.dropLocked(live)
		metrics.RoomsDrainedTotal.Inc()
		r.logger.Infow("room drained", "room", roomID)
		if r.sink != nil {
			r.sink.RoomDrained(roomID)
		}
	}
}

// fireWarning and fireExpiry run on scheduler goroutines. They verify
// the entry still is the room they were armed for: a drained room's id
// may be reused by a later room with its own schedule.
func (r *Registry) fireWarning(live *liveRoom) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.rooms[live.ID] != live || live.WarningFired || live.Expired {
		return
	}
	live.WarningFired = true

	left := live.Remaining(r.clk.Now())
	r.channel.ToRoom(live.ID, ws.NewExpiryWarning(left))
	r.logger.Infow("room expiry warning", "room", live.ID, "seconds_left", int64(left.Seconds()))
}

func (r *Registry) fireExpiry(live *liveRoom) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.rooms[live.ID] != live {
		return
	}
	r.removeLocked(live.ID)
}

func (r *Registry) removeLocked(roomID string) {
	live, ok := r.rooms[roomID]
	if !ok || live.Expired {
		return
	}
	live.Expired = true

	members := live.MemberCount()
	r.channel.ToRoom(roomID, ws.NewRoomExpired())
	for _, connID := range live.MemberIDs() {
		delete(r.byConn, connID)
	}
	r.channel.DetachAll(roomID)
	r.dropLocked(live)

	metrics.RoomsExpiredTotal.Inc()
	r.logger.Infow("room expired", "room", roomID, "members", members)

	if r.sink != nil {
		r.sink.RoomExpired(roomID, members)
	}
}

// dropLocked deletes the registry entry and cancels whatever expiry
// transitions are still pending. Cancelling one that already fired is
// a no-op; the guard flags carry the at-most-once semantics.
func (r *Registry) dropLocked(live *liveRoom) {
	if live.warning != nil {
		live.warning.Cancel()
	}
	if live.expiry != nil {
		live.expiry.Cancel()
	}
	delete(r.rooms, live.ID)
	metrics.RoomsActive.Set(float64(len(r.rooms)))
}
