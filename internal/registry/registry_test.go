package registry

import (
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/driftroom/driftroom/internal/clock"
	"github.com/driftroom/driftroom/internal/infrastructure/ws"
)

// fakeChannel records every group operation and broadcast so tests can
// assert on what the connection layer was told to do.
type fakeChannel struct {
	mu       sync.Mutex
	attached map[string]map[string]bool // roomID -> connID
	events   map[string][]*ws.Event     // roomID -> broadcasts
}

func newFakeChannel() *fakeChannel {
	return &fakeChannel{
		attached: make(map[string]map[string]bool),
		events:   make(map[string][]*ws.Event),
	}
}

func (c *fakeChannel) Attach(roomID, connID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.attached[roomID] == nil {
		c.attached[roomID] = make(map[string]bool)
	}
	c.attached[roomID][connID] = true
}

func (c *fakeChannel) Detach(roomID, connID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.attached[roomID], connID)
}

func (c *fakeChannel) DetachAll(roomID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.attached, roomID)
}

func (c *fakeChannel) ToRoom(roomID string, ev *ws.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events[roomID] = append(c.events[roomID], ev)
}

func (c *fakeChannel) eventsOfType(roomID, evType string) []*ws.Event {
	c.mu.Lock()
	defer c.mu.Unlock()

	var out []*ws.Event
	for _, ev := range c.events[roomID] {
		if ev.Type == evType {
			out = append(out, ev)
		}
	}
	return out
}

func (c *fakeChannel) lastUserCount(roomID string) (int, bool) {
	counts := c.eventsOfType(roomID, ws.UserCount)
	if len(counts) == 0 {
		return 0, false
	}
	return counts[len(counts)-1].Data.(ws.UserCountPayload).Count, true
}

func newTestRegistry(t *testing.T, cfg Config) (*Registry, *clock.Fake, *fakeChannel) {
	t.Helper()

	fake := clock.NewFake(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	ch := newFakeChannel()
	reg := New(cfg, fake, fake, ch, nil, zap.NewNop().Sugar())
	return reg, fake, ch
}

// TestCreateAndJoin checks the create-then-join happy path: a fresh
// id, the full lifetime returned, membership and group bookkeeping,
// and the user-count broadcast.
func TestCreateAndJoin(t *testing.T) {
	reg, fake, ch := newTestRegistry(t, Config{TTL: time.Hour, WarningWindow: 5 * time.Minute})

	roomID, ttl, err := reg.Create()
	if err != nil {
		t.Fatalf("Couldn't create a room: %+v", err)
	}
	if want, got := 8, len(roomID); want != got {
		t.Errorf("Invalid room id length: expected '%d' but got '%d'", want, got)
	}
	if want, got := time.Hour, ttl; want != got {
		t.Errorf("Invalid ttl: expected '%v' but got '%v'", want, got)
	}
	if !reg.Exists(roomID) {
		t.Error("Created room does not exist")
	}

	// Warning plus expiry timers armed.
	if want, got := 2, fake.Pending(); want != got {
		t.Errorf("Invalid number of pending timers: expected '%d' but got '%d'", want, got)
	}

	fake.Advance(10 * time.Minute)

	remaining, ok := reg.Join("conn-1", roomID)
	if !ok {
		t.Fatal("Couldn't join a live room")
	}
	if want, got := 50*time.Minute, remaining; want != got {
		t.Errorf("Invalid remaining on join: expected '%v' but got '%v'", want, got)
	}
	if !ch.attached[roomID]["conn-1"] {
		t.Error("Joining did not attach the connection to the room group")
	}
	if count, ok := ch.lastUserCount(roomID); !ok || count != 1 {
		t.Errorf("Invalid user-count broadcast after join: got '%d' (present: %v)", count, ok)
	}

	if got, ok := reg.RoomOf("conn-1"); !ok || got != roomID {
		t.Errorf("Invalid RoomOf: expected '%s' but got '%s' (present: %v)", roomID, got, ok)
	}

	// Re-joining the same room is a no-op, not a double count.
	reg.Join("conn-1", roomID)
	if remaining, count, ok := reg.Info(roomID); !ok || count != 1 || remaining != 50*time.Minute {
		t.Errorf("Invalid Info after duplicate join: remaining '%v', count '%d', ok '%v'", remaining, count, ok)
	}
}

// TestJoinUnknownRoom checks that joining never creates: an unknown id
// is a plain not-found.
func TestJoinUnknownRoom(t *testing.T) {
	reg, _, _ := newTestRegistry(t, Config{TTL: time.Hour})

	if _, ok := reg.Join("conn-1", "nosuchrm"); ok {
		t.Error("Joining an unknown room succeeded")
	}
	if reg.Exists("nosuchrm") {
		t.Error("Joining an unknown room created it")
	}
}

// TestLeaveCountsDown checks member-count broadcasts on leave and that
// leaving is idempotent.
func TestLeaveCountsDown(t *testing.T) {
	reg, _, ch := newTestRegistry(t, Config{TTL: time.Hour})

	roomID, _, _ := reg.Create()
	reg.Join("conn-1", roomID)
	reg.Join("conn-2", roomID)

	if count, _ := ch.lastUserCount(roomID); count != 2 {
		t.Errorf("Invalid user count after two joins: expected '2' but got '%d'", count)
	}

	reg.Leave("conn-1", roomID)
	if count, _ := ch.lastUserCount(roomID); count != 1 {
		t.Errorf("Invalid user count after leave: expected '1' but got '%d'", count)
	}

	// Leaving again must change nothing.
	before := len(ch.eventsOfType(roomID, ws.UserCount))
	reg.Leave("conn-1", roomID)
	after := len(ch.eventsOfType(roomID, ws.UserCount))
	if before != after {
		t.Error("A repeated leave broadcast another user count")
	}

	if _, ok := reg.RoomOf("conn-1"); ok {
		t.Error("RoomOf still maps a connection that left")
	}
}

// TestLastLeaveDrainsRoom checks the immediate teardown when the final
// member leaves: room gone, timers cancelled, id free again.
func TestLastLeaveDrainsRoom(t *testing.T) {
	reg, fake, _ := newTestRegistry(t, Config{TTL: time.Hour, WarningWindow: 5 * time.Minute})

	roomID, _, _ := reg.Create()
	reg.Join("conn-1", roomID)
	reg.Leave("conn-1", roomID)

	if reg.Exists(roomID) {
		t.Error("Drained room still exists")
	}
	if want, got := 0, fake.Pending(); want != got {
		t.Errorf("Drained room left timers armed: expected '%d' pending but got '%d'", want, got)
	}

	// The id may be allocated again later; the old timers must not be
	// able to touch the successor.
	fake.Advance(2 * time.Hour)
}

// TestDisconnectIsImplicitLeave checks that a dropped connection
// behaves exactly like an explicit leave.
func TestDisconnectIsImplicitLeave(t *testing.T) {
	reg, _, ch := newTestRegistry(t, Config{TTL: time.Hour})

	roomID, _, _ := reg.Create()
	reg.Join("conn-1", roomID)
	reg.Join("conn-2", roomID)

	reg.Disconnect("conn-1")
	if count, _ := ch.lastUserCount(roomID); count != 1 {
		t.Errorf("Invalid user count after disconnect: expected '1' but got '%d'", count)
	}

	// Disconnecting a connection that was never in a room is a no-op.
	reg.Disconnect("conn-99")
}

// TestSingleRoomPerConnection checks that joining a second room leaves
// the first.
func TestSingleRoomPerConnection(t *testing.T) {
	reg, _, ch := newTestRegistry(t, Config{TTL: time.Hour})

	roomA, _, _ := reg.Create()
	roomB, _, _ := reg.Create()

	reg.Join("conn-1", roomA)
	reg.Join("conn-2", roomA)
	reg.Join("conn-1", roomB)

	if got, _ := reg.RoomOf("conn-1"); got != roomB {
		t.Errorf("Invalid RoomOf after switching rooms: expected '%s' but got '%s'", roomB, got)
	}
	if count, _ := ch.lastUserCount(roomA); count != 1 {
		t.Errorf("Invalid user count in the left room: expected '1' but got '%d'", count)
	}
	if count, _ := ch.lastUserCount(roomB); count != 1 {
		t.Errorf("Invalid user count in the joined room: expected '1' but got '%d'", count)
	}
}

// TestExpiryWarning checks the closing notice: broadcast exactly once,
// at the configured window before the deadline, with the remaining
// seconds.
func TestExpiryWarning(t *testing.T) {
	reg, fake, ch := newTestRegistry(t, Config{TTL: time.Hour, WarningWindow: 5 * time.Minute})

	roomID, _, _ := reg.Create()
	reg.Join("conn-1", roomID)

	fake.Advance(54 * time.Minute)
	if got := ch.eventsOfType(roomID, ws.ExpiryWarning); len(got) != 0 {
		t.Errorf("Warning fired early: got %d warnings", len(got))
	}

	fake.Advance(time.Minute)
	warnings := ch.eventsOfType(roomID, ws.ExpiryWarning)
	if want, got := 1, len(warnings); want != got {
		t.Fatalf("Invalid number of warnings: expected '%d' but got '%d'", want, got)
	}
	if want, got := int64(300), warnings[0].Data.(ws.ExpiryWarningPayload).SecondsLeft; want != got {
		t.Errorf("Invalid seconds left in warning: expected '%d' but got '%d'", want, got)
	}

	// Advancing further inside the window must not repeat it.
	fake.Advance(2 * time.Minute)
	if got := ch.eventsOfType(roomID, ws.ExpiryWarning); len(got) != 1 {
		t.Errorf("Warning repeated: got %d warnings", len(got))
	}
}

// TestExpiryTearsDown checks the hard deadline: terminal notice to the
// whole room, every member detached, the id invalid afterwards.
func TestExpiryTearsDown(t *testing.T) {
	reg, fake, ch := newTestRegistry(t, Config{TTL: time.Hour, WarningWindow: 5 * time.Minute})

	roomID, _, _ := reg.Create()
	reg.Join("conn-1", roomID)
	reg.Join("conn-2", roomID)

	fake.Advance(time.Hour)

	if want, got := 1, len(ch.eventsOfType(roomID, ws.RoomExpired)); want != got {
		t.Fatalf("Invalid number of expiry notices: expected '%d' but got '%d'", want, got)
	}
	if reg.Exists(roomID) {
		t.Error("Expired room still exists")
	}
	if _, ok := reg.RoomOf("conn-1"); ok {
		t.Error("RoomOf still maps a member of an expired room")
	}
	if _, ok := ch.attached[roomID]; ok {
		t.Error("Expired room still has an attached group")
	}

	// Joining after expiry is a plain not-found.
	if _, ok := reg.Join("conn-3", roomID); ok {
		t.Error("Joined a room past its deadline")
	}
}

// TestExpiryOfEmptyRoom checks that a room nobody ever joined still
// expires and disappears on schedule.
func TestExpiryOfEmptyRoom(t *testing.T) {
	reg, fake, _ := newTestRegistry(t, Config{TTL: time.Hour, WarningWindow: 5 * time.Minute})

	roomID, _, _ := reg.Create()

	fake.Advance(time.Hour)
	if reg.Exists(roomID) {
		t.Error("Empty room survived its deadline")
	}
	if want, got := 0, fake.Pending(); want != got {
		t.Errorf("Expired room left timers armed: expected '%d' pending but got '%d'", want, got)
	}
}

// TestRemove checks the forced teardown path used by operational
// tooling: same terminal semantics as a natural expiry.
func TestRemove(t *testing.T) {
	reg, fake, ch := newTestRegistry(t, Config{TTL: time.Hour, WarningWindow: 5 * time.Minute})

	roomID, _, _ := reg.Create()
	reg.Join("conn-1", roomID)

	reg.Remove(roomID)

	if reg.Exists(roomID) {
		t.Error("Removed room still exists")
	}
	if want, got := 1, len(ch.eventsOfType(roomID, ws.RoomExpired)); want != got {
		t.Errorf("Invalid number of terminal notices: expected '%d' but got '%d'", want, got)
	}

	// The cancelled timers firing later must be inert.
	fake.Advance(2 * time.Hour)
	if got := len(ch.eventsOfType(roomID, ws.RoomExpired)); got != 1 {
		t.Errorf("A stale timer re-expired a removed room: got %d notices", got)
	}
}

// recordingSink captures lifecycle notifications in order.
type recordingSink struct {
	mu     sync.Mutex
	trace  []string
	counts []int
}

func (s *recordingSink) record(ev string, count int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trace = append(s.trace, ev)
	s.counts = append(s.counts, count)
}

func (s *recordingSink) RoomCreated(roomID string, ttl time.Duration) { s.record("created", 0) }
func (s *recordingSink) MemberJoined(roomID string, count int)        { s.record("joined", count) }
func (s *recordingSink) MemberLeft(roomID string, count int)          { s.record("left", count) }
func (s *recordingSink) RoomExpired(roomID string, memberCount int)   { s.record("expired", memberCount) }
func (s *recordingSink) RoomDrained(roomID string)                    { s.record("drained", 0) }

// TestEventSinkTrace checks the lifecycle notification order across a
// full create/join/leave/drain cycle.
func TestEventSinkTrace(t *testing.T) {
	fake := clock.NewFake(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	sink := &recordingSink{}
	reg := New(Config{TTL: time.Hour}, fake, fake, newFakeChannel(), sink, zap.NewNop().Sugar())

	roomID, _, _ := reg.Create()
	reg.Join("conn-1", roomID)
	reg.Join("conn-2", roomID)
	reg.Leave("conn-1", roomID)
	reg.Leave("conn-2", roomID)

	want := []string{"created", "joined", "joined", "left", "left", "drained"}
	if len(sink.trace) != len(want) {
		t.Fatalf("Invalid sink trace: expected '%v' but got '%v'", want, sink.trace)
	}
	for i := range want {
		if want[i] != sink.trace[i] {
			t.Fatalf("Invalid sink trace: expected '%v' but got '%v'", want, sink.trace)
		}
	}
}
