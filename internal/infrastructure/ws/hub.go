package ws

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/driftroom/driftroom/internal/infrastructure/metrics"
)

// Hub owns every live client and the named groups (one per room) used
// for fan-out. It is the process-local implementation of the
// connection channel: sends enqueue onto per-client buffers and never
// block on a slow peer.
type Hub struct {
	upgrader websocket.Upgrader

	mu      sync.RWMutex
	clients map[string]*Client
	groups  map[string]map[string]*Client
}

func NewHub(allowedOrigins []string) *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
		clients: make(map[string]*Client),
		groups:  make(map[string]map[string]*Client),
	}
}

func originChecker(allowed []string) func(r *http.Request) bool {
	for _, o := range allowed {
		if o == "*" {
			return func(*http.Request) bool { return true }
		}
	}
	set := make(map[string]struct{}, len(allowed))
	for _, o := range allowed {
		set[o] = struct{}{}
	}
	return func(r *http.Request) bool {
		_, ok := set[r.Header.Get("Origin")]
		return ok
	}
}

func (h *Hub) Upgrade(w http.ResponseWriter, r *http.Request) (*websocket.Conn, error) {
	return h.upgrader.Upgrade(w, r, nil)
}

func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	h.clients[c.ID] = c
	h.mu.Unlock()

	metrics.ConnectionsActive.Inc()
}

// Unregister removes the client from every group and closes its send
// queue. Idempotent: a second call for the same id is a no-op.
func (h *Hub) Unregister(connID string) {
	h.mu.Lock()
	c, ok := h.clients[connID]
	if ok {
		delete(h.clients, connID)
		for group, members := range h.groups {
			if _, in := members[connID]; in {
				delete(members, connID)
				if len(members) == 0 {
					delete(h.groups, group)
				}
			}
		}
		c.closeQueue()
	}
	h.mu.Unlock()

	if ok {
		metrics.ConnectionsActive.Dec()
	}
}

func (h *Hub) Attach(roomID, connID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	c, ok := h.clients[connID]
	if !ok {
		return
	}
	members := h.groups[roomID]
	if members == nil {
		members = make(map[string]*Client)
		h.groups[roomID] = members
	}
	members[connID] = c
}

func (h *Hub) Detach(roomID, connID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	members, ok := h.groups[roomID]
	if !ok {
		return
	}
	delete(members, connID)
	if len(members) == 0 {
		delete(h.groups, roomID)
	}
}

func (h *Hub) DetachAll(roomID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.groups, roomID)
}

// Sends hold the write lock so each fan-out is atomic: two broadcasts
// to the same room can never interleave their enqueues, and every
// member dequeues them in the same order. enqueue never blocks, so the
// exclusive section stays short.

func (h *Hub) ToClient(connID string, ev *Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if c, ok := h.clients[connID]; ok {
		c.enqueue(ev)
	}
}

func (h *Hub) ToRoom(roomID string, ev *Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	members := h.groups[roomID]
	metrics.FanoutRecipients.Observe(float64(len(members)))
	for _, c := range members {
		c.enqueue(ev)
	}
}

func (h *Hub) ToRoomExcept(roomID, exceptConnID string, ev *Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	members := h.groups[roomID]
	n := 0
	for id, c := range members {
		if id == exceptConnID {
			continue
		}
		c.enqueue(ev)
		n++
	}
	metrics.FanoutRecipients.Observe(float64(n))
}

// GroupSize reports how many connections a room group holds.
func (h *Hub) GroupSize(roomID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.groups[roomID])
}
