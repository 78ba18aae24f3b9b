// Package router is the trust boundary between inbound connection
// events and room state. Every chat/typing event passes a single
// validation gate before any fan-out happens: the registry's answer to
// which room the connection belongs to.
package router

import (
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/driftroom/driftroom/internal/clock"
	"github.com/driftroom/driftroom/internal/domain"
	"github.com/driftroom/driftroom/internal/infrastructure/metrics"
	"github.com/driftroom/driftroom/internal/infrastructure/ws"
)

// Registry is the slice of the room registry the router consumes.
type Registry interface {
	Create() (string, time.Duration, error)
	Join(connID, roomID string) (time.Duration, bool)
	RoomOf(connID string) (string, bool)
	Disconnect(connID string)
}

// Sender delivers events to one client or to a room group; all sends
// are fire-and-forget.
type Sender interface {
	ToClient(connID string, ev *ws.Event)
	ToRoomExcept(roomID, exceptConnID string, ev *ws.Event)
}

type Router struct {
	reg    Registry
	sender Sender
	clk    clock.Clock
	logger *zap.SugaredLogger
}

func New(reg Registry, sender Sender, clk clock.Clock, logger *zap.SugaredLogger) *Router {
	return &Router{
		reg:    reg,
		sender: sender,
		clk:    clk,
		logger: logger,
	}
}

// HandleEvent dispatches one decoded inbound envelope. Failures are
// scoped to the sending connection; nothing here is fatal.
func (rt *Router) HandleEvent(connID string, in ws.Inbound) {
	switch in.Type {
	case ws.CreateRoom:
		rt.handleCreate(connID)
	case ws.JoinRoom:
		rt.handleJoin(connID, in.Data)
	case ws.Chat:
		rt.handleChat(connID, in.Data)
	case ws.Typing:
		rt.handleTyping(connID)
	default:
		rt.sender.ToClient(connID, ws.NewError("unknown event: "+in.Type))
	}
}

// HandleDisconnect treats a dropped connection as an implicit leave.
func (rt *Router) HandleDisconnect(connID string) {
	rt.reg.Disconnect(connID)
}

func (rt *Router) handleCreate(connID string) {
	roomID, ttl, err := rt.reg.Create()
	if err != nil {
		rt.logger.Errorw("room creation failed", "conn", connID, "error", err)
		rt.sender.ToClient(connID, ws.NewError("could not create room"))
		return
	}
	rt.sender.ToClient(connID, ws.NewRoomCreated(roomID, ttl))
}

func (rt *Router) handleJoin(connID string, raw json.RawMessage) {
	var p ws.JoinRoomPayload
	if err := json.Unmarshal(raw, &p); err != nil || p.RoomID == "" {
		rt.sender.ToClient(connID, ws.NewError("join-room requires a roomId"))
		return
	}

	remaining, ok := rt.reg.Join(connID, p.RoomID)
	if !ok {
		rt.sender.ToClient(connID, ws.NewError("room not found"))
		return
	}
	rt.sender.ToClient(connID, ws.NewRoomJoined(p.RoomID, remaining))
}

// handleChat performs the asymmetric dual-send: the sender gets an
// echo under the reserved self marker, everyone else gets the same
// payload under the sender's anonymized label. The router, not the
// client, decides which copy each recipient sees.
func (rt *Router) handleChat(connID string, raw json.RawMessage) {
	roomID, ok := rt.reg.RoomOf(connID)
	if !ok {
		rt.sender.ToClient(connID, ws.NewError("not in a room"))
		return
	}

	var p ws.ChatPayload
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &p); err != nil {
			rt.sender.ToClient(connID, ws.NewError("malformed chat payload"))
			return
		}
	}

	msg, err := domain.NewMessage(connID, p.Text, p.MediaURL, p.MediaType, rt.clk.Now())
	if err != nil {
		rt.sender.ToClient(connID, ws.NewError(err.Error()))
		return
	}

	metrics.MessagesTotal.WithLabelValues("chat").Inc()

	rt.sender.ToClient(connID, ws.NewMessage(domain.SelfLabel, msg))
	rt.sender.ToRoomExcept(roomID, connID, ws.NewMessage(domain.AnonLabel(connID), msg))
}

func (rt *Router) handleTyping(connID string) {
	roomID, ok := rt.reg.RoomOf(connID)
	if !ok {
		rt.sender.ToClient(connID, ws.NewError("not in a room"))
		return
	}

	metrics.MessagesTotal.WithLabelValues("typing").Inc()

	// Never echoed to the sender.
	rt.sender.ToRoomExcept(roomID, connID, ws.NewTyping(domain.AnonLabel(connID)))
}
