package ws

import (
	"encoding/json"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/driftroom/driftroom/internal/infrastructure/metrics"
)

// EventHandler consumes decoded inbound envelopes and disconnects.
// The router implements it.
type EventHandler interface {
	HandleEvent(connID string, in Inbound)
	HandleDisconnect(connID string)
}

type Client struct {
	ID string

	conn    *websocket.Conn
	queue   chan *Event // buffered to avoid dead-locks on slow clients
	hub     *Hub
	handler EventHandler
	logger  *zap.SugaredLogger
}

func NewClient(conn *websocket.Conn, id string, hub *Hub, handler EventHandler, logger *zap.SugaredLogger) *Client {
	return &Client{
		ID:      id,
		conn:    conn,
		queue:   make(chan *Event, 64),
		hub:     hub,
		handler: handler,
		logger:  logger,
	}
}

// ReadPump decodes inbound frames and hands them to the handler, one
// at a time per connection. Exits on read error and tears the client
// down, which the handler observes as an implicit leave.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.Unregister(c.ID)
		c.handler.HandleDisconnect(c.ID)
		_ = c.conn.Close()
	}()

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Warnw("ws read error", "conn", c.ID, "error", err)
			}
			return
		}

		var in Inbound
		if err := json.Unmarshal(raw, &in); err != nil || in.Type == "" {
			c.hub.ToClient(c.ID, NewError("malformed event"))
			continue
		}

		c.handler.HandleEvent(c.ID, in)
	}
}

// WritePump drains the send queue until the hub closes it.
func (c *Client) WritePump() {
	defer func() {
		_ = c.conn.Close()
	}()

	for ev := range c.queue {
		if err := c.conn.WriteJSON(ev); err != nil {
			c.logger.Warnw("ws write error", "conn", c.ID, "error", err)
			return
		}
	}
}

// enqueue never blocks: a full buffer drops the event rather than
// stalling the fan-out on one slow client. Only call while holding the
// hub lock, which serializes against closeQueue.
func (c *Client) enqueue(ev *Event) {
	select {
	case c.queue <- ev:
	default:
		metrics.DroppedSendsTotal.Inc()
	}
}

func (c *Client) closeQueue() {
	close(c.queue)
}
