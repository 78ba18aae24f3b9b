package rooms

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/driftroom/driftroom/internal/infrastructure/json"
	"github.com/driftroom/driftroom/internal/infrastructure/ws"
)

// RoomService is the slice of the registry the HTTP surface needs.
// Joining happens over the websocket event stream, not here.
type RoomService interface {
	Create() (string, time.Duration, error)
	Exists(roomID string) bool
	Info(roomID string) (remaining time.Duration, count int, ok bool)
}

type Handler struct {
	service RoomService
	hub     *ws.Hub
	events  ws.EventHandler
	logger  *zap.SugaredLogger
}

func NewHandler(service RoomService, hub *ws.Hub, events ws.EventHandler, logger *zap.SugaredLogger) *Handler {
	return &Handler{
		service: service,
		hub:     hub,
		events:  events,
		logger:  logger,
	}
}

// CreateRoomHandler godoc
// @Summary      Create a new chat room
// @Description  Allocates an ephemeral room with a server-generated id and arms its expiry countdown
// @Tags         rooms
// @Produce      json
// @Success      201 {object} createRoomResponse "Room created successfully"
// @Failure      500 {object} map[string]interface{} "Internal server error"
// @Router       /rooms [post]
func (h *Handler) CreateRoomHandler(w http.ResponseWriter, r *http.Request) {
	roomID, ttl, err := h.service.Create()
	if err != nil {
		h.logger.Errorw("failed to create room", "error", err)
		json.WriteInternalError(w, err)
		return
	}

	json.Write(w, http.StatusCreated, createRoomResponse{
		RoomID:    roomID,
		ExpiresAt: time.Now().Add(ttl).UTC(),
		ExpiresIn: int64(ttl.Seconds()),
	})
}

// GetRoomHandler godoc
// @Summary      Get room details
// @Description  Returns the remaining lifetime and member count of a live room
// @Tags         rooms
// @Produce      json
// @Param        roomId path string true "Room ID"
// @Success      200 {object} roomInfoResponse "Room details"
// @Failure      404 {object} map[string]interface{} "Room not found or expired"
// @Router       /rooms/{roomId} [get]
func (h *Handler) GetRoomHandler(w http.ResponseWriter, r *http.Request) {
	roomID := chi.URLParam(r, "roomId")
	if roomID == "" {
		json.WriteValidationError(w, errors.New("room ID is missing"))
		return
	}

	remaining, count, ok := h.service.Info(roomID)
	if !ok {
		json.WriteNotFoundError(w, "Room not found")
		return
	}

	json.Write(w, http.StatusOK, roomInfoResponse{
		RoomID:    roomID,
		ExpiresIn: int64(remaining.Seconds()),
		UserCount: count,
	})
}

// ExistsHandler godoc
// @Summary      Check whether a room exists
// @Description  Used by the app shell to decide whether a direct room URL should render the app or redirect home
// @Tags         rooms
// @Produce      json
// @Param        roomId path string true "Room ID"
// @Success      200 {object} existsResponse "Existence flag"
// @Router       /rooms/{roomId}/exists [get]
func (h *Handler) ExistsHandler(w http.ResponseWriter, r *http.Request) {
	roomID := chi.URLParam(r, "roomId")

	json.Write(w, http.StatusOK, existsResponse{
		Exists: roomID != "" && h.service.Exists(roomID),
	})
}

// AttachHandler godoc
// @Summary      Attach a realtime connection
// @Description  Upgrades to a websocket; the client then drives room create/join/chat/typing over the event stream
// @Tags         rooms
// @Success      101 {object} map[string]interface{} "Switching Protocols"
// @Router       /ws [get]
func (h *Handler) AttachHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := h.hub.Upgrade(w, r)
	if err != nil {
		h.logger.Warnw("websocket upgrade failed", "error", err)
		return
	}

	client := ws.NewClient(conn, uuid.NewString(), h.hub, h.events, h.logger)
	h.hub.Register(client)

	go client.WritePump()
	go client.ReadPump()
}
