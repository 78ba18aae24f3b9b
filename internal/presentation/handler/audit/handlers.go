package audit

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/driftroom/driftroom/internal/domain"
	"github.com/driftroom/driftroom/internal/infrastructure/json"
)

const (
	defaultLimit = 50
	maxLimit     = 500
)

// Handler serves the operational read side of the room audit log.
// Only mounted when the audit store is configured.
type Handler struct {
	audit  domain.RoomAuditRepository
	logger *zap.SugaredLogger
}

func NewHandler(audit domain.RoomAuditRepository, logger *zap.SugaredLogger) *Handler {
	return &Handler{
		audit:  audit,
		logger: logger,
	}
}

// GetRoomAuditHandler godoc
// @Summary      Room lifecycle history
// @Description  Returns the most recent lifecycle entries for one room, newest first
// @Tags         audit
// @Produce      json
// @Param        roomId path string true "Room ID"
// @Param        limit query int false "Maximum entries (default 50, cap 500)"
// @Success      200 {array} auditEntryResponse "Lifecycle entries"
// @Failure      500 {object} map[string]interface{} "Internal server error"
// @Router       /rooms/{roomId}/audit [get]
func (h *Handler) GetRoomAuditHandler(w http.ResponseWriter, r *http.Request) {
	roomID := chi.URLParam(r, "roomId")
	if roomID == "" {
		json.WriteValidationError(w, errors.New("room ID is missing"))
		return
	}

	limit := defaultLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			json.WriteBadRequestError(w, "limit must be a positive integer")
			return
		}
		if n > maxLimit {
			n = maxLimit
		}
		limit = n
	}

	logs, err := h.audit.GetByRoomID(r.Context(), roomID, limit)
	if err != nil {
		h.logger.Errorw("failed to query room audit log", "room", roomID, "error", err)
		json.WriteInternalError(w, err)
		return
	}

	json.Write(w, http.StatusOK, toResponses(logs))
}

// GetByEventTypeHandler godoc
// @Summary      Lifecycle events by type
// @Description  Returns lifecycle entries of one type within a time window, newest first
// @Tags         audit
// @Produce      json
// @Param        eventType query string true "Event type" Enums(room_created, room_expired, room_drained, member_joined, member_left)
// @Param        from query string false "Window start, RFC3339 (default 24h ago)"
// @Param        to query string false "Window end, RFC3339 (default now)"
// @Success      200 {array} auditEntryResponse "Lifecycle entries"
// @Failure      400 {object} map[string]interface{} "Unknown event type or malformed window"
// @Failure      500 {object} map[string]interface{} "Internal server error"
// @Router       /audit [get]
func (h *Handler) GetByEventTypeHandler(w http.ResponseWriter, r *http.Request) {
	eventType, ok := domain.ParseRoomEventType(r.URL.Query().Get("eventType"))
	if !ok {
		json.WriteBadRequestError(w, "Unknown event type: "+r.URL.Query().Get("eventType"))
		return
	}

	to := time.Now()
	from := to.Add(-24 * time.Hour)

	if raw := r.URL.Query().Get("from"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			json.WriteBadRequestError(w, "from must be RFC3339")
			return
		}
		from = t
	}
	if raw := r.URL.Query().Get("to"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			json.WriteBadRequestError(w, "to must be RFC3339")
			return
		}
		to = t
	}

	logs, err := h.audit.GetByEventType(r.Context(), eventType, from, to)
	if err != nil {
		h.logger.Errorw("failed to query audit log by event type", "event_type", eventType, "error", err)
		json.WriteInternalError(w, err)
		return
	}

	json.Write(w, http.StatusOK, toResponses(logs))
}
