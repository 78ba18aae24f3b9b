package audit

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/driftroom/driftroom/internal/domain"
)

// fakeAuditRepo serves canned entries and records the query it was
// asked to run.
type fakeAuditRepo struct {
	entries []domain.RoomAuditLog

	gotRoomID    string
	gotLimit     int
	gotEventType domain.RoomEventType
	gotFrom      time.Time
	gotTo        time.Time
}

func (f *fakeAuditRepo) Log(ctx context.Context, log *domain.RoomAuditLog) error { return nil }

func (f *fakeAuditRepo) GetByRoomID(ctx context.Context, roomID string, limit int) ([]domain.RoomAuditLog, error) {
	f.gotRoomID = roomID
	f.gotLimit = limit
	return f.entries, nil
}

func (f *fakeAuditRepo) GetByEventType(ctx context.Context, eventType domain.RoomEventType, from, to time.Time) ([]domain.RoomAuditLog, error) {
	f.gotEventType = eventType
	f.gotFrom = from
	f.gotTo = to
	return f.entries, nil
}

func (f *fakeAuditRepo) EnsureIndexes(ctx context.Context) error { return nil }

func auditRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/api/rooms/{roomId}/audit", h.GetRoomAuditHandler)
	r.Get("/api/audit", h.GetByEventTypeHandler)
	return r
}

// TestGetRoomAudit checks the per-room history read: query forwarded
// with the default limit, rows rendered as stored.
func TestGetRoomAudit(t *testing.T) {
	repo := &fakeAuditRepo{entries: []domain.RoomAuditLog{
		{ID: "log-1", RoomID: "k7mq2x4a", EventType: domain.AuditRoomCreated, Timestamp: time.Now()},
		{ID: "log-2", RoomID: "k7mq2x4a", EventType: domain.AuditMemberJoined, Timestamp: time.Now()},
	}}
	mux := auditRouter(NewHandler(repo, zap.NewNop().Sugar()))

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/rooms/k7mq2x4a/audit", nil))

	if want, got := http.StatusOK, rec.Code; want != got {
		t.Fatalf("Invalid status: expected '%d' but got '%d'", want, got)
	}
	if want, got := "k7mq2x4a", repo.gotRoomID; want != got {
		t.Errorf("Invalid queried room: expected '%s' but got '%s'", want, got)
	}
	if want, got := defaultLimit, repo.gotLimit; want != got {
		t.Errorf("Invalid default limit: expected '%d' but got '%d'", want, got)
	}

	var body []auditEntryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("Couldn't decode the response: %+v", err)
	}
	if want, got := 2, len(body); want != got {
		t.Fatalf("Invalid number of entries: expected '%d' but got '%d'", want, got)
	}
	if want, got := "room_created", body[0].EventType; want != got {
		t.Errorf("Invalid first entry type: expected '%s' but got '%s'", want, got)
	}
}

// TestGetRoomAuditLimit checks limit parsing: clamped at the cap,
// rejected when not a positive integer.
func TestGetRoomAuditLimit(t *testing.T) {
	repo := &fakeAuditRepo{}
	mux := auditRouter(NewHandler(repo, zap.NewNop().Sugar()))

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/rooms/k7mq2x4a/audit?limit=9999", nil))
	if want, got := maxLimit, repo.gotLimit; want != got {
		t.Errorf("Limit was not clamped: expected '%d' but got '%d'", want, got)
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/rooms/k7mq2x4a/audit?limit=zero", nil))
	if want, got := http.StatusBadRequest, rec.Code; want != got {
		t.Errorf("A malformed limit was not rejected: expected '%d' but got '%d'", want, got)
	}
}

// TestGetByEventType checks the windowed read: validated type, RFC3339
// window forwarded, unknown types rejected.
func TestGetByEventType(t *testing.T) {
	repo := &fakeAuditRepo{}
	mux := auditRouter(NewHandler(repo, zap.NewNop().Sugar()))

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet,
		"/api/audit?eventType=room_expired&from=2024-01-01T00:00:00Z&to=2024-01-02T00:00:00Z", nil))

	if want, got := http.StatusOK, rec.Code; want != got {
		t.Fatalf("Invalid status: expected '%d' but got '%d'", want, got)
	}
	if want, got := domain.AuditRoomExpired, repo.gotEventType; want != got {
		t.Errorf("Invalid queried type: expected '%s' but got '%s'", want, got)
	}
	wantFrom := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	if !repo.gotFrom.Equal(wantFrom) {
		t.Errorf("Invalid window start: expected '%v' but got '%v'", wantFrom, repo.gotFrom)
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/audit?eventType=room_vaporized", nil))
	if want, got := http.StatusBadRequest, rec.Code; want != got {
		t.Errorf("An unknown event type was not rejected: expected '%d' but got '%d'", want, got)
	}
}
