package uistate

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"

	"github.com/isanahealth/practice-api/internal/http/middleware"
)

type staticVerifier string

func (v staticVerifier) VerifyToken(token string) (string, error) { return string(v), nil }

// serveAs runs the handler func behind the auth middleware so the user id
// lands in the request context the same way it does in production.
func serveAs(t *testing.T, userID string, fn http.HandlerFunc, r *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	r.Header.Set("Authorization", "Bearer test-token")
	w := httptest.NewRecorder()
	middleware.Auth(staticVerifier(userID))(fn).ServeHTTP(w, r)
	return w
}

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewHandler(NewStore(client, time.Hour, otel.Tracer("uistate-test")), nil)
}

func TestGetDefaultState(t *testing.T) {
	h := newTestHandler(t)

	w := serveAs(t, "therapist-1", h.Get, httptest.NewRequest(http.MethodGet, "/ui-state", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	var state State
	if err := json.NewDecoder(w.Body).Decode(&state); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if state.ActiveView != "dashboard" {
		t.Errorf("expected default view dashboard, got %q", state.ActiveView)
	}
}

func TestGetRequiresAuth(t *testing.T) {
	h := newTestHandler(t)

	w := httptest.NewRecorder()
	h.Get(w, httptest.NewRequest(http.MethodGet, "/ui-state", nil))
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
	}
}

func TestUpdateState(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPatch, "/ui-state",
		strings.NewReader(`{"active_view":"clients","selected_client_id":"client-1","dark_mode":true}`))
	w := serveAs(t, "therapist-1", h.Update, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}

	// The change persists across requests.
	w = serveAs(t, "therapist-1", h.Get, httptest.NewRequest(http.MethodGet, "/ui-state", nil))
	var state State
	if err := json.NewDecoder(w.Body).Decode(&state); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if state.ActiveView != "clients" || state.SelectedClientID != "client-1" || !state.DarkMode {
		t.Errorf("unexpected state after update: %+v", state)
	}
}

func TestUpdateStateSelectionExclusive(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPatch, "/ui-state", strings.NewReader(`{"selected_client_id":"client-1"}`))
	if w := serveAs(t, "therapist-1", h.Update, req); w.Code != http.StatusOK {
		t.Fatalf("first patch status = %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodPatch, "/ui-state", strings.NewReader(`{"selected_session_id":"session-5"}`))
	w := serveAs(t, "therapist-1", h.Update, req)
	var state State
	if err := json.NewDecoder(w.Body).Decode(&state); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if state.SelectedClientID != "" || state.SelectedSessionID != "session-5" {
		t.Errorf("expected session selection to clear client, got %+v", state)
	}
}

func TestUpdateState_InvalidJSON(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPatch, "/ui-state", strings.NewReader("{"))
	w := serveAs(t, "therapist-1", h.Update, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
}

func TestClearState(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPatch, "/ui-state", strings.NewReader(`{"active_view":"calendar"}`))
	if w := serveAs(t, "therapist-1", h.Update, req); w.Code != http.StatusOK {
		t.Fatalf("patch status = %d", w.Code)
	}

	if w := serveAs(t, "therapist-1", h.Clear, httptest.NewRequest(http.MethodDelete, "/ui-state", nil)); w.Code != http.StatusNoContent {
		t.Fatalf("expected status %d, got %d", http.StatusNoContent, w.Code)
	}

	w := serveAs(t, "therapist-1", h.Get, httptest.NewRequest(http.MethodGet, "/ui-state", nil))
	var state State
	if err := json.NewDecoder(w.Body).Decode(&state); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if state.ActiveView != "dashboard" {
		t.Errorf("expected defaults after clear, got %+v", state)
	}
}
