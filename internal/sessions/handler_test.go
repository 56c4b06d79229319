package sessions

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
)

// fakeStore mimics the app state store's session slice. The upcoming/today
// views are precomputed by the tests since selector logic is covered in the
// store package.
type fakeStore struct {
	sessions []Session
	upcoming []Session
	today    []Session
	err      error
}

func (f *fakeStore) Sessions() []Session {
	out := make([]Session, len(f.sessions))
	copy(out, f.sessions)
	return out
}

func (f *fakeStore) SessionByID(id string) (*Session, bool) {
	for i := range f.sessions {
		if f.sessions[i].ID == id {
			s := f.sessions[i]
			return &s, true
		}
	}
	return nil, false
}

func (f *fakeStore) ClientSessions(clientID string) []Session {
	out := []Session{}
	for _, s := range f.sessions {
		if s.ClientID == clientID {
			out = append(out, s)
		}
	}
	return out
}

func (f *fakeStore) UpcomingSessions() []Session { return f.upcoming }
func (f *fakeStore) TodaySessions() []Session    { return f.today }

func (f *fakeStore) AddSession(_ context.Context, req *CreateSessionRequest) (*Session, error) {
	if f.err != nil {
		return nil, f.err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	s := Session{
		ID:        fmt.Sprintf("session-%d", len(f.sessions)+1),
		ClientID:  req.ClientID,
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Type:      req.Type,
		Status:    req.Status,
	}
	f.sessions = append(f.sessions, s)
	return &s, nil
}

func (f *fakeStore) UpdateSession(_ context.Context, id string, fields *UpdateSessionFields) (*Session, error) {
	if f.err != nil {
		return nil, f.err
	}
	if err := fields.Validate(); err != nil {
		return nil, err
	}
	for i := range f.sessions {
		if f.sessions[i].ID == id {
			fields.Apply(&f.sessions[i])
			s := f.sessions[i]
			return &s, nil
		}
	}
	return nil, ErrSessionNotFound
}

func (f *fakeStore) RemoveSession(_ context.Context, id string) error {
	if f.err != nil {
		return f.err
	}
	for i := range f.sessions {
		if f.sessions[i].ID == id {
			f.sessions = append(f.sessions[:i], f.sessions[i+1:]...)
			return nil
		}
	}
	return nil
}

func seededStore() *fakeStore {
	s1 := Session{ID: "session-1", ClientID: "client-1", Date: "2026-09-02", StartTime: "10:00", Status: StatusScheduled, Type: TypeIndividual}
	s2 := Session{ID: "session-2", ClientID: "client-2", Date: "2026-09-01", StartTime: "14:00", Status: StatusCompleted, Type: TypeIntake,
		Notes: &Notes{PresentingConcerns: "Sleep disruption and anxiety", PrivateNotes: "follow up on medication"}}
	return &fakeStore{
		sessions: []Session{s1, s2},
		upcoming: []Session{s1},
		today:    []Session{s2},
	}
}

func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestListSessions(t *testing.T) {
	handler := NewHandler(seededStore(), nil)

	req := httptest.NewRequest(http.MethodGet, "/sessions", nil)
	w := httptest.NewRecorder()
	handler.List(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	var resp ListSessionsResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Count != 2 {
		t.Errorf("expected count 2, got %d", resp.Count)
	}
}

func TestListSessions_UpcomingView(t *testing.T) {
	handler := NewHandler(seededStore(), nil)

	req := httptest.NewRequest(http.MethodGet, "/sessions?view=upcoming", nil)
	w := httptest.NewRecorder()
	handler.List(w, req)

	var resp ListSessionsResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Count != 1 || resp.Sessions[0].ID != "session-1" {
		t.Errorf("expected only session-1, got %+v", resp.Sessions)
	}
}

func TestListSessions_ClientFilter(t *testing.T) {
	handler := NewHandler(seededStore(), nil)

	req := httptest.NewRequest(http.MethodGet, "/sessions?client_id=client-2", nil)
	w := httptest.NewRecorder()
	handler.List(w, req)

	var resp ListSessionsResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Count != 1 || resp.Sessions[0].ID != "session-2" {
		t.Errorf("expected only session-2, got %+v", resp.Sessions)
	}
}

func TestGetSession_NotFound(t *testing.T) {
	handler := NewHandler(seededStore(), nil)

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/sessions/nope", nil), "sessionID", "nope")
	w := httptest.NewRecorder()
	handler.Get(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected status %d, got %d", http.StatusNotFound, w.Code)
	}
}

func TestCreateSession(t *testing.T) {
	store := seededStore()
	handler := NewHandler(store, nil)

	body, _ := json.Marshal(CreateSessionRequest{
		ClientID:  "client-1",
		Date:      "2026-09-10",
		StartTime: "10:00",
		EndTime:   "10:50",
		Type:      TypeIndividual,
	})
	req := httptest.NewRequest(http.MethodPost, "/sessions", bytes.NewReader(body))
	w := httptest.NewRecorder()
	handler.Create(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d: %s", http.StatusCreated, w.Code, w.Body.String())
	}
	var got Session
	if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if got.Status != StatusScheduled {
		t.Errorf("expected status to default to scheduled, got %s", got.Status)
	}
}

func TestCreateSession_Invalid(t *testing.T) {
	tests := []struct {
		name string
		req  CreateSessionRequest
	}{
		{"missing client", CreateSessionRequest{Date: "2026-09-10", StartTime: "10:00", EndTime: "11:00", Type: TypeIndividual}},
		{"bad date", CreateSessionRequest{ClientID: "client-1", Date: "09/10/2026", StartTime: "10:00", EndTime: "11:00", Type: TypeIndividual}},
		{"bad time", CreateSessionRequest{ClientID: "client-1", Date: "2026-09-10", StartTime: "10am", EndTime: "11:00", Type: TypeIndividual}},
		{"bad type", CreateSessionRequest{ClientID: "client-1", Date: "2026-09-10", StartTime: "10:00", EndTime: "11:00", Type: "walk-in"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewHandler(seededStore(), nil)
			body, _ := json.Marshal(tt.req)
			req := httptest.NewRequest(http.MethodPost, "/sessions", bytes.NewReader(body))
			w := httptest.NewRecorder()
			handler.Create(w, req)

			if w.Code != http.StatusBadRequest {
				t.Errorf("expected status %d, got %d", http.StatusBadRequest, w.Code)
			}
		})
	}
}

func TestUpdateSession(t *testing.T) {
	handler := NewHandler(seededStore(), nil)

	status := StatusCompleted
	mood := MoodGood
	body, _ := json.Marshal(UpdateSessionFields{Status: &status, Mood: &mood})
	req := withURLParam(httptest.NewRequest(http.MethodPatch, "/sessions/session-1", bytes.NewReader(body)), "sessionID", "session-1")
	w := httptest.NewRecorder()
	handler.Update(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}
	var got Session
	if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if got.Status != StatusCompleted || got.Mood != MoodGood {
		t.Errorf("expected completed/good, got %s/%s", got.Status, got.Mood)
	}
}

func TestDeleteSession(t *testing.T) {
	store := seededStore()
	handler := NewHandler(store, nil)

	req := withURLParam(httptest.NewRequest(http.MethodDelete, "/sessions/session-1", nil), "sessionID", "session-1")
	w := httptest.NewRecorder()
	handler.Delete(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("expected status %d, got %d", http.StatusNoContent, w.Code)
	}
	if len(store.sessions) != 1 {
		t.Errorf("expected 1 session left, got %d", len(store.sessions))
	}
}

func TestNotesTemplateEndpoint(t *testing.T) {
	handler := NewHandler(seededStore(), nil)

	req := httptest.NewRequest(http.MethodGet, "/sessions/notes/template?type=intake", nil)
	w := httptest.NewRecorder()
	handler.NotesTemplate(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	var tmpl Notes
	if err := json.NewDecoder(w.Body).Decode(&tmpl); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if tmpl.PresentingConcerns != "Initial assessment and intake" {
		t.Errorf("unexpected intake template: %+v", tmpl)
	}
}

func TestNotesTemplateEndpoint_UnknownType(t *testing.T) {
	handler := NewHandler(seededStore(), nil)

	req := httptest.NewRequest(http.MethodGet, "/sessions/notes/template?type=walk-in", nil)
	w := httptest.NewRecorder()
	handler.NotesTemplate(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
}

func TestSearchNotesEndpoint(t *testing.T) {
	handler := NewHandler(seededStore(), nil)

	req := httptest.NewRequest(http.MethodGet, "/sessions/notes/search?q=anxiety", nil)
	w := httptest.NewRecorder()
	handler.SearchNotes(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	var resp struct {
		Results []NoteMatch `json:"results"`
		Count   int         `json:"count"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Count != 1 || resp.Results[0].SessionID != "session-2" {
		t.Errorf("expected session-2 to match, got %+v", resp.Results)
	}
}

func TestSearchNotesEndpoint_MissingQuery(t *testing.T) {
	handler := NewHandler(seededStore(), nil)

	req := httptest.NewRequest(http.MethodGet, "/sessions/notes/search", nil)
	w := httptest.NewRecorder()
	handler.SearchNotes(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
}
