package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/isanahealth/practice-api/internal/auth"
)

// fakeStore mimics the app state store's client slice: validation happens on
// mutation and lookups return copies.
type fakeStore struct {
	clients []ClientProfile
	err     error
}

func (f *fakeStore) Clients() []ClientProfile {
	out := make([]ClientProfile, len(f.clients))
	copy(out, f.clients)
	return out
}

func (f *fakeStore) ClientByID(id string) (*ClientProfile, bool) {
	for i := range f.clients {
		if f.clients[i].ID == id {
			c := f.clients[i]
			return &c, true
		}
	}
	return nil, false
}

func (f *fakeStore) AddClient(_ context.Context, req *CreateClientRequest) (*ClientProfile, error) {
	if f.err != nil {
		return nil, f.err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	c := ClientProfile{
		ID:        fmt.Sprintf("client-%d", len(f.clients)+1),
		Name:      req.Name,
		Email:     req.Email,
		Status:    req.Status,
		CreatedAt: time.Now(),
	}
	f.clients = append(f.clients, c)
	return &c, nil
}

func (f *fakeStore) UpdateClient(_ context.Context, id string, fields *UpdateClientFields) (*ClientProfile, error) {
	if f.err != nil {
		return nil, f.err
	}
	if err := fields.Validate(); err != nil {
		return nil, err
	}
	for i := range f.clients {
		if f.clients[i].ID == id {
			fields.Apply(&f.clients[i])
			c := f.clients[i]
			return &c, nil
		}
	}
	return nil, ErrClientNotFound
}

func (f *fakeStore) RemoveClient(_ context.Context, id string) error {
	if f.err != nil {
		return f.err
	}
	for i := range f.clients {
		if f.clients[i].ID == id {
			f.clients = append(f.clients[:i], f.clients[i+1:]...)
			return nil
		}
	}
	return nil
}

func seededStore() *fakeStore {
	return &fakeStore{clients: []ClientProfile{
		{ID: "client-1", Name: "Jamie Doe", Email: "jamie@example.com", Status: StatusActive, TotalSessions: 4},
		{ID: "client-2", Name: "Alex Reyes", Email: "alex@example.com", Status: StatusInactive, TotalSessions: 1},
	}}
}

// withURLParam injects a chi route parameter so handlers can be called
// without a full router.
func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestListClients(t *testing.T) {
	handler := NewHandler(seededStore(), nil)

	req := httptest.NewRequest(http.MethodGet, "/clients", nil)
	w := httptest.NewRecorder()
	handler.List(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	var resp ListClientsResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Count != 2 {
		t.Errorf("expected count 2, got %d", resp.Count)
	}
	// Default sort is by name ascending.
	if resp.Clients[0].Name != "Alex Reyes" {
		t.Errorf("expected Alex Reyes first, got %s", resp.Clients[0].Name)
	}
}

func TestListClients_StatusFilter(t *testing.T) {
	handler := NewHandler(seededStore(), nil)

	req := httptest.NewRequest(http.MethodGet, "/clients?status=active", nil)
	w := httptest.NewRecorder()
	handler.List(w, req)

	var resp ListClientsResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Count != 1 || resp.Clients[0].ID != "client-1" {
		t.Errorf("expected only client-1, got %+v", resp.Clients)
	}
}

func TestListClients_Search(t *testing.T) {
	handler := NewHandler(seededStore(), nil)

	req := httptest.NewRequest(http.MethodGet, "/clients?search=alex", nil)
	w := httptest.NewRecorder()
	handler.List(w, req)

	var resp ListClientsResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Count != 1 || resp.Clients[0].Name != "Alex Reyes" {
		t.Errorf("expected search to match Alex Reyes, got %+v", resp.Clients)
	}
}

func TestListClients_SortByTotalSessionsDesc(t *testing.T) {
	handler := NewHandler(seededStore(), nil)

	req := httptest.NewRequest(http.MethodGet, "/clients?sort_by=total_sessions&sort_order=desc", nil)
	w := httptest.NewRecorder()
	handler.List(w, req)

	var resp ListClientsResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Clients[0].ID != "client-1" {
		t.Errorf("expected client-1 (4 sessions) first, got %s", resp.Clients[0].ID)
	}
}

func TestGetClient(t *testing.T) {
	handler := NewHandler(seededStore(), nil)

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/clients/client-1", nil), "clientID", "client-1")
	w := httptest.NewRecorder()
	handler.Get(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	var got ClientProfile
	if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if got.Name != "Jamie Doe" {
		t.Errorf("expected Jamie Doe, got %s", got.Name)
	}
}

func TestGetClient_NotFound(t *testing.T) {
	handler := NewHandler(seededStore(), nil)

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/clients/nope", nil), "clientID", "nope")
	w := httptest.NewRecorder()
	handler.Get(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected status %d, got %d", http.StatusNotFound, w.Code)
	}
}

func TestCreateClient(t *testing.T) {
	store := seededStore()
	handler := NewHandler(store, nil)

	body, _ := json.Marshal(CreateClientRequest{
		Name:   "Morgan Lee",
		Email:  "morgan@example.com",
		Status: StatusActive,
	})
	req := httptest.NewRequest(http.MethodPost, "/clients", bytes.NewReader(body))
	w := httptest.NewRecorder()
	handler.Create(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d: %s", http.StatusCreated, w.Code, w.Body.String())
	}
	var got ClientProfile
	if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if got.Name != "Morgan Lee" {
		t.Errorf("expected Morgan Lee, got %s", got.Name)
	}
	if len(store.clients) != 3 {
		t.Errorf("expected 3 clients in store, got %d", len(store.clients))
	}
}

func TestCreateClient_MissingName(t *testing.T) {
	handler := NewHandler(seededStore(), nil)

	body, _ := json.Marshal(CreateClientRequest{Email: "x@example.com", Status: StatusActive})
	req := httptest.NewRequest(http.MethodPost, "/clients", bytes.NewReader(body))
	w := httptest.NewRecorder()
	handler.Create(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
}

func TestCreateClient_InvalidJSON(t *testing.T) {
	handler := NewHandler(seededStore(), nil)

	req := httptest.NewRequest(http.MethodPost, "/clients", strings.NewReader("{"))
	w := httptest.NewRecorder()
	handler.Create(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
}

func TestCreateClient_AuthRequired(t *testing.T) {
	handler := NewHandler(&fakeStore{err: auth.ErrAuthRequired}, nil)

	body, _ := json.Marshal(CreateClientRequest{Name: "Morgan Lee", Email: "m@example.com", Status: StatusActive})
	req := httptest.NewRequest(http.MethodPost, "/clients", bytes.NewReader(body))
	w := httptest.NewRecorder()
	handler.Create(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
	}
}

func TestCreateClient_BackendError(t *testing.T) {
	handler := NewHandler(&fakeStore{err: errors.New("boom")}, nil)

	body, _ := json.Marshal(CreateClientRequest{Name: "Morgan Lee", Email: "m@example.com", Status: StatusActive})
	req := httptest.NewRequest(http.MethodPost, "/clients", bytes.NewReader(body))
	w := httptest.NewRecorder()
	handler.Create(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected status %d, got %d", http.StatusInternalServerError, w.Code)
	}
}

func TestUpdateClient(t *testing.T) {
	store := seededStore()
	handler := NewHandler(store, nil)

	status := StatusCompleted
	body, _ := json.Marshal(UpdateClientFields{Status: &status})
	req := withURLParam(httptest.NewRequest(http.MethodPatch, "/clients/client-1", bytes.NewReader(body)), "clientID", "client-1")
	w := httptest.NewRecorder()
	handler.Update(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}
	var got ClientProfile
	if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if got.Status != StatusCompleted {
		t.Errorf("expected status completed, got %s", got.Status)
	}
}

func TestUpdateClient_NotFound(t *testing.T) {
	handler := NewHandler(seededStore(), nil)

	name := "New Name"
	body, _ := json.Marshal(UpdateClientFields{Name: &name})
	req := withURLParam(httptest.NewRequest(http.MethodPatch, "/clients/nope", bytes.NewReader(body)), "clientID", "nope")
	w := httptest.NewRecorder()
	handler.Update(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected status %d, got %d", http.StatusNotFound, w.Code)
	}
}

func TestDeleteClient(t *testing.T) {
	store := seededStore()
	handler := NewHandler(store, nil)

	req := withURLParam(httptest.NewRequest(http.MethodDelete, "/clients/client-1", nil), "clientID", "client-1")
	w := httptest.NewRecorder()
	handler.Delete(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("expected status %d, got %d", http.StatusNoContent, w.Code)
	}
	if len(store.clients) != 1 {
		t.Errorf("expected 1 client left, got %d", len(store.clients))
	}
}
