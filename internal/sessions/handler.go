package sessions

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/isanahealth/practice-api/internal/auth"
	"github.com/isanahealth/practice-api/pkg/logging"
)

// Store is the slice of the app state store the session handler consumes.
type Store interface {
	Sessions() []Session
	SessionByID(id string) (*Session, bool)
	ClientSessions(clientID string) []Session
	UpcomingSessions() []Session
	TodaySessions() []Session
	AddSession(ctx context.Context, req *CreateSessionRequest) (*Session, error)
	UpdateSession(ctx context.Context, id string, fields *UpdateSessionFields) (*Session, error)
	RemoveSession(ctx context.Context, id string) error
}

// Handler handles HTTP requests for sessions
type Handler struct {
	store  Store
	logger *logging.Logger
}

// NewHandler creates a new sessions handler
func NewHandler(store Store, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{store: store, logger: logger}
}

// ListSessionsResponse is the response for listing sessions
type ListSessionsResponse struct {
	Sessions []Session `json:"sessions"`
	Count    int       `json:"count"`
}

// List handles GET /sessions with optional status/client_id/view filters.
// view=upcoming and view=today use the derived selectors.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	var list []Session
	switch r.URL.Query().Get("view") {
	case "upcoming":
		list = h.store.UpcomingSessions()
	case "today":
		list = h.store.TodaySessions()
	default:
		list = h.store.Sessions()
	}

	if clientID := r.URL.Query().Get("client_id"); clientID != "" {
		filtered := list[:0:0]
		for _, s := range list {
			if s.ClientID == clientID {
				filtered = append(filtered, s)
			}
		}
		list = filtered
	}
	if status := r.URL.Query().Get("status"); status != "" {
		filtered := list[:0:0]
		for _, s := range list {
			if s.Status == Status(status) {
				filtered = append(filtered, s)
			}
		}
		list = filtered
	}

	writeJSON(w, http.StatusOK, ListSessionsResponse{Sessions: list, Count: len(list)})
}

// Get handles GET /sessions/{sessionID}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionID")
	session, ok := h.store.SessionByID(id)
	if !ok {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

// Create handles POST /sessions
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode request", "error", err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	session, err := h.store.AddSession(r.Context(), &req)
	if err != nil {
		h.writeError(w, "failed to create session", err)
		return
	}

	h.logger.Info("session created", "id", session.ID, "client_id", session.ClientID, "date", session.Date)
	writeJSON(w, http.StatusCreated, session)
}

// Update handles PATCH /sessions/{sessionID}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionID")

	var fields UpdateSessionFields
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	session, err := h.store.UpdateSession(r.Context(), id, &fields)
	if err != nil {
		h.writeError(w, "failed to update session", err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

// Delete handles DELETE /sessions/{sessionID}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionID")
	if err := h.store.RemoveSession(r.Context(), id); err != nil {
		h.writeError(w, "failed to delete session", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// NotesTemplate handles GET /sessions/notes-template?type=individual
func (h *Handler) NotesTemplate(w http.ResponseWriter, r *http.Request) {
	t := Type(r.URL.Query().Get("type"))
	tmpl, ok := NotesTemplate(t)
	if !ok {
		http.Error(w, "unknown session type", http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, tmpl)
}

// SearchNotes handles GET /sessions/notes/search?q=...
func (h *Handler) SearchNotes(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		http.Error(w, "query parameter q is required", http.StatusBadRequest)
		return
	}
	matches := SearchNotes(h.store.Sessions(), q)
	writeJSON(w, http.StatusOK, map[string]any{"results": matches, "count": len(matches)})
}

func (h *Handler) writeError(w http.ResponseWriter, msg string, err error) {
	switch {
	case errors.Is(err, auth.ErrAuthRequired):
		http.Error(w, err.Error(), http.StatusUnauthorized)
	case errors.Is(err, ErrSessionNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, ErrMissingClient), errors.Is(err, ErrInvalidDate),
		errors.Is(err, ErrInvalidTime), errors.Is(err, ErrInvalidType),
		errors.Is(err, ErrInvalidStatus), errors.Is(err, ErrInvalidMood),
		errors.Is(err, ErrInvalidRiskLevel):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		h.logger.Error(msg, "error", err)
		http.Error(w, msg, http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
