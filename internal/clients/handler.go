package clients

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/isanahealth/practice-api/internal/auth"
	"github.com/isanahealth/practice-api/pkg/logging"
)

// Store is the slice of the app state store the client handler consumes.
type Store interface {
	Clients() []ClientProfile
	ClientByID(id string) (*ClientProfile, bool)
	AddClient(ctx context.Context, req *CreateClientRequest) (*ClientProfile, error)
	UpdateClient(ctx context.Context, id string, fields *UpdateClientFields) (*ClientProfile, error)
	RemoveClient(ctx context.Context, id string) error
}

// Handler handles HTTP requests for clients
type Handler struct {
	store  Store
	logger *logging.Logger
}

// NewHandler creates a new clients handler
func NewHandler(store Store, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{store: store, logger: logger}
}

// ListClientsResponse is the response for listing clients
type ListClientsResponse struct {
	Clients []ClientProfile `json:"clients"`
	Count   int             `json:"count"`
}

// List handles GET /clients with optional status/search/sort query params.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	all := h.store.Clients()

	if status := r.URL.Query().Get("status"); status != "" {
		filtered := all[:0:0]
		for _, c := range all {
			if c.Status == Status(status) {
				filtered = append(filtered, c)
			}
		}
		all = filtered
	}

	if search := strings.ToLower(r.URL.Query().Get("search")); search != "" {
		filtered := all[:0:0]
		for _, c := range all {
			if strings.Contains(strings.ToLower(c.Name), search) ||
				strings.Contains(strings.ToLower(c.Email), search) {
				filtered = append(filtered, c)
			}
		}
		all = filtered
	}

	sortBy := r.URL.Query().Get("sort_by")
	desc := r.URL.Query().Get("sort_order") == "desc"
	sortClients(all, sortBy, desc)

	writeJSON(w, http.StatusOK, ListClientsResponse{Clients: all, Count: len(all)})
}

// Get handles GET /clients/{clientID}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "clientID")
	client, ok := h.store.ClientByID(id)
	if !ok {
		http.Error(w, "client not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, client)
}

// Create handles POST /clients
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode request", "error", err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	client, err := h.store.AddClient(r.Context(), &req)
	if err != nil {
		h.writeError(w, "failed to create client", err)
		return
	}

	h.logger.Info("client created", "id", client.ID, "name", client.Name)
	writeJSON(w, http.StatusCreated, client)
}

// Update handles PATCH /clients/{clientID}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "clientID")

	var fields UpdateClientFields
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	client, err := h.store.UpdateClient(r.Context(), id, &fields)
	if err != nil {
		h.writeError(w, "failed to update client", err)
		return
	}
	writeJSON(w, http.StatusOK, client)
}

// Delete handles DELETE /clients/{clientID}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "clientID")
	if err := h.store.RemoveClient(r.Context(), id); err != nil {
		h.writeError(w, "failed to delete client", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) writeError(w http.ResponseWriter, msg string, err error) {
	switch {
	case errors.Is(err, auth.ErrAuthRequired):
		http.Error(w, err.Error(), http.StatusUnauthorized)
	case errors.Is(err, ErrClientNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, ErrInvalidName), errors.Is(err, ErrMissingContact),
		errors.Is(err, ErrInvalidStatus), errors.Is(err, ErrInvalidPreference):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		h.logger.Error(msg, "error", err)
		http.Error(w, msg, http.StatusInternalServerError)
	}
}

func sortClients(list []ClientProfile, sortBy string, desc bool) {
	less := func(i, j int) bool { return list[i].Name < list[j].Name }
	switch sortBy {
	case "created_at":
		less = func(i, j int) bool { return list[i].CreatedAt.Before(list[j].CreatedAt) }
	case "total_sessions":
		less = func(i, j int) bool { return list[i].TotalSessions < list[j].TotalSessions }
	case "last_session":
		less = func(i, j int) bool { return list[i].LastSession < list[j].LastSession }
	}
	if desc {
		inner := less
		less = func(i, j int) bool { return inner(j, i) }
	}
	sort.SliceStable(list, less)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
