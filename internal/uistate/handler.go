package uistate

import (
	"encoding/json"
	"net/http"

	"github.com/isanahealth/practice-api/internal/http/middleware"
	"github.com/isanahealth/practice-api/pkg/logging"
)

// Handler exposes navigation state over HTTP. State belongs to the
// authenticated user; there is no cross-user access.
type Handler struct {
	store  *Store
	logger *logging.Logger
}

// NewHandler creates a new UI state handler
func NewHandler(store *Store, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{store: store, logger: logger}
}

// UpdateStateRequest is a partial update; nil fields are left untouched.
type UpdateStateRequest struct {
	ActiveView        *string `json:"active_view,omitempty"`
	SelectedClientID  *string `json:"selected_client_id,omitempty"`
	SelectedSessionID *string `json:"selected_session_id,omitempty"`
	MobileMenuOpen    *bool   `json:"mobile_menu_open,omitempty"`
	DarkMode          *bool   `json:"dark_mode,omitempty"`
}

// Get handles GET /ui-state
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}

	state, err := h.store.Load(r.Context(), userID)
	if err != nil {
		h.logger.Error("failed to load ui state", "error", err)
		http.Error(w, "failed to load ui state", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

// Update handles PATCH /ui-state. Selecting a client clears the selected
// session and vice versa.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}

	var req UpdateStateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	state, err := h.store.Load(r.Context(), userID)
	if err != nil {
		h.logger.Error("failed to load ui state", "error", err)
		http.Error(w, "failed to load ui state", http.StatusInternalServerError)
		return
	}

	if req.ActiveView != nil {
		state.ActiveView = *req.ActiveView
	}
	if req.SelectedClientID != nil {
		state.SelectClient(*req.SelectedClientID)
	}
	if req.SelectedSessionID != nil {
		state.SelectSession(*req.SelectedSessionID)
	}
	if req.MobileMenuOpen != nil {
		state.MobileMenuOpen = *req.MobileMenuOpen
	}
	if req.DarkMode != nil {
		state.DarkMode = *req.DarkMode
	}

	if err := h.store.Save(r.Context(), userID, state); err != nil {
		h.logger.Error("failed to save ui state", "error", err)
		http.Error(w, "failed to save ui state", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

// Clear handles DELETE /ui-state
func (h *Handler) Clear(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}

	if err := h.store.Clear(r.Context(), userID); err != nil {
		h.logger.Error("failed to clear ui state", "error", err)
		http.Error(w, "failed to clear ui state", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
