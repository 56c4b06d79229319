package reminders

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/isanahealth/practice-api/internal/auth"
	"github.com/isanahealth/practice-api/pkg/logging"
)

// Store is the slice of the app state store the reminder handler consumes.
type Store interface {
	Reminders() []Reminder
	ActiveReminders() []Reminder
	OverdueReminders() []Reminder
	AddReminder(ctx context.Context, req *CreateReminderRequest) (*Reminder, error)
	UpdateReminder(ctx context.Context, id string, fields *UpdateReminderFields) (*Reminder, error)
	RemoveReminder(ctx context.Context, id string) error
}

// Handler handles HTTP requests for reminders
type Handler struct {
	store  Store
	logger *logging.Logger
}

// NewHandler creates a new reminders handler
func NewHandler(store Store, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{store: store, logger: logger}
}

// ListRemindersResponse is the response for listing reminders
type ListRemindersResponse struct {
	Reminders []Reminder `json:"reminders"`
	Count     int        `json:"count"`
}

// List handles GET /reminders with optional view=active|overdue.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	var list []Reminder
	switch r.URL.Query().Get("view") {
	case "active":
		list = h.store.ActiveReminders()
	case "overdue":
		list = h.store.OverdueReminders()
	default:
		list = h.store.Reminders()
	}
	writeJSON(w, http.StatusOK, ListRemindersResponse{Reminders: list, Count: len(list)})
}

// Create handles POST /reminders
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateReminderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode request", "error", err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	reminder, err := h.store.AddReminder(r.Context(), &req)
	if err != nil {
		h.writeError(w, "failed to create reminder", err)
		return
	}

	h.logger.Info("reminder created", "id", reminder.ID, "due_date", reminder.DueDate)
	writeJSON(w, http.StatusCreated, reminder)
}

// Update handles PATCH /reminders/{reminderID}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "reminderID")

	var fields UpdateReminderFields
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	reminder, err := h.store.UpdateReminder(r.Context(), id, &fields)
	if err != nil {
		h.writeError(w, "failed to update reminder", err)
		return
	}
	writeJSON(w, http.StatusOK, reminder)
}

// Delete handles DELETE /reminders/{reminderID}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "reminderID")
	if err := h.store.RemoveReminder(r.Context(), id); err != nil {
		h.writeError(w, "failed to delete reminder", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) writeError(w http.ResponseWriter, msg string, err error) {
	switch {
	case errors.Is(err, auth.ErrAuthRequired):
		http.Error(w, err.Error(), http.StatusUnauthorized)
	case errors.Is(err, ErrReminderNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, ErrMissingTitle), errors.Is(err, ErrInvalidDueDate),
		errors.Is(err, ErrInvalidType), errors.Is(err, ErrInvalidPriority):
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
