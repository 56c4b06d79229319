package calendar

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/isanahealth/practice-api/internal/http/middleware"
	"github.com/isanahealth/practice-api/pkg/logging"
)

// Handler handles HTTP requests for the calendar
type Handler struct {
	service *Service
	logger  *logging.Logger
}

// NewHandler creates a new calendar handler
func NewHandler(service *Service, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{service: service, logger: logger}
}

// ListEventsResponse is the response for listing calendar events
type ListEventsResponse struct {
	Events []Event `json:"events"`
	Count  int     `json:"count"`
}

// ListEvents handles GET /calendar/events?start=YYYY-MM-DD&end=YYYY-MM-DD
func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}

	q := r.URL.Query()
	events, err := h.service.Events(r.Context(), userID, q.Get("start"), q.Get("end"))
	if err != nil {
		h.logger.Error("failed to list events", "error", err)
		http.Error(w, "failed to list events", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, ListEventsResponse{Events: events, Count: len(events)})
}

// CreateEvent handles POST /calendar/events
func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}

	var req CreateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	event, err := h.service.CreateEvent(r.Context(), &req, userID)
	if err != nil {
		h.writeError(w, "failed to create event", err)
		return
	}
	writeJSON(w, http.StatusCreated, event)
}

// UpdateEvent handles PATCH /calendar/events/{eventID}
func (h *Handler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "eventID")

	var fields UpdateEventFields
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.service.UpdateEvent(r.Context(), id, &fields); err != nil {
		h.writeError(w, "failed to update event", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteEvent handles DELETE /calendar/events/{eventID}
func (h *Handler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "eventID")
	if err := h.service.DeleteEvent(r.Context(), id); err != nil {
		h.writeError(w, "failed to delete event", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AvailableSlots handles GET /calendar/slots?date=YYYY-MM-DD&duration=60
func (h *Handler) AvailableSlots(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	date := q.Get("date")
	if date == "" {
		http.Error(w, "date is required", http.StatusBadRequest)
		return
	}

	duration := time.Hour
	if raw := q.Get("duration"); raw != "" {
		minutes, err := strconv.Atoi(raw)
		if err != nil || minutes <= 0 {
			http.Error(w, "duration must be a positive number of minutes", http.StatusBadRequest)
			return
		}
		duration = time.Duration(minutes) * time.Minute
	}

	slots := h.service.AvailableSlots(date, duration)
	writeJSON(w, http.StatusOK, map[string]any{"date": date, "slots": slots})
}

func (h *Handler) writeError(w http.ResponseWriter, msg string, err error) {
	switch {
	case errors.Is(err, ErrEventNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, ErrMissingTitle), errors.Is(err, ErrInvalidTime), errors.Is(err, ErrInvalidType):
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
