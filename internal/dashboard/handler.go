package dashboard

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/isanahealth/practice-api/internal/auth"
	"github.com/isanahealth/practice-api/internal/http/middleware"
	"github.com/isanahealth/practice-api/pkg/logging"
)

// UserProvider resolves the signed-in practitioner for timezone handling.
type UserProvider interface {
	CurrentUser() *auth.TherapistUser
}

// Handler handles HTTP requests for dashboard stats
type Handler struct {
	repo   *StatsRepository
	users  UserProvider
	logger *logging.Logger
}

// NewHandler creates a new dashboard handler
func NewHandler(repo *StatsRepository, users UserProvider, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{repo: repo, users: users, logger: logger}
}

// GetStats handles GET /dashboard/stats
func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}

	stats, err := h.repo.GetStats(r.Context(), userID, weekStart(h.users.CurrentUser()))
	if err != nil {
		h.logger.Error("failed to load dashboard stats", "error", err)
		http.Error(w, "failed to load dashboard stats", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(stats)
}

// weekStart is the most recent Sunday in the practitioner's timezone.
func weekStart(user *auth.TherapistUser) time.Time {
	now := time.Now().In(user.Location())
	y, m, d := now.AddDate(0, 0, -int(now.Weekday())).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, now.Location())
}
