package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/isanahealth/practice-api/internal/http/middleware"
	"github.com/isanahealth/practice-api/pkg/logging"
)

// SessionStore is the slice of the app state store the auth handler drives:
// signing in loads the practitioner's data, signing out clears it.
type SessionStore interface {
	Login(ctx context.Context, email, password string) (*SignInResult, error)
	Logout(ctx context.Context)
	CurrentUser() *TherapistUser
}

// Handler handles HTTP requests for authentication
type Handler struct {
	store   SessionStore
	service *Service
	logger  *logging.Logger
}

// NewHandler creates a new auth handler
func NewHandler(store SessionStore, service *Service, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{store: store, service: service, logger: logger}
}

// SignInRequest is the payload for signing in
type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignIn handles POST /auth/sign-in
func (h *Handler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req SignInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	res, err := h.store.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		}
		h.logger.Error("sign-in failed", "error", err)
		http.Error(w, "sign-in failed", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// SignOut handles POST /auth/sign-out
func (h *Handler) SignOut(w http.ResponseWriter, r *http.Request) {
	h.store.Logout(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

// Me handles GET /auth/me
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	user := h.store.CurrentUser()
	if user == nil {
		http.Error(w, ErrAuthRequired.Error(), http.StatusUnauthorized)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// ResetPasswordRequest is the payload for requesting a password reset
type ResetPasswordRequest struct {
	Email string `json:"email"`
}

// ResetPassword handles POST /auth/reset-password. Always responds 202; the
// response never reveals whether the account exists.
func (h *Handler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.service.ResetPassword(r.Context(), req.Email); err != nil {
		h.logger.Error("password reset failed", "error", err)
		http.Error(w, "password reset failed", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

// CompleteResetRequest is the payload for completing a password reset
type CompleteResetRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

// CompleteReset handles POST /auth/reset-password/complete
func (h *Handler) CompleteReset(w http.ResponseWriter, r *http.Request) {
	var req CompleteResetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.service.CompletePasswordReset(r.Context(), req.Token, req.NewPassword); err != nil {
		if errors.Is(err, ErrInvalidToken) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		h.logger.Error("password reset completion failed", "error", err)
		http.Error(w, "password reset completion failed", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ChangePasswordRequest is the payload for changing the password
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// ChangePassword handles POST /auth/change-password
func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, ErrAuthRequired.Error(), http.StatusUnauthorized)
		return
	}

	var req ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.service.ChangePassword(r.Context(), userID, req.CurrentPassword, req.NewPassword); err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			http.Error(w, err.Error(), http.StatusForbidden)
			return
		}
		h.logger.Error("password change failed", "error", err)
		http.Error(w, "password change failed", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
