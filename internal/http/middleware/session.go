package middleware

import (
	"context"
	"net/http"
)

// SessionStore is the slice of the app state store the session guard needs.
type SessionStore interface {
	CurrentUserID() string
	InitializeAuth(ctx context.Context, token string) error
}

// Session keeps the app state store aligned with the verified request
// identity. A signed-out store is rehydrated from the presented bearer token,
// so a restart does not turn valid tokens into empty collections. A token
// belonging to a different practitioner than the one loaded is rejected
// instead of being served that practitioner's data.
func Session(store SessionStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := UserIDFromContext(r.Context())
			if !ok || userID == "" {
				http.Error(w, "authentication required", http.StatusUnauthorized)
				return
			}
			if store.CurrentUserID() == "" {
				token, _ := TokenFromContext(r.Context())
				if err := store.InitializeAuth(r.Context(), token); err != nil {
					http.Error(w, "failed to restore session", http.StatusInternalServerError)
					return
				}
			}
			if store.CurrentUserID() != userID {
				http.Error(w, "session belongs to another user", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
