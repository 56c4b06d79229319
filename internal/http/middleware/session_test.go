package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

type fakeSessionStore struct {
	current    string
	restoreAs  string
	restoreErr error
	restored   bool
}

func (f *fakeSessionStore) CurrentUserID() string { return f.current }

func (f *fakeSessionStore) InitializeAuth(ctx context.Context, token string) error {
	f.restored = true
	if f.restoreErr != nil {
		return f.restoreErr
	}
	f.current = f.restoreAs
	return nil
}

func TestSession(t *testing.T) {
	tests := []struct {
		name         string
		store        *fakeSessionStore
		wantStatus   int
		wantRestored bool
	}{
		{
			name:         "signed-out store restored from token",
			store:        &fakeSessionStore{restoreAs: "therapist-1"},
			wantStatus:   http.StatusOK,
			wantRestored: true,
		},
		{
			name:       "store already holds the token owner",
			store:      &fakeSessionStore{current: "therapist-1"},
			wantStatus: http.StatusOK,
		},
		{
			name:       "store holds a different user",
			store:      &fakeSessionStore{current: "therapist-2"},
			wantStatus: http.StatusForbidden,
		},
		{
			name:         "token no longer maps to an account",
			store:        &fakeSessionStore{restoreAs: ""},
			wantStatus:   http.StatusForbidden,
			wantRestored: true,
		},
		{
			name:         "restore fails",
			store:        &fakeSessionStore{restoreErr: errors.New("backend down")},
			wantStatus:   http.StatusInternalServerError,
			wantRestored: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := Auth(stubVerifier{})(Session(tt.store)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			})))

			req := httptest.NewRequest(http.MethodGet, "/api/clients", nil)
			req.Header.Set("Authorization", "Bearer good-token")
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.store.restored != tt.wantRestored {
				t.Errorf("restored = %v, want %v", tt.store.restored, tt.wantRestored)
			}
		})
	}
}

func TestSessionWithoutIdentity(t *testing.T) {
	store := &fakeSessionStore{restoreAs: "therapist-1"}
	handler := Session(store)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/clients", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
	if store.restored {
		t.Error("restore attempted without a verified identity")
	}
}
