package store

import (
	"context"
	"fmt"

	"github.com/isanahealth/practice-api/internal/auth"
	"github.com/isanahealth/practice-api/internal/clients"
	"github.com/isanahealth/practice-api/internal/documents"
	"github.com/isanahealth/practice-api/internal/reminders"
	"github.com/isanahealth/practice-api/internal/sessions"
)

// Login signs the practitioner in and loads their collections. On any
// failure the store stays signed out with empty collections.
func (s *Store) Login(ctx context.Context, email, password string) (*auth.SignInResult, error) {
	res, err := s.auth.SignIn(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if err := s.load(ctx, res.User, res.Token); err != nil {
		return nil, err
	}
	s.logger.Info("signed in", "user_id", res.User.ID)
	return res, nil
}

// Logout signs out and clears every collection.
func (s *Store) Logout(ctx context.Context) {
	s.mu.Lock()
	user := s.user
	s.user = nil
	s.token = ""
	s.clients = []clients.ClientProfile{}
	s.sessions = []sessions.Session{}
	s.reminders = []reminders.Reminder{}
	s.documents = []documents.Document{}
	s.mu.Unlock()

	if user != nil {
		s.auth.SignOut(ctx, user.ID)
		s.logger.Info("signed out", "user_id", user.ID)
	}
}

// InitializeAuth restores a previous session from a token. An empty or
// invalid token leaves the store signed out; that is not an error.
func (s *Store) InitializeAuth(ctx context.Context, token string) error {
	user, err := s.auth.CurrentUser(ctx, token)
	if err != nil || user == nil {
		s.Logout(ctx)
		return nil
	}
	if err := s.load(ctx, user, token); err != nil {
		return err
	}
	s.logger.Info("session restored", "user_id", user.ID)
	return nil
}

// Reload refreshes every collection from the backend for the signed-in user.
func (s *Store) Reload(ctx context.Context) error {
	s.mu.RLock()
	user, token := s.user, s.token
	s.mu.RUnlock()
	if user == nil {
		return auth.ErrAuthRequired
	}
	return s.load(ctx, user, token)
}

// load fetches all four collections, then swaps them in under the lock
// together with the user. A partial failure changes nothing.
func (s *Store) load(ctx context.Context, user *auth.TherapistUser, token string) error {
	cl, err := s.backend.Clients.List(ctx, user.ID)
	if err != nil {
		return fmt.Errorf("store: load clients: %w", err)
	}
	se, err := s.backend.Sessions.List(ctx, user.ID)
	if err != nil {
		return fmt.Errorf("store: load sessions: %w", err)
	}
	re, err := s.backend.Reminders.List(ctx, user.ID)
	if err != nil {
		return fmt.Errorf("store: load reminders: %w", err)
	}
	do, err := s.backend.Documents.List(ctx, user.ID)
	if err != nil {
		return fmt.Errorf("store: load documents: %w", err)
	}

	s.mu.Lock()
	s.user = user
	s.token = token
	s.clients = cl
	s.sessions = se
	s.reminders = re
	s.documents = do
	s.mu.Unlock()
	return nil
}

// CurrentUser returns the signed-in practitioner, or nil when signed out.
func (s *Store) CurrentUser() *auth.TherapistUser {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// CurrentUserID returns the signed-in practitioner's id, "" when signed out.
func (s *Store) CurrentUserID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return ""
	}
	return s.user.ID
}

// Token returns the session token the store was signed in with.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}
