// Package store holds the application state for a signed-in practitioner:
// the client, session, reminder and document collections plus the current
// user. Mutations go to the persistence backend first and are applied to the
// in-memory collections only on success, so a failed call leaves state
// untouched and the error is returned to the caller.
package store

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/isanahealth/practice-api/internal/auth"
	"github.com/isanahealth/practice-api/internal/clients"
	"github.com/isanahealth/practice-api/internal/documents"
	"github.com/isanahealth/practice-api/internal/observability/metrics"
	"github.com/isanahealth/practice-api/internal/reminders"
	"github.com/isanahealth/practice-api/internal/sessions"
	"github.com/isanahealth/practice-api/pkg/logging"
)

// DocumentBackend is the document half of the persistence backend: metadata
// plus file bytes behind one contract.
type DocumentBackend interface {
	List(ctx context.Context, userID string) ([]documents.Document, error)
	Upload(ctx context.Context, up *documents.Upload, body io.Reader, userID string) (*documents.Document, error)
	Delete(ctx context.Context, id string) error
}

// AuthProvider is the slice of the auth service the store needs.
type AuthProvider interface {
	SignIn(ctx context.Context, email, password string) (*auth.SignInResult, error)
	SignOut(ctx context.Context, userID string)
	CurrentUser(ctx context.Context, token string) (*auth.TherapistUser, error)
}

// Backend groups the per-collection persistence adapters.
type Backend struct {
	Clients   clients.Repository
	Sessions  sessions.Repository
	Reminders reminders.Repository
	Documents DocumentBackend
}

// Store is the app state store. Construct one per process with New; there is
// no package-level instance.
//
// The mutex guards the collections and the current user. Backend calls are
// made outside the lock, so two concurrent actions may interleave at the
// backend; the collections themselves are always consistent with some
// serialization of the successful calls.
type Store struct {
	mu    sync.RWMutex
	user  *auth.TherapistUser
	token string

	clients   []clients.ClientProfile
	sessions  []sessions.Session
	reminders []reminders.Reminder
	documents []documents.Document

	backend Backend
	auth    AuthProvider
	logger  *logging.Logger
	metrics *metrics.StoreMetrics
}

// New creates an empty, signed-out store.
func New(backend Backend, authProvider AuthProvider, logger *logging.Logger) *Store {
	if logger == nil {
		logger = logging.Default()
	}
	return &Store{
		backend:   backend,
		auth:      authProvider,
		logger:    logger,
		clients:   []clients.ClientProfile{},
		sessions:  []sessions.Session{},
		reminders: []reminders.Reminder{},
		documents: []documents.Document{},
	}
}

// WithMetrics attaches action instrumentation. All observe calls are nil-safe,
// so a store without metrics behaves identically.
func (s *Store) WithMetrics(m *metrics.StoreMetrics) *Store {
	s.metrics = m
	return s
}

// requireUser returns the signed-in user's ID or ErrAuthRequired.
func (s *Store) requireUser() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return "", auth.ErrAuthRequired
	}
	return s.user.ID, nil
}

// location returns the signed-in practitioner's timezone, UTC when signed out.
func (s *Store) location() *time.Location {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return time.UTC
	}
	return s.user.Location()
}

// --- clients ---

// AddClient creates a client and appends it to the collection.
func (s *Store) AddClient(ctx context.Context, req *clients.CreateClientRequest) (_ *clients.ClientProfile, err error) {
	defer func() { s.metrics.ObserveAction("client", "add", err) }()

	userID, err := s.requireUser()
	if err != nil {
		return nil, err
	}
	created, err := s.backend.Clients.Create(ctx, req, userID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.clients = append(s.clients, *created)
	s.mu.Unlock()

	s.logger.Info("client added", "id", created.ID)
	out := *created
	return &out, nil
}

// UpdateClient applies a partial update, backend first, then merges the same
// fields into the in-memory record and refreshes its UpdatedAt.
func (s *Store) UpdateClient(ctx context.Context, id string, fields *clients.UpdateClientFields) (_ *clients.ClientProfile, err error) {
	defer func() { s.metrics.ObserveAction("client", "update", err) }()

	if _, err := s.requireUser(); err != nil {
		return nil, err
	}
	if err := s.backend.Clients.Update(ctx, id, fields); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.clients {
		if s.clients[i].ID != id {
			continue
		}
		fields.Apply(&s.clients[i])
		s.clients[i].UpdatedAt = time.Now().UTC()
		out := s.clients[i]
		s.decorateClient(&out)
		return &out, nil
	}
	return nil, clients.ErrClientNotFound
}

// RemoveClient deletes a client. Removing an absent id is a no-op.
func (s *Store) RemoveClient(ctx context.Context, id string) (err error) {
	defer func() { s.metrics.ObserveAction("client", "remove", err) }()

	if _, err := s.requireUser(); err != nil {
		return err
	}
	if err := s.backend.Clients.Delete(ctx, id); err != nil && !errors.Is(err, clients.ErrClientNotFound) {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.clients {
		if s.clients[i].ID == id {
			s.clients = append(s.clients[:i], s.clients[i+1:]...)
			break
		}
	}
	return nil
}

// --- sessions ---

// AddSession creates a session and appends it to the collection.
func (s *Store) AddSession(ctx context.Context, req *sessions.CreateSessionRequest) (_ *sessions.Session, err error) {
	defer func() { s.metrics.ObserveAction("session", "add", err) }()

	userID, err := s.requireUser()
	if err != nil {
		return nil, err
	}
	created, err := s.backend.Sessions.Create(ctx, req, userID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.sessions = append(s.sessions, *created)
	s.mu.Unlock()

	s.logger.Info("session added", "id", created.ID, "client_id", created.ClientID, "date", created.Date)
	out := *created
	return &out, nil
}

// UpdateSession applies a partial update, backend first.
func (s *Store) UpdateSession(ctx context.Context, id string, fields *sessions.UpdateSessionFields) (_ *sessions.Session, err error) {
	defer func() { s.metrics.ObserveAction("session", "update", err) }()

	if _, err := s.requireUser(); err != nil {
		return nil, err
	}
	if err := s.backend.Sessions.Update(ctx, id, fields); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.sessions {
		if s.sessions[i].ID != id {
			continue
		}
		fields.Apply(&s.sessions[i])
		s.sessions[i].UpdatedAt = time.Now().UTC()
		out := s.sessions[i]
		return &out, nil
	}
	return nil, sessions.ErrSessionNotFound
}

// RemoveSession deletes a session. Removing an absent id is a no-op.
func (s *Store) RemoveSession(ctx context.Context, id string) (err error) {
	defer func() { s.metrics.ObserveAction("session", "remove", err) }()

	if _, err := s.requireUser(); err != nil {
		return err
	}
	if err := s.backend.Sessions.Delete(ctx, id); err != nil && !errors.Is(err, sessions.ErrSessionNotFound) {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.sessions {
		if s.sessions[i].ID == id {
			s.sessions = append(s.sessions[:i], s.sessions[i+1:]...)
			break
		}
	}
	return nil
}

// --- reminders ---

// AddReminder creates a reminder and appends it to the collection.
func (s *Store) AddReminder(ctx context.Context, req *reminders.CreateReminderRequest) (_ *reminders.Reminder, err error) {
	defer func() { s.metrics.ObserveAction("reminder", "add", err) }()

	userID, err := s.requireUser()
	if err != nil {
		return nil, err
	}
	created, err := s.backend.Reminders.Create(ctx, req, userID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.reminders = append(s.reminders, *created)
	s.mu.Unlock()

	out := *created
	return &out, nil
}

// UpdateReminder applies a partial update, backend first.
func (s *Store) UpdateReminder(ctx context.Context, id string, fields *reminders.UpdateReminderFields) (_ *reminders.Reminder, err error) {
	defer func() { s.metrics.ObserveAction("reminder", "update", err) }()

	if _, err := s.requireUser(); err != nil {
		return nil, err
	}
	if err := s.backend.Reminders.Update(ctx, id, fields); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.reminders {
		if s.reminders[i].ID != id {
			continue
		}
		fields.Apply(&s.reminders[i])
		s.reminders[i].UpdatedAt = time.Now().UTC()
		out := s.reminders[i]
		return &out, nil
	}
	return nil, reminders.ErrReminderNotFound
}

// RemoveReminder deletes a reminder. Removing an absent id is a no-op.
func (s *Store) RemoveReminder(ctx context.Context, id string) (err error) {
	defer func() { s.metrics.ObserveAction("reminder", "remove", err) }()

	if _, err := s.requireUser(); err != nil {
		return err
	}
	if err := s.backend.Reminders.Delete(ctx, id); err != nil && !errors.Is(err, reminders.ErrReminderNotFound) {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.reminders {
		if s.reminders[i].ID == id {
			s.reminders = append(s.reminders[:i], s.reminders[i+1:]...)
			break
		}
	}
	return nil
}

// --- documents ---

// AddDocument uploads a file and appends its metadata to the collection.
// Documents have no update operation; attachments are add or remove.
func (s *Store) AddDocument(ctx context.Context, up *documents.Upload, body io.Reader) (_ *documents.Document, err error) {
	defer func() { s.metrics.ObserveAction("document", "add", err) }()

	userID, err := s.requireUser()
	if err != nil {
		return nil, err
	}
	created, err := s.backend.Documents.Upload(ctx, up, body, userID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.documents = append(s.documents, *created)
	s.mu.Unlock()

	s.logger.Info("document added", "id", created.ID, "name", created.Name)
	out := *created
	return &out, nil
}

// RemoveDocument deletes a document and its stored file. Removing an absent
// id is a no-op.
func (s *Store) RemoveDocument(ctx context.Context, id string) (err error) {
	defer func() { s.metrics.ObserveAction("document", "remove", err) }()

	if _, err := s.requireUser(); err != nil {
		return err
	}
	if err := s.backend.Documents.Delete(ctx, id); err != nil && !errors.Is(err, documents.ErrDocumentNotFound) {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.documents {
		if s.documents[i].ID == id {
			s.documents = append(s.documents[:i], s.documents[i+1:]...)
			break
		}
	}
	return nil
}
