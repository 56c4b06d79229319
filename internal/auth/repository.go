package auth

import (
	"context"
	"sync"
	"time"
)

// Repository defines the interface for practitioner account storage.
type Repository interface {
	GetByEmail(ctx context.Context, email string) (*TherapistUser, string, error)
	GetByID(ctx context.Context, id string) (*TherapistUser, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	SaveResetToken(ctx context.Context, id, token string, expiresAt time.Time) error
	ConsumeResetToken(ctx context.Context, token string) (string, error)
}

// InMemoryRepository is an in-memory Repository used in tests.
type InMemoryRepository struct {
	mu     sync.RWMutex
	users  map[string]*TherapistUser
	hashes map[string]string
	resets map[string]resetEntry
}

type resetEntry struct {
	userID    string
	expiresAt time.Time
}

// NewInMemoryRepository creates an empty in-memory account repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		users:  make(map[string]*TherapistUser),
		hashes: make(map[string]string),
		resets: make(map[string]resetEntry),
	}
}

// Seed registers a user with a pre-computed password hash.
func (r *InMemoryRepository) Seed(user *TherapistUser, passwordHash string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.ID] = user
	r.hashes[user.ID] = passwordHash
}

// GetByEmail returns the user and stored password hash for an email.
func (r *InMemoryRepository) GetByEmail(ctx context.Context, email string) (*TherapistUser, string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Email == email {
			out := *u
			return &out, r.hashes[u.ID], nil
		}
	}
	return nil, "", ErrUserNotFound
}

// GetByID returns the user for an id.
func (r *InMemoryRepository) GetByID(ctx context.Context, id string) (*TherapistUser, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	out := *u
	return &out, nil
}

// UpdatePassword replaces the stored password hash.
func (r *InMemoryRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return ErrUserNotFound
	}
	r.hashes[id] = passwordHash
	return nil
}

// SaveResetToken records a password-reset token for the user.
func (r *InMemoryRepository) SaveResetToken(ctx context.Context, id, token string, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return ErrUserNotFound
	}
	r.resets[token] = resetEntry{userID: id, expiresAt: expiresAt}
	return nil
}

// ConsumeResetToken redeems a reset token, returning the user id.
func (r *InMemoryRepository) ConsumeResetToken(ctx context.Context, token string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.resets[token]
	if !ok || time.Now().After(entry.expiresAt) {
		return "", ErrInvalidToken
	}
	delete(r.resets, token)
	return entry.userID, nil
}
