package sessions

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Repository defines the interface for session storage
type Repository interface {
	List(ctx context.Context, userID string) ([]Session, error)
	Create(ctx context.Context, req *CreateSessionRequest, userID string) (*Session, error)
	Update(ctx context.Context, id string, fields *UpdateSessionFields) error
	Delete(ctx context.Context, id string) error
}

// InMemoryRepository is an in-memory Repository used in tests and local runs.
type InMemoryRepository struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		sessions: make(map[string]*Session),
	}
}

// List returns all sessions owned by the user.
func (r *InMemoryRepository) List(ctx context.Context, userID string) ([]Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []Session{}
	for _, s := range r.sessions {
		if s.UserID == userID {
			out = append(out, *s)
		}
	}
	return out, nil
}

// Create stores a new session owned by the user.
func (r *InMemoryRepository) Create(ctx context.Context, req *CreateSessionRequest, userID string) (*Session, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	session := &Session{
		ID:         uuid.New().String(),
		UserID:     userID,
		ClientID:   req.ClientID,
		ClientName: req.ClientName,
		Date:       req.Date,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		Type:       req.Type,
		Status:     req.Status,
		Objectives: emptyIfNil(req.Objectives),
		Outcomes:   emptyIfNil(req.Outcomes),
		NextSteps:  emptyIfNil(req.NextSteps),
		Mood:       req.Mood,
		Meta:       req.Meta,
		Notes:      req.Notes,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	r.mu.Lock()
	r.sessions[session.ID] = session
	r.mu.Unlock()

	out := *session
	return &out, nil
}

// Update applies a partial update to a stored session.
func (r *InMemoryRepository) Update(ctx context.Context, id string, fields *UpdateSessionFields) error {
	if err := fields.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.sessions[id]
	if !ok {
		return ErrSessionNotFound
	}
	fields.Apply(session)
	session.UpdatedAt = time.Now().UTC()
	return nil
}

// Delete removes a session.
func (r *InMemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(r.sessions, id)
	return nil
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
