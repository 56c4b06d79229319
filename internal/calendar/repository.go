package calendar

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Repository persists user-created (non-session) calendar events.
type Repository interface {
	List(ctx context.Context, userID string) ([]Event, error)
	Create(ctx context.Context, req *CreateEventRequest, userID string) (*Event, error)
	Update(ctx context.Context, id string, fields *UpdateEventFields) error
	Delete(ctx context.Context, id string) error
}

// InMemoryRepository is a map-backed Repository for tests.
type InMemoryRepository struct {
	mu     sync.RWMutex
	events map[string]Event
}

// NewInMemoryRepository creates an empty in-memory repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{events: make(map[string]Event)}
}

// List returns all stored events owned by the user.
func (r *InMemoryRepository) List(ctx context.Context, userID string) ([]Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []Event{}
	for _, e := range r.events {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

// Create stores a new event.
func (r *InMemoryRepository) Create(ctx context.Context, req *CreateEventRequest, userID string) (*Event, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	event := Event{
		ID:        uuid.New().String(),
		UserID:    userID,
		Title:     req.Title,
		Start:     req.Start,
		End:       req.End,
		Type:      req.Type,
		Color:     req.Color,
		Editable:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	r.events[event.ID] = event
	out := event
	return &out, nil
}

// Update applies only the provided fields.
func (r *InMemoryRepository) Update(ctx context.Context, id string, fields *UpdateEventFields) error {
	if err := fields.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	event, ok := r.events[id]
	if !ok {
		return ErrEventNotFound
	}
	fields.Apply(&event)
	event.UpdatedAt = time.Now().UTC()
	r.events[id] = event
	return nil
}

// Delete removes an event.
func (r *InMemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.events[id]; !ok {
		return ErrEventNotFound
	}
	delete(r.events, id)
	return nil
}
