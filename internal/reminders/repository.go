package reminders

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Repository defines the interface for reminder storage
type Repository interface {
	List(ctx context.Context, userID string) ([]Reminder, error)
	Create(ctx context.Context, req *CreateReminderRequest, userID string) (*Reminder, error)
	Update(ctx context.Context, id string, fields *UpdateReminderFields) error
	Delete(ctx context.Context, id string) error
}

// InMemoryRepository is an in-memory Repository used in tests and local runs.
type InMemoryRepository struct {
	mu        sync.RWMutex
	reminders map[string]*Reminder
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		reminders: make(map[string]*Reminder),
	}
}

// List returns all reminders owned by the user.
func (r *InMemoryRepository) List(ctx context.Context, userID string) ([]Reminder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []Reminder{}
	for _, rem := range r.reminders {
		if rem.UserID == userID {
			out = append(out, *rem)
		}
	}
	return out, nil
}

// Create stores a new reminder owned by the user.
func (r *InMemoryRepository) Create(ctx context.Context, req *CreateReminderRequest, userID string) (*Reminder, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	reminder := &Reminder{
		ID:          uuid.New().String(),
		UserID:      userID,
		ClientID:    req.ClientID,
		SessionID:   req.SessionID,
		Type:        req.Type,
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		IsCompleted: req.IsCompleted,
		Priority:    req.Priority,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	r.mu.Lock()
	r.reminders[reminder.ID] = reminder
	r.mu.Unlock()

	out := *reminder
	return &out, nil
}

// Update applies a partial update to a stored reminder.
func (r *InMemoryRepository) Update(ctx context.Context, id string, fields *UpdateReminderFields) error {
	if err := fields.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	reminder, ok := r.reminders[id]
	if !ok {
		return ErrReminderNotFound
	}
	fields.Apply(reminder)
	reminder.UpdatedAt = time.Now().UTC()
	return nil
}

// Delete removes a reminder.
func (r *InMemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.reminders[id]; !ok {
		return ErrReminderNotFound
	}
	delete(r.reminders, id)
	return nil
}
