package clients

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Repository defines the interface for client storage
type Repository interface {
	List(ctx context.Context, userID string) ([]ClientProfile, error)
	Create(ctx context.Context, req *CreateClientRequest, userID string) (*ClientProfile, error)
	Update(ctx context.Context, id string, fields *UpdateClientFields) error
	Delete(ctx context.Context, id string) error
}

// InMemoryRepository is an in-memory Repository used in tests and local runs.
type InMemoryRepository struct {
	mu      sync.RWMutex
	clients map[string]*ClientProfile
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		clients: make(map[string]*ClientProfile),
	}
}

// List returns all clients owned by the user.
func (r *InMemoryRepository) List(ctx context.Context, userID string) ([]ClientProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []ClientProfile{}
	for _, c := range r.clients {
		if c.UserID == userID {
			out = append(out, *c)
		}
	}
	return out, nil
}

// Create stores a new client owned by the user.
func (r *InMemoryRepository) Create(ctx context.Context, req *CreateClientRequest, userID string) (*ClientProfile, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	client := &ClientProfile{
		ID:               uuid.New().String(),
		UserID:           userID,
		Name:             req.Name,
		Email:            req.Email,
		Phone:            req.Phone,
		DateOfBirth:      req.DateOfBirth,
		EmergencyContact: req.EmergencyContact,
		Notes:            req.Notes,
		Status:           req.Status,
		Diagnosis:        req.Diagnosis,
		Goals:            req.Goals,
		Insurance:        req.Insurance,
		Preferences:      req.Preferences,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if client.Goals == nil {
		client.Goals = []string{}
	}

	r.mu.Lock()
	r.clients[client.ID] = client
	r.mu.Unlock()

	out := *client
	return &out, nil
}

// Update applies a partial update to a stored client.
func (r *InMemoryRepository) Update(ctx context.Context, id string, fields *UpdateClientFields) error {
	if err := fields.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	client, ok := r.clients[id]
	if !ok {
		return ErrClientNotFound
	}
	fields.Apply(client)
	client.UpdatedAt = time.Now().UTC()
	return nil
}

// Delete removes a client.
func (r *InMemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.clients[id]; !ok {
		return ErrClientNotFound
	}
	delete(r.clients, id)
	return nil
}
