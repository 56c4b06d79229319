package documents

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Repository persists document metadata. The file bytes themselves are
// handled by the FileStore.
type Repository interface {
	// List returns all document metadata owned by the user.
	List(ctx context.Context, userID string) ([]Document, error)
	// Create inserts metadata for an uploaded file.
	Create(ctx context.Context, doc *Document) error
	// Get returns a single document or ErrDocumentNotFound.
	Get(ctx context.Context, id string) (*Document, error)
	// Delete removes metadata. Returns ErrDocumentNotFound when absent.
	Delete(ctx context.Context, id string) error
}

// InMemoryRepository is a map-backed Repository for tests.
type InMemoryRepository struct {
	mu   sync.RWMutex
	docs map[string]Document
}

// NewInMemoryRepository creates an empty in-memory repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{docs: make(map[string]Document)}
}

// List returns all documents owned by the user.
func (r *InMemoryRepository) List(ctx context.Context, userID string) ([]Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []Document{}
	for _, d := range r.docs {
		if d.UserID == userID {
			out = append(out, d)
		}
	}
	return out, nil
}

// Create stores the metadata, assigning an ID when missing.
func (r *InMemoryRepository) Create(ctx context.Context, doc *Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if doc.ID == "" {
		doc.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	doc.CreatedAt = now
	doc.UpdatedAt = now
	r.docs[doc.ID] = *doc
	return nil
}

// Get returns a document by ID.
func (r *InMemoryRepository) Get(ctx context.Context, id string) (*Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.docs[id]
	if !ok {
		return nil, ErrDocumentNotFound
	}
	return &d, nil
}

// Delete removes a document by ID.
func (r *InMemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.docs[id]; !ok {
		return ErrDocumentNotFound
	}
	delete(r.docs, id)
	return nil
}
