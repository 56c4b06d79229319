package documents

import (
	"context"
	"fmt"
	"io"

	"github.com/isanahealth/practice-api/pkg/logging"
)

// Service combines the metadata repository and the object store so callers
// see documents as a single backend.
type Service struct {
	repo     Repository
	files    *FileStore
	maxBytes int64
	logger   *logging.Logger
}

// NewService creates a documents service. maxBytes of zero disables the
// upload size limit.
func NewService(repo Repository, files *FileStore, maxBytes int64, logger *logging.Logger) *Service {
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{repo: repo, files: files, maxBytes: maxBytes, logger: logger}
}

// List returns all document metadata owned by the user.
func (s *Service) List(ctx context.Context, userID string) ([]Document, error) {
	return s.repo.List(ctx, userID)
}

// Upload stores the file bytes and records metadata. The body is read in
// full; callers own closing it.
func (s *Service) Upload(ctx context.Context, up *Upload, body io.Reader, userID string) (*Document, error) {
	if err := up.Validate(); err != nil {
		return nil, err
	}
	if s.maxBytes > 0 && up.Size > s.maxBytes {
		return nil, ErrTooLarge
	}

	key, url, err := s.files.Put(ctx, userID, up.Name, up.ContentType, body, up.Size)
	if err != nil {
		return nil, err
	}

	doc := &Document{
		UserID:               userID,
		Name:                 up.Name,
		URL:                  url,
		StorageKey:           key,
		FileType:             up.ContentType,
		FileSize:             up.Size,
		AssociatedClientIDs:  emptyIfNil(up.ClientIDs),
		AssociatedSessionIDs: emptyIfNil(up.SessionIDs),
	}
	if err := s.repo.Create(ctx, doc); err != nil {
		// The object is orphaned if this cleanup fails; log and move on.
		if delErr := s.files.Delete(ctx, key); delErr != nil {
			s.logger.Error("documents: orphaned object after failed insert", "key", key, "error", delErr)
		}
		return nil, err
	}
	return doc, nil
}

// Delete removes the metadata row and the stored object.
func (s *Service) Delete(ctx context.Context, id string) error {
	doc, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.files.Delete(ctx, doc.StorageKey); err != nil {
		return fmt.Errorf("documents: remove object: %w", err)
	}
	return nil
}

func emptyIfNil(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}
