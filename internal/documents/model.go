package documents

import (
	"strings"
	"time"
)

// Document is metadata for an uploaded file. The bytes live in object
// storage; this record only points at them.
type Document struct {
	ID                   string    `json:"id"`
	UserID               string    `json:"user_id"`
	Name                 string    `json:"name"`
	URL                  string    `json:"url"`
	StorageKey           string    `json:"-"`
	FileType             string    `json:"file_type"`
	FileSize             int64     `json:"file_size"`
	AssociatedClientIDs  []string  `json:"associated_client_ids"`
	AssociatedSessionIDs []string  `json:"associated_session_ids"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// AssociatedWithClient reports whether the document is attached to the client.
func (d *Document) AssociatedWithClient(clientID string) bool {
	for _, id := range d.AssociatedClientIDs {
		if id == clientID {
			return true
		}
	}
	return false
}

// AssociatedWithSession reports whether the document is attached to the session.
func (d *Document) AssociatedWithSession(sessionID string) bool {
	for _, id := range d.AssociatedSessionIDs {
		if id == sessionID {
			return true
		}
	}
	return false
}

// Upload describes an incoming file. Body is consumed once.
type Upload struct {
	Name        string
	ContentType string
	Size        int64
	ClientIDs   []string
	SessionIDs  []string
}

// Validate validates the upload metadata.
func (u *Upload) Validate() error {
	if strings.TrimSpace(u.Name) == "" {
		return ErrMissingName
	}
	if u.Size <= 0 {
		return ErrEmptyFile
	}
	return nil
}
