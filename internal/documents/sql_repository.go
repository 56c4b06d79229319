package documents

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const documentColumns = `id, user_id, name, url, storage_key, file_type, file_size,
	associated_client_ids, associated_session_ids, created_at, updated_at`

// SQLRepository stores document metadata via database/sql. Association
// lists are text[] columns handled with pq.Array.
type SQLRepository struct {
	db *sql.DB
}

// NewSQLRepository initializes a repo backed by *sql.DB.
func NewSQLRepository(db *sql.DB) *SQLRepository {
	if db == nil {
		panic("documents: db required")
	}
	return &SQLRepository{db: db}
}

// List returns all document metadata owned by the user, newest first.
func (r *SQLRepository) List(ctx context.Context, userID string) ([]Document, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+documentColumns+`
		FROM documents WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("documents: list failed: %w", err)
	}
	defer rows.Close()

	out := []Document{}
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("documents: scan failed: %w", err)
		}
		out = append(out, *doc)
	}
	return out, rows.Err()
}

// Create inserts metadata for an uploaded file, assigning an ID when missing.
func (r *SQLRepository) Create(ctx context.Context, doc *Document) error {
	if doc.ID == "" {
		doc.ID = uuid.New().String()
	}
	query := `
		INSERT INTO documents (id, user_id, name, url, storage_key, file_type, file_size,
			associated_client_ids, associated_session_ids)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		RETURNING created_at, updated_at
	`
	if err := r.db.QueryRowContext(ctx, query,
		doc.ID, doc.UserID, doc.Name, doc.URL, doc.StorageKey, doc.FileType, doc.FileSize,
		pq.Array(doc.AssociatedClientIDs), pq.Array(doc.AssociatedSessionIDs),
	).Scan(&doc.CreatedAt, &doc.UpdatedAt); err != nil {
		return fmt.Errorf("documents: insert failed: %w", err)
	}
	return nil
}

// Get returns a single document by ID.
func (r *SQLRepository) Get(ctx context.Context, id string) (*Document, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+documentColumns+`
		FROM documents WHERE id = $1`, id)

	doc, err := scanDocument(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrDocumentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("documents: get failed: %w", err)
	}
	return doc, nil
}

// Delete removes a metadata row.
func (r *SQLRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("documents: delete failed: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("documents: delete failed: %w", err)
	}
	if affected == 0 {
		return ErrDocumentNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(row rowScanner) (*Document, error) {
	var doc Document
	var clientIDs, sessionIDs pq.StringArray
	if err := row.Scan(
		&doc.ID, &doc.UserID, &doc.Name, &doc.URL, &doc.StorageKey, &doc.FileType, &doc.FileSize,
		&clientIDs, &sessionIDs, &doc.CreatedAt, &doc.UpdatedAt,
	); err != nil {
		return nil, err
	}
	doc.AssociatedClientIDs = []string(clientIDs)
	doc.AssociatedSessionIDs = []string(sessionIDs)
	return &doc, nil
}
