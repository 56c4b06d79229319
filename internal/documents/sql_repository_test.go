package documents

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLRepository_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewSQLRepository(db)
	now := time.Now().UTC()

	rows := sqlmock.NewRows([]string{
		"id", "user_id", "name", "url", "storage_key", "file_type", "file_size",
		"associated_client_ids", "associated_session_ids", "created_at", "updated_at",
	}).AddRow(
		"doc-1", "therapist-1", "intake.pdf", "https://files.example.com/doc-1",
		"documents/therapist-1/k1/intake.pdf", "application/pdf", int64(2048),
		pq.StringArray{"client-1"}, pq.StringArray{}, now, now,
	)

	mock.ExpectQuery("SELECT (.+) FROM documents WHERE user_id").
		WithArgs("therapist-1").
		WillReturnRows(rows)

	docs, err := repo.List(context.Background(), "therapist-1")
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "intake.pdf", docs[0].Name)
	assert.Equal(t, []string{"client-1"}, docs[0].AssociatedClientIDs)
	assert.Empty(t, docs[0].AssociatedSessionIDs)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewSQLRepository(db)
	now := time.Now().UTC()

	mock.ExpectQuery("INSERT INTO documents").
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	doc := &Document{
		UserID:               "therapist-1",
		Name:                 "consent.pdf",
		URL:                  "https://files.example.com/consent.pdf",
		StorageKey:           "documents/therapist-1/k2/consent.pdf",
		FileType:             "application/pdf",
		FileSize:             512,
		AssociatedClientIDs:  []string{"client-2"},
		AssociatedSessionIDs: []string{},
	}
	require.NoError(t, repo.Create(context.Background(), doc))
	assert.NotEmpty(t, doc.ID)
	assert.Equal(t, now, doc.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLRepository_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewSQLRepository(db)

	mock.ExpectExec("DELETE FROM documents WHERE id").
		WithArgs("doc-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	assert.NoError(t, repo.Delete(context.Background(), "doc-1"))

	mock.ExpectExec("DELETE FROM documents WHERE id").
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.Delete(context.Background(), "missing"), ErrDocumentNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}
