package reminders

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const reminderColumns = `id, user_id, client_id, session_id, reminder_type,
	title, description, due_date, is_completed, priority, created_at, updated_at`

// PostgresRepository stores reminders in the relational database.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository initializes a repo backed by pgxpool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	if pool == nil {
		panic("reminders: pgx pool required")
	}
	return &PostgresRepository{pool: pool}
}

// List returns all reminders owned by the user ordered by due date.
func (r *PostgresRepository) List(ctx context.Context, userID string) ([]Reminder, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+reminderColumns+`
		FROM reminders WHERE user_id = $1 ORDER BY due_date ASC, priority DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("reminders: list failed: %w", err)
	}
	defer rows.Close()

	out := []Reminder{}
	for rows.Next() {
		rem, err := scanReminder(rows)
		if err != nil {
			return nil, fmt.Errorf("reminders: scan failed: %w", err)
		}
		out = append(out, *rem)
	}
	return out, rows.Err()
}

// Create inserts a new row.
func (r *PostgresRepository) Create(ctx context.Context, req *CreateReminderRequest, userID string) (*Reminder, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	id := uuid.New()
	query := `
		INSERT INTO reminders (id, user_id, client_id, session_id, reminder_type,
			title, description, due_date, is_completed, priority)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		RETURNING created_at, updated_at
	`
	var createdAt, updatedAt time.Time
	if err := r.pool.QueryRow(ctx, query,
		id, userID, nullable(req.ClientID), nullable(req.SessionID), req.Type,
		req.Title, req.Description, req.DueDate, req.IsCompleted, req.Priority,
	).Scan(&createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("reminders: insert failed: %w", err)
	}

	return &Reminder{
		ID:          id.String(),
		UserID:      userID,
		ClientID:    req.ClientID,
		SessionID:   req.SessionID,
		Type:        req.Type,
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		IsCompleted: req.IsCompleted,
		Priority:    req.Priority,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}, nil
}

// Update applies only the provided fields and refreshes updated_at.
func (r *PostgresRepository) Update(ctx context.Context, id string, fields *UpdateReminderFields) error {
	if err := fields.Validate(); err != nil {
		return err
	}

	set := []string{}
	args := []any{id}
	argIdx := 2

	add := func(column string, value any) {
		set = append(set, fmt.Sprintf("%s = $%d", column, argIdx))
		args = append(args, value)
		argIdx++
	}

	if fields.ClientID != nil {
		add("client_id", nullable(*fields.ClientID))
	}
	if fields.SessionID != nil {
		add("session_id", nullable(*fields.SessionID))
	}
	if fields.Type != nil {
		add("reminder_type", *fields.Type)
	}
	if fields.Title != nil {
		add("title", *fields.Title)
	}
	if fields.Description != nil {
		add("description", *fields.Description)
	}
	if fields.DueDate != nil {
		add("due_date", *fields.DueDate)
	}
	if fields.IsCompleted != nil {
		add("is_completed", *fields.IsCompleted)
	}
	if fields.Priority != nil {
		add("priority", *fields.Priority)
	}
	if len(set) == 0 {
		return nil
	}
	set = append(set, "updated_at = now()")

	query := fmt.Sprintf("UPDATE reminders SET %s WHERE id = $1", strings.Join(set, ", "))
	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("reminders: update failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrReminderNotFound
	}
	return nil
}

// Delete removes a reminder row.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM reminders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("reminders: delete failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrReminderNotFound
	}
	return nil
}

func scanReminder(row pgx.Row) (*Reminder, error) {
	var rem Reminder
	var clientID, sessionID *string
	if err := row.Scan(
		&rem.ID, &rem.UserID, &clientID, &sessionID, &rem.Type,
		&rem.Title, &rem.Description, &rem.DueDate, &rem.IsCompleted, &rem.Priority,
		&rem.CreatedAt, &rem.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if clientID != nil {
		rem.ClientID = *clientID
	}
	if sessionID != nil {
		rem.SessionID = *sessionID
	}
	return &rem, nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
