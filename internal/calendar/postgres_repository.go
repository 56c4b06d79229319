package calendar

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const eventColumns = `id, user_id, title, start_at, end_at, event_type, color, created_at, updated_at`

// PostgresRepository stores non-session calendar events in the relational
// database.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository initializes a repo backed by pgxpool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	if pool == nil {
		panic("calendar: pgx pool required")
	}
	return &PostgresRepository{pool: pool}
}

// List returns all stored events owned by the user ordered by start.
func (r *PostgresRepository) List(ctx context.Context, userID string) ([]Event, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+eventColumns+`
		FROM calendar_events WHERE user_id = $1 ORDER BY start_at ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("calendar: list failed: %w", err)
	}
	defer rows.Close()

	out := []Event{}
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("calendar: scan failed: %w", err)
		}
		out = append(out, *event)
	}
	return out, rows.Err()
}

// Create inserts a new row.
func (r *PostgresRepository) Create(ctx context.Context, req *CreateEventRequest, userID string) (*Event, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	id := uuid.New()
	query := `
		INSERT INTO calendar_events (id, user_id, title, start_at, end_at, event_type, color)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING created_at, updated_at
	`
	var createdAt, updatedAt time.Time
	if err := r.pool.QueryRow(ctx, query,
		id, userID, req.Title, req.Start, req.End, req.Type, req.Color,
	).Scan(&createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("calendar: insert failed: %w", err)
	}

	return &Event{
		ID:        id.String(),
		UserID:    userID,
		Title:     req.Title,
		Start:     req.Start,
		End:       req.End,
		Type:      req.Type,
		Color:     req.Color,
		Editable:  true,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}, nil
}

// Update applies only the provided fields and refreshes updated_at.
func (r *PostgresRepository) Update(ctx context.Context, id string, fields *UpdateEventFields) error {
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

	if fields.Title != nil {
		add("title", *fields.Title)
	}
	if fields.Start != nil {
		add("start_at", *fields.Start)
	}
	if fields.End != nil {
		add("end_at", *fields.End)
	}
	if fields.Type != nil {
		add("event_type", *fields.Type)
	}
	if fields.Color != nil {
		add("color", *fields.Color)
	}
	if len(set) == 0 {
		return nil
	}
	set = append(set, "updated_at = now()")

	query := fmt.Sprintf("UPDATE calendar_events SET %s WHERE id = $1", strings.Join(set, ", "))
	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("calendar: update failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrEventNotFound
	}
	return nil
}

// Delete removes an event row.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM calendar_events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("calendar: delete failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrEventNotFound
	}
	return nil
}

func scanEvent(row pgx.Row) (*Event, error) {
	var e Event
	if err := row.Scan(
		&e.ID, &e.UserID, &e.Title, &e.Start, &e.End, &e.Type, &e.Color,
		&e.CreatedAt, &e.UpdatedAt,
	); err != nil {
		return nil, err
	}
	e.Editable = true
	return &e, nil
}
