package sessions

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const sessionColumns = `id, user_id, client_id, client_name, session_date, start_time, end_time,
	session_type, status, objectives, outcomes, next_steps, mood,
	duration_minutes, location, session_number, billing_code, copay_cents,
	notes, created_at, updated_at`

// PostgresRepository stores sessions in the relational database.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository initializes a repo backed by pgxpool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	if pool == nil {
		panic("sessions: pgx pool required")
	}
	return &PostgresRepository{pool: pool}
}

// List returns all sessions owned by the user ordered by date and start time.
func (r *PostgresRepository) List(ctx context.Context, userID string) ([]Session, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+sessionColumns+`
		FROM sessions WHERE user_id = $1 ORDER BY session_date ASC, start_time ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("sessions: list failed: %w", err)
	}
	defer rows.Close()

	out := []Session{}
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("sessions: scan failed: %w", err)
		}
		out = append(out, *s)
	}
	return out, rows.Err()
}

// Create inserts a new row.
func (r *PostgresRepository) Create(ctx context.Context, req *CreateSessionRequest, userID string) (*Session, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	id := uuid.New()
	notesJSON, err := marshalNotes(req.Notes)
	if err != nil {
		return nil, err
	}

	query := `
		INSERT INTO sessions (id, user_id, client_id, client_name, session_date, start_time, end_time,
			session_type, status, objectives, outcomes, next_steps, mood,
			duration_minutes, location, session_number, billing_code, copay_cents, notes)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19)
		RETURNING created_at, updated_at
	`
	var createdAt, updatedAt time.Time
	if err := r.pool.QueryRow(ctx, query,
		id, userID, req.ClientID, req.ClientName, req.Date, req.StartTime, req.EndTime,
		req.Type, req.Status,
		emptyIfNil(req.Objectives), emptyIfNil(req.Outcomes), emptyIfNil(req.NextSteps),
		req.Mood, req.Meta.Duration, req.Meta.Location, req.Meta.SessionNumber,
		req.Meta.BillingCode, req.Meta.CopayCents, notesJSON,
	).Scan(&createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("sessions: insert failed: %w", err)
	}

	return &Session{
		ID:         id.String(),
		UserID:     userID,
		ClientID:   req.ClientID,
		ClientName: req.ClientName,
		Date:       req.Date,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		Type:       req.Type,
		Status:     req.Status,
		Objectives: emptyIfNil(req.Objectives),
		Outcomes:   emptyIfNil(req.Outcomes),
		NextSteps:  emptyIfNil(req.NextSteps),
		Mood:       req.Mood,
		Meta:       req.Meta,
		Notes:      req.Notes,
		CreatedAt:  createdAt,
		UpdatedAt:  updatedAt,
	}, nil
}

// Update applies only the provided fields and refreshes updated_at.
func (r *PostgresRepository) Update(ctx context.Context, id string, fields *UpdateSessionFields) error {
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

	if fields.ClientName != nil {
		add("client_name", *fields.ClientName)
	}
	if fields.Date != nil {
		add("session_date", *fields.Date)
	}
	if fields.StartTime != nil {
		add("start_time", *fields.StartTime)
	}
	if fields.EndTime != nil {
		add("end_time", *fields.EndTime)
	}
	if fields.Type != nil {
		add("session_type", *fields.Type)
	}
	if fields.Status != nil {
		add("status", *fields.Status)
	}
	if fields.Objectives != nil {
		add("objectives", *fields.Objectives)
	}
	if fields.Outcomes != nil {
		add("outcomes", *fields.Outcomes)
	}
	if fields.NextSteps != nil {
		add("next_steps", *fields.NextSteps)
	}
	if fields.Mood != nil {
		add("mood", *fields.Mood)
	}
	if fields.Meta != nil {
		add("duration_minutes", fields.Meta.Duration)
		add("location", fields.Meta.Location)
		add("session_number", fields.Meta.SessionNumber)
		add("billing_code", fields.Meta.BillingCode)
		add("copay_cents", fields.Meta.CopayCents)
	}
	if fields.Notes != nil {
		notesJSON, err := marshalNotes(fields.Notes)
		if err != nil {
			return err
		}
		add("notes", notesJSON)
	}
	if len(set) == 0 {
		return nil
	}
	set = append(set, "updated_at = now()")

	query := fmt.Sprintf("UPDATE sessions SET %s WHERE id = $1", strings.Join(set, ", "))
	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("sessions: update failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrSessionNotFound
	}
	return nil
}

// Delete removes a session row.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM sessions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("sessions: delete failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrSessionNotFound
	}
	return nil
}

func scanSession(row pgx.Row) (*Session, error) {
	var s Session
	var notesJSON []byte
	if err := row.Scan(
		&s.ID, &s.UserID, &s.ClientID, &s.ClientName, &s.Date, &s.StartTime, &s.EndTime,
		&s.Type, &s.Status, &s.Objectives, &s.Outcomes, &s.NextSteps, &s.Mood,
		&s.Meta.Duration, &s.Meta.Location, &s.Meta.SessionNumber,
		&s.Meta.BillingCode, &s.Meta.CopayCents,
		&notesJSON, &s.CreatedAt, &s.UpdatedAt,
	); err != nil {
		return nil, err
	}
	s.Objectives = emptyIfNil(s.Objectives)
	s.Outcomes = emptyIfNil(s.Outcomes)
	s.NextSteps = emptyIfNil(s.NextSteps)
	if len(notesJSON) > 0 {
		var notes Notes
		if err := json.Unmarshal(notesJSON, &notes); err != nil {
			return nil, fmt.Errorf("decode notes: %w", err)
		}
		s.Notes = &notes
	}
	return &s, nil
}

func marshalNotes(notes *Notes) ([]byte, error) {
	if notes == nil {
		return nil, nil
	}
	data, err := json.Marshal(notes)
	if err != nil {
		return nil, fmt.Errorf("sessions: encode notes: %w", err)
	}
	return data, nil
}
