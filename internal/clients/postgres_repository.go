package clients

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const clientColumns = `id, user_id, name, email, phone, date_of_birth,
	ec_name, ec_phone, ec_relationship, ec_email, notes, status, diagnosis, goals,
	insurance_provider, insurance_policy_number, insurance_group_number,
	preferred_time, communication_method, session_type, created_at, updated_at`

// PostgresRepository stores clients in the relational database.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository initializes a repo backed by pgxpool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	if pool == nil {
		panic("clients: pgx pool required")
	}
	return &PostgresRepository{pool: pool}
}

// List returns all clients owned by the user, newest first.
func (r *PostgresRepository) List(ctx context.Context, userID string) ([]ClientProfile, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+clientColumns+`
		FROM clients WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("clients: list failed: %w", err)
	}
	defer rows.Close()

	out := []ClientProfile{}
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("clients: scan failed: %w", err)
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

// Create inserts a new row.
func (r *PostgresRepository) Create(ctx context.Context, req *CreateClientRequest, userID string) (*ClientProfile, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	id := uuid.New()
	goals := req.Goals
	if goals == nil {
		goals = []string{}
	}
	var insProvider, insPolicy, insGroup *string
	if req.Insurance != nil {
		insProvider = &req.Insurance.Provider
		insPolicy = &req.Insurance.PolicyNumber
		if req.Insurance.GroupNumber != "" {
			insGroup = &req.Insurance.GroupNumber
		}
	}

	query := `
		INSERT INTO clients (id, user_id, name, email, phone, date_of_birth,
			ec_name, ec_phone, ec_relationship, ec_email, notes, status, diagnosis, goals,
			insurance_provider, insurance_policy_number, insurance_group_number,
			preferred_time, communication_method, session_type)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20)
		RETURNING created_at, updated_at
	`
	var createdAt, updatedAt time.Time
	if err := r.pool.QueryRow(ctx, query,
		id, userID, req.Name, req.Email, req.Phone, req.DateOfBirth,
		req.EmergencyContact.Name, req.EmergencyContact.Phone,
		req.EmergencyContact.Relationship, req.EmergencyContact.Email,
		req.Notes, req.Status, req.Diagnosis, goals,
		insProvider, insPolicy, insGroup,
		req.Preferences.PreferredTime, req.Preferences.CommunicationMethod, req.Preferences.SessionType,
	).Scan(&createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("clients: insert failed: %w", err)
	}

	return &ClientProfile{
		ID:               id.String(),
		UserID:           userID,
		Name:             req.Name,
		Email:            req.Email,
		Phone:            req.Phone,
		DateOfBirth:      req.DateOfBirth,
		EmergencyContact: req.EmergencyContact,
		Notes:            req.Notes,
		Status:           req.Status,
		Diagnosis:        req.Diagnosis,
		Goals:            goals,
		Insurance:        req.Insurance,
		Preferences:      req.Preferences,
		CreatedAt:        createdAt,
		UpdatedAt:        updatedAt,
	}, nil
}

// Update applies only the provided fields and refreshes updated_at.
func (r *PostgresRepository) Update(ctx context.Context, id string, fields *UpdateClientFields) error {
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

	if fields.Name != nil {
		add("name", *fields.Name)
	}
	if fields.Email != nil {
		add("email", *fields.Email)
	}
	if fields.Phone != nil {
		add("phone", *fields.Phone)
	}
	if fields.DateOfBirth != nil {
		add("date_of_birth", *fields.DateOfBirth)
	}
	if fields.EmergencyContact != nil {
		add("ec_name", fields.EmergencyContact.Name)
		add("ec_phone", fields.EmergencyContact.Phone)
		add("ec_relationship", fields.EmergencyContact.Relationship)
		add("ec_email", fields.EmergencyContact.Email)
	}
	if fields.Notes != nil {
		add("notes", *fields.Notes)
	}
	if fields.Status != nil {
		add("status", *fields.Status)
	}
	if fields.Diagnosis != nil {
		add("diagnosis", *fields.Diagnosis)
	}
	if fields.Goals != nil {
		add("goals", *fields.Goals)
	}
	if fields.Insurance != nil {
		add("insurance_provider", fields.Insurance.Provider)
		add("insurance_policy_number", fields.Insurance.PolicyNumber)
		add("insurance_group_number", fields.Insurance.GroupNumber)
	}
	if fields.Preferences != nil {
		add("preferred_time", fields.Preferences.PreferredTime)
		add("communication_method", fields.Preferences.CommunicationMethod)
		add("session_type", fields.Preferences.SessionType)
	}
	if len(set) == 0 {
		return nil
	}
	set = append(set, "updated_at = now()")

	query := fmt.Sprintf("UPDATE clients SET %s WHERE id = $1", strings.Join(set, ", "))
	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("clients: update failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrClientNotFound
	}
	return nil
}

// Delete removes a client row.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("clients: delete failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrClientNotFound
	}
	return nil
}

func scanClient(row pgx.Row) (*ClientProfile, error) {
	var c ClientProfile
	var insProvider, insPolicy, insGroup *string
	if err := row.Scan(
		&c.ID, &c.UserID, &c.Name, &c.Email, &c.Phone, &c.DateOfBirth,
		&c.EmergencyContact.Name, &c.EmergencyContact.Phone,
		&c.EmergencyContact.Relationship, &c.EmergencyContact.Email,
		&c.Notes, &c.Status, &c.Diagnosis, &c.Goals,
		&insProvider, &insPolicy, &insGroup,
		&c.Preferences.PreferredTime, &c.Preferences.CommunicationMethod, &c.Preferences.SessionType,
		&c.CreatedAt, &c.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if c.Goals == nil {
		c.Goals = []string{}
	}
	if insProvider != nil {
		c.Insurance = &InsuranceInfo{Provider: *insProvider}
		if insPolicy != nil {
			c.Insurance.PolicyNumber = *insPolicy
		}
		if insGroup != nil {
			c.Insurance.GroupNumber = *insGroup
		}
	}
	return &c, nil
}
