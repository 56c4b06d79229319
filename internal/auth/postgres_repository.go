package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const userColumns = `id, name, email, phone,
	license_number, license_type, license_state, license_expiration,
	specializations, credentials, avatar,
	working_hours_start, working_hours_end, working_days,
	default_session_duration, timezone, created_at, updated_at`

// PostgresRepository stores practitioner accounts in the relational database.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository initializes a repo backed by pgxpool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	if pool == nil {
		panic("auth: pgx pool required")
	}
	return &PostgresRepository{pool: pool}
}

// GetByEmail returns the user and stored password hash for an email.
func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*TherapistUser, string, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+userColumns+`, password_hash
		FROM users WHERE email = $1`, email)

	var u TherapistUser
	var hash string
	if err := scanUser(row, &u, &hash); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", ErrUserNotFound
		}
		return nil, "", fmt.Errorf("auth: select by email failed: %w", err)
	}
	return &u, hash, nil
}

// GetByID returns the user for an id.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*TherapistUser, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+userColumns+`, password_hash
		FROM users WHERE id = $1`, id)

	var u TherapistUser
	var hash string
	if err := scanUser(row, &u, &hash); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("auth: select by id failed: %w", err)
	}
	return &u, nil
}

// UpdatePassword replaces the stored password hash.
func (r *PostgresRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE users SET password_hash = $2, updated_at = now() WHERE id = $1`, id, passwordHash)
	if err != nil {
		return fmt.Errorf("auth: update password failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

// SaveResetToken records a password-reset token for the user.
func (r *PostgresRepository) SaveResetToken(ctx context.Context, id, token string, expiresAt time.Time) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO password_resets (token, user_id, expires_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (token) DO UPDATE SET user_id = EXCLUDED.user_id, expires_at = EXCLUDED.expires_at`,
		token, id, expiresAt)
	if err != nil {
		return fmt.Errorf("auth: save reset token failed: %w", err)
	}
	return nil
}

// ConsumeResetToken redeems a reset token, returning the user id.
func (r *PostgresRepository) ConsumeResetToken(ctx context.Context, token string) (string, error) {
	var userID string
	err := r.pool.QueryRow(ctx, `
		DELETE FROM password_resets
		WHERE token = $1 AND expires_at > now()
		RETURNING user_id`, token).Scan(&userID)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrInvalidToken
	}
	if err != nil {
		return "", fmt.Errorf("auth: consume reset token failed: %w", err)
	}
	return userID, nil
}

func scanUser(row pgx.Row, u *TherapistUser, hash *string) error {
	var avatar *string
	if err := row.Scan(
		&u.ID, &u.Name, &u.Email, &u.Phone,
		&u.License.Number, &u.License.Type, &u.License.State, &u.License.ExpirationDate,
		&u.Specializations, &u.Credentials, &avatar,
		&u.Preferences.WorkingHours.Start, &u.Preferences.WorkingHours.End,
		&u.Preferences.WorkingHours.Days,
		&u.Preferences.DefaultSessionDuration, &u.Preferences.Timezone,
		&u.CreatedAt, &u.UpdatedAt, hash,
	); err != nil {
		return err
	}
	if avatar != nil {
		u.Avatar = *avatar
	}
	if u.Specializations == nil {
		u.Specializations = []string{}
	}
	if u.Credentials == nil {
		u.Credentials = []string{}
	}
	return nil
}
