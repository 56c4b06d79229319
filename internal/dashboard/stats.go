// Package dashboard aggregates practice metrics straight from the database.
// It complements the store's in-memory snapshot stats with numbers that
// survive process restarts.
package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Stats represents aggregated practice metrics for one practitioner.
type Stats struct {
	TotalClients      int64   `json:"total_clients"`
	ActiveClients     int64   `json:"active_clients"`
	TotalSessions     int64   `json:"total_sessions"`
	CompletedSessions int64   `json:"completed_sessions"`
	UpcomingSessions  int64   `json:"upcoming_sessions"`
	CancelledSessions int64   `json:"cancelled_sessions"`
	SessionsThisWeek  int64   `json:"sessions_this_week"`
	CompletionRate    float64 `json:"completion_rate"`
	WeekStart         string  `json:"week_start"`
}

// statsDB defines the database interface needed by StatsRepository
type statsDB interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// StatsRepository queries practice metrics from the database.
type StatsRepository struct {
	db statsDB
}

// NewStatsRepository creates a new stats repository.
func NewStatsRepository(pool *pgxpool.Pool) *StatsRepository {
	if pool == nil {
		panic("dashboard: pgx pool required for stats")
	}
	return &StatsRepository{db: pool}
}

// NewStatsRepositoryWithDB allows injecting a mock database for testing.
func NewStatsRepositoryWithDB(db statsDB) *StatsRepository {
	return &StatsRepository{db: db}
}

// GetStats retrieves aggregated metrics for a practitioner. weekStart is the
// first day of the current week (YYYY-MM-DD) in the practitioner's timezone.
func (r *StatsRepository) GetStats(ctx context.Context, userID string, weekStart time.Time) (*Stats, error) {
	stats := &Stats{WeekStart: weekStart.Format("2006-01-02")}

	clientsQuery := `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE status = 'active')
		FROM clients WHERE user_id = $1`
	if err := r.db.QueryRow(ctx, clientsQuery, userID).
		Scan(&stats.TotalClients, &stats.ActiveClients); err != nil {
		return nil, fmt.Errorf("dashboard stats: count clients: %w", err)
	}

	sessionsQuery := `
		SELECT COUNT(*),
			COUNT(*) FILTER (WHERE status = 'completed'),
			COUNT(*) FILTER (WHERE status = 'scheduled'),
			COUNT(*) FILTER (WHERE status = 'cancelled'),
			COUNT(*) FILTER (WHERE session_date >= $2)
		FROM sessions WHERE user_id = $1`
	if err := r.db.QueryRow(ctx, sessionsQuery, userID, stats.WeekStart).
		Scan(&stats.TotalSessions, &stats.CompletedSessions, &stats.UpcomingSessions,
			&stats.CancelledSessions, &stats.SessionsThisWeek); err != nil {
		return nil, fmt.Errorf("dashboard stats: count sessions: %w", err)
	}

	if stats.TotalSessions > 0 {
		stats.CompletionRate = float64(stats.CompletedSessions) / float64(stats.TotalSessions) * 100
	}
	return stats, nil
}
