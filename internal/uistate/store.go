// Package uistate persists per-user navigation state: the active view, the
// selected client or session, and display flags. It is deliberately separate
// from the domain store; losing it costs nothing but a UI reset.
package uistate

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// DefaultTTL keeps abandoned navigation state from accumulating.
const DefaultTTL = 30 * 24 * time.Hour

// State is the navigation state for one practitioner. Selected client and
// session ids are references, never embedded records.
type State struct {
	ActiveView        string `json:"active_view"`
	SelectedClientID  string `json:"selected_client_id,omitempty"`
	SelectedSessionID string `json:"selected_session_id,omitempty"`
	MobileMenuOpen    bool   `json:"mobile_menu_open"`
	DarkMode          bool   `json:"dark_mode"`
}

// DefaultState is what a fresh session starts from.
func DefaultState() *State {
	return &State{ActiveView: "dashboard"}
}

// SelectClient sets the selected client and clears any selected session.
// At most one of the two is set at a time.
func (s *State) SelectClient(id string) {
	s.SelectedClientID = id
	if id != "" {
		s.SelectedSessionID = ""
	}
}

// SelectSession sets the selected session and clears any selected client.
func (s *State) SelectSession(id string) {
	s.SelectedSessionID = id
	if id != "" {
		s.SelectedClientID = ""
	}
}

// Store keeps navigation state in Redis, one key per user.
type Store struct {
	redis  *redis.Client
	ttl    time.Duration
	tracer trace.Tracer
}

// NewStore creates a Redis-backed UI state store.
func NewStore(redisClient *redis.Client, ttl time.Duration, tracer trace.Tracer) *Store {
	if redisClient == nil {
		panic("uistate: redis client cannot be nil")
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if tracer == nil {
		tracer = otel.Tracer("practice.internal.uistate")
	}
	return &Store{redis: redisClient, ttl: ttl, tracer: tracer}
}

// Load returns the user's navigation state, or the default when none is
// stored. A missing key is not an error.
func (s *Store) Load(ctx context.Context, userID string) (*State, error) {
	ctx, span := s.tracer.Start(ctx, "uistate.load")
	defer span.End()

	data, err := s.redis.Get(ctx, stateKey(userID)).Bytes()
	if err == redis.Nil {
		return DefaultState(), nil
	}
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("uistate: failed to load state: %w", err)
	}

	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("uistate: failed to decode state: %w", err)
	}
	return &state, nil
}

// Save persists the user's navigation state.
func (s *Store) Save(ctx context.Context, userID string, state *State) error {
	ctx, span := s.tracer.Start(ctx, "uistate.save")
	defer span.End()

	data, err := json.Marshal(state)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("uistate: failed to marshal state: %w", err)
	}
	if err := s.redis.Set(ctx, stateKey(userID), data, s.ttl).Err(); err != nil {
		span.RecordError(err)
		return fmt.Errorf("uistate: failed to persist state: %w", err)
	}
	return nil
}

// Clear drops the user's navigation state, typically on sign-out.
func (s *Store) Clear(ctx context.Context, userID string) error {
	ctx, span := s.tracer.Start(ctx, "uistate.clear")
	defer span.End()

	if err := s.redis.Del(ctx, stateKey(userID)).Err(); err != nil {
		span.RecordError(err)
		return fmt.Errorf("uistate: failed to clear state: %w", err)
	}
	return nil
}

func stateKey(userID string) string {
	return fmt.Sprintf("uistate:%s", userID)
}
