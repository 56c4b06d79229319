package calendar

import (
	"context"
	"sort"
	"time"

	"github.com/isanahealth/practice-api/internal/auth"
	"github.com/isanahealth/practice-api/internal/sessions"
	"github.com/isanahealth/practice-api/pkg/logging"
)

// SessionSource provides the sessions projected onto the calendar.
type SessionSource interface {
	Sessions() []sessions.Session
	CurrentUser() *auth.TherapistUser
}

// Service merges stored events with session projections into one calendar.
type Service struct {
	repo   Repository
	source SessionSource
	logger *logging.Logger
}

// NewService creates a calendar service.
func NewService(repo Repository, source SessionSource, logger *logging.Logger) *Service {
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{repo: repo, source: source, logger: logger}
}

var sessionTypeColors = map[sessions.Type]string{
	sessions.TypeIndividual:   "#3B82F6",
	sessions.TypeGroup:        "#10B981",
	sessions.TypeFamily:       "#F59E0B",
	sessions.TypeConsultation: "#8B5CF6",
	sessions.TypeIntake:       "#EF4444",
}

const defaultEventColor = "#6B7280"

// SessionEvent projects a session onto the calendar. Only scheduled
// sessions remain editable.
func SessionEvent(s *sessions.Session) Event {
	color, ok := sessionTypeColors[s.Type]
	if !ok {
		color = defaultEventColor
	}
	return Event{
		ID:        "session-" + s.ID,
		UserID:    s.UserID,
		Title:     s.ClientName + " - " + string(s.Type) + " session",
		Start:     s.Date + "T" + s.StartTime + ":00",
		End:       s.Date + "T" + s.EndTime + ":00",
		ClientID:  s.ClientID,
		SessionID: s.ID,
		Type:      TypeSession,
		Color:     color,
		Editable:  s.Status == sessions.StatusScheduled,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

// Events returns all events whose start date falls in [startDate, endDate]
// (inclusive, YYYY-MM-DD), sessions and stored events merged, ordered by
// start. Empty bounds mean unbounded.
func (s *Service) Events(ctx context.Context, userID, startDate, endDate string) ([]Event, error) {
	stored, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := []Event{}
	for i := range stored {
		if inRange(stored[i].Date(), startDate, endDate) {
			out = append(out, stored[i])
		}
	}
	for _, sess := range s.source.Sessions() {
		if inRange(sess.Date, startDate, endDate) {
			out = append(out, SessionEvent(&sess))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start < out[j].Start })
	return out, nil
}

// CreateEvent stores a user-created event.
func (s *Service) CreateEvent(ctx context.Context, req *CreateEventRequest, userID string) (*Event, error) {
	return s.repo.Create(ctx, req, userID)
}

// UpdateEvent applies a partial update to a stored event. Session
// projections cannot be edited here.
func (s *Service) UpdateEvent(ctx context.Context, id string, fields *UpdateEventFields) error {
	return s.repo.Update(ctx, id, fields)
}

// DeleteEvent removes a stored event.
func (s *Service) DeleteEvent(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// AvailableSlots returns open start times on the given day within the
// practitioner's working hours, stepped by duration. Slots overlapping a
// scheduled session are excluded.
func (s *Service) AvailableSlots(date string, duration time.Duration) []string {
	user := s.source.CurrentUser()
	if duration <= 0 {
		duration = time.Hour
	}

	workStart, workEnd := "09:00", "17:00"
	if user != nil {
		if wh := user.Preferences.WorkingHours; wh.Start != "" && wh.End != "" {
			workStart, workEnd = wh.Start, wh.End
		}
	}
	start, err := time.Parse(sessions.TimeLayout, workStart)
	if err != nil {
		return nil
	}
	end, err := time.Parse(sessions.TimeLayout, workEnd)
	if err != nil {
		return nil
	}

	booked := []sessions.Session{}
	for _, sess := range s.source.Sessions() {
		if sess.Date == date && sess.Status == sessions.StatusScheduled {
			booked = append(booked, sess)
		}
	}

	slots := []string{}
	for t := start; !t.Add(duration).After(end); t = t.Add(duration) {
		slotStart := t.Format(sessions.TimeLayout)
		slotEnd := t.Add(duration).Format(sessions.TimeLayout)
		if !overlapsAny(slotStart, slotEnd, booked) {
			slots = append(slots, slotStart)
		}
	}
	return slots
}

// overlapsAny relies on HH:MM strings comparing correctly as text.
func overlapsAny(slotStart, slotEnd string, booked []sessions.Session) bool {
	for i := range booked {
		if slotStart < booked[i].EndTime && booked[i].StartTime < slotEnd {
			return true
		}
	}
	return false
}

// inRange compares YYYY-MM-DD strings; empty bounds are open.
func inRange(date, startDate, endDate string) bool {
	if date == "" {
		return false
	}
	if startDate != "" && date < startDate {
		return false
	}
	if endDate != "" && date > endDate {
		return false
	}
	return true
}
