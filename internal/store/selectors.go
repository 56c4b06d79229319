package store

import (
	"sort"
	"time"

	"github.com/isanahealth/practice-api/internal/clients"
	"github.com/isanahealth/practice-api/internal/documents"
	"github.com/isanahealth/practice-api/internal/reminders"
	"github.com/isanahealth/practice-api/internal/sessions"
)

// Selectors recompute derived views from the collections on every call.
// Nothing here is memoized; at single-practitioner scale an O(n) pass per
// read is cheaper than cache invalidation.

// Clients returns a copy of the client collection with session stats filled in.
func (s *Store) Clients() []clients.ClientProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]clients.ClientProfile, len(s.clients))
	copy(out, s.clients)
	for i := range out {
		s.decorateClient(&out[i])
	}
	return out
}

// ClientByID returns a single client with session stats.
func (s *Store) ClientByID(id string) (*clients.ClientProfile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.clients {
		if s.clients[i].ID == id {
			c := s.clients[i]
			s.decorateClient(&c)
			return &c, true
		}
	}
	return nil, false
}

// ActiveClients returns clients whose status is active.
func (s *Store) ActiveClients() []clients.ClientProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []clients.ClientProfile{}
	for i := range s.clients {
		if s.clients[i].Status == clients.StatusActive {
			c := s.clients[i]
			s.decorateClient(&c)
			out = append(out, c)
		}
	}
	return out
}

// decorateClient fills TotalSessions and LastSession from the session
// collection. Counters are never stored; a session mutation is reflected on
// the next read. Caller must hold at least the read lock.
func (s *Store) decorateClient(c *clients.ClientProfile) {
	total := 0
	last := ""
	for i := range s.sessions {
		sess := &s.sessions[i]
		if sess.ClientID != c.ID || sess.Status != sessions.StatusCompleted {
			continue
		}
		total++
		if sess.Date > last {
			last = sess.Date
		}
	}
	c.TotalSessions = total
	c.LastSession = last
}

// Sessions returns a copy of the session collection.
func (s *Store) Sessions() []sessions.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]sessions.Session, len(s.sessions))
	copy(out, s.sessions)
	return out
}

// SessionByID returns a single session.
func (s *Store) SessionByID(id string) (*sessions.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.sessions {
		if s.sessions[i].ID == id {
			sess := s.sessions[i]
			return &sess, true
		}
	}
	return nil, false
}

// ClientSessions returns all sessions for one client, newest first.
func (s *Store) ClientSessions(clientID string) []sessions.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []sessions.Session{}
	for i := range s.sessions {
		if s.sessions[i].ClientID == clientID {
			out = append(out, s.sessions[i])
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date > out[j].Date
		}
		return out[i].StartTime > out[j].StartTime
	})
	return out
}

// UpcomingSessions returns scheduled sessions from today onward, ordered by
// date then start time. "Today" is the practitioner's calendar day.
func (s *Store) UpcomingSessions() []sessions.Session {
	today := s.today()

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []sessions.Session{}
	for i := range s.sessions {
		sess := &s.sessions[i]
		if sess.Status == sessions.StatusScheduled && sess.Date >= today {
			out = append(out, *sess)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].StartTime < out[j].StartTime
	})
	return out
}

// TodaySessions returns sessions falling on the practitioner's current
// calendar day, any status.
func (s *Store) TodaySessions() []sessions.Session {
	today := s.today()

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []sessions.Session{}
	for i := range s.sessions {
		if s.sessions[i].Date == today {
			out = append(out, s.sessions[i])
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime < out[j].StartTime })
	return out
}

// today resolves the current calendar day in the practitioner's timezone.
func (s *Store) today() string {
	return time.Now().In(s.location()).Format(sessions.DateLayout)
}

// Reminders returns a copy of the reminder collection.
func (s *Store) Reminders() []reminders.Reminder {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]reminders.Reminder, len(s.reminders))
	copy(out, s.reminders)
	return out
}

// ActiveReminders returns reminders not yet completed.
func (s *Store) ActiveReminders() []reminders.Reminder {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []reminders.Reminder{}
	for i := range s.reminders {
		if !s.reminders[i].IsCompleted {
			out = append(out, s.reminders[i])
		}
	}
	return out
}

// OverdueReminders returns incomplete reminders whose due date has passed in
// the practitioner's timezone.
func (s *Store) OverdueReminders() []reminders.Reminder {
	loc := s.location()
	now := time.Now()

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []reminders.Reminder{}
	for i := range s.reminders {
		r := &s.reminders[i]
		if !r.IsCompleted && r.DueBefore(now, loc) {
			out = append(out, *r)
		}
	}
	return out
}

// Documents returns a copy of the document collection.
func (s *Store) Documents() []documents.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]documents.Document, len(s.documents))
	copy(out, s.documents)
	return out
}

// DocumentsForClient returns documents attached to the client.
func (s *Store) DocumentsForClient(clientID string) []documents.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []documents.Document{}
	for i := range s.documents {
		if s.documents[i].AssociatedWithClient(clientID) {
			out = append(out, s.documents[i])
		}
	}
	return out
}

// DocumentsForSession returns documents attached to the session.
func (s *Store) DocumentsForSession(sessionID string) []documents.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []documents.Document{}
	for i := range s.documents {
		if s.documents[i].AssociatedWithSession(sessionID) {
			out = append(out, s.documents[i])
		}
	}
	return out
}

// DashboardStats is a point-in-time summary of the practice.
type DashboardStats struct {
	TotalClients             int     `json:"total_clients"`
	ActiveClients            int     `json:"active_clients"`
	SessionsThisWeek         int     `json:"sessions_this_week"`
	UpcomingSessions         int     `json:"upcoming_sessions"`
	CompletedSessions        int     `json:"completed_sessions"`
	CancelledSessions        int     `json:"cancelled_sessions"`
	CompletionRate           float64 `json:"completion_rate"`
	AverageSessionsPerClient float64 `json:"average_sessions_per_client"`
}

// Stats computes dashboard statistics from the collections. The week starts
// on Sunday in the practitioner's timezone.
func (s *Store) Stats() DashboardStats {
	loc := s.location()
	now := time.Now().In(loc)
	weekStart := now.AddDate(0, 0, -int(now.Weekday())).Format(sessions.DateLayout)

	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := DashboardStats{TotalClients: len(s.clients)}
	for i := range s.clients {
		if s.clients[i].Status == clients.StatusActive {
			stats.ActiveClients++
		}
	}
	for i := range s.sessions {
		sess := &s.sessions[i]
		if sess.Date >= weekStart {
			stats.SessionsThisWeek++
		}
		switch sess.Status {
		case sessions.StatusScheduled:
			stats.UpcomingSessions++
		case sessions.StatusCompleted:
			stats.CompletedSessions++
		case sessions.StatusCancelled:
			stats.CancelledSessions++
		}
	}
	if total := len(s.sessions); total > 0 {
		stats.CompletionRate = float64(stats.CompletedSessions) / float64(total) * 100
	}
	if len(s.clients) > 0 {
		stats.AverageSessionsPerClient = float64(len(s.sessions)) / float64(len(s.clients))
	}
	return stats
}
