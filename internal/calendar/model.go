package calendar

import (
	"strings"
	"time"
)

// EventTimeLayout is the wall-clock instant format for event bounds,
// interpreted in the practitioner's timezone.
const EventTimeLayout = "2006-01-02T15:04:05"

// Type classifies a calendar event.
type Type string

const (
	TypeSession  Type = "session"
	TypeBreak    Type = "break"
	TypeAdmin    Type = "admin"
	TypePersonal Type = "personal"
)

func (t Type) Valid() bool {
	switch t {
	case TypeSession, TypeBreak, TypeAdmin, TypePersonal:
		return true
	}
	return false
}

// Event is a calendar entry. Session events are derived from the session
// collection and are not stored; break, admin and personal events are
// user-created rows.
type Event struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	Start     string    `json:"start"`
	End       string    `json:"end"`
	ClientID  string    `json:"client_id,omitempty"`
	SessionID string    `json:"session_id,omitempty"`
	Type      Type      `json:"type"`
	Color     string    `json:"color,omitempty"`
	Editable  bool      `json:"editable"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Date returns the calendar day an event starts on.
func (e *Event) Date() string {
	if len(e.Start) < 10 {
		return ""
	}
	return e.Start[:10]
}

// CreateEventRequest is the payload for creating a non-session event.
type CreateEventRequest struct {
	Title string `json:"title"`
	Start string `json:"start"`
	End   string `json:"end"`
	Type  Type   `json:"type"`
	Color string `json:"color,omitempty"`
}

// Validate validates the create event request.
func (r *CreateEventRequest) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return ErrMissingTitle
	}
	start, err := time.Parse(EventTimeLayout, r.Start)
	if err != nil {
		return ErrInvalidTime
	}
	end, err := time.Parse(EventTimeLayout, r.End)
	if err != nil {
		return ErrInvalidTime
	}
	if !end.After(start) {
		return ErrInvalidTime
	}
	if r.Type == TypeSession {
		// Session events only exist as projections of sessions.
		return ErrInvalidType
	}
	if !r.Type.Valid() {
		return ErrInvalidType
	}
	return nil
}

// UpdateEventFields is a partial update; nil fields are left untouched.
type UpdateEventFields struct {
	Title *string `json:"title,omitempty"`
	Start *string `json:"start,omitempty"`
	End   *string `json:"end,omitempty"`
	Type  *Type   `json:"type,omitempty"`
	Color *string `json:"color,omitempty"`
}

// Validate rejects unknown types and unparseable bounds.
func (f *UpdateEventFields) Validate() error {
	if f.Title != nil && strings.TrimSpace(*f.Title) == "" {
		return ErrMissingTitle
	}
	if f.Start != nil {
		if _, err := time.Parse(EventTimeLayout, *f.Start); err != nil {
			return ErrInvalidTime
		}
	}
	if f.End != nil {
		if _, err := time.Parse(EventTimeLayout, *f.End); err != nil {
			return ErrInvalidTime
		}
	}
	if f.Type != nil && (*f.Type == TypeSession || !f.Type.Valid()) {
		return ErrInvalidType
	}
	return nil
}

// Apply merges the non-nil fields into the event.
func (f *UpdateEventFields) Apply(e *Event) {
	if f.Title != nil {
		e.Title = *f.Title
	}
	if f.Start != nil {
		e.Start = *f.Start
	}
	if f.End != nil {
		e.End = *f.End
	}
	if f.Type != nil {
		e.Type = *f.Type
	}
	if f.Color != nil {
		e.Color = *f.Color
	}
}
