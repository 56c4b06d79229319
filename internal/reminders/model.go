package reminders

import (
	"strings"
	"time"
)

// DateLayout is the due-date format.
const DateLayout = "2006-01-02"

// Type classifies what a reminder is about.
type Type string

const (
	TypeSession   Type = "session"
	TypeFollowUp  Type = "follow-up"
	TypeInsurance Type = "insurance"
	TypeCustom    Type = "custom"
)

func (t Type) Valid() bool {
	switch t {
	case TypeSession, TypeFollowUp, TypeInsurance, TypeCustom:
		return true
	}
	return false
}

// Priority orders reminders on the dashboard.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Reminder is a dated to-do, optionally tied to a client and/or session.
type Reminder struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	ClientID    string    `json:"client_id,omitempty"`
	SessionID   string    `json:"session_id,omitempty"`
	Type        Type      `json:"type"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DueDate     string    `json:"due_date"`
	IsCompleted bool      `json:"is_completed"`
	Priority    Priority  `json:"priority"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// DueBefore reports whether the reminder's due date falls strictly before the
// calendar day of t in loc.
func (r *Reminder) DueBefore(t time.Time, loc *time.Location) bool {
	due, err := time.ParseInLocation(DateLayout, r.DueDate, loc)
	if err != nil {
		return false
	}
	y, m, d := t.In(loc).Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, loc)
	return due.Before(today)
}

// CreateReminderRequest is the payload for creating a reminder.
type CreateReminderRequest struct {
	ClientID    string   `json:"client_id,omitempty"`
	SessionID   string   `json:"session_id,omitempty"`
	Type        Type     `json:"type"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	DueDate     string   `json:"due_date"`
	IsCompleted bool     `json:"is_completed"`
	Priority    Priority `json:"priority"`
}

// Validate validates the create reminder request. Type defaults to custom and
// priority to medium.
func (r *CreateReminderRequest) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return ErrMissingTitle
	}
	if _, err := time.Parse(DateLayout, r.DueDate); err != nil {
		return ErrInvalidDueDate
	}
	if r.Type == "" {
		r.Type = TypeCustom
	}
	if !r.Type.Valid() {
		return ErrInvalidType
	}
	if r.Priority == "" {
		r.Priority = PriorityMedium
	}
	if !r.Priority.Valid() {
		return ErrInvalidPriority
	}
	return nil
}

// UpdateReminderFields is a partial update; nil fields are left untouched.
type UpdateReminderFields struct {
	ClientID    *string   `json:"client_id,omitempty"`
	SessionID   *string   `json:"session_id,omitempty"`
	Type        *Type     `json:"type,omitempty"`
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	DueDate     *string   `json:"due_date,omitempty"`
	IsCompleted *bool     `json:"is_completed,omitempty"`
	Priority    *Priority `json:"priority,omitempty"`
}

// Validate rejects unknown enum values and unparseable due dates.
func (f *UpdateReminderFields) Validate() error {
	if f.Title != nil && strings.TrimSpace(*f.Title) == "" {
		return ErrMissingTitle
	}
	if f.DueDate != nil {
		if _, err := time.Parse(DateLayout, *f.DueDate); err != nil {
			return ErrInvalidDueDate
		}
	}
	if f.Type != nil && !f.Type.Valid() {
		return ErrInvalidType
	}
	if f.Priority != nil && !f.Priority.Valid() {
		return ErrInvalidPriority
	}
	return nil
}

// Apply merges the non-nil fields into the reminder.
func (f *UpdateReminderFields) Apply(r *Reminder) {
	if f.ClientID != nil {
		r.ClientID = *f.ClientID
	}
	if f.SessionID != nil {
		r.SessionID = *f.SessionID
	}
	if f.Type != nil {
		r.Type = *f.Type
	}
	if f.Title != nil {
		r.Title = *f.Title
	}
	if f.Description != nil {
		r.Description = *f.Description
	}
	if f.DueDate != nil {
		r.DueDate = *f.DueDate
	}
	if f.IsCompleted != nil {
		r.IsCompleted = *f.IsCompleted
	}
	if f.Priority != nil {
		r.Priority = *f.Priority
	}
}
