package sessions

import (
	"strings"
	"time"
)

// DateLayout is the wall-clock date format sessions are scheduled with.
const DateLayout = "2006-01-02"

// TimeLayout is the wall-clock start/end time format.
const TimeLayout = "15:04"

// Type is the session format.
type Type string

const (
	TypeIndividual   Type = "individual"
	TypeGroup        Type = "group"
	TypeFamily       Type = "family"
	TypeConsultation Type = "consultation"
	TypeIntake       Type = "intake"
)

func (t Type) Valid() bool {
	switch t {
	case TypeIndividual, TypeGroup, TypeFamily, TypeConsultation, TypeIntake:
		return true
	}
	return false
}

// Status is the scheduling state of a session.
type Status string

const (
	StatusScheduled   Status = "scheduled"
	StatusCompleted   Status = "completed"
	StatusCancelled   Status = "cancelled"
	StatusNoShow      Status = "no-show"
	StatusRescheduled Status = "rescheduled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusScheduled, StatusCompleted, StatusCancelled, StatusNoShow, StatusRescheduled:
		return true
	}
	return false
}

// Mood is the practitioner's read of how the session went.
type Mood string

const (
	MoodExcellent  Mood = "excellent"
	MoodGood       Mood = "good"
	MoodNeutral    Mood = "neutral"
	MoodDifficult  Mood = "difficult"
	MoodConcerning Mood = "concerning"
)

func (m Mood) Valid() bool {
	switch m {
	case MoodExcellent, MoodGood, MoodNeutral, MoodDifficult, MoodConcerning:
		return true
	}
	return false
}

// RiskLevel is the clinical risk assessment recorded in session notes.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskModerate RiskLevel = "moderate"
	RiskHigh     RiskLevel = "high"
)

func (r RiskLevel) Valid() bool {
	switch r {
	case RiskLow, RiskModerate, RiskHigh:
		return true
	}
	return false
}

// Meta is the administrative block attached to a session.
type Meta struct {
	Duration      int    `json:"duration"` // minutes
	Location      string `json:"location"`
	SessionNumber int    `json:"session_number"`
	BillingCode   string `json:"billing_code,omitempty"`
	CopayCents    int    `json:"copay_cents,omitempty"`
}

// Notes is the structured clinical note for a session. PrivateNotes are
// practitioner-only and never included in client-facing exports.
type Notes struct {
	PresentingConcerns string    `json:"presenting_concerns"`
	Interventions      []string  `json:"interventions"`
	ClientResponse     string    `json:"client_response"`
	Homework           []string  `json:"homework"`
	RiskLevel          RiskLevel `json:"risk_level"`
	NextSessionPlan    string    `json:"next_session_plan"`
	PrivateNotes       string    `json:"private_notes"`
}

// Session is a scheduled or held appointment with exactly one client.
// Date, StartTime and EndTime are wall-clock strings interpreted in the
// practitioner's configured timezone.
type Session struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	ClientID   string    `json:"client_id"`
	ClientName string    `json:"client_name"`
	Date       string    `json:"date"`
	StartTime  string    `json:"start_time"`
	EndTime    string    `json:"end_time"`
	Type       Type      `json:"type"`
	Status     Status    `json:"status"`
	Objectives []string  `json:"objectives"`
	Outcomes   []string  `json:"outcomes"`
	NextSteps  []string  `json:"next_steps"`
	Mood       Mood      `json:"mood,omitempty"`
	Meta       Meta      `json:"meta"`
	Notes      *Notes    `json:"notes,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// StartsAt resolves the session's wall-clock start to an instant in loc.
func (s *Session) StartsAt(loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout+" "+TimeLayout, s.Date+" "+s.StartTime, loc)
}

// CreateSessionRequest is the payload for scheduling a session.
type CreateSessionRequest struct {
	ClientID   string   `json:"client_id"`
	ClientName string   `json:"client_name"`
	Date       string   `json:"date"`
	StartTime  string   `json:"start_time"`
	EndTime    string   `json:"end_time"`
	Type       Type     `json:"type"`
	Status     Status   `json:"status"`
	Objectives []string `json:"objectives"`
	Outcomes   []string `json:"outcomes"`
	NextSteps  []string `json:"next_steps"`
	Mood       Mood     `json:"mood,omitempty"`
	Meta       Meta     `json:"meta"`
	Notes      *Notes   `json:"notes,omitempty"`
}

// Validate validates the create session request. Status defaults to scheduled.
func (r *CreateSessionRequest) Validate() error {
	if strings.TrimSpace(r.ClientID) == "" {
		return ErrMissingClient
	}
	if _, err := time.Parse(DateLayout, r.Date); err != nil {
		return ErrInvalidDate
	}
	if _, err := time.Parse(TimeLayout, r.StartTime); err != nil {
		return ErrInvalidTime
	}
	if _, err := time.Parse(TimeLayout, r.EndTime); err != nil {
		return ErrInvalidTime
	}
	if !r.Type.Valid() {
		return ErrInvalidType
	}
	if r.Status == "" {
		r.Status = StatusScheduled
	}
	if !r.Status.Valid() {
		return ErrInvalidStatus
	}
	if r.Mood != "" && !r.Mood.Valid() {
		return ErrInvalidMood
	}
	if r.Notes != nil && r.Notes.RiskLevel != "" && !r.Notes.RiskLevel.Valid() {
		return ErrInvalidRiskLevel
	}
	return nil
}

// UpdateSessionFields is a partial update; nil fields are left untouched.
type UpdateSessionFields struct {
	ClientName *string   `json:"client_name,omitempty"`
	Date       *string   `json:"date,omitempty"`
	StartTime  *string   `json:"start_time,omitempty"`
	EndTime    *string   `json:"end_time,omitempty"`
	Type       *Type     `json:"type,omitempty"`
	Status     *Status   `json:"status,omitempty"`
	Objectives *[]string `json:"objectives,omitempty"`
	Outcomes   *[]string `json:"outcomes,omitempty"`
	NextSteps  *[]string `json:"next_steps,omitempty"`
	Mood       *Mood     `json:"mood,omitempty"`
	Meta       *Meta     `json:"meta,omitempty"`
	Notes      *Notes    `json:"notes,omitempty"`
}

// Validate rejects updates carrying unknown enum values or unparseable times.
func (f *UpdateSessionFields) Validate() error {
	if f.Date != nil {
		if _, err := time.Parse(DateLayout, *f.Date); err != nil {
			return ErrInvalidDate
		}
	}
	if f.StartTime != nil {
		if _, err := time.Parse(TimeLayout, *f.StartTime); err != nil {
			return ErrInvalidTime
		}
	}
	if f.EndTime != nil {
		if _, err := time.Parse(TimeLayout, *f.EndTime); err != nil {
			return ErrInvalidTime
		}
	}
	if f.Type != nil && !f.Type.Valid() {
		return ErrInvalidType
	}
	if f.Status != nil && !f.Status.Valid() {
		return ErrInvalidStatus
	}
	if f.Mood != nil && *f.Mood != "" && !f.Mood.Valid() {
		return ErrInvalidMood
	}
	if f.Notes != nil && f.Notes.RiskLevel != "" && !f.Notes.RiskLevel.Valid() {
		return ErrInvalidRiskLevel
	}
	return nil
}

// Apply merges the non-nil fields into the session.
func (f *UpdateSessionFields) Apply(s *Session) {
	if f.ClientName != nil {
		s.ClientName = *f.ClientName
	}
	if f.Date != nil {
		s.Date = *f.Date
	}
	if f.StartTime != nil {
		s.StartTime = *f.StartTime
	}
	if f.EndTime != nil {
		s.EndTime = *f.EndTime
	}
	if f.Type != nil {
		s.Type = *f.Type
	}
	if f.Status != nil {
		s.Status = *f.Status
	}
	if f.Objectives != nil {
		s.Objectives = *f.Objectives
	}
	if f.Outcomes != nil {
		s.Outcomes = *f.Outcomes
	}
	if f.NextSteps != nil {
		s.NextSteps = *f.NextSteps
	}
	if f.Mood != nil {
		s.Mood = *f.Mood
	}
	if f.Meta != nil {
		s.Meta = *f.Meta
	}
	if f.Notes != nil {
		s.Notes = f.Notes
	}
}
