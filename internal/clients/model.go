package clients

import (
	"strings"
	"time"
)

// Status describes where a client is in their course of care.
type Status string

const (
	StatusActive    Status = "active"
	StatusInactive  Status = "inactive"
	StatusCompleted Status = "completed"
	StatusOnHold    Status = "on-hold"
)

// Valid reports whether the status is one of the known values.
func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusCompleted, StatusOnHold:
		return true
	}
	return false
}

// CommunicationMethod is the client's preferred contact channel.
type CommunicationMethod string

const (
	ContactEmail CommunicationMethod = "email"
	ContactPhone CommunicationMethod = "phone"
	ContactText  CommunicationMethod = "text"
)

func (m CommunicationMethod) Valid() bool {
	switch m {
	case ContactEmail, ContactPhone, ContactText:
		return true
	}
	return false
}

// SessionType is the client's preferred session format.
type SessionType string

const (
	SessionInPerson SessionType = "in-person"
	SessionVirtual  SessionType = "virtual"
	SessionHybrid   SessionType = "hybrid"
)

func (t SessionType) Valid() bool {
	switch t {
	case SessionInPerson, SessionVirtual, SessionHybrid:
		return true
	}
	return false
}

// EmergencyContact is the person to reach if something goes wrong mid-care.
type EmergencyContact struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Relationship string `json:"relationship"`
	Email        string `json:"email,omitempty"`
}

// InsuranceInfo captures the client's coverage details.
type InsuranceInfo struct {
	Provider     string `json:"provider"`
	PolicyNumber string `json:"policy_number"`
	GroupNumber  string `json:"group_number,omitempty"`
}

// Preferences captures scheduling and contact preferences.
type Preferences struct {
	PreferredTime       string              `json:"preferred_time"`
	CommunicationMethod CommunicationMethod `json:"communication_method"`
	SessionType         SessionType         `json:"session_type"`
}

// ClientProfile is a client record owned by a single practitioner.
//
// TotalSessions and LastSession are computed from the session collection on
// read; they are never stored.
type ClientProfile struct {
	ID               string           `json:"id"`
	UserID           string           `json:"user_id"`
	Name             string           `json:"name"`
	Email            string           `json:"email"`
	Phone            string           `json:"phone"`
	DateOfBirth      string           `json:"date_of_birth"`
	EmergencyContact EmergencyContact `json:"emergency_contact"`
	Notes            string           `json:"notes"`
	Status           Status           `json:"status"`
	Diagnosis        string           `json:"diagnosis,omitempty"`
	Goals            []string         `json:"goals"`
	Insurance        *InsuranceInfo   `json:"insurance_info,omitempty"`
	Preferences      Preferences      `json:"preferences"`
	TotalSessions    int              `json:"total_sessions"`
	LastSession      string           `json:"last_session,omitempty"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

// CreateClientRequest is the payload for creating a client.
type CreateClientRequest struct {
	Name             string           `json:"name"`
	Email            string           `json:"email"`
	Phone            string           `json:"phone"`
	DateOfBirth      string           `json:"date_of_birth"`
	EmergencyContact EmergencyContact `json:"emergency_contact"`
	Notes            string           `json:"notes"`
	Status           Status           `json:"status"`
	Diagnosis        string           `json:"diagnosis,omitempty"`
	Goals            []string         `json:"goals"`
	Insurance        *InsuranceInfo   `json:"insurance_info,omitempty"`
	Preferences      Preferences      `json:"preferences"`
}

// Validate validates the create client request
func (r *CreateClientRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return ErrInvalidName
	}
	if r.Email == "" && r.Phone == "" {
		return ErrMissingContact
	}
	if !r.Status.Valid() {
		return ErrInvalidStatus
	}
	if r.Preferences.CommunicationMethod != "" && !r.Preferences.CommunicationMethod.Valid() {
		return ErrInvalidPreference
	}
	if r.Preferences.SessionType != "" && !r.Preferences.SessionType.Valid() {
		return ErrInvalidPreference
	}
	return nil
}

// UpdateClientFields is a partial update; nil fields are left untouched.
type UpdateClientFields struct {
	Name             *string           `json:"name,omitempty"`
	Email            *string           `json:"email,omitempty"`
	Phone            *string           `json:"phone,omitempty"`
	DateOfBirth      *string           `json:"date_of_birth,omitempty"`
	EmergencyContact *EmergencyContact `json:"emergency_contact,omitempty"`
	Notes            *string           `json:"notes,omitempty"`
	Status           *Status           `json:"status,omitempty"`
	Diagnosis        *string           `json:"diagnosis,omitempty"`
	Goals            *[]string         `json:"goals,omitempty"`
	Insurance        *InsuranceInfo    `json:"insurance_info,omitempty"`
	Preferences      *Preferences      `json:"preferences,omitempty"`
}

// Validate rejects updates that would move a client into an unknown state.
func (f *UpdateClientFields) Validate() error {
	if f.Status != nil && !f.Status.Valid() {
		return ErrInvalidStatus
	}
	if f.Name != nil && strings.TrimSpace(*f.Name) == "" {
		return ErrInvalidName
	}
	if f.Preferences != nil {
		if f.Preferences.CommunicationMethod != "" && !f.Preferences.CommunicationMethod.Valid() {
			return ErrInvalidPreference
		}
		if f.Preferences.SessionType != "" && !f.Preferences.SessionType.Valid() {
			return ErrInvalidPreference
		}
	}
	return nil
}

// Apply merges the non-nil fields into the profile.
func (f *UpdateClientFields) Apply(c *ClientProfile) {
	if f.Name != nil {
		c.Name = *f.Name
	}
	if f.Email != nil {
		c.Email = *f.Email
	}
	if f.Phone != nil {
		c.Phone = *f.Phone
	}
	if f.DateOfBirth != nil {
		c.DateOfBirth = *f.DateOfBirth
	}
	if f.EmergencyContact != nil {
		c.EmergencyContact = *f.EmergencyContact
	}
	if f.Notes != nil {
		c.Notes = *f.Notes
	}
	if f.Status != nil {
		c.Status = *f.Status
	}
	if f.Diagnosis != nil {
		c.Diagnosis = *f.Diagnosis
	}
	if f.Goals != nil {
		c.Goals = *f.Goals
	}
	if f.Insurance != nil {
		c.Insurance = f.Insurance
	}
	if f.Preferences != nil {
		c.Preferences = *f.Preferences
	}
}
