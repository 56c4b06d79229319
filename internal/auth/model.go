package auth

import "time"

// License holds the practitioner's professional license details.
type License struct {
	Number         string `json:"number"`
	Type           string `json:"type"`
	State          string `json:"state"`
	ExpirationDate string `json:"expiration_date"`
}

// WorkingHours is the practitioner's weekly availability window.
type WorkingHours struct {
	Start string   `json:"start"`
	End   string   `json:"end"`
	Days  []string `json:"days"`
}

// UserPreferences holds scheduling defaults for the practitioner.
type UserPreferences struct {
	WorkingHours           WorkingHours `json:"working_hours"`
	DefaultSessionDuration int          `json:"default_session_duration"`
	Timezone               string       `json:"timezone"`
}

// TherapistUser is the signed-in practitioner.
type TherapistUser struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Email           string          `json:"email"`
	Phone           string          `json:"phone"`
	License         License         `json:"license"`
	Specializations []string        `json:"specializations"`
	Credentials     []string        `json:"credentials"`
	Avatar          string          `json:"avatar,omitempty"`
	Preferences     UserPreferences `json:"preferences"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// Location resolves the practitioner's configured timezone, falling back to
// UTC when unset or unknown.
func (u *TherapistUser) Location() *time.Location {
	if u == nil || u.Preferences.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(u.Preferences.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
