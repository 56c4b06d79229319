package clients

import "errors"

var (
	// ErrInvalidName is returned when the name is missing or blank
	ErrInvalidName = errors.New("name is required")

	// ErrMissingContact is returned when both email and phone are missing
	ErrMissingContact = errors.New("either email or phone is required")

	// ErrInvalidStatus is returned for an unknown client status
	ErrInvalidStatus = errors.New("invalid client status")

	// ErrInvalidPreference is returned for an unknown preference value
	ErrInvalidPreference = errors.New("invalid client preference")

	// ErrClientNotFound is returned when a client is not found
	ErrClientNotFound = errors.New("client not found")
)
