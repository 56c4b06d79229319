package sessions

import "errors"

var (
	// ErrMissingClient is returned when no client id is supplied
	ErrMissingClient = errors.New("client id is required")

	// ErrInvalidDate is returned for an unparseable session date
	ErrInvalidDate = errors.New("invalid session date, use YYYY-MM-DD")

	// ErrInvalidTime is returned for an unparseable start/end time
	ErrInvalidTime = errors.New("invalid session time, use HH:MM")

	// ErrInvalidType is returned for an unknown session type
	ErrInvalidType = errors.New("invalid session type")

	// ErrInvalidStatus is returned for an unknown session status
	ErrInvalidStatus = errors.New("invalid session status")

	// ErrInvalidMood is returned for an unknown session mood
	ErrInvalidMood = errors.New("invalid session mood")

	// ErrInvalidRiskLevel is returned for an unknown notes risk level
	ErrInvalidRiskLevel = errors.New("invalid risk level")

	// ErrSessionNotFound is returned when a session is not found
	ErrSessionNotFound = errors.New("session not found")
)
