package calendar

import "errors"

var (
	// ErrMissingTitle is returned when the event title is missing
	ErrMissingTitle = errors.New("event title is required")

	// ErrInvalidTime is returned when event bounds are missing or reversed
	ErrInvalidTime = errors.New("event start and end must be valid timestamps with end after start")

	// ErrInvalidType is returned when the event type is not user-creatable
	ErrInvalidType = errors.New("invalid event type")

	// ErrEventNotFound is returned when an event is not found
	ErrEventNotFound = errors.New("event not found")
)
