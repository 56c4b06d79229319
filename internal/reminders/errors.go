package reminders

import "errors"

var (
	// ErrMissingTitle is returned when the title is missing or blank
	ErrMissingTitle = errors.New("title is required")

	// ErrInvalidDueDate is returned for an unparseable due date
	ErrInvalidDueDate = errors.New("invalid due date, use YYYY-MM-DD")

	// ErrInvalidType is returned for an unknown reminder type
	ErrInvalidType = errors.New("invalid reminder type")

	// ErrInvalidPriority is returned for an unknown priority
	ErrInvalidPriority = errors.New("invalid reminder priority")

	// ErrReminderNotFound is returned when a reminder is not found
	ErrReminderNotFound = errors.New("reminder not found")
)
