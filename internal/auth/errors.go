package auth

import "errors"

var (
	// ErrAuthRequired is returned when an action needs a signed-in user
	ErrAuthRequired = errors.New("authentication required")

	// ErrInvalidCredentials is returned for a bad email/password pair
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrInvalidToken is returned for an expired or malformed token
	ErrInvalidToken = errors.New("invalid or expired token")

	// ErrUserNotFound is returned when no user matches the lookup
	ErrUserNotFound = errors.New("user not found")
)
