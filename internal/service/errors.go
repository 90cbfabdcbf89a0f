package service

import "errors"

// Common service errors.
var (
	// ErrUserNotFound indicates the requested user does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrMissingFields indicates a create request omitted one or more of
	// name, username, and email.
	ErrMissingFields = errors.New("all fields are required")

	// ErrInvalidEmail indicates the email failed the format check.
	// Only returned when strict validation is enabled.
	ErrInvalidEmail = errors.New("invalid email format")

	// ErrEmailTaken indicates another user already has the email.
	// Only returned when strict validation is enabled.
	ErrEmailTaken = errors.New("email already in use")

	// ErrInternalError wraps unexpected store failures.
	ErrInternalError = errors.New("internal server error")
)
