package repository

import "errors"

// Repository errors
var (
	// ErrNotFound indicates the requested user was not found.
	ErrNotFound = errors.New("not found")
)
