// Package store defines the Record Store boundary for Roster.
// A RecordStore persists the full user collection as one unit; there is
// no partial read or write, which keeps the failure model trivial: a
// failed Save is never observable as a half-written collection.
package store

import (
	"context"
	"errors"

	"github.com/prn-tf/roster/internal/domain"
)

// RecordStore persists the complete ordered user collection.
type RecordStore interface {
	// Load returns every persisted user in storage order, or an empty
	// sequence if nothing has been persisted yet.
	Load(ctx context.Context) ([]domain.User, error)

	// Save atomically replaces the persisted collection with users.
	Save(ctx context.Context, users []domain.User) error
}

// Closer is implemented by backends that hold external resources
// (database handles, file watchers).
type Closer interface {
	Close() error
}

// Store errors
var (
	// ErrCorrupt indicates the persisted collection could not be decoded.
	ErrCorrupt = errors.New("store: persisted collection is corrupt")

	// ErrUnknownBackend indicates the configured backend name is not supported.
	ErrUnknownBackend = errors.New("store: unknown backend")
)
