// Package repository defines the domain-level CRUD operations for Roster.
// The interface abstracts record access so the service layer does not
// care which record store backs it.
package repository

import (
	"context"

	"github.com/prn-tf/roster/internal/domain"
)

// UserRepository defines the interface for user data access.
type UserRepository interface {
	// GetAll returns the full collection in storage order.
	GetAll(ctx context.Context) ([]domain.User, error)

	// GetByID returns the matching user, or ErrNotFound. Absence is a
	// valid result, not a failure of the store.
	GetByID(ctx context.Context, id string) (*domain.User, error)

	// Create constructs a user from exactly the given fields, assigns a
	// fresh id, appends it to the collection, and persists.
	Create(ctx context.Context, fields domain.UserFields) (*domain.User, error)

	// Update shallow-merges the patch onto the stored user and persists.
	// Returns ErrNotFound if no user has the id.
	Update(ctx context.Context, id string, patch domain.UserPatch) (*domain.User, error)

	// Delete removes the user if present. The boolean reports whether a
	// removal occurred; a missing id is not an error.
	Delete(ctx context.Context, id string) (bool, error)
}
