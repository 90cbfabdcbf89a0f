package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/prn-tf/roster/internal/domain"
	"github.com/prn-tf/roster/internal/store"
)

// userRepository implements UserRepository over a record store.
//
// Every operation re-loads the full collection before mutating and
// re-saves it afterwards. There is no cache and no index; this trades
// performance for simplicity and suits the small collections this
// system is built for.
type userRepository struct {
	store store.RecordStore
}

// NewUserRepository creates a UserRepository backed by the given store.
func NewUserRepository(s store.RecordStore) UserRepository {
	return &userRepository{store: s}
}

// GetAll returns the full collection in storage order.
func (r *userRepository) GetAll(ctx context.Context) ([]domain.User, error) {
	return r.store.Load(ctx)
}

// GetByID returns the matching user or ErrNotFound.
func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	users, err := r.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].ID == id {
			u := users[i]
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

// Create appends a new user with a freshly generated id and persists.
//
// Ids are random UUIDs rather than a sequential counter: records may be
// deleted and re-created out of order, and an id must never be reused.
func (r *userRepository) Create(ctx context.Context, fields domain.UserFields) (*domain.User, error) {
	users, err := r.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	user := domain.NewUser(fields)
	user.ID = uuid.NewString()

	users = append(users, *user)
	if err := r.store.Save(ctx, users); err != nil {
		return nil, fmt.Errorf("persist created user: %w", err)
	}
	return user, nil
}

// Update merges the patch onto the stored user and persists. The patch
// carries no id field, so the identifier cannot be overwritten.
func (r *userRepository) Update(ctx context.Context, id string, patch domain.UserPatch) (*domain.User, error) {
	users, err := r.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	for i := range users {
		if users[i].ID != id {
			continue
		}
		users[i].Apply(patch)
		if err := r.store.Save(ctx, users); err != nil {
			return nil, fmt.Errorf("persist updated user: %w", err)
		}
		u := users[i]
		return &u, nil
	}
	return nil, ErrNotFound
}

// Delete removes the user if present and reports whether it did.
func (r *userRepository) Delete(ctx context.Context, id string) (bool, error) {
	users, err := r.store.Load(ctx)
	if err != nil {
		return false, err
	}

	filtered := users[:0:0]
	removed := false
	for _, u := range users {
		if u.ID == id {
			removed = true
			continue
		}
		filtered = append(filtered, u)
	}
	if !removed {
		return false, nil
	}

	if err := r.store.Save(ctx, filtered); err != nil {
		return false, fmt.Errorf("persist deletion: %w", err)
	}
	return true, nil
}
