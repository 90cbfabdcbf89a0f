// Package service provides business logic services for Roster.
package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/rs/zerolog"

	"github.com/prn-tf/roster/internal/domain"
	"github.com/prn-tf/roster/internal/repository"
)

// emailPattern mirrors the client-side shape check: local@domain.tld.
var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// UserService handles user management operations. In the default
// configuration it only verifies that required fields are present on
// create; with strict enabled it also enforces email format and
// uniqueness server-side.
type UserService struct {
	users  repository.UserRepository
	strict bool
	logger zerolog.Logger
}

// NewUserService creates a new UserService.
func NewUserService(users repository.UserRepository, strict bool, logger zerolog.Logger) *UserService {
	return &UserService{
		users:  users,
		strict: strict,
		logger: logger.With().Str("service", "user").Logger(),
	}
}

// List returns the full collection in storage order.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.GetAll(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list users")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}
	return users, nil
}

// Get retrieves a user by id.
func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error().Err(err).Str("user_id", id).Msg("failed to get user")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}
	return user, nil
}

// Create adds a new user built from exactly the given fields.
func (s *UserService) Create(ctx context.Context, fields domain.UserFields) (*domain.User, error) {
	if !fields.Complete() {
		return nil, ErrMissingFields
	}
	if s.strict {
		if err := s.checkEmail(ctx, fields.Email, ""); err != nil {
			return nil, err
		}
	}

	user, err := s.users.Create(ctx, fields)
	if err != nil {
		s.logger.Error().Err(err).Str("username", fields.Username).Msg("failed to create user")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	s.logger.Info().
		Str("user_id", user.ID).
		Str("username", user.Username).
		Msg("user created")

	return user, nil
}

// Update shallow-merges the patch onto the stored user.
func (s *UserService) Update(ctx context.Context, id string, patch domain.UserPatch) (*domain.User, error) {
	if s.strict && patch.Email != nil {
		// Existence first: an unknown id is a 404, not a validation error.
		if _, err := s.users.GetByID(ctx, id); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrUserNotFound
			}
			s.logger.Error().Err(err).Str("user_id", id).Msg("failed to get user")
			return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
		}
		if err := s.checkEmail(ctx, *patch.Email, id); err != nil {
			return nil, err
		}
	}

	user, err := s.users.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error().Err(err).Str("user_id", id).Msg("failed to update user")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	s.logger.Info().Str("user_id", user.ID).Msg("user updated")
	return user, nil
}

// Delete removes a user. A missing id is reported as ErrUserNotFound so
// the HTTP layer can answer 404, while the repository itself treats the
// no-op delete as a valid outcome.
func (s *UserService) Delete(ctx context.Context, id string) error {
	removed, err := s.users.Delete(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", id).Msg("failed to delete user")
		return fmt.Errorf("%w: %v", ErrInternalError, err)
	}
	if !removed {
		return ErrUserNotFound
	}

	s.logger.Info().Str("user_id", id).Msg("user deleted")
	return nil
}

// checkEmail enforces format and uniqueness when strict mode is on.
// excludeID skips the record being edited in the uniqueness scan.
func (s *UserService) checkEmail(ctx context.Context, email, excludeID string) error {
	if !emailPattern.MatchString(strings.TrimSpace(email)) {
		return ErrInvalidEmail
	}

	users, err := s.users.GetAll(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to check email uniqueness")
		return fmt.Errorf("%w: %v", ErrInternalError, err)
	}
	for _, u := range users {
		if u.ID != excludeID && u.Email == email {
			return fmt.Errorf("%w: %s", ErrEmailTaken, email)
		}
	}
	return nil
}
