// Package jsonfile implements the Record Store as a single JSON array in
// one file. Every Save rewrites the whole file via a temp-file rename, so
// a reader never observes a partially written collection.
package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/prn-tf/roster/internal/domain"
	"github.com/prn-tf/roster/internal/store"
)

// Store persists users as a JSON array at a fixed path.
type Store struct {
	path   string
	logger zerolog.Logger
}

// New creates a jsonfile store. The parent directory is created if it
// does not exist; the file itself is created on first Save.
func New(path string, logger zerolog.Logger) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("jsonfile: path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("jsonfile: create data dir: %w", err)
	}
	return &Store{
		path:   path,
		logger: logger.With().Str("store", "jsonfile").Logger(),
	}, nil
}

// Path returns the file backing the store.
func (s *Store) Path() string {
	return s.path
}

// Load reads the full collection. A missing file is an empty collection,
// not an error.
func (s *Store) Load(_ context.Context) ([]domain.User, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []domain.User{}, nil
		}
		return nil, fmt.Errorf("jsonfile: read %s: %w", s.path, err)
	}

	var users []domain.User
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", store.ErrCorrupt, s.path, err)
	}
	if users == nil {
		users = []domain.User{}
	}
	return users, nil
}

// Save replaces the persisted collection. The new content is written to a
// temp file in the same directory and renamed over the target, so a
// failed Save leaves the previous collection intact.
func (s *Store) Save(_ context.Context, users []domain.User) error {
	data, err := json.MarshalIndent(users, "", "  ")
	if err != nil {
		return fmt.Errorf("jsonfile: encode collection: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".users-*.json")
	if err != nil {
		return fmt.Errorf("jsonfile: create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("jsonfile: write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("jsonfile: close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("jsonfile: chmod temp file: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("jsonfile: replace %s: %w", s.path, err)
	}

	s.logger.Debug().Int("users", len(users)).Msg("collection persisted")
	return nil
}

// Ensure Store implements store.RecordStore
var _ store.RecordStore = (*Store)(nil)
