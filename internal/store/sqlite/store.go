// Package sqlite implements the Record Store on an embedded SQLite
// database using modernc.org/sqlite, a pure Go driver that needs no CGO.
// The whole-collection contract is kept: Save replaces every row inside a
// single transaction, so readers see either the old collection or the new
// one, never a mix.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"github.com/prn-tf/roster/internal/domain"
	"github.com/prn-tf/roster/internal/store"
)

// Config holds SQLite connection settings.
type Config struct {
	// Path is the path to the SQLite database file.
	// Use ":memory:" for an in-memory database.
	Path string

	// JournalMode sets the SQLite journal mode (WAL recommended).
	JournalMode string

	// BusyTimeout sets the busy timeout in milliseconds.
	BusyTimeout int
}

// DefaultConfig returns a default SQLite configuration.
func DefaultConfig(path string) Config {
	return Config{
		Path:        path,
		JournalMode: "WAL",
		BusyTimeout: 5000,
	}
}

// Store persists the user collection in a single SQLite table.
type Store struct {
	db     *sql.DB
	logger zerolog.Logger
}

const schema = `
CREATE TABLE IF NOT EXISTS users (
	position INTEGER PRIMARY KEY,
	id       TEXT NOT NULL,
	name     TEXT NOT NULL,
	username TEXT NOT NULL,
	email    TEXT NOT NULL
);
`

// New opens (and if necessary creates) the database and ensures the schema.
func New(ctx context.Context, cfg Config, logger zerolog.Logger) (*Store, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("sqlite: path is required")
	}
	if cfg.Path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
			return nil, fmt.Errorf("sqlite: create data dir: %w", err)
		}
	}

	connStr := fmt.Sprintf(
		"%s?_journal_mode=%s&_busy_timeout=%d",
		cfg.Path, cfg.JournalMode, cfg.BusyTimeout,
	)

	db, err := sql.Open("sqlite", connStr)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open database: %w", err)
	}

	// SQLite works best with a single writer.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: ping database: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: ensure schema: %w", err)
	}

	logger.Info().
		Str("path", cfg.Path).
		Str("journal_mode", cfg.JournalMode).
		Msg("connected to SQLite store")

	return &Store{
		db:     db,
		logger: logger.With().Str("store", "sqlite").Logger(),
	}, nil
}

// Load returns the collection in stored order.
func (s *Store) Load(ctx context.Context) ([]domain.User, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, username, email FROM users ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: load collection: %w", err)
	}
	defer rows.Close()

	users := []domain.User{}
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Username, &u.Email); err != nil {
			return nil, fmt.Errorf("sqlite: scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterate users: %w", err)
	}
	return users, nil
}

// Save replaces every row in one transaction.
func (s *Store) Save(ctx context.Context, users []domain.User) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM users`); err != nil {
		return fmt.Errorf("sqlite: clear collection: %w", err)
	}
	for i, u := range users {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO users (position, id, name, username, email) VALUES (?, ?, ?, ?, ?)`,
			i, u.ID, u.Name, u.Username, u.Email)
		if err != nil {
			return fmt.Errorf("sqlite: insert user %s: %w", u.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: commit collection: %w", err)
	}
	s.logger.Debug().Int("users", len(users)).Msg("collection persisted")
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	s.logger.Info().Msg("closing SQLite connection")
	return s.db.Close()
}

// Ensure Store implements store.RecordStore
var _ store.RecordStore = (*Store)(nil)
