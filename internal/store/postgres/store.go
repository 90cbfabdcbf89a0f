// Package postgres implements the Record Store on PostgreSQL via a pgx
// connection pool. Save rewrites the users table inside one transaction,
// preserving the whole-collection-replace contract of the store boundary.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/prn-tf/roster/internal/domain"
	"github.com/prn-tf/roster/internal/store"
)

// Config holds PostgreSQL connection settings.
type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string

	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// DSN returns the PostgreSQL connection string.
func (c Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

// Store persists the user collection in a single PostgreSQL table.
type Store struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

const schema = `
CREATE TABLE IF NOT EXISTS users (
	position INTEGER PRIMARY KEY,
	id       TEXT NOT NULL,
	name     TEXT NOT NULL,
	username TEXT NOT NULL,
	email    TEXT NOT NULL
)`

// New creates a connection pool and ensures the schema.
func New(ctx context.Context, cfg Config, logger zerolog.Logger) (*Store, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("postgres: parse config: %w", err)
	}

	if cfg.MaxOpenConns > 0 {
		poolConfig.MaxConns = int32(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		poolConfig.MinConns = int32(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		poolConfig.MaxConnLifetime = cfg.ConnMaxLifetime
	}
	poolConfig.ConnConfig.ConnectTimeout = 10 * time.Second

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("postgres: create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres: ping database: %w", err)
	}
	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres: ensure schema: %w", err)
	}

	logger.Info().
		Str("host", cfg.Host).
		Int("port", cfg.Port).
		Str("database", cfg.Database).
		Msg("connected to PostgreSQL store")

	return &Store{
		pool:   pool,
		logger: logger.With().Str("store", "postgres").Logger(),
	}, nil
}

// Load returns the collection in stored order.
func (s *Store) Load(ctx context.Context) ([]domain.User, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, name, username, email FROM users ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("postgres: load collection: %w", err)
	}
	defer rows.Close()

	users := []domain.User{}
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Username, &u.Email); err != nil {
			return nil, fmt.Errorf("postgres: scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: iterate users: %w", err)
	}
	return users, nil
}

// Save replaces every row in one transaction.
func (s *Store) Save(ctx context.Context, users []domain.User) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("postgres: begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM users`); err != nil {
		return fmt.Errorf("postgres: clear collection: %w", err)
	}
	for i, u := range users {
		_, err := tx.Exec(ctx,
			`INSERT INTO users (position, id, name, username, email) VALUES ($1, $2, $3, $4, $5)`,
			i, u.ID, u.Name, u.Username, u.Email)
		if err != nil {
			return fmt.Errorf("postgres: insert user %s: %w", u.ID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("postgres: commit collection: %w", err)
	}
	s.logger.Debug().Int("users", len(users)).Msg("collection persisted")
	return nil
}

// Close closes the connection pool.
func (s *Store) Close() error {
	s.pool.Close()
	s.logger.Info().Msg("connection pool closed")
	return nil
}

// Ensure Store implements store.RecordStore
var _ store.RecordStore = (*Store)(nil)
