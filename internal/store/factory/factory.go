// Package factory creates record stores based on configuration.
// It lives apart from package store so that backend packages can depend
// on the store interfaces without an import cycle.
package factory

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/prn-tf/roster/internal/config"
	"github.com/prn-tf/roster/internal/store"
	"github.com/prn-tf/roster/internal/store/jsonfile"
	"github.com/prn-tf/roster/internal/store/postgres"
	"github.com/prn-tf/roster/internal/store/s3"
	"github.com/prn-tf/roster/internal/store/sqlite"
)

// New creates the record store named by cfg.Backend.
func New(ctx context.Context, cfg config.StoreConfig, logger zerolog.Logger) (store.RecordStore, error) {
	switch cfg.Backend {
	case "jsonfile":
		return jsonfile.New(cfg.Path, logger)

	case "sqlite":
		return sqlite.New(ctx, sqlite.Config{
			Path:        cfg.Path,
			JournalMode: cfg.SQLite.JournalMode,
			BusyTimeout: cfg.SQLite.BusyTimeout,
		}, logger)

	case "postgres":
		return postgres.New(ctx, postgres.Config{
			Host:            cfg.Postgres.Host,
			Port:            cfg.Postgres.Port,
			User:            cfg.Postgres.User,
			Password:        cfg.Postgres.Password,
			Database:        cfg.Postgres.Database,
			SSLMode:         cfg.Postgres.SSLMode,
			MaxOpenConns:    cfg.Postgres.MaxOpenConns,
			MaxIdleConns:    cfg.Postgres.MaxIdleConns,
			ConnMaxLifetime: cfg.Postgres.ConnMaxLifetime,
		}, logger)

	case "s3":
		return s3.New(ctx, s3.Config{
			Endpoint:        cfg.S3.Endpoint,
			Region:          cfg.S3.Region,
			Bucket:          cfg.S3.Bucket,
			Key:             cfg.S3.Key,
			AccessKeyID:     cfg.S3.AccessKeyID,
			SecretAccessKey: cfg.S3.SecretAccessKey,
			UsePathStyle:    cfg.S3.UsePathStyle,
		}, logger)

	default:
		return nil, fmt.Errorf("%w: %q", store.ErrUnknownBackend, cfg.Backend)
	}
}
