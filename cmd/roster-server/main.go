// Package main is the entry point for the Roster server, a small
// user-management web application: a JSON API over a whole-collection
// record store, plus an HTML dashboard.
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/prn-tf/roster/internal/config"
	"github.com/prn-tf/roster/internal/handler"
	"github.com/prn-tf/roster/internal/metrics"
	"github.com/prn-tf/roster/internal/repository"
	"github.com/prn-tf/roster/internal/service"
	"github.com/prn-tf/roster/internal/store"
	"github.com/prn-tf/roster/internal/store/factory"
)

// Version information (set at build time)
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg := config.MustLoad(*configPath)
	setupLogger(cfg.Logging)

	log.Info().
		Str("version", Version).
		Str("build_time", BuildTime).
		Str("git_commit", GitCommit).
		Str("backend", cfg.Store.Backend).
		Msg("starting Roster server")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	recordStore, err := factory.New(ctx, cfg.Store, log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize record store")
	}
	if closer, ok := recordStore.(store.Closer); ok {
		defer closer.Close()
	}

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New()
	}

	users := repository.NewUserRepository(recordStore)
	userService := service.NewUserService(users, cfg.Validation.Strict, log.Logger)
	userHandler := handler.NewUserHandler(userService, m, log.Logger)

	var dashboard *handler.DashboardHandler
	if cfg.Dashboard.Enabled {
		dashboard, err = handler.NewDashboardHandler(handler.DashboardConfig{
			Users:          userService,
			PageSize:       cfg.Dashboard.PageSize,
			MinQueryLength: cfg.Dashboard.MinQueryLength,
			Logger:         log.Logger,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize dashboard")
		}
	}

	// Report external edits to the data file (jsonfile backend only).
	if cfg.Store.Backend == "jsonfile" && cfg.Store.Watch {
		watcher, err := store.WatchFile(cfg.Store.Path, cfg.Store.WatchDelay, func() {
			log.Warn().Str("path", cfg.Store.Path).Msg("data file changed outside the server")
		}, log.Logger)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to start store watcher")
		}
		defer watcher.Close()
	}

	router := handler.NewRouter(handler.RouterConfig{
		Users:       userHandler,
		Dashboard:   dashboard,
		Metrics:     m,
		MetricsPath: cfg.Metrics.Path,
		Logger:      log.Logger,
	})

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router.Handler(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	case <-ctx.Done():
		log.Info().Msg("shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("graceful shutdown failed")
		}
	}
}

// setupLogger configures the global zerolog logger from config.
func setupLogger(cfg config.LoggingConfig) {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339Nano

	if cfg.Format == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
}
