// Package config provides configuration management for the Roster server.
// Configuration can be loaded from YAML files and environment variables.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the complete application configuration.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Store      StoreConfig      `mapstructure:"store"`
	Validation ValidationConfig `mapstructure:"validation"`
	Dashboard  DashboardConfig  `mapstructure:"dashboard"`
	Logging    LoggingConfig    `mapstructure:"logging"`
	Metrics    MetricsConfig    `mapstructure:"metrics"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// Addr returns the listen address in host:port format.
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// StoreConfig holds record store settings.
// Supports jsonfile (default), sqlite, postgres, and s3 backends.
type StoreConfig struct {
	// Backend specifies the record store backend:
	// "jsonfile", "sqlite", "postgres", or "s3".
	Backend string `mapstructure:"backend"`

	// Path is the data file for the jsonfile backend, or the database
	// file for the sqlite backend.
	Path string `mapstructure:"path"`

	// Watch enables a file watcher (jsonfile backend only) that logs
	// when the data file is edited outside the server.
	Watch bool `mapstructure:"watch"`

	// WatchDelay is the quiet period before a file change is reported.
	WatchDelay time.Duration `mapstructure:"watch_delay"`

	SQLite   SQLiteStoreConfig   `mapstructure:"sqlite"`
	Postgres PostgresStoreConfig `mapstructure:"postgres"`
	S3       S3StoreConfig       `mapstructure:"s3"`
}

// SQLiteStoreConfig holds sqlite backend settings.
type SQLiteStoreConfig struct {
	JournalMode string `mapstructure:"journal_mode"` // WAL, DELETE, TRUNCATE, etc.
	BusyTimeout int    `mapstructure:"busy_timeout"` // Milliseconds to wait for locks
}

// PostgresStoreConfig holds postgres backend settings.
type PostgresStoreConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Database        string        `mapstructure:"database"`
	SSLMode         string        `mapstructure:"ssl_mode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// S3StoreConfig holds s3 backend settings.
type S3StoreConfig struct {
	Endpoint        string `mapstructure:"endpoint"`
	Region          string `mapstructure:"region"`
	Bucket          string `mapstructure:"bucket"`
	Key             string `mapstructure:"key"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	UsePathStyle    bool   `mapstructure:"use_path_style"`
}

// ValidationConfig holds server-side validation settings.
type ValidationConfig struct {
	// Strict enables server-side email format and uniqueness checks on
	// create and update. Off by default: in the default configuration
	// those checks are the client's responsibility and the server only
	// verifies that required fields are present.
	Strict bool `mapstructure:"strict"`
}

// DashboardConfig holds dashboard rendering settings.
type DashboardConfig struct {
	// Enabled serves the HTML dashboard at /dashboard.
	Enabled bool `mapstructure:"enabled"`

	// PageSize is the number of users per dashboard page.
	PageSize int `mapstructure:"page_size"`

	// MinQueryLength is the minimum trimmed search length before the
	// filter is applied.
	MinQueryLength int `mapstructure:"min_query_length"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// MetricsConfig holds Prometheus metrics settings.
type MetricsConfig struct {
	// Enabled determines if the /metrics endpoint is served.
	Enabled bool `mapstructure:"enabled"`

	// Path is the URL path for the metrics endpoint.
	Path string `mapstructure:"path"`
}

// Load reads configuration from the specified file and environment variables.
// Environment variables take precedence over file values.
// Environment variables are prefixed with ROSTER_ and use _ as separator.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix("ROSTER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/roster")
	}

	// Config file not found is acceptable - defaults and env vars apply.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 3001)
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 15*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	// Store defaults
	v.SetDefault("store.backend", "jsonfile")
	v.SetDefault("store.path", "./data/users.json")
	v.SetDefault("store.watch", false)
	v.SetDefault("store.watch_delay", 500*time.Millisecond)
	// SQLite defaults
	v.SetDefault("store.sqlite.journal_mode", "WAL")
	v.SetDefault("store.sqlite.busy_timeout", 5000)
	// Postgres defaults
	v.SetDefault("store.postgres.host", "localhost")
	v.SetDefault("store.postgres.port", 5432)
	v.SetDefault("store.postgres.user", "roster")
	v.SetDefault("store.postgres.password", "")
	v.SetDefault("store.postgres.database", "roster")
	v.SetDefault("store.postgres.ssl_mode", "prefer")
	v.SetDefault("store.postgres.max_open_conns", 5)
	v.SetDefault("store.postgres.max_idle_conns", 2)
	v.SetDefault("store.postgres.conn_max_lifetime", 5*time.Minute)
	// S3 defaults
	v.SetDefault("store.s3.region", "us-east-1")
	v.SetDefault("store.s3.key", "users.json")
	v.SetDefault("store.s3.use_path_style", true)

	// Validation defaults
	v.SetDefault("validation.strict", false)

	// Dashboard defaults
	v.SetDefault("dashboard.enabled", true)
	v.SetDefault("dashboard.page_size", 5)
	v.SetDefault("dashboard.min_query_length", 3)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	// Metrics defaults
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")
}

// Validate checks the configuration for required values and valid ranges.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535")
	}

	validBackends := map[string]bool{
		"jsonfile": true, "sqlite": true, "postgres": true, "s3": true,
	}
	if !validBackends[c.Store.Backend] {
		return fmt.Errorf("store.backend must be one of: jsonfile, sqlite, postgres, s3")
	}

	switch c.Store.Backend {
	case "jsonfile", "sqlite":
		if c.Store.Path == "" {
			return fmt.Errorf("store.path is required for the %s backend", c.Store.Backend)
		}
	case "postgres":
		if c.Store.Postgres.Host == "" {
			return fmt.Errorf("store.postgres.host is required for the postgres backend")
		}
		if c.Store.Postgres.Database == "" {
			return fmt.Errorf("store.postgres.database is required for the postgres backend")
		}
	case "s3":
		if c.Store.S3.Bucket == "" {
			return fmt.Errorf("store.s3.bucket is required for the s3 backend")
		}
		if c.Store.S3.Key == "" {
			return fmt.Errorf("store.s3.key is required for the s3 backend")
		}
	}

	if c.Dashboard.PageSize < 1 {
		return fmt.Errorf("dashboard.page_size must be at least 1")
	}
	if c.Dashboard.MinQueryLength < 0 {
		return fmt.Errorf("dashboard.min_query_length must not be negative")
	}

	validLevels := map[string]bool{
		"trace": true, "debug": true, "info": true,
		"warn": true, "error": true, "fatal": true, "panic": true,
	}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		return fmt.Errorf("logging.level must be one of: trace, debug, info, warn, error, fatal, panic")
	}

	return nil
}

// MustLoad loads configuration or panics on error.
// Useful for main function initialization.
func MustLoad(configPath string) *Config {
	cfg, err := Load(configPath)
	if err != nil {
		panic(fmt.Sprintf("failed to load configuration: %v", err))
	}
	return cfg
}
