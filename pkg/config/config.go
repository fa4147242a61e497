package config

import (
	"fmt"
	"strings"

	"github.com/ardanlabs/conf/v3"
	"github.com/joho/godotenv"
)

// Environment name constants used in ENVIRONMENT config field.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTesting     = "testing"
)

// Storage backend names used in STORAGE_BACKEND config field.
const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

// Config holds all configuration for the application
type Config struct {
	// HTTP
	HTTPAddr           string `conf:"default::8080,env:HTTP_ADDR"`
	RateLimitPerMinute int    `conf:"default:100,env:RATE_LIMIT_PER_MINUTE"`
	// CORS: comma-separated list of allowed origins; use * to allow all (dev only)
	CORSAllowedOrigins string `conf:"default:*,env:CORS_ALLOWED_ORIGINS"`

	// Storage
	StorageBackend string `conf:"default:memory,enum:memory|postgres,env:STORAGE_BACKEND"`
	DatabaseURL    string `conf:"env:DATABASE_URL,noprint"`
	// Redis: empty disables the item cache; requires STORAGE_BACKEND=postgres
	RedisURL string `conf:"env:REDIS_URL"`

	// Application
	LogLevel    string `conf:"default:info,env:LOG_LEVEL"`
	Environment string `conf:"default:development,enum:development|testing|production,env:ENVIRONMENT"`

	// Observability
	ServiceName    string `conf:"default:menagerist,env:SERVICE_NAME"`
	ServiceVersion string `conf:"default:dev,env:SERVICE_VERSION"`
	OtelEndpoint   string `conf:"env:OTEL_ENDPOINT"`
	SentryDSN      string `conf:"env:SENTRY_DSN,noprint"`
}

// Load reads configuration from environment variables with sensible defaults
func Load() (*Config, error) {
	var cfg Config
	_ = godotenv.Load()
	if _, err := conf.Parse("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}

// UsesPostgres reports whether items are stored in PostgreSQL.
func (c *Config) UsesPostgres() bool {
	return c.StorageBackend == StoragePostgres
}

// CacheEnabled reports whether a Redis URL was configured.
func (c *Config) CacheEnabled() bool {
	return c.RedisURL != ""
}

// ValidateForProduction enforces security requirements when ENVIRONMENT=production.
// Returns an error if any critical settings are missing or unsafe.
// The storage and cache checks apply in every environment.
func ValidateForProduction(cfg *Config) error {
	var errs []string

	if cfg.UsesPostgres() && cfg.DatabaseURL == "" {
		errs = append(errs, "DATABASE_URL is required when STORAGE_BACKEND=postgres")
	}

	if cfg.CacheEnabled() && !cfg.UsesPostgres() {
		errs = append(errs, "REDIS_URL requires STORAGE_BACKEND=postgres (a cache over the in-memory store outlives it)")
	}

	if cfg.Environment == EnvProduction {
		if cfg.LogLevel == "debug" {
			errs = append(errs, "LOG_LEVEL must not be 'debug' in production (may leak sensitive data)")
		}

		if cfg.StorageBackend == StorageMemory {
			errs = append(errs, "STORAGE_BACKEND=memory loses all items on restart; use postgres in production")
		}

		if cfg.CORSAllowedOrigins == "*" {
			errs = append(errs, "CORS_ALLOWED_ORIGINS must list explicit origins in production")
		}
	}

	if cfg.RateLimitPerMinute <= 0 {
		errs = append(errs, fmt.Sprintf("RATE_LIMIT_PER_MINUTE must be positive (got %d)", cfg.RateLimitPerMinute))
	}

	if len(errs) == 0 {
		return nil
	}

	return fmt.Errorf("config validation failed: %s", strings.Join(errs, "; "))
}
