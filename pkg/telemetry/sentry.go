package telemetry

import (
	"fmt"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"
	sentryhttp "github.com/getsentry/sentry-go/http"

	"github.com/ghuser/menagerist/pkg/config"
)

const sentryFlushTimeout = 2 * time.Second

// SetupSentry initializes the Sentry SDK. No-ops if DSN is empty.
func SetupSentry(cfg *config.Config) error {
	if cfg.SentryDSN == "" {
		return nil
	}
	if err := sentry.Init(sentryOptions(cfg)); err != nil {
		return fmt.Errorf("sentry init: %w", err)
	}
	return nil
}

// sentryOptions tags every event with the storage and cache setup, since a
// crash in the memory backend and one in PostgreSQL are different bugs.
// Production samples a fifth of transactions; other environments sample all.
func sentryOptions(cfg *config.Config) sentry.ClientOptions {
	rate := 1.0
	if cfg.Environment == config.EnvProduction {
		rate = 0.2
	}
	cache := "disabled"
	if cfg.CacheEnabled() {
		cache = "redis"
	}
	return sentry.ClientOptions{
		Dsn:              cfg.SentryDSN,
		Environment:      cfg.Environment,
		Release:          cfg.ServiceName + "@" + cfg.ServiceVersion,
		TracesSampleRate: rate,
		Tags: map[string]string{
			"storage_backend": cfg.StorageBackend,
			"item_cache":      cache,
		},
	}
}

// SentryFlush flushes buffered events before process exit.
func SentryFlush() {
	sentry.Flush(sentryFlushTimeout)
}

// SentryMiddleware captures panics and re-panics so logger.Recovery still
// writes the 500.
func SentryMiddleware() func(http.Handler) http.Handler {
	return sentryhttp.New(sentryhttp.Options{Repanic: true, Timeout: sentryFlushTimeout}).Handle
}
