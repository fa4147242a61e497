package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/sync/errgroup"

	_ "github.com/ghuser/menagerist/docs/swagger"
	itemmigrations "github.com/ghuser/menagerist/migrations/item"
	"github.com/ghuser/menagerist/pkg/app"
	"github.com/ghuser/menagerist/pkg/cache"
	"github.com/ghuser/menagerist/pkg/config"
	"github.com/ghuser/menagerist/pkg/database"
	"github.com/ghuser/menagerist/pkg/errhttp"
	"github.com/ghuser/menagerist/pkg/events"
	"github.com/ghuser/menagerist/pkg/httpx"
	"github.com/ghuser/menagerist/pkg/logger"
	"github.com/ghuser/menagerist/pkg/migrator"
	"github.com/ghuser/menagerist/pkg/telemetry"
	itemApi "github.com/ghuser/menagerist/services/item/application/api"
	itemServices "github.com/ghuser/menagerist/services/item/application/services"
)

// @title					Menagerist API
// @version				1.0
// @description			Item catalogue built with DDD and Clean Architecture.
// @contact.name			API Support
// @license.name			MIT
// @license.url			https://opensource.org/licenses/MIT
// @host					localhost:8080
// @BasePath				/api/v1
// @schemes				http https
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := config.ValidateForProduction(cfg); err != nil {
		slog.Error("config validation failed", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Telemetry: OTel tracing + metrics
	otelShutdown, metricsHandler, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		log.Error("failed to setup otel", "error", err)
		os.Exit(1) //nolint:gocritic // intentional: startup failure, deferred cleanup is best-effort
	}
	defer otelShutdown(context.Background()) //nolint:errcheck

	// Crash reporting: Sentry (optional; log and continue on failure)
	if err := telemetry.SetupSentry(cfg); err != nil {
		log.Warn("failed to setup sentry, continuing without crash reporting", "error", err)
	}
	defer telemetry.SentryFlush()

	appConfig := &app.Application{Config: cfg, Logger: log}
	checks := httpx.HealthChecks{}

	if cfg.UsesPostgres() {
		pool, err := database.NewPool(ctx, cfg.DatabaseURL, log)
		if err != nil {
			log.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer pool.Close() //nolint:errcheck
		log.Info("database pool connected")

		if err := migrator.Up(ctx, pool.DB(), itemmigrations.FS, log); err != nil {
			log.Error("failed to run migrations", "error", err)
			os.Exit(1)
		}

		eventBus, err := events.NewEventBus(pool.DB(), events.Options{
			ConsumerGroup: events.ConsumerGroup(cfg.ServiceName),
			Forwarder:     true,
		}, log)
		if err != nil {
			log.Error("failed to setup event bus", "error", err)
			os.Exit(1)
		}
		defer eventBus.Close() //nolint:errcheck

		if err := eventBus.StartForwarder(ctx); err != nil {
			log.Error("failed to start event forwarder", "error", err)
			os.Exit(1)
		}

		appConfig.Db = pool
		appConfig.EventBus = eventBus
		checks["database"] = pool
		checks["event_bus"] = eventBus
	} else {
		log.Warn("using in-memory item store; data is lost on restart")
	}

	if cfg.CacheEnabled() {
		redisClient, err := cache.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			log.Error("failed to connect to redis", "error", err)
			os.Exit(1)
		}
		defer redisClient.Close() //nolint:errcheck
		log.Info("redis connected")

		appConfig.Redis = redisClient
		checks["redis"] = redisClient
	}

	r := httpx.NewRouter(
		httpx.ServerConfig{
			ServiceName:        cfg.ServiceName,
			IsDevelopment:      cfg.Environment == config.EnvDevelopment,
			CORSAllowedOrigins: cfg.CORSAllowedOrigins,
			RateLimitPerMinute: cfg.RateLimitPerMinute,
		},
		httpx.Middlewares{
			Recovery: logger.Recovery(log),
			Sentry:   telemetry.SentryMiddleware(),
			Otel:     otelhttp.NewMiddleware(cfg.ServiceName),
			Logger:   logger.Middleware(log),
		},
	)

	health := httpx.HealthHandler(checks)
	r.Get("/health", health)
	r.Get("/api/health", health)
	r.Get("/metrics", metricsHandler.ServeHTTP)
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	errs := errhttp.New(log, cfg.Environment == config.EnvProduction)
	r.Route("/api/v1", func(r chi.Router) {
		registerRoutes(r, appConfig, errs)
	})

	srv := httpx.NewServer(cfg.HTTPAddr, r)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("server listening", "addr", srv.Addr, "env", cfg.Environment, "storage", cfg.StorageBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx) //nolint:contextcheck
	})

	if err := g.Wait(); err != nil {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}

// registerRoutes mounts all service routes under /api/v1.
// Add each new service's route function here.
func registerRoutes(r chi.Router, a *app.Application, errs *errhttp.Writer) {
	itemApi.ItemRoutes(r, itemServices.New(a), errs)
}
