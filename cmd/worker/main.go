package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/ghuser/menagerist/pkg/app"
	"github.com/ghuser/menagerist/pkg/cache"
	"github.com/ghuser/menagerist/pkg/config"
	"github.com/ghuser/menagerist/pkg/database"
	"github.com/ghuser/menagerist/pkg/events"
	"github.com/ghuser/menagerist/pkg/logger"
	"github.com/ghuser/menagerist/pkg/telemetry"
	itemEvents "github.com/ghuser/menagerist/services/item/domain/events"
	"github.com/ghuser/menagerist/services/item/domain/models"
	"github.com/ghuser/menagerist/services/item/domain/repositories"
	"github.com/ghuser/menagerist/services/item/infrastructure/persistence/cached"
	"github.com/ghuser/menagerist/services/item/infrastructure/persistence/postgres"
)

// The worker keeps the Redis item read model in step with PostgreSQL by
// consuming item events. It needs STORAGE_BACKEND=postgres and REDIS_URL.
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

	if !cfg.UsesPostgres() || !cfg.CacheEnabled() {
		log.Error("worker requires STORAGE_BACKEND=postgres and REDIS_URL")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	otelShutdown, _, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		log.Error("failed to setup otel", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer otelShutdown(context.Background()) //nolint:errcheck

	if err := telemetry.SetupSentry(cfg); err != nil {
		log.Warn("failed to setup sentry, continuing without crash reporting", "error", err)
	}
	defer telemetry.SentryFlush()

	pool, err := database.NewPool(ctx, cfg.DatabaseURL, log)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close() //nolint:errcheck
	log.Info("database pool connected")

	eventBus, err := events.NewEventBus(pool.DB(), events.Options{
		ConsumerGroup: events.ConsumerGroup(cfg.ServiceName),
	}, log)
	if err != nil {
		log.Error("failed to setup event bus", "error", err)
		os.Exit(1)
	}
	defer eventBus.Close() //nolint:errcheck

	redisClient, err := cache.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}
	defer redisClient.Close() //nolint:errcheck
	log.Info("redis connected")

	appConfig := &app.Application{
		Config:   cfg,
		Db:       pool,
		Logger:   log,
		EventBus: eventBus,
		Redis:    redisClient,
	}

	if err := registerSubscribers(ctx, appConfig); err != nil {
		log.Error("failed to register subscribers", "error", err)
		os.Exit(1)
	}

	<-ctx.Done()
	log.Info("shutting down worker...")
	// EventBus.Close() (via defer) waits up to 30s for in-flight handlers.
}

// registerSubscribers wires all domain event handlers.
// Add new topics here as more services publish events.
func registerSubscribers(ctx context.Context, a *app.Application) error {
	// The repository is read without the cache decorator so the handlers
	// always see PostgreSQL's current state.
	h := &itemHandlers{
		repo:  postgres.NewItemRepository(a.Db, nil),
		cache: cached.NewRedisItemCache(cache.NewItemCache(a.Redis)),
		log:   a.Logger,
	}

	subs := map[string]func(context.Context, *message.Message) error{
		itemEvents.TopicItemCreated: h.handleItemUpserted,
		itemEvents.TopicItemUpdated: h.handleItemUpserted,
		itemEvents.TopicItemDeleted: h.handleItemDeleted,
	}

	topics := make([]string, 0, len(subs))
	for topic, handler := range subs {
		errCh, err := a.EventBus.Subscribe(ctx, topic, handler)
		if err != nil {
			return err
		}

		// Drain subscriber errors in background so the channel never blocks.
		go func() {
			for err := range errCh {
				a.Logger.ErrorContext(ctx, "subscriber error", "topic", topic, "error", err)
			}
		}()
		topics = append(topics, topic)
	}

	a.Logger.Info("event subscribers registered", "topics", topics)
	return nil
}

// itemHandlers keeps the Redis item cache in step with item events.
// Handlers must be idempotent; EventBus retries up to 3× on failure.
type itemHandlers struct {
	repo  repositories.ItemRepository
	cache cached.ItemCache
	log   logger.Logger
}

// handleItemUpserted serves item.created and item.updated, whose payloads
// share one shape. It warms the cache from the database rather than from the
// event payload, so a late event cannot resurrect a deleted item.
func (h *itemHandlers) handleItemUpserted(ctx context.Context, msg *message.Message) error {
	var evt itemEvents.ItemCreatedEvent
	if err := json.Unmarshal(msg.Payload, &evt); err != nil {
		return fmt.Errorf("decode item upsert event: %w", err)
	}
	id := models.ItemID(evt.ItemID)

	item, ok, err := h.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return h.evict(ctx, id)
	}

	if err := h.cache.Set(ctx, item); err != nil {
		return fmt.Errorf("warm item cache: %w", err)
	}
	h.log.InfoContext(ctx, "cache warmed", "item_id", id)
	return nil
}

func (h *itemHandlers) handleItemDeleted(ctx context.Context, msg *message.Message) error {
	var evt itemEvents.ItemDeletedEvent
	if err := json.Unmarshal(msg.Payload, &evt); err != nil {
		return fmt.Errorf("decode item.deleted: %w", err)
	}
	return h.evict(ctx, models.ItemID(evt.ItemID))
}

func (h *itemHandlers) evict(ctx context.Context, id models.ItemID) error {
	if err := h.cache.Delete(ctx, id); err != nil {
		return fmt.Errorf("evict item cache: %w", err)
	}
	h.log.InfoContext(ctx, "cache evicted", "item_id", id)
	return nil
}
