package app

import (
	"github.com/ghuser/menagerist/pkg/cache"
	"github.com/ghuser/menagerist/pkg/config"
	"github.com/ghuser/menagerist/pkg/database"
	"github.com/ghuser/menagerist/pkg/events"
	"github.com/ghuser/menagerist/pkg/logger"
)

// Application holds shared infrastructure dependencies for all services.
// Build it once in the composition root and pass it to each bounded
// context's services.New.
//
// Db and EventBus are nil with STORAGE_BACKEND=memory; Redis is nil when
// REDIS_URL is empty. Services must pick adapters accordingly.
//
// Logging: app.Logger is backed by a trace-aware handler: use slog's context methods
// and trace_id, span_id, and request_id are injected automatically:
//
//	app.Logger.InfoContext(ctx, "item created", "item_id", id)
//	app.Logger.ErrorContext(ctx, "failed to save", "error", err)
//
// Use app.Logger.Info/Error (no context) only for startup and shutdown messages.
type Application struct {
	Config   *config.Config
	Db       *database.Database
	Logger   logger.Logger
	EventBus *events.EventBus
	Redis    *cache.RedisClient
}
