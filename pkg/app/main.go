package app

import (
	"net/http"

	"github.com/ghuser/webapp/pkg/auth"
	"github.com/ghuser/webapp/pkg/cache"
	"github.com/ghuser/webapp/pkg/config"
	"github.com/ghuser/webapp/pkg/database"
	"github.com/ghuser/webapp/pkg/events"
	"github.com/ghuser/webapp/pkg/logger"
)

// Application holds shared infrastructure dependencies for all services.
// Pass to every service's Routes call during server initialization.
//
// Logging: app.Logger is backed by a trace-aware handler. Use slog's context
// methods and trace_id, span_id, and request_id are injected automatically:
//
//	app.Logger.InfoContext(ctx, "product created", "product_id", id)
//	app.Logger.ErrorContext(ctx, "failed to save", "error", err)
//
// Use app.Logger.Info/Error (no context) only for startup and shutdown messages.
type Application struct {
	Config   *config.Config
	Db       *database.Database
	Logger   logger.Logger
	EventBus *events.EventBus
	Redis    *cache.RedisClient // nil when CACHE_ENABLED=false
	Hasher   auth.Hasher

	// Authenticate is the HTTP Basic middleware shared by every protected
	// route. Set by cmd/api once the account resolver is built.
	Authenticate func(next http.Handler) http.Handler
}
