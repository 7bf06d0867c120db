package http

import (
	"time"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/brightrock/efficiency-platform/internal/observability"
)

// ServerConfig holds the app level settings of the fiber server.
type ServerConfig struct {
	Name           string
	RequestTimeout time.Duration
}

// NewServer builds the fiber app with the JSON codec, global middlewares and routes.
func NewServer(cfg ServerConfig, logger *zap.Logger, metrics *observability.Metrics, routes RouteConfig) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               cfg.Name,
		JSONEncoder:           json.Marshal,
		JSONDecoder:           json.Unmarshal,
		DisableStartupMessage: true,
	})
	RegisterMiddlewares(app, logger, metrics, cfg.RequestTimeout)
	if routes.AuthMiddleware != nil {
		routes.AuthMiddleware.OnDenial(metrics.RecordGuardDenial)
	}
	RegisterRoutes(app, routes)
	return app
}
