package bootstrap

import (
	"github.com/gin-gonic/gin"

	infragin "github.com/jonesrussell/north-cloud/seo-generator/infrastructure/gin"
	"github.com/jonesrussell/north-cloud/seo-generator/infrastructure/logger"
	"github.com/jonesrussell/north-cloud/seo-generator/infrastructure/metrics"
	"github.com/jonesrussell/north-cloud/seo-generator/internal/api"
	"github.com/jonesrussell/north-cloud/seo-generator/internal/config"
	"github.com/jonesrussell/north-cloud/seo-generator/internal/telemetry"
)

// Checks are the dependency pings reported by /health. Nil checks are skipped.
type Checks struct {
	Database      func() error
	Redis         func() error
	Elasticsearch func() error
}

// SetupHTTPServer builds the HTTP server with health checks and API routes.
func SetupHTTPServer(
	cfg *config.Config,
	svc api.PageService,
	tel *telemetry.Provider,
	checks Checks,
	log logger.Logger,
) *infragin.Server {
	handler := api.NewHandler(svc, log, cfg.Service.Version)
	httpMetrics := metrics.NewHTTPMetrics(tel.Registry, telemetry.Namespace)

	builder := infragin.NewServerBuilder(cfg.Service.Name, cfg.Server.Port).
		WithLogger(log).
		WithDebug(cfg.Service.Debug).
		WithVersion(cfg.Service.Version).
		WithCORSOrigins(cfg.Server.CORSOrigins).
		WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, cfg.Server.IdleTimeout).
		WithRoutes(func(router *gin.Engine) {
			api.SetupRoutes(router, handler, api.RouteOptions{
				JWTSecret:  cfg.Auth.JWTSecret,
				Metrics:    tel.Handler(),
				Middleware: []gin.HandlerFunc{httpMetrics.Middleware()},
			})
		})

	if checks.Database != nil {
		builder = builder.WithDatabaseHealthCheck(checks.Database)
	}
	if checks.Redis != nil {
		builder = builder.WithRedisHealthCheck(checks.Redis)
	}
	if checks.Elasticsearch != nil {
		builder = builder.WithElasticsearchHealthCheck(checks.Elasticsearch)
	}

	if cfg.Auth.JWTSecret == "" {
		log.Warn("AUTH_JWT_SECRET not set, write routes are unauthenticated")
	}
	return builder.Build()
}
