package gin

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/north-cloud/seo-generator/infrastructure/jwt"
	"github.com/jonesrussell/north-cloud/seo-generator/infrastructure/logger"
)

// ServerBuilder assembles a Server with a fluent API.
type ServerBuilder struct {
	config       *Config
	logger       logger.Logger
	setupRoutes  func(*gin.Engine)
	healthChecks map[string]HealthChecker
}

// NewServerBuilder starts a builder for serviceName listening on port.
func NewServerBuilder(serviceName string, port int) *ServerBuilder {
	return &ServerBuilder{
		config:       NewConfig(serviceName, port),
		healthChecks: make(map[string]HealthChecker),
	}
}

// WithLogger sets the logger used by the middleware and lifecycle messages.
func (b *ServerBuilder) WithLogger(log logger.Logger) *ServerBuilder {
	b.logger = log
	return b
}

// WithDebug toggles Gin debug mode.
func (b *ServerBuilder) WithDebug(debug bool) *ServerBuilder {
	b.config.Debug = debug
	return b
}

// WithVersion sets the version reported by /health.
func (b *ServerBuilder) WithVersion(version string) *ServerBuilder {
	b.config.ServiceVersion = version
	return b
}

// WithCORSOrigins restricts CORS to origins. An empty list keeps the default.
func (b *ServerBuilder) WithCORSOrigins(origins []string) *ServerBuilder {
	if len(origins) > 0 {
		b.config.CORS.AllowedOrigins = origins
	}
	return b
}

// WithTimeouts sets the read, write and idle timeouts. Zero keeps the default.
func (b *ServerBuilder) WithTimeouts(read, write, idle time.Duration) *ServerBuilder {
	if read > 0 {
		b.config.ReadTimeout = read
	}
	if write > 0 {
		b.config.WriteTimeout = write
	}
	if idle > 0 {
		b.config.IdleTimeout = idle
	}
	return b
}

// WithHealthCheck registers a named check reported by /health.
func (b *ServerBuilder) WithHealthCheck(name string, checker HealthChecker) *ServerBuilder {
	b.healthChecks[name] = checker
	return b
}

// WithDatabaseHealthCheck reports the database as unhealthy when ping fails.
func (b *ServerBuilder) WithDatabaseHealthCheck(ping func() error) *ServerBuilder {
	return b.WithHealthCheck("database", PingHealthChecker("Database", ping, HealthStatusUnhealthy))
}

// WithRedisHealthCheck reports Redis as degraded when ping fails; events are optional.
func (b *ServerBuilder) WithRedisHealthCheck(ping func() error) *ServerBuilder {
	return b.WithHealthCheck("redis", PingHealthChecker("Redis", ping, HealthStatusDegraded))
}

// WithElasticsearchHealthCheck reports the search index as degraded when ping fails.
func (b *ServerBuilder) WithElasticsearchHealthCheck(ping func() error) *ServerBuilder {
	return b.WithHealthCheck("elasticsearch", PingHealthChecker("Elasticsearch", ping, HealthStatusDegraded))
}

// WithRoutes sets the function that registers service routes.
func (b *ServerBuilder) WithRoutes(setupRoutes func(*gin.Engine)) *ServerBuilder {
	b.setupRoutes = setupRoutes
	return b
}

// Build creates the Server. Health routes are registered before service routes.
func (b *ServerBuilder) Build() *Server {
	if b.logger == nil {
		b.logger = logger.Must(logger.Config{Development: b.config.Debug, Service: b.config.ServiceName})
	}

	setup := func(router *gin.Engine) {
		RegisterHealthRoutes(router, HealthOptions{
			ServiceName:    b.config.ServiceName,
			ServiceVersion: b.config.ServiceVersion,
			Checks:         b.healthChecks,
		})
		if b.setupRoutes != nil {
			b.setupRoutes(router)
		}
	}

	return NewServer(b.config, b.logger, setup)
}

// ProtectedGroup returns a route group guarded by JWT authentication. With an
// empty secret the group is open, which suits local development.
func ProtectedGroup(router gin.IRouter, path, jwtSecret string) *gin.RouterGroup {
	group := router.Group(path)
	if jwtSecret != "" {
		group.Use(jwt.Middleware(jwtSecret))
	}
	return group
}
