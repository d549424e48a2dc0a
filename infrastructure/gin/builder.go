package gin

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kalabar794/landgenai/infrastructure/logger"
)

// ServerBuilder assembles a Server step by step.
type ServerBuilder struct {
	config       *Config
	logger       logger.Logger
	setupRoutes  func(*gin.Engine)
	middleware   []gin.HandlerFunc
	healthChecks map[string]HealthChecker
}

// NewServerBuilder creates a builder with default configuration.
func NewServerBuilder(serviceName string, port int) *ServerBuilder {
	return &ServerBuilder{
		config:       NewConfig(serviceName, port),
		healthChecks: make(map[string]HealthChecker),
	}
}

// WithLogger sets the logger.
func (b *ServerBuilder) WithLogger(log logger.Logger) *ServerBuilder {
	b.logger = log
	return b
}

// WithDebug enables or disables gin debug mode.
func (b *ServerBuilder) WithDebug(debug bool) *ServerBuilder {
	b.config.Debug = debug
	return b
}

// WithVersion sets the service version.
func (b *ServerBuilder) WithVersion(version string) *ServerBuilder {
	b.config.ServiceVersion = version
	return b
}

// WithCORSOrigins sets allowed CORS origins.
func (b *ServerBuilder) WithCORSOrigins(origins []string) *ServerBuilder {
	b.config.CORS.AllowedOrigins = origins
	return b
}

// WithTimeouts sets the read, write and idle timeouts.
func (b *ServerBuilder) WithTimeouts(read, write, idle time.Duration) *ServerBuilder {
	b.config.ReadTimeout = read
	b.config.WriteTimeout = write
	b.config.IdleTimeout = idle
	return b
}

// WithMiddleware appends global middleware after the standard chain.
func (b *ServerBuilder) WithMiddleware(mw ...gin.HandlerFunc) *ServerBuilder {
	b.middleware = append(b.middleware, mw...)
	return b
}

// WithHealthCheck adds a named check to GET /health.
func (b *ServerBuilder) WithHealthCheck(name string, checker HealthChecker) *ServerBuilder {
	b.healthChecks[name] = checker
	return b
}

// WithDatabaseHealthCheck adds a database check to GET /health.
func (b *ServerBuilder) WithDatabaseHealthCheck(ping func(context.Context) error) *ServerBuilder {
	b.healthChecks["database"] = DatabaseHealthChecker(ping)
	return b
}

// WithRedisHealthCheck adds a Redis check. Failures report degraded.
func (b *ServerBuilder) WithRedisHealthCheck(ping func(context.Context) error) *ServerBuilder {
	b.healthChecks["redis"] = RedisHealthChecker(ping)
	return b
}

// WithRoutes sets the route setup function.
func (b *ServerBuilder) WithRoutes(setupRoutes func(*gin.Engine)) *ServerBuilder {
	b.setupRoutes = setupRoutes
	return b
}

// Build creates the server.
func (b *ServerBuilder) Build() *Server {
	if b.logger == nil {
		b.logger = logger.Must(logger.Config{
			Level:       logger.DefaultLevel,
			Development: b.config.Debug,
		})
	}

	setup := func(router *gin.Engine) {
		if len(b.middleware) > 0 {
			router.Use(b.middleware...)
		}

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
