// Package api assembles the landgenai HTTP server.
package api

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	infragin "github.com/kalabar794/landgenai/infrastructure/gin"
	"github.com/kalabar794/landgenai/infrastructure/logger"
	"github.com/kalabar794/landgenai/internal/config"
	"github.com/kalabar794/landgenai/internal/generator"
	"github.com/kalabar794/landgenai/internal/handler"
	"github.com/kalabar794/landgenai/internal/keys"
	"github.com/kalabar794/landgenai/internal/middleware"
	"github.com/kalabar794/landgenai/internal/storage"
	"github.com/kalabar794/landgenai/internal/telemetry"
)

const (
	defaultReadTimeout = 15 * time.Second
	// Generation can wait on the LLM for its full timeout.
	defaultWriteTimeout = 90 * time.Second
	defaultIdleTimeout  = 60 * time.Second
)

// Dependencies are the collaborators the server wires into handlers.
type Dependencies struct {
	Config    *config.Config
	Logger    logger.Logger
	Store     storage.Store
	Generator generator.ContentGenerator
	Mock      generator.ContentGenerator
	Fetcher   handler.ImageFetcher
	Proxy     handler.PhotoProxy
	Metrics   *telemetry.Provider
	// RedisPing enables the redis health check when set.
	RedisPing func(context.Context) error
}

// NewServer builds the HTTP server. The rate limiter cleanup goroutine
// runs until ctx is done.
func NewServer(ctx context.Context, deps Dependencies) *infragin.Server {
	cfg := deps.Config
	log := deps.Logger
	env := handler.EnvFromConfig(cfg)
	status := keys.Validate(cfg.Anthropic.APIKey, cfg.Pexels.APIKey)

	handlers := Handlers{
		Generate:     handler.NewGenerateHandler(deps.Generator, deps.Mock, status, env, log),
		Images:       handler.NewImagesHandler(deps.Fetcher, status.HasValidPhotoKey, cfg.Mock.ImagesDelay, env, log),
		LandingPages: handler.NewLandingPageHandler(deps.Store, env, log),
		Pexels:       handler.NewPexelsHandler(deps.Proxy, deps.Fetcher, env, log),
		Health:       handler.NewHealthHandler(cfg.Anthropic.APIKey, cfg.Pexels.APIKey, deps.Store, env),
	}

	var limiter *middleware.RateLimiter
	if cfg.RateLimit.IsEnabled() {
		limiter = middleware.NewRateLimiter(cfg.RateLimit.Window, cfg.RateLimit.MaxRequests, deps.Metrics, log)
		go limiter.Cleanup(ctx)
	}

	builder := infragin.NewServerBuilder(cfg.Service.Name, cfg.Service.Port).
		WithLogger(log).
		WithDebug(cfg.Service.Debug).
		WithVersion(cfg.Service.Version).
		WithTimeouts(defaultReadTimeout, defaultWriteTimeout, defaultIdleTimeout).
		WithMiddleware(middleware.SecurityHeaders(), deps.Metrics.Middleware()).
		WithDatabaseHealthCheck(deps.Store.Ping)

	if deps.RedisPing != nil {
		builder = builder.WithRedisHealthCheck(deps.RedisPing)
	}

	return builder.
		WithRoutes(func(router *gin.Engine) {
			SetupRoutes(router, handlers, limiter, deps.Metrics)
		}).
		Build()
}
