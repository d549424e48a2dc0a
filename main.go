package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	goredis "github.com/redis/go-redis/v9"

	infraconfig "github.com/kalabar794/landgenai/infrastructure/config"
	"github.com/kalabar794/landgenai/infrastructure/logger"
	infraredis "github.com/kalabar794/landgenai/infrastructure/redis"
	"github.com/kalabar794/landgenai/internal/api"
	"github.com/kalabar794/landgenai/internal/config"
	"github.com/kalabar794/landgenai/internal/generator"
	"github.com/kalabar794/landgenai/internal/images"
	"github.com/kalabar794/landgenai/internal/keys"
	"github.com/kalabar794/landgenai/internal/pexels"
	"github.com/kalabar794/landgenai/internal/storage"
	"github.com/kalabar794/landgenai/internal/telemetry"
)

const serviceName = "landgenai"

func main() {
	os.Exit(run())
}

func run() int {
	// Load configuration
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return 1
	}

	// Initialize logger
	log, err := createLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		return 1
	}
	defer func() { _ = log.Sync() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Open the landing page store
	store, err := storage.Open(cfg, log)
	if err != nil {
		log.Error("Failed to open storage", logger.Error(err))
		return 1
	}
	defer func() { _ = store.Close() }()

	if initErr := store.Initialize(ctx); initErr != nil {
		log.Error("Failed to initialize storage", logger.Error(initErr))
		return 1
	}

	return runServer(ctx, cfg, log, store)
}

// loadConfig loads and validates configuration.
func loadConfig() (*config.Config, error) {
	configPath := infraconfig.GetConfigPath("config.yml")
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if validationErr := cfg.Validate(); validationErr != nil {
		return nil, fmt.Errorf("validate config: %w", validationErr)
	}
	return cfg, nil
}

// createLogger creates a logger instance from configuration.
func createLogger(cfg *config.Config) (logger.Logger, error) {
	log, err := logger.New(logger.Config{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		Development: cfg.Service.Debug,
		OutputPaths: cfg.Logging.OutputPaths,
	})
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}
	return log.With(logger.String("service", serviceName)), nil
}

// connectRedis returns nil when no address is configured. A configured
// but unreachable Redis is logged and skipped; the cache is optional.
func connectRedis(ctx context.Context, cfg *config.Config, log logger.Logger) *goredis.Client {
	client, err := infraredis.NewClient(ctx, infraredis.Config{
		Address:  cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if errors.Is(err, infraredis.ErrEmptyAddress) {
		return nil
	}
	if err != nil {
		log.Warn("Redis unavailable, photo cache disabled", logger.Error(err))
		return nil
	}

	log.Info("Redis connected", logger.String("address", cfg.Redis.Address))
	return client
}

// runServer creates all dependencies and starts the HTTP server.
func runServer(ctx context.Context, cfg *config.Config, log logger.Logger, store storage.Store) int {
	metrics := telemetry.NewDefaultProvider()
	status := keys.Validate(cfg.Anthropic.APIKey, cfg.Pexels.APIKey)

	log.Info("Upstream keys checked",
		logger.String("environment", cfg.Service.Environment),
		logger.String("storage", store.Mode()),
		logger.Bool("llm_configured", status.HasValidLLMKey),
		logger.Bool("photos_configured", status.HasValidPhotoKey),
		logger.String("anthropic_key", keys.Mask(cfg.Anthropic.APIKey)),
		logger.String("pexels_key", keys.Mask(cfg.Pexels.APIKey)),
	)

	// Photo search, with the optional Redis cache
	var cache images.Cache
	var redisPing func(context.Context) error
	if client := connectRedis(ctx, cfg, log); client != nil {
		defer func() { _ = client.Close() }()
		cache = images.NewRedisCache(client, cfg.Redis.CacheTTL)
		redisPing = func(pingCtx context.Context) error { return client.Ping(pingCtx).Err() }
	}

	photos := pexels.NewClient(pexels.Config{
		APIKey:      cfg.Pexels.APIKey,
		BaseURL:     cfg.Pexels.BaseURL,
		Timeout:     cfg.Pexels.Timeout,
		MaxAttempts: cfg.Pexels.MaxAttempts,
	}, log)
	fetcher := images.NewFetcher(photos, cache, cfg.Pexels.PerPage, metrics, log)

	// Content generation
	var completer generator.Completer
	if status.HasValidLLMKey {
		completer = generator.NewAnthropicCompleter(generator.AnthropicConfig{
			APIKey:    cfg.Anthropic.APIKey,
			Model:     cfg.Anthropic.Model,
			MaxTokens: cfg.Anthropic.MaxTokens,
			BaseURL:   cfg.Anthropic.BaseURL,
		})
	}
	live := generator.New(completer, generator.Config{
		Timeout:          cfg.Anthropic.Timeout,
		FailureThreshold: cfg.Anthropic.FailureThreshold,
		BreakerTimeout:   cfg.Anthropic.BreakerTimeout,
	}, metrics, log)
	mock := generator.NewMockGenerator(cfg.Mock.ContentDelay, metrics)

	server := api.NewServer(ctx, api.Dependencies{
		Config:    cfg,
		Logger:    log,
		Store:     store,
		Generator: live,
		Mock:      mock,
		Fetcher:   fetcher,
		Proxy:     photos,
		Metrics:   metrics,
		RedisPing: redisPing,
	})

	log.Info("Starting landgenai",
		logger.Int("port", cfg.Service.Port),
		logger.String("version", cfg.Service.Version),
	)

	if err := server.RunWithGracefulShutdown(ctx); err != nil {
		log.Error("Server error", logger.Error(err))
		return 1
	}

	log.Info("landgenai stopped")
	return 0
}
