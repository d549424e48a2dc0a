package config

import (
	"time"

	infraconfig "github.com/kalabar794/landgenai/infrastructure/config"
	"github.com/kalabar794/landgenai/infrastructure/logger"
)

// Environments.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTest        = "test"
)

// Default configuration values.
const (
	defaultServiceName = "landgenai"
	defaultServicePort = 3000
	defaultVersion     = "0.1.0"

	defaultAnthropicModel     = "claude-3-5-sonnet-20241022"
	defaultAnthropicMaxTokens = 2000
	defaultAnthropicTimeout   = 60 * time.Second
	defaultFailureThreshold   = 5
	defaultBreakerTimeout     = 30 * time.Second

	defaultPexelsBaseURL     = "https://api.pexels.com"
	defaultPexelsPerPage     = 8
	defaultPexelsTimeout     = 10 * time.Second
	defaultPexelsMaxAttempts = 2

	defaultDatabaseURL = "file:local.db"
	defaultCacheTTL    = time.Hour

	defaultProdRateWindow   = 15 * time.Minute
	defaultProdRateRequests = 10
	defaultDevRateWindow    = 5 * time.Minute
	defaultDevRateRequests  = 50
)

// Config holds the application configuration.
type Config struct {
	Service   ServiceConfig   `yaml:"service"`
	Anthropic AnthropicConfig `yaml:"anthropic"`
	Pexels    PexelsConfig    `yaml:"pexels"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Mock      MockConfig      `yaml:"mock"`
	Logging   logger.Config   `yaml:"logging"`
}

// ServiceConfig holds service-level configuration.
type ServiceConfig struct {
	Name        string `yaml:"name"`
	Version     string `yaml:"version"`
	Port        int    `env:"PORT"      yaml:"port"`
	Debug       bool   `env:"APP_DEBUG" yaml:"debug"`
	Environment string `env:"APP_ENV"   yaml:"environment"`
	// Serverless is non-empty on Vercel-style hosts with no durable disk.
	Serverless string `env:"VERCEL" yaml:"serverless"`
}

// AnthropicConfig configures the content generator.
type AnthropicConfig struct {
	APIKey           string        `env:"ANTHROPIC_API_KEY"  yaml:"api_key"`
	Model            string        `env:"ANTHROPIC_MODEL"    yaml:"model"`
	MaxTokens        int           `yaml:"max_tokens"`
	Timeout          time.Duration `yaml:"timeout"`
	BaseURL          string        `env:"ANTHROPIC_BASE_URL" yaml:"base_url"`
	FailureThreshold int           `yaml:"failure_threshold"`
	BreakerTimeout   time.Duration `yaml:"breaker_timeout"`
}

// PexelsConfig configures the photo provider.
type PexelsConfig struct {
	APIKey      string        `env:"PEXELS_API_KEY"  yaml:"api_key"`
	BaseURL     string        `env:"PEXELS_BASE_URL" yaml:"base_url"`
	PerPage     int           `yaml:"per_page"`
	Timeout     time.Duration `yaml:"timeout"`
	MaxAttempts int           `yaml:"max_attempts"`
}

// DatabaseConfig locates the durable store.
type DatabaseConfig struct {
	URL string `env:"DATABASE_URL" yaml:"url"`
}

// RedisConfig enables the photo search cache when Address is set.
type RedisConfig struct {
	Address  string        `env:"REDIS_ADDRESS"  yaml:"address"`
	Password string        `env:"REDIS_PASSWORD" yaml:"password"`
	DB       int           `yaml:"db"`
	CacheTTL time.Duration `yaml:"cache_ttl"`
}

// RateLimitConfig bounds requests per client IP on the generation routes.
type RateLimitConfig struct {
	Enabled     *bool         `yaml:"enabled"`
	Window      time.Duration `yaml:"window"`
	MaxRequests int           `yaml:"max_requests"`
}

// IsEnabled defaults to true.
func (r RateLimitConfig) IsEnabled() bool {
	return r.Enabled == nil || *r.Enabled
}

// MockConfig adds artificial latency to mock responses.
type MockConfig struct {
	ContentDelay time.Duration `yaml:"content_delay"`
	ImagesDelay  time.Duration `yaml:"images_delay"`
}

// Load loads configuration from the specified path.
func Load(path string) (*Config, error) {
	return infraconfig.LoadWithDefaults[Config](path, setDefaults)
}

func setDefaults(cfg *Config) {
	setServiceDefaults(&cfg.Service)
	setAnthropicDefaults(&cfg.Anthropic)
	setPexelsDefaults(&cfg.Pexels)
	if cfg.Database.URL == "" {
		cfg.Database.URL = defaultDatabaseURL
	}
	if cfg.Redis.CacheTTL == 0 {
		cfg.Redis.CacheTTL = defaultCacheTTL
	}
	setRateLimitDefaults(&cfg.RateLimit, cfg.Service.Environment)
	cfg.Logging.SetDefaults()
}

func setServiceDefaults(svc *ServiceConfig) {
	if svc.Name == "" {
		svc.Name = defaultServiceName
	}
	if svc.Version == "" {
		svc.Version = defaultVersion
	}
	if svc.Port == 0 {
		svc.Port = defaultServicePort
	}
	if svc.Environment == "" {
		svc.Environment = EnvDevelopment
	}
}

func setAnthropicDefaults(a *AnthropicConfig) {
	if a.Model == "" {
		a.Model = defaultAnthropicModel
	}
	if a.MaxTokens == 0 {
		a.MaxTokens = defaultAnthropicMaxTokens
	}
	if a.Timeout == 0 {
		a.Timeout = defaultAnthropicTimeout
	}
	if a.FailureThreshold == 0 {
		a.FailureThreshold = defaultFailureThreshold
	}
	if a.BreakerTimeout == 0 {
		a.BreakerTimeout = defaultBreakerTimeout
	}
}

func setPexelsDefaults(p *PexelsConfig) {
	if p.BaseURL == "" {
		p.BaseURL = defaultPexelsBaseURL
	}
	if p.PerPage == 0 {
		p.PerPage = defaultPexelsPerPage
	}
	if p.Timeout == 0 {
		p.Timeout = defaultPexelsTimeout
	}
	if p.MaxAttempts == 0 {
		p.MaxAttempts = defaultPexelsMaxAttempts
	}
}

// setRateLimitDefaults: production allows 10 per 15m, elsewhere 50 per 5m.
func setRateLimitDefaults(rl *RateLimitConfig, env string) {
	window, limit := defaultDevRateWindow, defaultDevRateRequests
	if env == EnvProduction {
		window, limit = defaultProdRateWindow, defaultProdRateRequests
	}
	if rl.Window == 0 {
		rl.Window = window
	}
	if rl.MaxRequests == 0 {
		rl.MaxRequests = limit
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := infraconfig.ValidatePort("service.port", c.Service.Port); err != nil {
		return err
	}
	if err := infraconfig.ValidateOneOf("service.environment", c.Service.Environment,
		EnvDevelopment, EnvProduction, EnvTest); err != nil {
		return err
	}
	if err := infraconfig.ValidateLogLevel(c.Logging.Level); err != nil {
		return err
	}
	if err := infraconfig.ValidatePositive("anthropic.max_tokens", int64(c.Anthropic.MaxTokens)); err != nil {
		return err
	}
	return infraconfig.ValidatePositive("rate_limit.max_requests", int64(c.RateLimit.MaxRequests))
}

// IsProduction reports APP_ENV=production.
func (c *Config) IsProduction() bool { return c.Service.Environment == EnvProduction }

// IsTest reports APP_ENV=test.
func (c *Config) IsTest() bool { return c.Service.Environment == EnvTest }

// IsDevelopment reports APP_ENV=development.
func (c *Config) IsDevelopment() bool { return c.Service.Environment == EnvDevelopment }

// IsServerless reports whether VERCEL is set.
func (c *Config) IsServerless() bool { return c.Service.Serverless != "" }

// UseEphemeralStorage selects the in-memory store for test, production
// and serverless deployments.
func (c *Config) UseEphemeralStorage() bool {
	return c.IsTest() || c.IsProduction() || c.IsServerless()
}
