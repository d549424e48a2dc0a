// Package generator drafts landing page copy with an LLM and falls back to
// canned content when the LLM cannot be used.
package generator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kalabar794/landgenai/infrastructure/circuitbreaker"
	"github.com/kalabar794/landgenai/infrastructure/logger"
	"github.com/kalabar794/landgenai/internal/domain"
	"github.com/kalabar794/landgenai/internal/telemetry"
)

var (
	// ErrInvalidAPIKey means the upstream rejected or lacks credentials.
	ErrInvalidAPIKey = errors.New("invalid API key")
	// ErrRateLimited means the upstream returned 429.
	ErrRateLimited = errors.New("rate limit exceeded")
	// ErrUnexpectedResponse means the completion could not be used as content.
	ErrUnexpectedResponse = errors.New("unexpected response from LLM")
)

const defaultTimeout = 60 * time.Second

// ContentGenerator produces copy for a brief.
type ContentGenerator interface {
	Generate(ctx context.Context, brief domain.MarketingBrief) (*domain.LandingPageContent, error)
}

// Completer returns the model's text for a prompt.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Config tunes a Generator.
type Config struct {
	// Timeout bounds one upstream call.
	Timeout          time.Duration
	FailureThreshold int
	BreakerTimeout   time.Duration
}

// Generator calls the LLM through a circuit breaker. Upstream failures
// degrade to FallbackContent.
type Generator struct {
	completer Completer
	breaker   *circuitbreaker.Breaker
	timeout   time.Duration
	metrics   *telemetry.Provider
	log       logger.Logger
}

// New builds a Generator. A nil completer always serves fallback content.
func New(completer Completer, cfg Config, metrics *telemetry.Provider, log logger.Logger) *Generator {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}

	breaker := circuitbreaker.New(circuitbreaker.Config{
		FailureThreshold: cfg.FailureThreshold,
		SuccessThreshold: 1,
		Timeout:          cfg.BreakerTimeout,
		IsFailure:        countsAsUpstreamFailure,
		OnStateChange: func(from, to circuitbreaker.State) {
			log.Warn("LLM circuit breaker state changed",
				logger.String("from", from.String()),
				logger.String("to", to.String()),
			)
		},
	})

	return &Generator{
		completer: completer,
		breaker:   breaker,
		timeout:   cfg.Timeout,
		metrics:   metrics,
		log:       log,
	}
}

// Generate returns LLM content, or fallback content when the LLM fails.
// The only error is the caller's cancelled context.
func (g *Generator) Generate(ctx context.Context, brief domain.MarketingBrief) (*domain.LandingPageContent, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("generate content: %w", err)
	}

	content, err := g.generate(ctx, brief)
	if err == nil {
		g.metrics.RecordGeneration(telemetry.SourceLLM)
		return content, nil
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, fmt.Errorf("generate content: %w", ctxErr)
	}

	logger.FromContextOr(ctx, g.log).Warn("Content generation failed, serving fallback content",
		logger.String("business_name", brief.BusinessName),
		logger.String("industry", brief.Industry),
		logger.Error(err),
	)
	g.metrics.RecordGeneration(telemetry.SourceFallback)
	return FallbackContent(brief), nil
}

func (g *Generator) generate(ctx context.Context, brief domain.MarketingBrief) (*domain.LandingPageContent, error) {
	if g.completer == nil {
		return nil, ErrInvalidAPIKey
	}

	prompt := BuildPrompt(brief)

	var text string
	start := time.Now()
	err := g.breaker.Execute(ctx, func(ctx context.Context) error {
		callCtx, cancel := context.WithTimeout(ctx, g.timeout)
		defer cancel()

		var callErr error
		text, callErr = g.completer.Complete(callCtx, prompt)
		return callErr
	})
	if !errors.Is(err, circuitbreaker.ErrCircuitOpen) {
		g.metrics.ObserveUpstream("anthropic", err, time.Since(start))
	}
	if err != nil {
		return nil, err
	}

	content, err := ParseContent(text)
	if err != nil {
		return nil, err
	}
	// The footer always names the business from the brief.
	content.Footer.CompanyName = brief.BusinessName
	return content, nil
}

// countsAsUpstreamFailure ignores callers that hung up.
func countsAsUpstreamFailure(err error) bool {
	return err != nil && !errors.Is(err, context.Canceled)
}

// ParseContent decodes the JSON object in text. Anything before the first
// '{' or after the last '}', such as a code fence, is ignored.
func ParseContent(text string) (*domain.LandingPageContent, error) {
	start := strings.IndexByte(text, '{')
	end := strings.LastIndexByte(text, '}')
	if start < 0 || end < start {
		return nil, fmt.Errorf("%w: no JSON object in completion", ErrUnexpectedResponse)
	}

	var content domain.LandingPageContent
	if err := json.Unmarshal([]byte(text[start:end+1]), &content); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnexpectedResponse, err)
	}

	if content.Features == nil {
		content.Features = []domain.Feature{}
	}
	if content.Testimonials == nil {
		content.Testimonials = []domain.Testimonial{}
	}
	if content.CTASections == nil {
		content.CTASections = []domain.CTASection{}
	}
	return &content, nil
}

// MockGenerator serves MockContent after an optional delay.
type MockGenerator struct {
	delay   time.Duration
	metrics *telemetry.Provider
}

// NewMockGenerator returns a MockGenerator. A zero delay responds at once.
func NewMockGenerator(delay time.Duration, metrics *telemetry.Provider) *MockGenerator {
	return &MockGenerator{delay: delay, metrics: metrics}
}

// Generate waits for the delay or ctx, whichever ends first.
func (m *MockGenerator) Generate(ctx context.Context, brief domain.MarketingBrief) (*domain.LandingPageContent, error) {
	if m.delay > 0 {
		timer := time.NewTimer(m.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("generate mock content: %w", ctx.Err())
		case <-timer.C:
		}
	}

	m.metrics.RecordGeneration(telemetry.SourceMock)
	return MockContent(brief), nil
}
