package generator

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// AnthropicConfig configures NewAnthropicCompleter.
type AnthropicConfig struct {
	APIKey    string
	Model     string
	MaxTokens int
	// BaseURL overrides the API endpoint. Empty uses the SDK default.
	BaseURL string
	// MaxRetries is passed to the SDK. The circuit breaker sits above it.
	MaxRetries int
}

// AnthropicCompleter sends a prompt as a single user message.
type AnthropicCompleter struct {
	client    anthropic.Client
	model     anthropic.Model
	maxTokens int64
}

// NewAnthropicCompleter builds a completer over the Anthropic Messages API.
func NewAnthropicCompleter(cfg AnthropicConfig) *AnthropicCompleter {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(cfg.MaxRetries),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &AnthropicCompleter{
		client:    anthropic.NewClient(opts...),
		model:     anthropic.Model(cfg.Model),
		maxTokens: int64(cfg.MaxTokens),
	}
}

// Complete returns the text of the first content block.
func (c *AnthropicCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	msg, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     c.model,
		MaxTokens: c.maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", classifyAPIError(err)
	}

	if len(msg.Content) == 0 {
		return "", fmt.Errorf("%w: empty content", ErrUnexpectedResponse)
	}
	first := msg.Content[0]
	if first.Type != "text" {
		return "", fmt.Errorf("%w: first block is %q", ErrUnexpectedResponse, first.Type)
	}
	return first.Text, nil
}

func classifyAPIError(err error) error {
	var apiErr *anthropic.Error
	if !errors.As(err, &apiErr) {
		return fmt.Errorf("anthropic request: %w", err)
	}

	switch apiErr.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: %w", ErrInvalidAPIKey, err)
	case http.StatusTooManyRequests:
		return fmt.Errorf("%w: %w", ErrRateLimited, err)
	default:
		return fmt.Errorf("anthropic status %d: %w", apiErr.StatusCode, err)
	}
}
