// Package pexels is a small client for the Pexels photo search API.
package pexels

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	infraerrors "github.com/kalabar794/landgenai/infrastructure/errors"
	infrahttp "github.com/kalabar794/landgenai/infrastructure/http"
	"github.com/kalabar794/landgenai/infrastructure/logger"
	"github.com/kalabar794/landgenai/infrastructure/retry"
	"github.com/kalabar794/landgenai/internal/domain"
)

// ErrMissingAPIKey is returned by searches on a client without a key.
var ErrMissingAPIKey = errors.New("pexels API key not configured")

const (
	defaultBaseURL     = "https://api.pexels.com"
	defaultTimeout     = 10 * time.Second
	defaultMaxAttempts = 2
	searchPath         = "/v1/search"
	maxResponseBytes   = 4 << 20
)

// Config configures a Client.
type Config struct {
	APIKey      string
	BaseURL     string
	Timeout     time.Duration
	MaxAttempts int
}

// SearchResponse is the decoded search payload.
type SearchResponse struct {
	TotalResults int            `json:"total_results"`
	Page         int            `json:"page"`
	PerPage      int            `json:"per_page"`
	Photos       []domain.Photo `json:"photos"`
	NextPage     string         `json:"next_page,omitempty"`
}

// Client issues photo searches. It is safe for concurrent use.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	retry      retry.Config
	log        logger.Logger
}

// NewClient builds a Client. An empty key is allowed; searches then fail
// with ErrMissingAPIKey.
func NewClient(cfg Config, log logger.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = defaultMaxAttempts
	}

	retryCfg := retry.DefaultConfig()
	retryCfg.MaxAttempts = cfg.MaxAttempts
	retryCfg.InitialDelay = 200 * time.Millisecond
	retryCfg.MaxDelay = 2 * time.Second
	retryCfg.IsRetryable = isRetryable

	return &Client{
		apiKey:     cfg.APIKey,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: infrahttp.NewClient(&infrahttp.ClientConfig{Timeout: cfg.Timeout}),
		retry:      retryCfg,
		log:        log,
	}
}

// HasKey reports whether an API key is configured.
func (c *Client) HasKey() bool {
	return c.apiKey != ""
}

// Search returns one page of results for query.
func (c *Client) Search(ctx context.Context, query string, perPage, page int) (*SearchResponse, error) {
	body, err := c.SearchRaw(ctx, query, perPage, page)
	if err != nil {
		return nil, err
	}

	var resp SearchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}
	return &resp, nil
}

// SearchRaw returns the provider's JSON body unmodified.
func (c *Client) SearchRaw(ctx context.Context, query string, perPage, page int) ([]byte, error) {
	if !c.HasKey() {
		return nil, ErrMissingAPIKey
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("per_page", strconv.Itoa(perPage))
	params.Set("page", strconv.Itoa(page))
	endpoint := c.baseURL + searchPath + "?" + params.Encode()

	var body []byte
	err := retry.Retry(ctx, c.retry, func() error {
		b, doErr := c.do(ctx, endpoint)
		if doErr != nil {
			c.log.Debug("Pexels request failed",
				logger.String("query", query),
				logger.Error(doErr),
			)
			return doErr
		}
		body = b
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}
	return body, nil
}

func (c *Client) do(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if httpErr := infraerrors.ParseHTTPError(resp); httpErr != nil {
		return nil, httpErr
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return body, nil
}

// isRetryable retries network failures only. Status errors, 429 included,
// fail immediately.
func isRetryable(err error) bool {
	if _, ok := infraerrors.StatusCode(err); ok {
		return false
	}
	return retry.IsTransient(err)
}
