// Package http builds outbound HTTP clients with bounded timeouts.
package http

import (
	"net/http"
	"time"
)

// Defaults applied by NewClient.
const (
	DefaultTimeout               = 30 * time.Second
	DefaultMaxIdleConns          = 100
	DefaultMaxIdleConnsPerHost   = 10
	DefaultIdleConnTimeout       = 90 * time.Second
	DefaultResponseHeaderTimeout = 30 * time.Second
	DefaultTLSHandshakeTimeout   = 10 * time.Second
)

// ClientConfig tunes NewClient. Zero fields take the defaults above.
type ClientConfig struct {
	// Timeout bounds the whole request, including reading the body.
	Timeout               time.Duration
	MaxIdleConns          int
	MaxIdleConnsPerHost   int
	IdleConnTimeout       time.Duration
	ResponseHeaderTimeout time.Duration
	TLSHandshakeTimeout   time.Duration
}

// NewClient returns an *http.Client with its own transport. A nil cfg
// uses every default.
func NewClient(cfg *ClientConfig) *http.Client {
	if cfg == nil {
		cfg = &ClientConfig{}
	}

	timeout := orDuration(cfg.Timeout, DefaultTimeout)
	headerTimeout := orDuration(cfg.ResponseHeaderTimeout, DefaultResponseHeaderTimeout)
	if headerTimeout > timeout {
		headerTimeout = timeout
	}

	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		MaxIdleConns:          orInt(cfg.MaxIdleConns, DefaultMaxIdleConns),
		MaxIdleConnsPerHost:   orInt(cfg.MaxIdleConnsPerHost, DefaultMaxIdleConnsPerHost),
		IdleConnTimeout:       orDuration(cfg.IdleConnTimeout, DefaultIdleConnTimeout),
		ResponseHeaderTimeout: headerTimeout,
		TLSHandshakeTimeout:   orDuration(cfg.TLSHandshakeTimeout, DefaultTLSHandshakeTimeout),
		ExpectContinueTimeout: time.Second,
	}

	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}

func orDuration(v, def time.Duration) time.Duration {
	if v == 0 {
		return def
	}
	return v
}

func orInt(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}
