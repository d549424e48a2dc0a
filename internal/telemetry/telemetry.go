// Package telemetry exports the service's Prometheus metrics.
package telemetry

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "landgenai"

// Content sources recorded by RecordGeneration.
const (
	SourceLLM      = "llm"
	SourceFallback = "fallback"
	SourceMock     = "mock"
)

// Metrics holds the service metrics.
type Metrics struct {
	Generations         *prometheus.CounterVec
	ImageQueryFailures  prometheus.Counter
	ImageCacheLookups   *prometheus.CounterVec
	UpstreamDuration    *prometheus.HistogramVec
	RateLimited         prometheus.Counter
	HTTPRequests        *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
}

// Provider owns the metrics and the registry they are exposed from.
// A nil *Provider is valid and records nothing.
type Provider struct {
	Metrics  *Metrics
	gatherer prometheus.Gatherer
}

// NewProvider registers the metrics with reg. Pass a fresh
// prometheus.NewRegistry() in tests.
func NewProvider(reg *prometheus.Registry) *Provider {
	factory := promauto.With(reg)
	m := &Metrics{}
	initContentMetrics(factory, m)
	initImageMetrics(factory, m)
	initHTTPMetrics(factory, m)

	return &Provider{Metrics: m, gatherer: reg}
}

// NewDefaultProvider adds the Go runtime and process collectors to a new
// registry.
func NewDefaultProvider() *Provider {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return NewProvider(reg)
}

func initContentMetrics(f promauto.Factory, m *Metrics) {
	m.Generations = f.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "generations_total",
		Help:      "Landing page content generations by source (llm, fallback, mock)",
	}, []string{"source"})

	m.UpstreamDuration = f.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upstream_duration_seconds",
		Help:      "Latency of calls to upstream APIs",
		Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
	}, []string{"upstream", "outcome"})
}

func initImageMetrics(f promauto.Factory, m *Metrics) {
	m.ImageQueryFailures = f.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "image_query_failures_total",
		Help:      "Photo searches that degraded to an empty result",
	})

	m.ImageCacheLookups = f.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "image_cache_lookups_total",
		Help:      "Photo search cache lookups by result (hit, miss, error)",
	}, []string{"result"})
}

func initHTTPMetrics(f promauto.Factory, m *Metrics) {
	m.RateLimited = f.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_limited_total",
		Help:      "Requests rejected by the per-IP rate limiter",
	})

	m.HTTPRequests = f.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests by method, route and status",
	}, []string{"method", "route", "status"})

	m.HTTPRequestDuration = f.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by method and route",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})
}

// Handler serves the /metrics exposition.
func (p *Provider) Handler() http.Handler {
	return promhttp.HandlerFor(p.gatherer, promhttp.HandlerOpts{})
}

// RecordGeneration counts one content generation.
func (p *Provider) RecordGeneration(source string) {
	if p == nil {
		return
	}
	p.Metrics.Generations.WithLabelValues(source).Inc()
}

// RecordImageQueryFailure counts one degraded photo search.
func (p *Provider) RecordImageQueryFailure() {
	if p == nil {
		return
	}
	p.Metrics.ImageQueryFailures.Inc()
}

// RecordCacheLookup counts a cache hit, miss or error.
func (p *Provider) RecordCacheLookup(result string) {
	if p == nil {
		return
	}
	p.Metrics.ImageCacheLookups.WithLabelValues(result).Inc()
}

// ObserveUpstream records one upstream call.
func (p *Provider) ObserveUpstream(upstream string, err error, d time.Duration) {
	if p == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	p.Metrics.UpstreamDuration.WithLabelValues(upstream, outcome).Observe(d.Seconds())
}

// RecordRateLimited counts a rejected request.
func (p *Provider) RecordRateLimited() {
	if p == nil {
		return
	}
	p.Metrics.RateLimited.Inc()
}

// Middleware records request counts and latency by matched route.
func (p *Provider) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if p == nil {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := c.Request.Method
		p.Metrics.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(c.Writer.Status())).Inc()
		p.Metrics.HTTPRequestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}
