package gin

import (
	"context"
	"fmt"
	"net/http"
	"runtime"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthStatus is the status of a health check.
type HealthStatus string

const (
	HealthStatusHealthy   HealthStatus = "healthy"
	HealthStatusDegraded  HealthStatus = "degraded"
	HealthStatusUnhealthy HealthStatus = "unhealthy"
)

const checkTimeout = 2 * time.Second

// HealthResponse is the GET /health body.
type HealthResponse struct {
	Status  HealthStatus           `json:"status"`
	Service string                 `json:"service"`
	Version string                 `json:"version"`
	Uptime  string                 `json:"uptime,omitempty"`
	Checks  map[string]CheckResult `json:"checks,omitempty"`
}

// CheckResult is the outcome of one named check.
type CheckResult struct {
	Status  HealthStatus `json:"status"`
	Message string       `json:"message,omitempty"`
	Latency string       `json:"latency,omitempty"`
}

// HealthChecker performs one check.
type HealthChecker func(ctx context.Context) CheckResult

// HealthOptions configures RegisterHealthRoutes.
type HealthOptions struct {
	ServiceName    string
	ServiceVersion string
	Checks         map[string]HealthChecker
}

// MemoryStats is the GET /health/memory body.
type MemoryStats struct {
	Timestamp     time.Time `json:"timestamp"`
	HeapAllocMB   float64   `json:"heap_alloc_mb"`
	HeapInuseMB   float64   `json:"heap_inuse_mb"`
	StackInuseMB  float64   `json:"stack_inuse_mb"`
	NumGC         uint32    `json:"num_gc"`
	NumGoroutine  int       `json:"num_goroutine"`
	LastGCPauseMs float64   `json:"last_gc_pause_ms,omitempty"`
}

var startOnce struct {
	sync.Once
	at time.Time
}

// RegisterHealthRoutes adds GET /health, HEAD /health and GET /health/memory.
func RegisterHealthRoutes(router *gin.Engine, opts HealthOptions) {
	startOnce.Do(func() { startOnce.at = time.Now() })

	router.GET("/health", healthHandler(opts))
	router.HEAD("/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/health/memory", memoryHandler)
}

func healthHandler(opts HealthOptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		resp := HealthResponse{
			Status:  HealthStatusHealthy,
			Service: opts.ServiceName,
			Version: opts.ServiceVersion,
			Uptime:  formatUptime(time.Since(startOnce.at)),
		}

		if len(opts.Checks) > 0 {
			ctx, cancel := context.WithTimeout(c.Request.Context(), checkTimeout)
			defer cancel()

			resp.Checks = make(map[string]CheckResult, len(opts.Checks))
			for name, check := range opts.Checks {
				result := check(ctx)
				resp.Checks[name] = result

				switch {
				case result.Status == HealthStatusUnhealthy:
					resp.Status = HealthStatusUnhealthy
				case result.Status == HealthStatusDegraded && resp.Status == HealthStatusHealthy:
					resp.Status = HealthStatusDegraded
				}
			}
		}

		code := http.StatusOK
		if resp.Status == HealthStatusUnhealthy {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, resp)
	}
}

func memoryHandler(c *gin.Context) {
	const mb = 1024 * 1024

	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	stats := MemoryStats{
		Timestamp:    time.Now().UTC(),
		HeapAllocMB:  float64(ms.Alloc) / mb,
		HeapInuseMB:  float64(ms.HeapInuse) / mb,
		StackInuseMB: float64(ms.StackInuse) / mb,
		NumGC:        ms.NumGC,
		NumGoroutine: runtime.NumGoroutine(),
	}
	if ms.NumGC > 0 {
		stats.LastGCPauseMs = float64(ms.PauseNs[(ms.NumGC+255)%256]) / float64(time.Millisecond)
	}

	c.JSON(http.StatusOK, stats)
}

// formatUptime renders d as "2d 3h 4m", "3h 4m", "4m 5s" or "5s".
func formatUptime(d time.Duration) string {
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60

	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh %dm", days, hours, minutes)
	case hours > 0:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	case minutes > 0:
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	default:
		return fmt.Sprintf("%ds", seconds)
	}
}

func pingCheck(ping func(context.Context) error, component string, failure HealthStatus) HealthChecker {
	return func(ctx context.Context) CheckResult {
		start := time.Now()
		err := ping(ctx)
		latency := time.Since(start).String()

		if err != nil {
			return CheckResult{Status: failure, Message: component + " connection failed", Latency: latency}
		}
		return CheckResult{Status: HealthStatusHealthy, Message: component + " connection OK", Latency: latency}
	}
}

// DatabaseHealthChecker reports unhealthy when ping fails.
func DatabaseHealthChecker(ping func(context.Context) error) HealthChecker {
	return pingCheck(ping, "Database", HealthStatusUnhealthy)
}

// RedisHealthChecker reports degraded when ping fails; the cache is optional.
func RedisHealthChecker(ping func(context.Context) error) HealthChecker {
	return pingCheck(ping, "Redis", HealthStatusDegraded)
}
