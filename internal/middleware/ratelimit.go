package middleware

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/kalabar794/landgenai/infrastructure/logger"
)

// RejectionRecorder is notified of every rejected request.
// *telemetry.Provider implements it.
type RejectionRecorder interface {
	RecordRateLimited()
}

type clientLimiter struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// RateLimiter is a per-client-IP token bucket. Each client may burst up to
// maxRequests and refills at maxRequests per window.
type RateLimiter struct {
	window      time.Duration
	maxRequests int
	recorder    RejectionRecorder
	log         logger.Logger
	now         func() time.Time

	mu      sync.Mutex
	clients map[string]*clientLimiter
}

// NewRateLimiter builds a limiter. recorder may be nil.
func NewRateLimiter(window time.Duration, maxRequests int, recorder RejectionRecorder, log logger.Logger) *RateLimiter {
	return &RateLimiter{
		window:      window,
		maxRequests: maxRequests,
		recorder:    recorder,
		log:         log,
		now:         time.Now,
		clients:     make(map[string]*clientLimiter),
	}
}

// Allow takes one token for ip.
func (l *RateLimiter) Allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	entry, ok := l.clients[ip]
	if !ok {
		refill := rate.Limit(float64(l.maxRequests) / l.window.Seconds())
		entry = &clientLimiter{limiter: rate.NewLimiter(refill, l.maxRequests)}
		l.clients[ip] = entry
	}
	entry.lastAccess = now
	return entry.limiter.AllowN(now, 1)
}

// Middleware rejects clients over their budget with 429.
func (l *RateLimiter) Middleware() gin.HandlerFunc {
	details := fmt.Sprintf("Rate limit of %d requests per %s exceeded. Please try again later.",
		l.maxRequests, l.window)

	return func(c *gin.Context) {
		ip := c.ClientIP()
		if l.Allow(ip) {
			c.Next()
			return
		}

		if l.recorder != nil {
			l.recorder.RecordRateLimited()
		}
		logger.FromContextOr(c.Request.Context(), l.log).Warn("Rate limit exceeded",
			logger.String("client_ip", ip),
			logger.String("path", c.Request.URL.Path),
		)
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
			"error":   "Too many requests",
			"details": details,
		})
	}
}

// Cleanup evicts clients idle for a full window until ctx is done.
func (l *RateLimiter) Cleanup(ctx context.Context) {
	ticker := time.NewTicker(l.window)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			l.log.Debug("Rate limiter cleanup stopped")
			return
		case <-ticker.C:
			l.evictIdle()
		}
	}
}

func (l *RateLimiter) evictIdle() {
	expiry := l.now().Add(-l.window)

	l.mu.Lock()
	defer l.mu.Unlock()
	for ip, entry := range l.clients {
		if entry.lastAccess.Before(expiry) {
			delete(l.clients, ip)
		}
	}
}

// Len returns the number of tracked clients.
func (l *RateLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}
