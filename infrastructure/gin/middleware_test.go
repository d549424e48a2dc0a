package gin_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	ginpkg "github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	infragin "github.com/kalabar794/landgenai/infrastructure/gin"
	"github.com/kalabar794/landgenai/infrastructure/logger"
)

func TestMain(m *testing.M) {
	ginpkg.SetMode(ginpkg.TestMode)
	os.Exit(m.Run())
}

func newTestRouter(t *testing.T, mw ...ginpkg.HandlerFunc) *ginpkg.Engine {
	t.Helper()

	router := ginpkg.New()
	router.Use(infragin.RequestIDLoggerMiddleware(logger.NewNop()))
	router.Use(mw...)
	router.GET("/test", func(c *ginpkg.Context) {
		c.String(http.StatusOK, "ok")
	})
	return router
}

func serve(router http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRequestIDLoggerMiddleware_GeneratesHexID(t *testing.T) {
	t.Parallel()

	w := serve(newTestRouter(t), httptest.NewRequest(http.MethodGet, "/test", http.NoBody))

	id := w.Header().Get(infragin.RequestIDHeader)
	require.Len(t, id, 32)
	assert.NotContains(t, id, "-")
}

func TestRequestIDLoggerMiddleware_PreservesInboundID(t *testing.T) {
	t.Parallel()

	const inbound = "trace-abc123"

	router := ginpkg.New()
	router.Use(infragin.RequestIDLoggerMiddleware(logger.NewNop()))

	var seen string
	var ctxLogger logger.Logger
	router.GET("/test", func(c *ginpkg.Context) {
		seen = c.GetString(infragin.RequestIDKey)
		ctxLogger = logger.FromContext(c.Request.Context())
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/test", http.NoBody)
	req.Header.Set(infragin.RequestIDHeader, inbound)
	w := serve(router, req)

	assert.Equal(t, inbound, w.Header().Get(infragin.RequestIDHeader))
	assert.Equal(t, inbound, seen)
	assert.NotNil(t, ctxLogger)
}

func TestRequestIDLoggerMiddleware_ReplacesOversizedID(t *testing.T) {
	t.Parallel()

	oversized := strings.Repeat("x", 200)
	req := httptest.NewRequest(http.MethodGet, "/test", http.NoBody)
	req.Header.Set(infragin.RequestIDHeader, oversized)

	w := serve(newTestRouter(t), req)

	got := w.Header().Get(infragin.RequestIDHeader)
	assert.NotEqual(t, oversized, got)
	assert.Len(t, got, 32)
}

func TestRequestIDLoggerMiddleware_UniqueIDs(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	seen := make(map[string]bool)

	for range 50 {
		w := serve(router, httptest.NewRequest(http.MethodGet, "/test", http.NoBody))
		id := w.Header().Get(infragin.RequestIDHeader)
		require.False(t, seen[id], "duplicate request id %s", id)
		seen[id] = true
	}
}

func TestCORSMiddleware_Preflight(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, infragin.CORSMiddleware(infragin.CORSConfig{}))
	router.OPTIONS("/test", func(c *ginpkg.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/test", http.NoBody)
	req.Header.Set("Origin", "https://example.com")
	w := serve(router, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), http.MethodPost)
	assert.Equal(t, "43200", w.Header().Get("Access-Control-Max-Age"))
}

func TestCORSMiddleware_RefusesUnknownOrigin(t *testing.T) {
	t.Parallel()

	cfg := infragin.CORSConfig{Enabled: true, AllowedOrigins: []string{"https://app.example.com"}}
	router := newTestRouter(t, infragin.CORSMiddleware(cfg))

	req := httptest.NewRequest(http.MethodGet, "/test", http.NoBody)
	req.Header.Set("Origin", "https://evil.example.com")
	w := serve(router, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRecoveryMiddleware_ReturnsJSON500(t *testing.T) {
	t.Parallel()

	router := ginpkg.New()
	router.Use(infragin.RecoveryMiddleware(logger.NewNop()))
	router.GET("/boom", func(*ginpkg.Context) { panic("boom") })

	w := serve(router, httptest.NewRequest(http.MethodGet, "/boom", http.NoBody))

	require.Equal(t, http.StatusInternalServerError, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Internal server error", body["error"])
}

func TestBuilder_HealthReportsChecks(t *testing.T) {
	server := infragin.NewServerBuilder("landgenai", 0).
		WithLogger(logger.NewNop()).
		WithVersion("1.2.3").
		WithDatabaseHealthCheck(func(context.Context) error { return nil }).
		WithRedisHealthCheck(func(context.Context) error { return errors.New("refused") }).
		Build()

	w := serve(server.Router(), httptest.NewRequest(http.MethodGet, "/health", http.NoBody))

	require.Equal(t, http.StatusOK, w.Code)
	var resp infragin.HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, infragin.HealthStatusDegraded, resp.Status)
	assert.Equal(t, "1.2.3", resp.Version)
	assert.Equal(t, infragin.HealthStatusHealthy, resp.Checks["database"].Status)
	assert.Equal(t, infragin.HealthStatusDegraded, resp.Checks["redis"].Status)
}

func TestBuilder_UnhealthyDatabaseReturns503(t *testing.T) {
	server := infragin.NewServerBuilder("landgenai", 0).
		WithLogger(logger.NewNop()).
		WithDatabaseHealthCheck(func(context.Context) error { return errors.New("closed") }).
		Build()

	w := serve(server.Router(), httptest.NewRequest(http.MethodGet, "/health", http.NoBody))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = serve(server.Router(), httptest.NewRequest(http.MethodHead, "/health", http.NoBody))
	assert.Equal(t, http.StatusOK, w.Code)

	w = serve(server.Router(), httptest.NewRequest(http.MethodGet, "/health/memory", http.NoBody))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "num_goroutine")
}
