package handler_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kalabar794/landgenai/infrastructure/logger"
	"github.com/kalabar794/landgenai/internal/domain"
	"github.com/kalabar794/landgenai/internal/handler"
	"github.com/kalabar794/landgenai/internal/images"
)

func pexelsRouter(proxy *fakeProxy, f *fakeFetcher, env handler.Env) *gin.Engine {
	h := handler.NewPexelsHandler(proxy, f, env, logger.NewNop())
	r := gin.New()
	r.GET("/api/pexels", h.Search)
	r.POST("/api/pexels", h.Batch)
	return r
}

func TestPexelsSearch_RequiresQuery(t *testing.T) {
	t.Parallel()

	w := do(t, pexelsRouter(&fakeProxy{key: true}, &fakeFetcher{}, devEnv), http.MethodGet, "/api/pexels", "")

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Query parameter is required", decode(t, w)["error"])
}

func TestPexelsSearch_NoKey(t *testing.T) {
	t.Parallel()

	proxy := &fakeProxy{}
	w := do(t, pexelsRouter(proxy, &fakeFetcher{}, devEnv), http.MethodGet, "/api/pexels?query=cats", "")

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Pexels API key not configured", decode(t, w)["error"])
	assert.False(t, proxy.searched)
}

func TestPexelsSearch_RelaysRawBody(t *testing.T) {
	t.Parallel()

	raw := `{"total_results":1,"page":1,"per_page":12,"photos":[{"id":5}],"extra":"kept"}`
	proxy := &fakeProxy{key: true, body: []byte(raw)}
	r := pexelsRouter(proxy, &fakeFetcher{}, devEnv)

	w := do(t, r, http.MethodGet, "/api/pexels?query=office+desk", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, raw, w.Body.String())
	assert.Equal(t, "office desk", proxy.query)
	assert.Equal(t, 12, proxy.perPage)
	assert.Equal(t, 1, proxy.page)

	do(t, r, http.MethodGet, "/api/pexels?query=x&per_page=3&page=2", "")
	assert.Equal(t, 3, proxy.perPage)
	assert.Equal(t, 2, proxy.page)
}

func TestPexelsSearch_UpstreamError(t *testing.T) {
	t.Parallel()

	proxy := &fakeProxy{key: true, err: errors.New("HTTP error: 502 Bad Gateway")}
	w := do(t, pexelsRouter(proxy, &fakeFetcher{}, devEnv), http.MethodGet, "/api/pexels?query=x", "")

	require.Equal(t, http.StatusInternalServerError, w.Code)
	body := decode(t, w)
	assert.Equal(t, "Failed to fetch images from Pexels", body["error"])
	assert.Equal(t, "HTTP error: 502 Bad Gateway", body["details"])
}

func TestPexelsBatch_RequiresArray(t *testing.T) {
	t.Parallel()

	for _, body := range []string{`{}`, `{"queries":"cats"}`, `{"queries":null}`} {
		w := do(t, pexelsRouter(&fakeProxy{key: true}, &fakeFetcher{}, devEnv), http.MethodPost, "/api/pexels", body)

		require.Equal(t, http.StatusBadRequest, w.Code, body)
		assert.Equal(t, "Queries must be an array", decode(t, w)["error"])
	}
}

func TestPexelsBatch_NoKey(t *testing.T) {
	t.Parallel()

	w := do(t, pexelsRouter(&fakeProxy{}, &fakeFetcher{}, devEnv), http.MethodPost, "/api/pexels", `{"queries":["a"]}`)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Pexels API key not configured", decode(t, w)["error"])
}

func TestPexelsBatch_FlattensWithoutDedupe(t *testing.T) {
	t.Parallel()

	f := &fakeFetcher{results: []images.QueryResult{
		{Query: "a", Photos: []domain.Photo{{ID: 1}, {ID: 2}}},
		{Query: "b", Photos: []domain.Photo{}},
		{Query: "c", Photos: []domain.Photo{{ID: 2}}},
	}}
	w := do(t, pexelsRouter(&fakeProxy{key: true}, f, devEnv), http.MethodPost, "/api/pexels",
		`{"queries":["a","b","c"]}`)

	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, true, body["success"])
	assert.Len(t, body["photos"], 3)

	results := body["queryResults"].([]any)
	require.Len(t, results, 3)
	second := results[1].(map[string]any)
	assert.Equal(t, "b", second["query"])
	assert.Equal(t, []any{}, second["photos"])

	assert.Equal(t, []int{6}, f.perPages)
	assert.Equal(t, [][]string{{"a", "b", "c"}}, f.queries)
}

func TestPexelsBatch_MalformedBody(t *testing.T) {
	t.Parallel()

	w := do(t, pexelsRouter(&fakeProxy{key: true}, &fakeFetcher{}, devEnv), http.MethodPost, "/api/pexels", `{"queries":[`)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Failed to fetch images", decode(t, w)["error"])
}
