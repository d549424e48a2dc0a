package pexels_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	infraerrors "github.com/kalabar794/landgenai/infrastructure/errors"
	"github.com/kalabar794/landgenai/infrastructure/logger"
	"github.com/kalabar794/landgenai/internal/pexels"
)

const searchBody = `{"total_results":2,"page":1,"per_page":8,"photos":[
	{"id":10,"width":1920,"height":1080,"url":"https://www.pexels.com/photo/10","photographer":"A","photographer_url":"https://www.pexels.com/@a","src":{"original":"o","large":"l"},"alt":"office"},
	{"id":11,"width":600,"height":900,"url":"https://www.pexels.com/photo/11","photographer":"B","photographer_url":"https://www.pexels.com/@b","src":{},"alt":""}
]}`

func newClient(t *testing.T, baseURL, key string) *pexels.Client {
	t.Helper()
	return pexels.NewClient(pexels.Config{APIKey: key, BaseURL: baseURL}, logger.NewNop())
}

func TestSearch_SendsQueryAndAuth(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/search", r.URL.Path)
		assert.Equal(t, "team meeting", r.URL.Query().Get("query"))
		assert.Equal(t, "8", r.URL.Query().Get("per_page"))
		assert.Equal(t, "1", r.URL.Query().Get("page"))
		assert.Equal(t, "secret-key", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(searchBody))
	}))
	t.Cleanup(server.Close)

	resp, err := newClient(t, server.URL, "secret-key").Search(context.Background(), "team meeting", 8, 1)
	require.NoError(t, err)

	require.Len(t, resp.Photos, 2)
	assert.Equal(t, int64(10), resp.Photos[0].ID)
	assert.Equal(t, 1920, resp.Photos[0].Width)
	assert.Equal(t, "https://www.pexels.com/@a", resp.Photos[0].PhotographerURL)
	assert.Equal(t, "l", resp.Photos[0].Src.Large)
	assert.Equal(t, 2, resp.TotalResults)
}

func TestSearch_StatusErrorIsNotRetried(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":"Rate limit exceeded"}`))
	}))
	t.Cleanup(server.Close)

	_, err := newClient(t, server.URL, "secret-key").Search(context.Background(), "x", 8, 1)
	require.Error(t, err)

	code, ok := infraerrors.StatusCode(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusTooManyRequests, code)
	assert.Equal(t, int32(1), calls.Load())
}

func TestSearch_MissingKey(t *testing.T) {
	t.Parallel()

	client := newClient(t, "http://127.0.0.1:1", "")
	assert.False(t, client.HasKey())

	_, err := client.Search(context.Background(), "x", 8, 1)
	require.ErrorIs(t, err, pexels.ErrMissingAPIKey)
}

func TestSearch_DecodeError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	t.Cleanup(server.Close)

	_, err := newClient(t, server.URL, "secret-key").Search(context.Background(), "x", 8, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode search response")
}

func TestSearchRaw_ReturnsBodyUnmodified(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(searchBody))
	}))
	t.Cleanup(server.Close)

	body, err := newClient(t, server.URL, "secret-key").SearchRaw(context.Background(), "x", 12, 2)
	require.NoError(t, err)
	assert.JSONEq(t, searchBody, string(body))
}
