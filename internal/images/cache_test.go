package images_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kalabar794/landgenai/internal/domain"
	"github.com/kalabar794/landgenai/internal/images"
)

func newRedisCache(t *testing.T) (*images.RedisCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return images.NewRedisCache(client, time.Hour), mr
}

func TestRedisCache_RoundTrip(t *testing.T) {
	cache, _ := newRedisCache(t)
	ctx := context.Background()

	_, ok, err := cache.Get(ctx, "team meeting", 8, 1)
	require.NoError(t, err)
	assert.False(t, ok)

	want := []domain.Photo{{ID: 42, Width: 800, Height: 600, Alt: "desk"}}
	require.NoError(t, cache.Set(ctx, "team meeting", 8, 1, want))

	got, ok, err := cache.Get(ctx, "team meeting", 8, 1)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, want, got)

	_, ok, err = cache.Get(ctx, "team meeting", 6, 1)
	require.NoError(t, err)
	assert.False(t, ok, "page size is part of the key")
}

func TestRedisCache_Expires(t *testing.T) {
	cache, mr := newRedisCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "q", 8, 1, []domain.Photo{{ID: 1}}))
	mr.FastForward(2 * time.Hour)

	_, ok, err := cache.Get(ctx, "q", 8, 1)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisCache_CorruptEntry(t *testing.T) {
	cache, mr := newRedisCache(t)

	require.NoError(t, mr.Set("landgenai:pexels:search:8:1:q", "{not json"))

	_, ok, err := cache.Get(context.Background(), "q", 8, 1)
	require.Error(t, err)
	assert.False(t, ok)
}

func TestRedisCache_ServerDown(t *testing.T) {
	cache, mr := newRedisCache(t)
	mr.Close()

	_, ok, err := cache.Get(context.Background(), "q", 8, 1)
	require.Error(t, err)
	assert.False(t, ok)
}
