package images

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/kalabar794/landgenai/internal/domain"
)

const cacheKeyPrefix = "landgenai:pexels:search"

// Cache stores search results by query and page. Implementations report
// a miss with ok=false and a nil error.
type Cache interface {
	Get(ctx context.Context, query string, perPage, page int) (photos []domain.Photo, ok bool, err error)
	Set(ctx context.Context, query string, perPage, page int, photos []domain.Photo) error
}

// NopCache never stores anything.
type NopCache struct{}

// Get always misses.
func (NopCache) Get(context.Context, string, int, int) ([]domain.Photo, bool, error) {
	return nil, false, nil
}

// Set discards photos.
func (NopCache) Set(context.Context, string, int, int, []domain.Photo) error { return nil }

// RedisCache keeps search results in Redis.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache returns a cache whose entries expire after ttl.
func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

func cacheKey(query string, perPage, page int) string {
	return fmt.Sprintf("%s:%d:%d:%s", cacheKeyPrefix, perPage, page, query)
}

// Get returns the cached photos for the search.
func (c *RedisCache) Get(ctx context.Context, query string, perPage, page int) ([]domain.Photo, bool, error) {
	data, err := c.client.Get(ctx, cacheKey(query, perPage, page)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get: %w", err)
	}

	var photos []domain.Photo
	if err := json.Unmarshal(data, &photos); err != nil {
		return nil, false, fmt.Errorf("decode cached photos: %w", err)
	}
	return photos, true, nil
}

// Set stores photos for the search.
func (c *RedisCache) Set(ctx context.Context, query string, perPage, page int, photos []domain.Photo) error {
	data, err := json.Marshal(photos)
	if err != nil {
		return fmt.Errorf("encode photos: %w", err)
	}
	if err := c.client.Set(ctx, cacheKey(query, perPage, page), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}
