// Package cache memoizes market-data responses in Redis so repeated tool
// calls for the same ticker within a TTL do not hit the upstream source.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
)

// Cache wraps a Redis client with a fixed TTL. A nil *Cache is valid and
// disables memoization.
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
}

// DefaultTTL bounds how stale a memoized market-data response may get.
const DefaultTTL = 5 * time.Minute

// New returns a Cache over the given client. ttl <= 0 uses DefaultTTL.
func New(rdb *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{rdb: rdb, ttl: ttl}
}

// Memoize returns the cached value under key, or calls fn and stores its
// result. Redis failures degrade to calling fn: the cache never turns a
// healthy upstream into an error.
func Memoize[T any](ctx context.Context, c *Cache, key string, fn func() (T, error)) (T, error) {
	var result T
	if c == nil {
		return fn()
	}

	cached, err := c.rdb.Get(ctx, key).Bytes()
	if err == nil {
		if jsonErr := json.Unmarshal(cached, &result); jsonErr == nil {
			return result, nil
		}
	}

	result, err = fn()
	if err != nil {
		return result, err
	}

	if data, jsonErr := json.Marshal(result); jsonErr == nil {
		c.rdb.Set(ctx, key, data, c.ttl)
	}
	return result, nil
}
