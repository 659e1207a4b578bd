package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss is returned when a key is not found in cache.
var ErrCacheMiss = errors.New("cache miss")

// Cache is a namespaced JSON cache over Redis. A nil *Cache is valid and
// behaves as an always-miss cache, so callers never branch on presence.
type Cache struct {
	client    *redis.Client
	namespace string
	ttl       time.Duration
}

func New(client *redis.Client, namespace string, ttl time.Duration) *Cache {
	if client == nil {
		return nil
	}
	return &Cache{client: client, namespace: namespace, ttl: ttl}
}

// Get retrieves a value from cache and decodes it into dest.
func (c *Cache) Get(ctx context.Context, key string, dest interface{}) error {
	if c == nil {
		return ErrCacheMiss
	}

	data, err := c.client.Get(ctx, c.buildKey(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrCacheMiss
		}
		return fmt.Errorf("redis get error: %w", err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("decode error: %w", err)
	}
	return nil
}

// Set stores a value in cache under the default TTL.
func (c *Cache) Set(ctx context.Context, key string, value interface{}) error {
	if c == nil {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode error: %w", err)
	}

	if err := c.client.Set(ctx, c.buildKey(key), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set error: %w", err)
	}
	return nil
}

// Invalidate removes all keys matching a glob pattern. SCAN keeps the
// traversal incremental on shared Redis instances.
func (c *Cache) Invalidate(ctx context.Context, pattern string) error {
	if c == nil {
		return nil
	}

	var cursor uint64
	for {
		batch, next, err := c.client.Scan(ctx, cursor, c.buildKey(pattern), 100).Result()
		if err != nil {
			return fmt.Errorf("redis scan error: %w", err)
		}

		if len(batch) > 0 {
			if err := c.client.Del(ctx, batch...).Err(); err != nil {
				return fmt.Errorf("redis delete error: %w", err)
			}
		}

		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}

func (c *Cache) buildKey(key string) string {
	if c.namespace == "" {
		return key
	}
	return c.namespace + ":" + key
}
