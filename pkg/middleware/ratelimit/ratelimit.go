package ratelimit

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// Limiter counts attempts per key inside a sliding window.
type Limiter interface {
	Allow(ctx context.Context, key string) bool
	Reset(ctx context.Context, key string)
}

// InMemoryLimiter is the single-process limiter used when redis is absent.
type InMemoryLimiter struct {
	mu       sync.Mutex
	attempts map[string]*window
	limit    int
	span     time.Duration
}

type window struct {
	count int
	start time.Time
}

func NewInMemoryLimiter(limit int, span time.Duration) *InMemoryLimiter {
	return &InMemoryLimiter{
		attempts: make(map[string]*window),
		limit:    limit,
		span:     span,
	}
}

func (l *InMemoryLimiter) Allow(_ context.Context, key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	w, ok := l.attempts[key]
	if !ok || now.Sub(w.start) > l.span {
		l.attempts[key] = &window{count: 1, start: now}
		return true
	}
	w.count++
	return w.count <= l.limit
}

func (l *InMemoryLimiter) Reset(_ context.Context, key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.attempts, key)
}

// RedisLimiter shares attempt counts across processes.
type RedisLimiter struct {
	client *redis.Client
	limit  int
	span   time.Duration
}

func NewRedisLimiter(client *redis.Client, limit int, span time.Duration) *RedisLimiter {
	return &RedisLimiter{client: client, limit: limit, span: span}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) bool {
	counterKey := fmt.Sprintf("attempts:%s", key)
	count, err := l.client.Incr(ctx, counterKey).Result()
	if err != nil {
		// A broken limiter store must not lock everyone out.
		return true
	}
	if count == 1 {
		l.client.Expire(ctx, counterKey, l.span)
	}
	return int(count) <= l.limit
}

func (l *RedisLimiter) Reset(ctx context.Context, key string) {
	l.client.Del(ctx, fmt.Sprintf("attempts:%s", key))
}

// LoginMiddleware rate limits credential attempts by client IP. A successful
// login resets the caller's count.
func LoginMiddleware(limiter Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP()
		if !limiter.Allow(c.Request.Context(), key) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Too many failed login attempts. Please try again later.",
			})
			return
		}

		c.Next()

		if c.Writer.Status() == http.StatusOK {
			limiter.Reset(c.Request.Context(), key)
		}
	}
}
