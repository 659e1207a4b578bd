package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return New(client, "test", time.Minute)
}

func TestGetSetRoundtrip(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	type payload struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	var missed payload
	assert.ErrorIs(t, c.Get(ctx, "k", &missed), ErrCacheMiss)

	require.NoError(t, c.Set(ctx, "k", payload{Name: "web-server", Count: 3}))

	var got payload
	require.NoError(t, c.Get(ctx, "k", &got))
	assert.Equal(t, "web-server", got.Name)
	assert.Equal(t, 3, got.Count)
}

func TestInvalidatePattern(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "listings:aws:all", "a"))
	require.NoError(t, c.Set(ctx, "listings:aws:instance", "b"))
	require.NoError(t, c.Set(ctx, "listings:gcp:all", "c"))

	require.NoError(t, c.Invalidate(ctx, "listings:aws:*"))

	var out string
	assert.ErrorIs(t, c.Get(ctx, "listings:aws:all", &out), ErrCacheMiss)
	assert.ErrorIs(t, c.Get(ctx, "listings:aws:instance", &out), ErrCacheMiss)
	assert.NoError(t, c.Get(ctx, "listings:gcp:all", &out))
}

func TestNilCacheAlwaysMisses(t *testing.T) {
	var c *Cache
	ctx := context.Background()

	assert.NoError(t, c.Set(ctx, "k", "v"))
	var out string
	assert.ErrorIs(t, c.Get(ctx, "k", &out), ErrCacheMiss)
	assert.NoError(t, c.Invalidate(ctx, "*"))
}
