package redis_a_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	redis_a "github.com/dcastano/shopadmin-be/internal/adapters/redis_adapter"
	"github.com/dcastano/shopadmin-be/internal/core/ports"
	"github.com/dcastano/shopadmin-be/test/helpers"
)

func newTestCache(t *testing.T) (*miniredis.Miniredis, *redis.Client, ports.CacheRepository) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	cache := redis_a.NewCache(client, 5*time.Minute, helpers.TestLogger())
	return mr, client, cache
}

func TestCache_SetAndGet(t *testing.T) {
	ctx := context.Background()
	_, _, cache := newTestCache(t)

	type payload struct {
		ID    string `json:"id"`
		Stock int    `json:"stock"`
	}

	stored := payload{ID: "item-1", Stock: 12}
	require.NoError(t, cache.Set(ctx, "inv:item-1", stored))

	var got payload
	require.NoError(t, cache.Get(ctx, "inv:item-1", &got))
	assert.Equal(t, stored, got)
}

func TestCache_Get_Miss(t *testing.T) {
	ctx := context.Background()
	_, _, cache := newTestCache(t)

	var dest string
	err := cache.Get(ctx, "inv:absent", &dest)
	assert.ErrorIs(t, err, redis_a.ErrCacheMiss)
}

func TestCache_SetWithTTL(t *testing.T) {
	ctx := context.Background()
	mr, _, cache := newTestCache(t)

	require.NoError(t, cache.SetWithTTL(ctx, "inv:short", "value", time.Minute))

	mr.FastForward(2 * time.Minute)

	var dest string
	err := cache.Get(ctx, "inv:short", &dest)
	assert.ErrorIs(t, err, redis_a.ErrCacheMiss)
}

func TestCache_GetOrSet(t *testing.T) {
	ctx := context.Background()
	_, _, cache := newTestCache(t)

	fetchCalls := 0
	fetch := func() (interface{}, error) {
		fetchCalls++
		return map[string]int{"stock": 7}, nil
	}

	var first map[string]int
	require.NoError(t, cache.GetOrSet(ctx, "inv:overview:1", &first, fetch, time.Minute))
	assert.Equal(t, 7, first["stock"])
	assert.Equal(t, 1, fetchCalls)

	// Second call is served from cache
	var second map[string]int
	require.NoError(t, cache.GetOrSet(ctx, "inv:overview:1", &second, fetch, time.Minute))
	assert.Equal(t, 7, second["stock"])
	assert.Equal(t, 1, fetchCalls)
}

func TestCache_GetOrSet_FetchError(t *testing.T) {
	ctx := context.Background()
	_, _, cache := newTestCache(t)

	fetch := func() (interface{}, error) {
		return nil, assert.AnError
	}

	var dest map[string]int
	err := cache.GetOrSet(ctx, "inv:overview:2", &dest, fetch, time.Minute)
	assert.Error(t, err)
}

func TestCache_DeletePattern(t *testing.T) {
	ctx := context.Background()
	_, _, cache := newTestCache(t)

	require.NoError(t, cache.Set(ctx, "inv:page:1", "a"))
	require.NoError(t, cache.Set(ctx, "inv:page:2", "b"))
	require.NoError(t, cache.Set(ctx, "hist:prod-1", "c"))

	require.NoError(t, cache.DeletePattern(ctx, "inv:*"))

	var dest string
	assert.ErrorIs(t, cache.Get(ctx, "inv:page:1", &dest), redis_a.ErrCacheMiss)
	assert.ErrorIs(t, cache.Get(ctx, "inv:page:2", &dest), redis_a.ErrCacheMiss)
	assert.NoError(t, cache.Get(ctx, "hist:prod-1", &dest))
}

func TestBuildKey(t *testing.T) {
	assert.Equal(t, "inv:p1:v2", redis_a.BuildKey(redis_a.PrefixInventory, "p1", "v2"))
	assert.Equal(t, "dash:main", redis_a.BuildKey(redis_a.PrefixDashboard, "main"))
	assert.Equal(t, "hist", redis_a.BuildKey(redis_a.PrefixHistory))
}

func TestCacheManager_InvalidateInventoryCache(t *testing.T) {
	ctx := context.Background()
	_, _, cache := newTestCache(t)
	manager := redis_a.NewCacheManager(cache, helpers.TestLogger())

	productID := "3b5a0b4e-8c2f-4f1a-9d6e-1f2a3b4c5d6e"

	require.NoError(t, cache.Set(ctx, "inv:page:1", "overview"))
	require.NoError(t, cache.Set(ctx, "hist:"+productID+":50", "history"))
	require.NoError(t, cache.Set(ctx, "hist:other-product:50", "other history"))
	require.NoError(t, cache.Set(ctx, "dash:main", "dashboard"))

	require.NoError(t, manager.InvalidateInventoryCache(ctx, productID))

	var dest string
	assert.ErrorIs(t, cache.Get(ctx, "inv:page:1", &dest), redis_a.ErrCacheMiss)
	assert.ErrorIs(t, cache.Get(ctx, "hist:"+productID+":50", &dest), redis_a.ErrCacheMiss)
	assert.ErrorIs(t, cache.Get(ctx, "dash:main", &dest), redis_a.ErrCacheMiss)

	// History entries for other products survive
	assert.NoError(t, cache.Get(ctx, "hist:other-product:50", &dest))
}
