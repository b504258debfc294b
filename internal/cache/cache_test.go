package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/exchange-settings-service/internal/cache"
	"github.com/maxviazov/exchange-settings-service/internal/model"
)

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rc := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rc.Close() })
	return mr, rc
}

func TestCache_SetGetDelete(t *testing.T) {
	_, rc := newRedis(t)
	c := cache.New[model.ExchangeSettingDTO](rc, "setting", 0)
	ctx := context.Background()

	miss, err := c.Get(ctx, "1")
	require.NoError(t, err)
	assert.Nil(t, miss)

	in := model.ExchangeSettingDTO{ID: 1, Exchange: "binance", APIKeyMasked: "****abcd", HasSecret: true}
	require.NoError(t, c.Set(ctx, "1", &in))

	got, err := c.Get(ctx, "1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, in, *got)

	require.NoError(t, c.Delete(ctx, "1"))
	gone, err := c.Get(ctx, "1")
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestCache_AddDoesNotOverwrite(t *testing.T) {
	mr, rc := newRedis(t)
	c := cache.New[model.ExchangeSettingDTO](rc, "setting", time.Minute)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "2", &model.ExchangeSettingDTO{ID: 2, Label: "fresh"}))
	added, err := c.Add(ctx, "2", &model.ExchangeSettingDTO{ID: 2, Label: "stale"})
	require.NoError(t, err)
	assert.False(t, added)

	got, err := c.Get(ctx, "2")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "fresh", got.Label)

	added, err = c.Add(ctx, "3", &model.ExchangeSettingDTO{ID: 3})
	require.NoError(t, err)
	assert.True(t, added)
	assert.Equal(t, time.Minute, mr.TTL("setting:3"))
}

func TestCache_TTL(t *testing.T) {
	mr, rc := newRedis(t)
	c := cache.New[model.ExchangeSettingDTO](rc, "setting", time.Minute)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "5", &model.ExchangeSettingDTO{ID: 5}))
	assert.Equal(t, time.Minute, mr.TTL("setting:5"))

	mr.FastForward(2 * time.Minute)
	got, err := c.Get(ctx, "5")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCache_Key(t *testing.T) {
	assert.Equal(t, "setting:9", cache.New[int](nil, "setting", 0).Key("9"))
	assert.Equal(t, "9", cache.New[int](nil, "", 0).Key("9"))
}

func TestCache_NilClient(t *testing.T) {
	c := cache.New[int](nil, "x", 0)
	ctx := context.Background()
	_, err := c.Get(ctx, "a")
	assert.ErrorIs(t, err, cache.ErrNilClient)
	assert.ErrorIs(t, c.Set(ctx, "a", new(int)), cache.ErrNilClient)
	_, err = c.Add(ctx, "a", new(int))
	assert.ErrorIs(t, err, cache.ErrNilClient)
	assert.ErrorIs(t, c.Delete(ctx, "a"), cache.ErrNilClient)
	assert.ErrorIs(t, c.Ping(ctx), cache.ErrNilClient)
}

func TestCache_BackendDown(t *testing.T) {
	mr, rc := newRedis(t)
	c := cache.New[int](rc, "x", 0)
	mr.Close()
	_, err := c.Get(context.Background(), "a")
	assert.Error(t, err)
	assert.Error(t, c.Ping(context.Background()))
}
