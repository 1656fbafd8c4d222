package cache_test

import (
	"context"
	"testing"
	"time"

	"portfolio/internal/cache"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTest(t *testing.T) (cache.Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	return cache.NewRedisStore(mr.Addr(), "", 0, "portfolio:"), mr
}

func TestSetGet(t *testing.T) {
	store, mr := setupTest(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "greeting", []byte("halo"), time.Minute))

	got, err := store.Get(ctx, "greeting")
	require.NoError(t, err)
	assert.Equal(t, []byte("halo"), got)
	assert.True(t, mr.Exists("portfolio:greeting"), "key must carry the prefix")
}

func TestGetMiss(t *testing.T) {
	store, _ := setupTest(t)

	_, err := store.Get(context.Background(), "absent")
	assert.ErrorIs(t, err, cache.ErrMiss)
}

func TestExpiry(t *testing.T) {
	store, mr := setupTest(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "short", []byte("x"), time.Second))
	mr.FastForward(2 * time.Second)

	ok, err := store.Exists(ctx, "short")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDelete(t *testing.T) {
	store, _ := setupTest(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", []byte("v"), time.Minute))
	require.NoError(t, store.Delete(ctx, "k"))

	_, err := store.Get(ctx, "k")
	assert.ErrorIs(t, err, cache.ErrMiss)
}

func TestPing(t *testing.T) {
	store, mr := setupTest(t)
	assert.NoError(t, store.Ping(context.Background()))

	mr.Close()
	assert.Error(t, store.Ping(context.Background()))
}
