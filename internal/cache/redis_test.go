package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldray/fieldops/internal/config"
)

type testStruct struct {
	Name  string
	Price float64
}

func setupTestCache(t *testing.T) *Cache {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	t.Cleanup(func() { mr.Close() })

	cfg := config.RedisConnection{
		AddressRedis: mr.Addr(),
		Password:     "",
		DB:           0,
		User:         "",
	}

	cache, err := InitServer(context.Background(), cfg)
	require.NoError(t, err)
	return cache
}

func TestSetAndGet(t *testing.T) {
	cache := setupTestCache(t)

	in := testStruct{Name: "Window Cleaning", Price: 150}
	require.NoError(t, cache.Set("catalog:1", in, time.Minute))

	var out testStruct
	found, err := cache.Get("catalog:1", &out)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, in, out)
}

func TestGet_MissingKey(t *testing.T) {
	cache := setupTestCache(t)

	var out testStruct
	found, err := cache.Get("missing", &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestInvalidate(t *testing.T) {
	cache := setupTestCache(t)

	require.NoError(t, cache.Set("jobs:summary", testStruct{Name: "x"}, time.Minute))
	require.NoError(t, cache.Invalidate("jobs:summary"))

	var out testStruct
	found, err := cache.Get("jobs:summary", &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestGet_BrokenPayload(t *testing.T) {
	cache := setupTestCache(t)

	require.NoError(t, cache.Db.Set(context.Background(), "broken", "{not json", time.Minute).Err())

	var out testStruct
	found, err := cache.Get("broken", &out)
	assert.Error(t, err)
	assert.False(t, found)
}
