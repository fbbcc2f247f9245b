package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testSnapshot struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func openTestCache(t *testing.T, ttl time.Duration) *SnapshotCache {
	t.Helper()
	cache, err := Open(filepath.Join(t.TempDir(), "cache.db"), ttl)
	require.NoError(t, err)
	t.Cleanup(func() { _ = cache.Close() })
	return cache
}

func TestCacheRoundTrip(t *testing.T) {
	cache := openTestCache(t, time.Minute)

	require.NoError(t, cache.Put("payments", testSnapshot{Name: "payments", Count: 42}))

	var got testSnapshot
	ok, err := cache.Get("payments", &got)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, testSnapshot{Name: "payments", Count: 42}, got)
}

func TestCacheMiss(t *testing.T) {
	cache := openTestCache(t, time.Minute)

	var got testSnapshot
	ok, err := cache.Get("absent", &got)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCacheReplace(t *testing.T) {
	cache := openTestCache(t, time.Minute)

	require.NoError(t, cache.Put("key", testSnapshot{Count: 1}))
	require.NoError(t, cache.Put("key", testSnapshot{Count: 2}))

	var got testSnapshot
	ok, err := cache.Get("key", &got)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 2, got.Count)
}

func TestCacheExpiry(t *testing.T) {
	cache := openTestCache(t, time.Millisecond)

	require.NoError(t, cache.Put("key", testSnapshot{Count: 1}))
	time.Sleep(10 * time.Millisecond)

	var got testSnapshot
	ok, err := cache.Get("key", &got)
	require.NoError(t, err)
	assert.False(t, ok)
}
