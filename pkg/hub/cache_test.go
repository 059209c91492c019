package hub_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/ps2hub/pkg/hub"
)

func TestMemoryCache_SetAndGet(t *testing.T) {
	t.Parallel()

	cache := hub.NewMemoryCache(10)
	ctx := context.Background()

	entry := &hub.CacheEntry{
		Data:       []byte(`[{"id":1}]`),
		StatusCode: http.StatusOK,
		ExpiresAt:  time.Now().Add(1 * time.Hour),
		ETag:       "abc123",
	}

	err := cache.Set(ctx, "GET /games", entry)
	require.NoError(t, err)

	retrieved, err := cache.Get(ctx, "GET /games")
	require.NoError(t, err)
	assert.Equal(t, entry.Data, retrieved.Data)
	assert.Equal(t, entry.ETag, retrieved.ETag)
	assert.True(t, cache.Has(ctx, "GET /games"))
}

func TestMemoryCache_GetNonExistent(t *testing.T) {
	t.Parallel()

	cache := hub.NewMemoryCache(10)

	_, err := cache.Get(context.Background(), "nonexistent")
	require.ErrorIs(t, err, hub.ErrCacheKeyNotFound)
	assert.Contains(t, err.Error(), "key not found")
}

func TestMemoryCache_GetExpired(t *testing.T) {
	t.Parallel()

	cache := hub.NewMemoryCache(10)
	ctx := context.Background()

	err := cache.Set(ctx, "key1", &hub.CacheEntry{
		Data:      []byte("stale"),
		ExpiresAt: time.Now().Add(-1 * time.Hour),
	})
	require.NoError(t, err)

	_, err = cache.Get(ctx, "key1")
	require.ErrorIs(t, err, hub.ErrCacheEntryExpired)
	assert.False(t, cache.Has(ctx, "key1"))
	assert.Equal(t, 0, cache.Len())
}

func TestMemoryCache_ZeroExpiryNeverExpires(t *testing.T) {
	t.Parallel()

	cache := hub.NewMemoryCache(10)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "key1", &hub.CacheEntry{Data: []byte("x")}))

	_, err := cache.Get(ctx, "key1")
	require.NoError(t, err)
}

func TestMemoryCache_DeleteAndClear(t *testing.T) {
	t.Parallel()

	cache := hub.NewMemoryCache(10)
	ctx := context.Background()

	for i := range 3 {
		require.NoError(t, cache.Set(ctx, fmt.Sprintf("key%d", i), &hub.CacheEntry{Data: []byte("x")}))
	}

	require.NoError(t, cache.Delete(ctx, "key0"))
	assert.False(t, cache.Has(ctx, "key0"))
	assert.Equal(t, 2, cache.Len())

	require.NoError(t, cache.Delete(ctx, "missing"))

	require.NoError(t, cache.Clear(ctx))
	assert.Equal(t, 0, cache.Len())
}

func TestMemoryCache_EvictsOldest(t *testing.T) {
	t.Parallel()

	cache := hub.NewMemoryCache(2)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "a", &hub.CacheEntry{Data: []byte("a")}))
	require.NoError(t, cache.Set(ctx, "b", &hub.CacheEntry{Data: []byte("b")}))
	// Overwriting does not count as a new insertion.
	require.NoError(t, cache.Set(ctx, "a", &hub.CacheEntry{Data: []byte("a2")}))
	require.NoError(t, cache.Set(ctx, "c", &hub.CacheEntry{Data: []byte("c")}))

	assert.Equal(t, 2, cache.Len())
	assert.False(t, cache.Has(ctx, "a"))
	assert.True(t, cache.Has(ctx, "b"))
	assert.True(t, cache.Has(ctx, "c"))
}

func TestMemoryCache_Cleanup(t *testing.T) {
	t.Parallel()

	cache := hub.NewMemoryCache(10)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "fresh", &hub.CacheEntry{ExpiresAt: time.Now().Add(time.Hour)}))
	require.NoError(t, cache.Set(ctx, "stale", &hub.CacheEntry{ExpiresAt: time.Now().Add(-time.Hour)}))

	cache.Cleanup()

	assert.Equal(t, 1, cache.Len())
	assert.True(t, cache.Has(ctx, "fresh"))
}

func TestCachingPolicy_ShouldCache(t *testing.T) {
	t.Parallel()

	policy := hub.DefaultCachingPolicy()

	tests := []struct {
		name   string
		method string
		path   string
		status int
		want   bool
	}{
		{"get collection", http.MethodGet, "/games", http.StatusOK, true},
		{"get by id", http.MethodGet, "/tutorials/3", http.StatusOK, true},
		{"post", http.MethodPost, "/games", http.StatusCreated, false},
		{"error status", http.MethodGet, "/games/9", http.StatusNotFound, false},
		{"current user", http.MethodGet, "/users/me", http.StatusOK, false},
		{"moderation queue", http.MethodGet, "/submissions/pending", http.StatusOK, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, policy.ShouldCache(tt.method, tt.path, tt.status))
		})
	}
}

func TestCachingPolicy_IncludePaths(t *testing.T) {
	t.Parallel()

	policy := &hub.CachingPolicy{
		CacheGET:     true,
		CacheErrors:  true,
		IncludePaths: []string{"/categories"},
	}

	assert.True(t, policy.ShouldCache(http.MethodGet, "/categories", http.StatusOK))
	assert.True(t, policy.ShouldCache(http.MethodGet, "/categories/1", http.StatusNotFound))
	assert.False(t, policy.ShouldCache(http.MethodGet, "/games", http.StatusOK))
}
