package cache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"recipe-finder/internal/infrastructure/config"
	"recipe-finder/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCacheConfig(maxSize int, ttl time.Duration) *config.Config {
	return &config.Config{
		Cache: config.CacheConfig{
			Enabled:         true,
			MaxSize:         maxSize,
			TTL:             ttl,
			CleanupInterval: time.Minute,
		},
	}
}

func TestManagerGetSet(t *testing.T) {
	m := NewManager(testCacheConfig(10, time.Minute))
	defer m.Close()

	ctx := context.Background()

	_, err := m.Get(ctx, "missing")
	assert.ErrorIs(t, err, common.ErrCacheMiss)

	require.NoError(t, m.Set(ctx, "key", "value"))
	got, err := m.Get(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, "value", got)
}

func TestManagerExpiry(t *testing.T) {
	m := NewManager(testCacheConfig(10, 10*time.Millisecond))
	defer m.Close()

	ctx := context.Background()
	require.NoError(t, m.Set(ctx, "key", "value"))

	time.Sleep(30 * time.Millisecond)

	_, err := m.Get(ctx, "key")
	assert.ErrorIs(t, err, common.ErrCacheMiss)
}

func TestManagerLRUEviction(t *testing.T) {
	m := NewManager(testCacheConfig(3, time.Minute))
	defer m.Close()

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		require.NoError(t, m.Set(ctx, fmt.Sprintf("key-%d", i), "value"))
	}

	// 訪問前兩個條目，使 key-2 成為最少使用者
	_, err := m.Get(ctx, "key-0")
	require.NoError(t, err)
	_, err = m.Get(ctx, "key-1")
	require.NoError(t, err)

	// 寫入第四個條目觸發 LRU 淘汰
	require.NoError(t, m.Set(ctx, "key-3", "value"))

	_, err = m.Get(ctx, "key-2")
	assert.ErrorIs(t, err, common.ErrCacheMiss)

	got, err := m.Get(ctx, "key-3")
	require.NoError(t, err)
	assert.Equal(t, "value", got)
}

func TestManagerStats(t *testing.T) {
	m := NewManager(testCacheConfig(10, time.Minute))
	defer m.Close()

	ctx := context.Background()
	require.NoError(t, m.Set(ctx, "key", "value"))
	m.Get(ctx, "key")
	m.Get(ctx, "missing")

	stats := m.GetStats()
	assert.Equal(t, int64(1), stats["hits"])
	assert.Equal(t, int64(1), stats["misses"])
	assert.Equal(t, 1, stats["size"])
}

func TestNewDisabledCache(t *testing.T) {
	cfg := testCacheConfig(10, time.Minute)
	cfg.Cache.Enabled = false
	assert.Nil(t, New(cfg))
}

func TestCacheKeys(t *testing.T) {
	assert.Equal(t, "suggest:chi", SuggestKey("chi"))
	assert.Equal(t, "detail:1001:chicken,rice", DetailKey(1001, "chicken,rice"))
	assert.NotEqual(t, SuggestKey("a"), SuggestKey("b"))
}
