// internal/content/cache_memory_test.go
package content

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemoryCache(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	_, ok := cache.Get(ctx, "missing")
	assert.False(t, ok)

	cache.Set(ctx, "key", "value")
	value, ok := cache.Get(ctx, "key")
	assert.True(t, ok)
	assert.Equal(t, "value", value)

	cache.Set(ctx, "key", "updated")
	value, _ = cache.Get(ctx, "key")
	assert.Equal(t, "updated", value)
}

func TestMemoryCacheConcurrentAccess(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			key := fmt.Sprintf("key-%d", n%4)
			cache.Set(ctx, key, "v")
			cache.Get(ctx, key)
		}(i)
	}
	wg.Wait()

	for i := 0; i < 4; i++ {
		_, ok := cache.Get(ctx, fmt.Sprintf("key-%d", i))
		assert.True(t, ok)
	}
}
