package matching

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestResultCacheSetGet(t *testing.T) {
	cache := NewResultCache(time.Minute)
	defer cache.Close()

	cache.Set("a", 1)
	value, ok := cache.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 1, value)

	_, ok = cache.Get("missing")
	assert.False(t, ok)

	cache.Delete("a")
	_, ok = cache.Get("a")
	assert.False(t, ok)

	cache.Set("b", 2)
	cache.Clear()
	assert.Equal(t, 0, cache.Size())
}

func TestResultCacheExpires(t *testing.T) {
	cache := NewResultCache(20 * time.Millisecond)
	defer cache.Close()

	cache.Set("a", 1)
	time.Sleep(40 * time.Millisecond)

	_, ok := cache.Get("a")
	assert.False(t, ok)

	assert.Eventually(t, func() bool { return cache.Size() == 0 }, time.Second, 10*time.Millisecond)
}

func TestResultCacheCloseIsIdempotent(t *testing.T) {
	cache := NewResultCache(0)
	cache.Close()
	cache.Close()
}
