package transfer

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMemoCache_SetAndGet(t *testing.T) {
	cache := NewMemoCache(4, nil)
	result := &MatchResult{Source: SourceBaseline}

	cache.Set("key-a", result)

	got, ok := cache.Get("key-a")
	assert.True(t, ok)
	assert.Same(t, result, got)
}

func TestMemoCache_MissingKey(t *testing.T) {
	cache := NewMemoCache(4, nil)
	_, ok := cache.Get("absent")
	assert.False(t, ok)
}

func TestMemoCache_EvictsLeastRecentlyUsed(t *testing.T) {
	cache := NewMemoCache(2, nil)
	cache.Set("a", &MatchResult{})
	cache.Set("b", &MatchResult{})

	// Touch "a" so "b" becomes the eviction candidate.
	cache.Get("a")
	cache.Set("c", &MatchResult{})

	_, ok := cache.Get("b")
	assert.False(t, ok)
	_, ok = cache.Get("a")
	assert.True(t, ok)
	_, ok = cache.Get("c")
	assert.True(t, ok)
	assert.Equal(t, 2, cache.Len())
}

func TestMemoCache_SetExistingKeyUpdatesInPlace(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	cache := NewMemoCache(2, func() time.Time { return now })

	cache.Set("a", &MatchResult{Source: SourceBaseline})
	updated := &MatchResult{Source: SourceAI}
	cache.Set("a", updated)

	got, ok := cache.Get("a")
	assert.True(t, ok)
	assert.Same(t, updated, got)
	assert.Equal(t, 1, cache.Len())
}

func TestMemoCache_CapacityFloor(t *testing.T) {
	cache := NewMemoCache(0, nil)
	for i := 0; i < DefaultMemoCapacity+10; i++ {
		cache.Set(fmt.Sprintf("key-%d", i), &MatchResult{})
	}
	assert.Equal(t, DefaultMemoCapacity, cache.Len())
}

func TestCacheKey_OrderInsensitiveForSkills(t *testing.T) {
	a := CacheKey([]string{"Go", "SQL"}, []string{"Spark"}, "Analyst", "Engineer")
	b := CacheKey([]string{"SQL", "Go"}, []string{"Spark"}, "Analyst", "Engineer")
	assert.Equal(t, a, b)
}

func TestCacheKey_RoleSensitive(t *testing.T) {
	a := CacheKey([]string{"Go"}, []string{"Spark"}, "Analyst", "Engineer")
	b := CacheKey([]string{"Go"}, []string{"Spark"}, "Analyst", "Scientist")
	assert.NotEqual(t, a, b)
}
