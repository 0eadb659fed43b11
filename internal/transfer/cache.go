// Package transfer finds skills that carry over from a current role to a
// target role: an AI-backed semantic match under a hard timeout, with a
// deterministic similarity baseline as the fallback.
package transfer

import (
	"container/list"
	"crypto/sha256"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

// MemoCache is a bounded LRU memoizing match results per
// (current role, target role, skill sets). It is process-local, never
// persisted, and safe for concurrent use.
type MemoCache struct {
	mu       sync.Mutex
	capacity int
	now      func() time.Time
	order    *list.List // front = most recently used
	entries  map[string]*list.Element
}

type memoEntry struct {
	key      string
	result   *MatchResult
	storedAt time.Time
}

// DefaultMemoCapacity bounds the matcher cache when no capacity is given.
const DefaultMemoCapacity = 256

// NewMemoCache creates an LRU cache with the given capacity. The clock is
// injectable for tests; nil uses time.Now.
func NewMemoCache(capacity int, now func() time.Time) *MemoCache {
	if capacity <= 0 {
		capacity = DefaultMemoCapacity
	}
	if now == nil {
		now = time.Now
	}
	return &MemoCache{
		capacity: capacity,
		now:      now,
		order:    list.New(),
		entries:  make(map[string]*list.Element),
	}
}

// Get returns the memoized result for a key, marking it most recently used.
func (c *MemoCache) Get(key string) (*MatchResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	elem, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	c.order.MoveToFront(elem)
	return elem.Value.(*memoEntry).result, true
}

// Set stores a result, evicting the least recently used entry when full.
func (c *MemoCache) Set(key string, result *MatchResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if elem, ok := c.entries[key]; ok {
		entry := elem.Value.(*memoEntry)
		entry.result = result
		entry.storedAt = c.now()
		c.order.MoveToFront(elem)
		return
	}
	if c.order.Len() >= c.capacity {
		oldest := c.order.Back()
		if oldest != nil {
			c.order.Remove(oldest)
			delete(c.entries, oldest.Value.(*memoEntry).key)
		}
	}
	c.entries[key] = c.order.PushFront(&memoEntry{key: key, result: result, storedAt: c.now()})
}

// Len returns the number of cached results.
func (c *MemoCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// CacheKey builds a deterministic key from the sorted skill names and both
// role strings, so skill ordering does not fragment the cache.
func CacheKey(currentNames, targetNames []string, currentRole, targetRole string) string {
	current := append([]string(nil), currentNames...)
	target := append([]string(nil), targetNames...)
	sort.Strings(current)
	sort.Strings(target)

	joined := strings.Join([]string{
		strings.ToLower(currentRole),
		strings.ToLower(targetRole),
		strings.Join(current, ","),
		strings.Join(target, ","),
	}, "|")
	hash := sha256.Sum256([]byte(joined))
	return fmt.Sprintf("transfer:%x", hash[:12])
}
