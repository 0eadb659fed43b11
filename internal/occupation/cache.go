package occupation

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultCacheTTL controls how long occupation lookups stay cached.
// Taxonomy data changes on the provider's release cadence, not per request.
const DefaultCacheTTL = 24 * time.Hour

// tieredCache is L1 in-memory + optional L2 Redis. L1 is fast but lost on
// restart; L2 survives restarts and is shared across instances.
type tieredCache struct {
	l1  sync.Map // key → *cacheEntry
	rdb *redis.Client
	ttl time.Duration
}

type cacheEntry struct {
	data      []byte
	expiresAt time.Time
}

// newTieredCache builds the cache. redisURL can be empty to disable L2;
// an unreachable Redis downgrades to L1-only with a warning rather than
// failing startup.
func newTieredCache(redisURL string, ttl time.Duration) *tieredCache {
	c := &tieredCache{ttl: ttl}

	if redisURL != "" {
		opts, err := redis.ParseURL(redisURL)
		if err != nil {
			slog.Warn("occupation cache: invalid redis URL, L2 disabled", slog.Any("error", err))
			return c
		}
		rdb := redis.NewClient(opts)
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := rdb.Ping(ctx).Err(); err != nil {
			slog.Warn("occupation cache: redis unreachable, L2 disabled", slog.Any("error", err))
			return c
		}
		c.rdb = rdb
		slog.Info("occupation cache: L2 redis connected", slog.String("addr", opts.Addr))
	}
	return c
}

// cacheKey builds a deterministic key from parts. The data version is always
// one of the parts so a taxonomy refresh invalidates every entry at once.
func cacheKey(parts ...string) string {
	joined := strings.Join(parts, "|")
	hash := sha256.Sum256([]byte(joined))
	return fmt.Sprintf("occ:%x", hash[:12])
}

// get tries L1, then L2. On an L2 hit the entry is copied back into L1.
func (c *tieredCache) get(ctx context.Context, key string, out any) bool {
	if val, ok := c.l1.Load(key); ok {
		entry := val.(*cacheEntry)
		if time.Now().Before(entry.expiresAt) {
			if json.Unmarshal(entry.data, out) == nil {
				slog.Debug("occupation cache: L1 hit", slog.String("key", key))
				return true
			}
		}
		c.l1.Delete(key) // expired or corrupt
	}

	if c.rdb != nil {
		data, err := c.rdb.Get(ctx, key).Bytes()
		if err == nil && json.Unmarshal(data, out) == nil {
			slog.Debug("occupation cache: L2 hit", slog.String("key", key))
			c.l1.Store(key, &cacheEntry{data: data, expiresAt: time.Now().Add(c.ttl)})
			return true
		}
	}
	return false
}

// set writes to both tiers. L2 write failures are logged and ignored.
func (c *tieredCache) set(ctx context.Context, key string, val any) {
	data, err := json.Marshal(val)
	if err != nil {
		slog.Warn("occupation cache: marshal failed", slog.Any("error", err))
		return
	}

	c.l1.Store(key, &cacheEntry{data: data, expiresAt: time.Now().Add(c.ttl)})

	if c.rdb != nil {
		if err := c.rdb.Set(ctx, key, data, c.ttl).Err(); err != nil {
			slog.Warn("occupation cache: L2 write failed", slog.String("key", key), slog.Any("error", err))
		}
	}
}

// purge drops every L1 entry. The periodic refresh sweep calls this so the
// next lookups repopulate from the provider.
func (c *tieredCache) purge() {
	c.l1.Range(func(key, _ any) bool {
		c.l1.Delete(key)
		return true
	})
}
