package store

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// CacheSchemaVersion invalidates cached entries written by an older layout
const CacheSchemaVersion = "1.0"

type cachedEntry struct {
	version string
	value   []byte
}

// CachedStore is a read-through cache in front of a slower Store.
// Writes go to the backend first and then refresh the cache.
type CachedStore struct {
	backend Store
	lru     *expirable.LRU[string, *cachedEntry]
}

// NewCachedStore wraps backend with an expiring LRU of the given size and TTL
func NewCachedStore(backend Store, size int, ttl time.Duration) *CachedStore {
	return &CachedStore{
		backend: backend,
		lru:     expirable.NewLRU[string, *cachedEntry](size, nil, ttl),
	}
}

func (c *CachedStore) Get(ctx context.Context, key string) ([]byte, error) {
	if entry, ok := c.lru.Get(key); ok {
		if entry.version == CacheSchemaVersion {
			slog.Default().Debug(LogMsgCacheHit, "key", key)
			return clone(entry.value), nil
		}
		c.lru.Remove(key)
	}

	value, err := c.backend.Get(ctx, key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.lru.Remove(key)
		}
		return nil, err
	}
	c.lru.Add(key, &cachedEntry{version: CacheSchemaVersion, value: clone(value)})
	return value, nil
}

func (c *CachedStore) Set(ctx context.Context, key string, value []byte) error {
	if err := c.backend.Set(ctx, key, value); err != nil {
		c.lru.Remove(key)
		return err
	}
	c.lru.Add(key, &cachedEntry{version: CacheSchemaVersion, value: clone(value)})
	return nil
}

func (c *CachedStore) Remove(ctx context.Context, key string) error {
	c.lru.Remove(key)
	slog.Default().Debug(LogMsgCacheInvalidate, "key", key)
	return c.backend.Remove(ctx, key)
}

// Len returns the number of cached entries
func (c *CachedStore) Len() int {
	return c.lru.Len()
}

func clone(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
