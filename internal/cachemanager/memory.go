package cachemanager

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/zjrosen/encre/internal/log"
)

const (
	DefaultExpiration      = 10 * time.Minute
	DefaultCleanupInterval = 30 * time.Minute
)

// InMemoryCache implements CacheManager on top of go-cache.
type InMemoryCache[K ~string, V any] struct {
	useCase string
	cache   *gocache.Cache
}

// NewInMemoryCache creates an in-memory cache. useCase labels the cache in
// log output.
func NewInMemoryCache[K ~string, V any](useCase string, defaultExpiration, cleanupInterval time.Duration) *InMemoryCache[K, V] {
	return &InMemoryCache[K, V]{
		useCase: useCase,
		cache:   gocache.New(defaultExpiration, cleanupInterval),
	}
}

// Get retrieves an item from the cache by its key.
func (c *InMemoryCache[K, V]) Get(_ context.Context, key K) (V, bool) {
	var zero V

	value, found := c.cache.Get(string(key))
	if !found {
		return zero, false
	}

	v, ok := value.(V)
	if !ok {
		log.Error(log.CatCache, "wrong type stored in cache", "use_case", c.useCase, "key", key)
		return zero, false
	}

	return v, true
}

// Set stores a value with the given TTL.
func (c *InMemoryCache[K, V]) Set(_ context.Context, key K, value V, ttl time.Duration) {
	c.cache.Set(string(key), value, ttl)
}

// Delete removes the given keys.
func (c *InMemoryCache[K, V]) Delete(_ context.Context, keys ...K) error {
	for _, key := range keys {
		c.cache.Delete(string(key))
	}
	return nil
}

// Flush removes every entry.
func (c *InMemoryCache[K, V]) Flush(_ context.Context) error {
	c.cache.Flush()
	return nil
}
