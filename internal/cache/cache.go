// ABOUTME: In-memory cache with TTL-based expiration
// ABOUTME: Thread-safe typed cache that collapses concurrent loads of the same key

package cache

import (
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const cleanupInterval = time.Minute

type entry[V any] struct {
	data      V
	expiresAt time.Time
}

// Cache stores values for a fixed TTL. A zero TTL disables storage, so every
// GetOrLoad call reaches the loader (still collapsed across callers).
type Cache[V any] struct {
	store   sync.Map
	ttl     time.Duration
	group   singleflight.Group
	stop    chan struct{}
	stopped sync.Once
}

func New[V any](ttl time.Duration) *Cache[V] {
	c := &Cache[V]{
		ttl:  ttl,
		stop: make(chan struct{}),
	}
	go c.startCleanup()
	return c
}

func (c *Cache[V]) Get(key string) (V, bool) {
	var zero V
	val, ok := c.store.Load(key)
	if !ok {
		zap.L().Debug("cache miss", zap.String("key", key))
		return zero, false
	}

	e := val.(entry[V])
	if time.Now().After(e.expiresAt) {
		c.store.Delete(key)
		zap.L().Debug("cache expired", zap.String("key", key))
		return zero, false
	}

	zap.L().Debug("cache hit", zap.String("key", key))
	return e.data, true
}

func (c *Cache[V]) Set(key string, value V) {
	if c.ttl <= 0 {
		return
	}
	c.store.Store(key, entry[V]{
		data:      value,
		expiresAt: time.Now().Add(c.ttl),
	})
	zap.L().Debug("cache set", zap.String("key", key), zap.Duration("ttl", c.ttl))
}

// GetOrLoad returns the cached value for key, or runs load once for all
// concurrent callers and caches a successful result.
func (c *Cache[V]) GetOrLoad(key string, load func() (V, error)) (V, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}

	v, err, shared := c.group.Do(key, func() (any, error) {
		v, err := load()
		if err != nil {
			return v, err
		}
		c.Set(key, v)
		return v, nil
	})
	if shared {
		zap.L().Debug("cache load shared", zap.String("key", key))
	}
	return v.(V), err
}

func (c *Cache[V]) Clear(key string) {
	c.store.Delete(key)
	c.group.Forget(key)
}

// Stop ends the background cleanup goroutine
func (c *Cache[V]) Stop() {
	c.stopped.Do(func() { close(c.stop) })
}

func (c *Cache[V]) startCleanup() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			now := time.Now()
			c.store.Range(func(key, val any) bool {
				if now.After(val.(entry[V]).expiresAt) {
					c.store.Delete(key)
				}
				return true
			})
		}
	}
}
