package cache

import (
	"sync"
	"time"
)

const defaultCleanupInterval = 10 * time.Minute

// cacheItem represents a single item in the cache with expiration
type cacheItem[V any] struct {
	Value      V
	Expiration time.Time
}

// MemoryCache is a thread-safe in-memory cache with TTL support.
// Values are stored as-is, so pointer values stay shared with the caller.
type MemoryCache[V any] struct {
	data  map[string]cacheItem[V]
	mutex sync.RWMutex
	now   func() time.Time
	stop  chan struct{}
	once  sync.Once
}

// NewMemoryCache creates a new in-memory cache that drops expired entries every
// cleanupInterval (10 minutes when zero). Call Close to stop the cleanup goroutine.
func NewMemoryCache[V any](cleanupInterval time.Duration) *MemoryCache[V] {
	if cleanupInterval <= 0 {
		cleanupInterval = defaultCleanupInterval
	}

	cache := &MemoryCache[V]{
		data: make(map[string]cacheItem[V]),
		now:  time.Now,
		stop: make(chan struct{}),
	}

	go cache.cleanupExpired(cleanupInterval)

	return cache
}

// GetOrCreate returns the live value for key, creating it with create when absent
// or expired. Every call extends the entry's expiration by ttl.
func (c *MemoryCache[V]) GetOrCreate(key string, ttl time.Duration, create func() V) V {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	now := c.now()
	item, exists := c.data[key]
	if !exists || now.After(item.Expiration) {
		item.Value = create()
	}
	item.Expiration = now.Add(ttl)
	c.data[key] = item

	return item.Value
}

// cleanupExpired removes expired entries from the cache periodically
func (c *MemoryCache[V]) cleanupExpired(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			c.removeExpired()
		}
	}
}

func (c *MemoryCache[V]) removeExpired() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	now := c.now()
	for key, item := range c.data {
		if now.After(item.Expiration) {
			delete(c.data, key)
		}
	}
}

// Size returns the number of entries held, expired ones included until the next cleanup
func (c *MemoryCache[V]) Size() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return len(c.data)
}

// Close stops the cleanup goroutine
func (c *MemoryCache[V]) Close() {
	c.once.Do(func() { close(c.stop) })
}
