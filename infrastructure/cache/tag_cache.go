package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"portfolio/application/ports"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// TagCache is a per-process read-through cache keyed by logical tags.
// Each tag carries a generation counter bumped by Invalidate; a producer
// that started under an older generation never stores its result.
type TagCache struct {
	mu          sync.RWMutex
	items       map[string]cacheItem
	generations map[string]uint64

	group    singleflight.Group
	observer ports.CacheObserver
	logger   *zap.Logger
	now      func() time.Time

	stop     chan struct{}
	stopOnce sync.Once
}

type cacheItem struct {
	value     interface{}
	expiresAt time.Time
}

// NewTagCache creates a cache and starts its cleanup goroutine.
// observer may be nil.
func NewTagCache(cleanupInterval time.Duration, observer ports.CacheObserver, logger *zap.Logger) *TagCache {
	c := &TagCache{
		items:       make(map[string]cacheItem),
		generations: make(map[string]uint64),
		observer:    observer,
		logger:      logger,
		now:         time.Now,
		stop:        make(chan struct{}),
	}

	if cleanupInterval > 0 {
		go c.cleanupExpired(cleanupInterval)
	}

	return c
}

// GetCached returns the cached value for tag or computes it with producer
func (c *TagCache) GetCached(ctx context.Context, tag string, ttl time.Duration, producer ports.Producer) (interface{}, error) {
	c.mu.RLock()
	item, exists := c.items[tag]
	gen := c.generations[tag]
	c.mu.RUnlock()

	if exists && c.now().Before(item.expiresAt) {
		c.hit(tag)
		return item.value, nil
	}
	c.miss(tag)

	// Callers joining a flight share the first caller's work, so the flight
	// must not die with that caller's request.
	flightCtx := context.WithoutCancel(ctx)
	key := fmt.Sprintf("%s#%d", tag, gen)

	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		value, err := producer(flightCtx)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		defer c.mu.Unlock()
		if c.generations[tag] != gen {
			c.logger.Debug("Discarding stale cache result", zap.String("tag", tag))
			return value, nil
		}
		c.items[tag] = cacheItem{value: value, expiresAt: c.now().Add(ttl)}
		return value, nil
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

// Invalidate drops the given tags
func (c *TagCache) Invalidate(ctx context.Context, tags ...string) {
	c.mu.Lock()
	for _, tag := range tags {
		delete(c.items, tag)
		c.generations[tag]++
	}
	c.mu.Unlock()

	c.logger.Debug("Cache invalidated", zap.Strings("tags", tags))
}

// Len returns the number of stored entries, expired or not
func (c *TagCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Close stops the cleanup goroutine
func (c *TagCache) Close() {
	c.stopOnce.Do(func() { close(c.stop) })
}

func (c *TagCache) hit(tag string) {
	if c.observer != nil {
		c.observer.CacheHit(tag)
	}
}

func (c *TagCache) miss(tag string) {
	if c.observer != nil {
		c.observer.CacheMiss(tag)
	}
}

// cleanupExpired periodically removes expired items
func (c *TagCache) cleanupExpired(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			c.sweep()
		}
	}
}

func (c *TagCache) sweep() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for key, item := range c.items {
		if !now.Before(item.expiresAt) {
			delete(c.items, key)
		}
	}
}
