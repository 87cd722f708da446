package openweather

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/hptimes-code/ai-crop-yield-prediction/internal/domain"
	"github.com/hptimes-code/ai-crop-yield-prediction/internal/observability"
)

// CachedProvider wraps a WeatherProvider with an in-memory LRU cache.
// Entries expire after a TTL so stale conditions are not served all day.
type CachedProvider struct {
	inner   domain.WeatherProvider
	cache   *lruCache
	ttl     time.Duration
	metrics *observability.Metrics
}

// NewCachedProvider creates a cache decorator around a weather provider.
func NewCachedProvider(inner domain.WeatherProvider, maxEntries int, ttl time.Duration, metrics *observability.Metrics) *CachedProvider {
	return &CachedProvider{
		inner:   inner,
		cache:   newLRUCache(maxEntries),
		ttl:     ttl,
		metrics: metrics,
	}
}

func (c *CachedProvider) Current(ctx context.Context, location string) (domain.Weather, error) {
	key := strings.ToLower(strings.TrimSpace(location))
	if w, ok := c.cache.get(key, c.ttl); ok {
		c.metrics.WeatherCache.WithLabelValues("hit").Inc()
		return w, nil
	}
	c.metrics.WeatherCache.WithLabelValues("miss").Inc()

	w, err := c.inner.Current(ctx, location)
	if err != nil {
		return w, err
	}
	c.cache.put(key, w)
	return w, nil
}

// lruCache is a simple thread-safe LRU cache for weather records.
type lruCache struct {
	maxEntries int
	mu         sync.Mutex
	entries    map[string]*entry
	head       *entry // most recently used
	tail       *entry // least recently used
}

type entry struct {
	key      string
	value    domain.Weather
	storedAt time.Time
	prev     *entry
	next     *entry
}

func newLRUCache(maxEntries int) *lruCache {
	return &lruCache{
		maxEntries: maxEntries,
		entries:    make(map[string]*entry),
	}
}

func (c *lruCache) get(key string, ttl time.Duration) (domain.Weather, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return domain.Weather{}, false
	}
	if ttl > 0 && domain.Now().Sub(e.storedAt) > ttl {
		delete(c.entries, e.key)
		c.remove(e)
		return domain.Weather{}, false
	}
	c.moveToFront(e)
	return e.value, true
}

func (c *lruCache) put(key string, value domain.Weather) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		e.value = value
		e.storedAt = domain.Now()
		c.moveToFront(e)
		return
	}

	e := &entry{key: key, value: value, storedAt: domain.Now()}
	c.entries[key] = e
	c.addToFront(e)

	if len(c.entries) > c.maxEntries {
		c.evictTail()
	}
}

func (c *lruCache) moveToFront(e *entry) {
	if e == c.head {
		return
	}
	c.remove(e)
	c.addToFront(e)
}

func (c *lruCache) addToFront(e *entry) {
	e.next = c.head
	e.prev = nil
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *lruCache) remove(e *entry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
}

func (c *lruCache) evictTail() {
	if c.tail == nil {
		return
	}
	delete(c.entries, c.tail.key)
	c.remove(c.tail)
}
