package mapbox

import (
	"container/list"
	"context"
	"math"
	"sync"

	"github.com/couchcryptid/fbp-service/internal/domain"
	"github.com/couchcryptid/fbp-service/internal/observability"
)

// CachedElevation wraps an ElevationSource with an in-memory LRU cache keyed
// on coordinates rounded to four decimal places (about 11 m).
type CachedElevation struct {
	inner   domain.ElevationSource
	cache   *lruCache[coordKey, float64]
	metrics *observability.Metrics
}

type coordKey struct {
	lat, lon int64
}

func newCoordKey(lat, lon float64) coordKey {
	return coordKey{lat: int64(math.Round(lat * 1e4)), lon: int64(math.Round(lon * 1e4))}
}

// NewCachedElevation creates a cache decorator around an elevation source.
func NewCachedElevation(inner domain.ElevationSource, maxEntries int, metrics *observability.Metrics) *CachedElevation {
	return &CachedElevation{
		inner:   inner,
		cache:   newLRUCache[coordKey, float64](maxEntries),
		metrics: metrics,
	}
}

func (c *CachedElevation) Elevation(ctx context.Context, lat, lon float64) (float64, bool, error) {
	key := newCoordKey(lat, lon)
	if elev, ok := c.cache.get(key); ok {
		c.metrics.ElevationCache.WithLabelValues("hit").Inc()
		return elev, true, nil
	}
	c.metrics.ElevationCache.WithLabelValues("miss").Inc()

	elev, found, err := c.inner.Elevation(ctx, lat, lon)
	if err != nil {
		return 0, false, err
	}
	// Misses are not cached so coverage gaps are retried.
	if found {
		c.cache.put(key, elev)
	}
	return elev, found, nil
}

// lruCache is a thread-safe LRU cache.
type lruCache[K comparable, V any] struct {
	maxEntries int
	mu         sync.Mutex
	order      *list.List // front is most recently used
	entries    map[K]*list.Element
}

type lruEntry[K comparable, V any] struct {
	key   K
	value V
}

func newLRUCache[K comparable, V any](maxEntries int) *lruCache[K, V] {
	return &lruCache[K, V]{
		maxEntries: maxEntries,
		order:      list.New(),
		entries:    make(map[K]*list.Element),
	}
}

func (c *lruCache[K, V]) get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	c.order.MoveToFront(el)
	return el.Value.(*lruEntry[K, V]).value, true
}

func (c *lruCache[K, V]) put(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.entries[key]; ok {
		el.Value.(*lruEntry[K, V]).value = value
		c.order.MoveToFront(el)
		return
	}

	c.entries[key] = c.order.PushFront(&lruEntry[K, V]{key: key, value: value})
	if c.order.Len() > c.maxEntries {
		oldest := c.order.Back()
		c.order.Remove(oldest)
		delete(c.entries, oldest.Value.(*lruEntry[K, V]).key)
	}
}

func (c *lruCache[K, V]) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}
