package zone

import (
	"math"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/couchcryptid/psws-spot-service/internal/domain"
)

// cacheKey is a coordinate rounded to 1e-6 degrees, about 0.1 m.
type cacheKey [2]float64

func newCacheKey(lat, lon float64) cacheKey {
	return cacheKey{math.Round(lat*1e6) / 1e6, math.Round(lon*1e6) / 1e6}
}

// CachedResolver memoizes a resolver per rounded coordinate. Spots cluster on
// the centers of a few thousand grid squares, so most lookups repeat.
type CachedResolver struct {
	inner   domain.ZoneResolver
	cache   *lru.Cache[cacheKey, string]
	observe func(hit bool)
}

// NewCachedResolver wraps inner with an LRU of at most maxEntries
// coordinates (minimum 1). observe, if non-nil, is called once per lookup.
func NewCachedResolver(inner domain.ZoneResolver, maxEntries int, observe func(hit bool)) *CachedResolver {
	// lru.New only fails for a non-positive size.
	cache, _ := lru.New[cacheKey, string](max(maxEntries, 1))
	return &CachedResolver{
		inner:   inner,
		cache:   cache,
		observe: observe,
	}
}

func (c *CachedResolver) Resolve(lat, lon float64) string {
	key := newCacheKey(lat, lon)
	if id, ok := c.cache.Get(key); ok {
		c.report(true)
		return id
	}
	c.report(false)

	// Unknown is cached as well; the wrapped index never changes.
	id := c.inner.Resolve(lat, lon)
	c.cache.Add(key, id)
	return id
}

// Len reports the number of cached coordinates.
func (c *CachedResolver) Len() int {
	return c.cache.Len()
}

func (c *CachedResolver) report(hit bool) {
	if c.observe != nil {
		c.observe(hit)
	}
}
