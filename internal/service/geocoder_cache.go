package service

import (
	"context"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
)

// CachedGeocoder memoizes successful lookups. Misses are not cached so a
// transient provider failure does not stick.
type CachedGeocoder struct {
	next  Geocoder
	cache *cache.Cache
}

func NewCachedGeocoder(next Geocoder, ttl time.Duration) *CachedGeocoder {
	return &CachedGeocoder{
		next:  next,
		cache: cache.New(ttl, 2*ttl),
	}
}

func (c *CachedGeocoder) Name() string {
	return c.next.Name()
}

func (c *CachedGeocoder) Geocode(ctx context.Context, location string) (Coordinates, bool) {
	key := strings.ToLower(strings.TrimSpace(location))
	if key == "" {
		return Coordinates{}, false
	}

	if v, found := c.cache.Get(key); found {
		return v.(Coordinates), true
	}

	coords, ok := c.next.Geocode(ctx, location)
	if ok {
		c.cache.Set(key, coords, cache.DefaultExpiration)
	}
	return coords, ok
}

func (c *CachedGeocoder) Len() int {
	return c.cache.ItemCount()
}
