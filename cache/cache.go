package cache

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// defaultTTL applies when no completion cache TTL is configured.
const defaultTTL = 5 * time.Minute

// Cache memoizes completion-service responses so identical prompts within
// the window skip a model round-trip.
type Cache struct {
	cache *cache.Cache
}

// New builds a cache with the given default TTL. Expired entries are swept
// at twice the TTL; non-positive values fall back to defaultTTL.
func New(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Cache{
		cache: cache.New(ttl, 2*ttl),
	}
}

func (c *Cache) Get(key string) (interface{}, bool) {
	return c.cache.Get(key)
}

func (c *Cache) Set(key string, value interface{}, expiration time.Duration) {
	c.cache.Set(key, value, expiration)
}

func (c *Cache) SetDefault(key string, value interface{}) {
	c.cache.Set(key, value, cache.DefaultExpiration)
}
