package utils

import (
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// CacheItem wraps cached data with its expiry time.
type CacheItem struct {
	Data      interface{}
	ExpiresAt time.Time
}

// PageCache is a size-bounded cache whose entries also expire after a TTL.
type PageCache struct {
	lruCache *lru.Cache[string, CacheItem]
	ttl      time.Duration
}

func NewPageCache(size int, ttl time.Duration) (*PageCache, error) {
	l, err := lru.New[string, CacheItem](size)
	if err != nil {
		return nil, err
	}
	return &PageCache{lruCache: l, ttl: ttl}, nil
}

// Set stores data under key; a non-positive TTL disables caching.
func (c *PageCache) Set(key string, data interface{}) {
	if c.ttl <= 0 {
		return
	}
	c.lruCache.Add(key, CacheItem{
		Data:      data,
		ExpiresAt: time.Now().Add(c.ttl),
	})
}

// Get returns nil when the key is missing or expired.
func (c *PageCache) Get(key string) interface{} {
	val, ok := c.lruCache.Get(key)
	if !ok {
		return nil
	}

	if time.Now().After(val.ExpiresAt) {
		c.lruCache.Remove(key)
		return nil
	}

	return val.Data
}

func (c *PageCache) Delete(key string) {
	c.lruCache.Remove(key)
}

// Purge drops every entry.
func (c *PageCache) Purge() {
	c.lruCache.Purge()
}
