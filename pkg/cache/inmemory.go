package cache

import (
	"time"

	"github.com/patrickmn/go-cache"
)

type Cache interface {
	Set(key string, value interface{}, duration time.Duration)
	Get(key string) (interface{}, bool)
	Delete(key string)
	Flush()
	ItemCount() int
}

type goCache struct {
	internal *cache.Cache
}

// NewCache returns a new Cache instance with default expiration and cleanup interval.
// Every caller gets its own store; share it by passing it around.
func NewCache(defaultExpiration, cleanupInterval time.Duration) Cache {
	return &goCache{
		internal: cache.New(defaultExpiration, cleanupInterval),
	}
}

func (c *goCache) Set(key string, value interface{}, duration time.Duration) {
	c.internal.Set(key, value, duration)
}

func (c *goCache) Get(key string) (interface{}, bool) {
	return c.internal.Get(key)
}

func (c *goCache) Delete(key string) {
	c.internal.Delete(key)
}

func (c *goCache) Flush() {
	c.internal.Flush()
}

func (c *goCache) ItemCount() int {
	return c.internal.ItemCount()
}

// GetFromCache returns the typed value stored under key. A value of another type counts as a miss.
func GetFromCache[T any](c Cache, key string) (T, bool) {
	var zero T
	val, found := c.Get(key)
	if !found {
		return zero, false
	}
	typedVal, ok := val.(T)
	if !ok {
		return zero, false
	}
	return typedVal, true
}

// Remember is a read-through helper: it returns the cached value for key or calls load and stores
// its result for ttl. Errors from load are returned as-is and never cached.
func Remember[T any](c Cache, key string, ttl time.Duration, load func() (T, error)) (T, error) {
	if val, ok := GetFromCache[T](c, key); ok {
		return val, nil
	}
	val, err := load()
	if err != nil {
		return val, err
	}
	c.Set(key, val, ttl)
	return val, nil
}
