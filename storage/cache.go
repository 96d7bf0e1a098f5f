package storage

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache fronts a slower KV (the table store) with Redis for reads.
type Cache struct {
	base  KV
	redis *redis.Client
	ttl   time.Duration
}

// NewCache wraps base using the provided Redis client and TTL.
func NewCache(base KV, client *redis.Client, ttl time.Duration) *Cache {
	if base == nil {
		panic("storage.NewCache: base storage is nil")
	}
	if ttl < 0 {
		ttl = 0
	}
	return &Cache{base: base, redis: client, ttl: ttl}
}

func (c *Cache) Load(ctx context.Context, key string) ([]byte, error) {
	if data, ok := c.loadFromCache(ctx, key); ok {
		return data, nil
	}

	data, err := c.base.Load(ctx, key)
	if err != nil {
		return nil, err
	}

	c.store(ctx, key, data)
	return data, nil
}

func (c *Cache) Save(ctx context.Context, key string, value []byte) error {
	if err := c.base.Save(ctx, key, value); err != nil {
		c.evict(ctx, key)
		return err
	}

	c.store(ctx, key, value)
	return nil
}

func (c *Cache) loadFromCache(ctx context.Context, key string) ([]byte, bool) {
	if c.redis == nil {
		return nil, false
	}
	data, err := c.redis.Get(ctx, cacheKey(key)).Bytes()
	if err != nil {
		if err != redis.Nil {
			// On redis errors fall back to the backing storage without failing.
			_ = c.redis.Del(ctx, cacheKey(key)).Err()
		}
		return nil, false
	}
	return data, true
}

func (c *Cache) store(ctx context.Context, key string, data []byte) {
	if c.redis == nil || c.ttl == 0 {
		return
	}
	_ = c.redis.Set(ctx, cacheKey(key), data, c.ttl).Err()
}

func (c *Cache) evict(ctx context.Context, key string) {
	if c.redis == nil {
		return
	}
	_ = c.redis.Del(ctx, cacheKey(key)).Err()
}

func cacheKey(key string) string {
	return "cache:" + key
}
