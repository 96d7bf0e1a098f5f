package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

// HeaderIdempotencyKey lets clients retry a mutation without applying it
// twice.
const HeaderIdempotencyKey = "Idempotency-Key"

// Deduper remembers idempotency keys that have been processed.
type Deduper interface {
	// Add records key and reports whether it was new.
	Add(ctx context.Context, key string) (bool, error)
	// Remove forgets key so a failed request can be retried.
	Remove(ctx context.Context, key string) error
}

// RedisDeduper stores processed keys in Redis so every instance sees them.
type RedisDeduper struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisDeduper creates a deduper using the provided Redis client and TTL.
func NewRedisDeduper(client *redis.Client, prefix string, ttl time.Duration) *RedisDeduper {
	return &RedisDeduper{client: client, prefix: prefix, ttl: ttl}
}

func (r *RedisDeduper) key(key string) string {
	return r.prefix + "idempotency:" + key
}

func (r *RedisDeduper) Add(ctx context.Context, key string) (bool, error) {
	return r.client.SetNX(ctx, r.key(key), 1, r.ttl).Result()
}

func (r *RedisDeduper) Remove(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.key(key)).Err()
}

// IdempotencyMiddleware rejects a repeated mutation carrying an already seen
// Idempotency-Key with 409. Keys of requests that fail server-side are
// released again.
func IdempotencyMiddleware(d Deduper) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			key := strings.TrimSpace(req.Header.Get(HeaderIdempotencyKey))
			if d == nil || key == "" || req.Method == http.MethodGet || req.Method == http.MethodHead {
				return next(c)
			}
			ctx := req.Context()
			added, err := d.Add(ctx, key)
			if err != nil {
				// fail open
				c.Logger().Warnf("idempotency check failed: %v", err)
				return next(c)
			}
			if !added {
				setErrorStage(c, "duplicate")
				return c.String(http.StatusConflict, "duplicate request")
			}
			err = next(c)
			if err != nil || c.Response().Status >= http.StatusInternalServerError {
				if rerr := d.Remove(context.WithoutCancel(ctx), key); rerr != nil {
					c.Logger().Warnf("release idempotency key: %v", rerr)
				}
			}
			return err
		}
	}
}
