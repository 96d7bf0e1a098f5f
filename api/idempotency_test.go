package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

func newDeduper(t *testing.T) (*RedisDeduper, *miniredis.Miniredis) {
	t.Helper()
	m, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	t.Cleanup(m.Close)

	client := redis.NewClient(&redis.Options{Addr: m.Addr()})
	t.Cleanup(func() {
		if cerr := client.Close(); cerr != nil {
			t.Logf("redis close: %v", cerr)
		}
	})
	return NewRedisDeduper(client, "focusflow:", time.Minute), m
}

func TestRedisDeduperAddRemove(t *testing.T) {
	d, m := newDeduper(t)
	ctx := context.Background()

	if added, err := d.Add(ctx, "k1"); err != nil || !added {
		t.Fatalf("first add: added=%v err=%v", added, err)
	}
	if added, err := d.Add(ctx, "k1"); err != nil || added {
		t.Fatalf("second add should be a duplicate: added=%v err=%v", added, err)
	}
	if !m.Exists("focusflow:idempotency:k1") {
		t.Fatalf("expected namespaced key in redis")
	}
	if ttl := m.TTL("focusflow:idempotency:k1"); ttl != time.Minute {
		t.Fatalf("unexpected ttl %v", ttl)
	}
	if err := d.Remove(ctx, "k1"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if added, _ := d.Add(ctx, "k1"); !added {
		t.Fatalf("key should be reusable after remove")
	}
}

func TestIdempotencyMiddleware(t *testing.T) {
	d, _ := newDeduper(t)
	e := echo.New()
	calls := 0
	fail := false
	e.POST("/x", func(c echo.Context) error {
		calls++
		if fail {
			return errors.New("boom")
		}
		return c.NoContent(http.StatusCreated)
	}, IdempotencyMiddleware(d))

	send := func(key string) int {
		req := httptest.NewRequest(http.MethodPost, "/x", nil)
		if key != "" {
			req.Header.Set(HeaderIdempotencyKey, key)
		}
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec.Code
	}

	if code := send("a"); code != http.StatusCreated {
		t.Fatalf("first request: %d", code)
	}
	if code := send("a"); code != http.StatusConflict {
		t.Fatalf("repeat should conflict, got %d", code)
	}
	if code := send(""); code != http.StatusCreated {
		t.Fatalf("requests without key pass through, got %d", code)
	}

	fail = true
	if code := send("b"); code != http.StatusInternalServerError {
		t.Fatalf("failing handler: %d", code)
	}
	fail = false
	if code := send("b"); code != http.StatusCreated {
		t.Fatalf("failed request should release its key, got %d", code)
	}
	if calls != 4 {
		t.Fatalf("expected 4 handler calls, got %d", calls)
	}
}
