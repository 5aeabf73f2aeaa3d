//go:build integration

package cache

import (
	"context"
	"os"
	"testing"
	"time"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testRedisCache returns a cache on DB 15. Skips if Redis is unavailable.
func testRedisCache(t *testing.T) *RedisCache {
	t.Helper()
	c, err := NewRedis(envOr("REDIS_ADDR", "localhost:6379"), os.Getenv("REDIS_PASSWORD"), 15)
	if err != nil {
		t.Skipf("skipping integration test: Redis not reachable: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func TestRedisCache_SetGetDelete(t *testing.T) {
	c := testRedisCache(t)
	ctx := context.Background()
	t.Cleanup(func() { c.Delete(ctx, "test:key") })

	if err := c.Set(ctx, "test:key", []byte("value"), time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	got, err := c.Get(ctx, "test:key")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(got) != "value" {
		t.Errorf("expected 'value', got '%s'", got)
	}

	if err := c.Delete(ctx, "test:key"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	got, err = c.Get(ctx, "test:key")
	if err != nil {
		t.Fatalf("Get after delete failed: %v", err)
	}
	if got != nil {
		t.Errorf("expected miss after delete, got '%s'", got)
	}
}

func TestRedisCache_Miss(t *testing.T) {
	c := testRedisCache(t)

	got, err := c.Get(context.Background(), "test:never-set")
	if err != nil {
		t.Fatalf("unexpected error on miss: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil on miss, got '%s'", got)
	}
}
