package cache

import (
	"context"
	"os"
	"testing"
	"time"
)

// TestRedisCache runs against a real server when DEGREES_TEST_REDIS_ADDR
// is set, e.g. DEGREES_TEST_REDIS_ADDR=localhost:6379 go test ./pkg/cache.
func TestRedisCache(t *testing.T) {
	addr := os.Getenv("DEGREES_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("DEGREES_TEST_REDIS_ADDR not set")
	}

	ctx := context.Background()
	c := NewRedisCache(RedisOptions{Addr: addr})
	defer c.Close()

	if err := c.Ping(ctx); err != nil {
		t.Fatalf("Ping: %v", err)
	}

	key := NewScopedKeyer(nil, "degrees-test:").ReportKey(Hash([]byte(t.Name())), ReportKeyOpts{})
	defer c.Delete(ctx, key)

	if _, hit, err := c.Get(ctx, key); err != nil || hit {
		t.Fatalf("Get before Set = hit %v, err %v", hit, err)
	}
	if err := c.Set(ctx, key, []byte("payload"), time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, key)
	if err != nil || !hit || string(data) != "payload" {
		t.Fatalf("Get after Set = %q, hit %v, err %v", data, hit, err)
	}
	if err := c.Delete(ctx, key); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, key); hit {
		t.Error("entry should be gone after Delete")
	}
}
