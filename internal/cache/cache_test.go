// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

const testPrefix = "test-response:"

// testValkeyClient returns a Redis client for tests.
// Skips if Valkey is unavailable.
func testValkeyClient(t *testing.T) *redis.Client {
	t.Helper()

	client := redis.NewClient(&redis.Options{
		Addr:     envOr("VALKEY_HOST", "localhost") + ":" + envOr("VALKEY_PORT", "6379"),
		Password: os.Getenv("VALKEY_PASSWORD"),
		DB:       15,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping integration test: Valkey not reachable: %v", err)
	}

	t.Cleanup(func() {
		keys, _ := client.Keys(ctx, testPrefix+"*").Result()
		if len(keys) > 0 {
			client.Del(ctx, keys...)
		}
		client.Close()
	})

	return client
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func TestConnectValkey(t *testing.T) {
	client, err := ConnectValkey(context.Background(), envOr("VALKEY_HOST", "localhost"), envOr("VALKEY_PORT", "6379"), os.Getenv("VALKEY_PASSWORD"))
	if err != nil {
		t.Skipf("skipping: Valkey not available: %v", err)
	}
	defer client.Close()

	if pong, err := client.Ping(context.Background()).Result(); err != nil || pong != "PONG" {
		t.Errorf("Ping: %q, %v", pong, err)
	}
}

func TestConnectValkeyUnreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := ConnectValkey(ctx, "127.0.0.1", "1", ""); err == nil {
		t.Error("expected error for unreachable Valkey")
	}
}

func TestResponseCacheSetAndGet(t *testing.T) {
	rc := NewResponseCache(testValkeyClient(t), testPrefix, time.Minute)
	ctx := context.Background()

	if data, ok := rc.Get(ctx, QuickviewKey("")); ok || data != nil {
		t.Errorf("expected miss, got %q", data)
	}

	body := []byte(`{"config":{"enabled":true},"source":"default"}`)
	rc.Set(ctx, QuickviewKey(""), body)

	data, ok := rc.Get(ctx, QuickviewKey(""))
	if !ok || string(data) != string(body) {
		t.Errorf("got %q, %v", data, ok)
	}
}

func TestResponseCacheInvalidate(t *testing.T) {
	rc := NewResponseCache(testValkeyClient(t), testPrefix, time.Minute)
	ctx := context.Background()

	rc.Set(ctx, "a", []byte("a"))
	rc.Set(ctx, "b", []byte("b"))
	rc.Invalidate(ctx, "a")

	if _, ok := rc.Get(ctx, "a"); ok {
		t.Error("expected miss for invalidated key")
	}
	if _, ok := rc.Get(ctx, "b"); !ok {
		t.Error("unrelated key was removed")
	}
}

func TestResponseCacheInvalidateAll(t *testing.T) {
	client := testValkeyClient(t)
	rc := NewResponseCache(client, testPrefix, time.Minute)
	ctx := context.Background()

	other := "test-other:keep"
	client.Set(ctx, other, "x", time.Minute)
	defer client.Del(ctx, other)

	for _, k := range []string{"1", "2", "3"} {
		rc.Set(ctx, k, []byte(k))
	}
	rc.InvalidateAll(ctx)

	for _, k := range []string{"1", "2", "3"} {
		if _, ok := rc.Get(ctx, k); ok {
			t.Errorf("expected miss for %q after InvalidateAll", k)
		}
	}
	if n, _ := client.Exists(ctx, other).Result(); n != 1 {
		t.Error("InvalidateAll removed a key outside its prefix")
	}
}

func TestNilResponseCache(t *testing.T) {
	var rc *ResponseCache
	ctx := context.Background()
	rc.Set(ctx, "k", []byte("v"))
	rc.Invalidate(ctx, "k")
	rc.InvalidateAll(ctx)
	if _, ok := rc.Get(ctx, "k"); ok {
		t.Error("nil cache reported a hit")
	}
}

func TestDefaults(t *testing.T) {
	rc := NewResponseCache(nil, MediaPrefix, 0)
	if rc.ttl != DefaultTTL {
		t.Errorf("ttl: got %v, want %v", rc.ttl, DefaultTTL)
	}
	if QuickviewKey("gid://shopify/Collection/1") != "gid://shopify/Collection/1" {
		t.Error("collection key changed")
	}
}
