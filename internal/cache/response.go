// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// response.go caches encoded JSON responses in Valkey. The public quick view
// endpoint and the media picker list are served from here so repeated
// storefront and editor requests skip the Admin API round trip.
package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// DefaultTTL is how long a response stays cached.
	DefaultTTL = 5 * time.Minute

	// MediaTTL bounds the staleness of the media picker list.
	MediaTTL = time.Minute
)

// Prefixes of the two response caches.
const (
	QuickviewPrefix = "quickview:"
	MediaPrefix     = "media:"
)

// ResponseCache stores response bodies under a key prefix. A nil
// *ResponseCache is valid and never hits, so callers work unchanged
// without Valkey.
type ResponseCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewResponseCache creates a cache whose keys all start with prefix.
func NewResponseCache(client *redis.Client, prefix string, ttl time.Duration) *ResponseCache {
	if ttl == 0 {
		ttl = DefaultTTL
	}
	return &ResponseCache{client: client, prefix: prefix, ttl: ttl}
}

// Get returns the cached body for key.
func (rc *ResponseCache) Get(ctx context.Context, key string) ([]byte, bool) {
	if rc == nil {
		return nil, false
	}
	val, err := rc.client.Get(ctx, rc.prefix+key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("response cache get error", "key", rc.prefix+key, "error", err)
		return nil, false
	}
	slog.Debug("response cache hit", "key", rc.prefix+key)
	return val, true
}

// Set stores body for key with the cache's TTL.
func (rc *ResponseCache) Set(ctx context.Context, key string, body []byte) {
	if rc == nil {
		return
	}
	if err := rc.client.Set(ctx, rc.prefix+key, body, rc.ttl).Err(); err != nil {
		slog.Warn("response cache set error", "key", rc.prefix+key, "error", err)
	}
}

// Invalidate removes one key.
func (rc *ResponseCache) Invalidate(ctx context.Context, key string) {
	if rc == nil {
		return
	}
	if err := rc.client.Del(ctx, rc.prefix+key).Err(); err != nil {
		slog.Warn("response cache invalidate error", "key", rc.prefix+key, "error", err)
	}
}

// InvalidateAll removes every key under the cache's prefix. Saving a
// shop-wide quick view config affects every collection without its own
// config, so the whole prefix goes.
func (rc *ResponseCache) InvalidateAll(ctx context.Context) {
	if rc == nil {
		return
	}
	var (
		cursor  uint64
		deleted int
	)
	for {
		keys, next, err := rc.client.Scan(ctx, cursor, rc.prefix+"*", 100).Result()
		if err != nil {
			slog.Warn("response cache scan error", "prefix", rc.prefix, "error", err)
			return
		}
		if len(keys) > 0 {
			if err := rc.client.Del(ctx, keys...).Err(); err != nil {
				slog.Warn("response cache bulk delete error", "prefix", rc.prefix, "error", err)
			}
			deleted += len(keys)
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}
	if deleted > 0 {
		slog.Info("response cache cleared", "prefix", rc.prefix, "deleted", deleted)
	}
}

// QuickviewKey is the cache key of the public config for a collection.
// The shop-level config uses the key "_shop".
func QuickviewKey(collectionID string) string {
	if collectionID == "" {
		return "_shop"
	}
	return collectionID
}
