package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"inkwell/internal/observability"
)

// UserTTL bounds how stale a cached user read may be.
const UserTTL = 5 * time.Minute

// UserKey returns the cache key for a single user.
func UserKey(id uint) string {
	return fmt.Sprintf("user:%d", id)
}

// Get loads a cached value into dest. Returns false on miss, decode failure,
// or when caching is disabled.
func Get(ctx context.Context, key string, dest any) bool {
	if client == nil {
		return false
	}
	data, err := client.Get(ctx, key).Bytes()
	if err != nil || json.Unmarshal(data, dest) != nil {
		observability.CacheRequests.WithLabelValues("miss").Inc()
		return false
	}
	observability.CacheRequests.WithLabelValues("hit").Inc()
	return true
}

// Set stores a value under key with the given TTL. Failures are ignored;
// the cache is best effort.
func Set(ctx context.Context, key string, value any, ttl time.Duration) {
	if client == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	client.Set(ctx, key, data, ttl)
}

// Invalidate drops the given keys.
func Invalidate(ctx context.Context, keys ...string) {
	if client == nil || len(keys) == 0 {
		return
	}
	client.Del(ctx, keys...)
}

// InvalidateUser drops the cached entry for one user.
func InvalidateUser(ctx context.Context, id uint) {
	Invalidate(ctx, UserKey(id))
}
