package cache

import (
	"context"
	"time"

	"github.com/bistroboss/bistroboss/internal/model"
)

const (
	// roleCachePrefix is the Redis key prefix for cached role lookups.
	roleCachePrefix = "role:"
	// roleCacheTTL bounds how stale a cached role may be. A promotion
	// or demotion takes effect everywhere within this window.
	roleCacheTTL = 5 * time.Minute
)

// GetRole retrieves a cached role by email.
// Returns ok=false on a cache miss; a miss is not an error.
func (c *Cache) GetRole(ctx context.Context, email string) (model.Role, bool) {
	val, err := c.client.Get(ctx, roleCachePrefix+email).Result()
	if err != nil {
		return "", false
	}

	role := model.Role(val)
	if !role.IsValid() {
		// Corrupted entry - treat as miss
		return "", false
	}
	return role, true
}

// SetRole caches a role lookup result.
func (c *Cache) SetRole(ctx context.Context, email string, role model.Role) error {
	return c.client.Set(ctx, roleCachePrefix+email, string(role), roleCacheTTL).Err()
}

// InvalidateRole drops a cached role. Called when an admin mutates or
// deletes a user so the guard chain sees the change promptly.
func (c *Cache) InvalidateRole(ctx context.Context, email string) error {
	return c.client.Del(ctx, roleCachePrefix+email).Err()
}
