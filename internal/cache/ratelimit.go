package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	// rateLimitPrefix is the Redis key prefix for IP rate limits.
	rateLimitPrefix = "ratelimit:ip:"
	// rateLimitWindow is the fixed window size.
	rateLimitWindow = time.Second
)

// RateLimitResult describes the outcome of a rate limit check.
type RateLimitResult struct {
	Allowed    bool
	Remaining  int64
	RetryAfter time.Duration
}

// CheckIPRateLimit applies a fixed-window counter per IP.
// The window is one second; limit+burst requests are admitted per window.
func (c *Cache) CheckIPRateLimit(ctx context.Context, ip string, limit, burst int) (*RateLimitResult, error) {
	window := time.Now().Unix()
	key := fmt.Sprintf("%s%s:%d", rateLimitPrefix, ip, window)

	count, err := c.client.Incr(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("rate limit incr: %w", err)
	}
	if count == 1 {
		// First hit in this window owns the expiry.
		if err := c.client.Expire(ctx, key, 2*rateLimitWindow).Err(); err != nil {
			return nil, fmt.Errorf("rate limit expire: %w", err)
		}
	}

	max := int64(limit + burst)
	if count > max {
		return &RateLimitResult{
			Allowed:    false,
			Remaining:  0,
			RetryAfter: rateLimitWindow,
		}, nil
	}

	return &RateLimitResult{
		Allowed:   true,
		Remaining: max - count,
	}, nil
}
