package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateLimitCache counts submissions per client in fixed windows
type RateLimitCache interface {
	// Hit records one request and returns the count inside the current window
	Hit(ctx context.Context, scope, clientKey string, window time.Duration) (int64, error)
}

type rateLimitCache struct {
	client *redis.Client
}

// NewRateLimitCache creates a new rate limit cache
func NewRateLimitCache(client *redis.Client) RateLimitCache {
	return &rateLimitCache{
		client: client,
	}
}

func (c *rateLimitCache) key(scope, clientKey string) string {
	return fmt.Sprintf("ratelimit:%s:%s", scope, clientKey)
}

func (c *rateLimitCache) Hit(ctx context.Context, scope, clientKey string, window time.Duration) (int64, error) {
	key := c.key(scope, clientKey)

	var incr *redis.IntCmd
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		// window starts with the first hit
		pipe.ExpireNX(ctx, key, window)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return incr.Val(), nil
}
