package services

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// RateLimiter caps redemption requests per member within a window. A nil
// redis client disables limiting.
type RateLimiter struct {
	redis  *redis.Client
	max    int
	window time.Duration
}

func NewRateLimiter(redisClient *redis.Client, max int, window time.Duration) *RateLimiter {
	return &RateLimiter{redis: redisClient, max: max, window: window}
}

func rateLimitKey(memberID string) string {
	return fmt.Sprintf("redemption:ratelimit:%s", memberID)
}

func (l *RateLimiter) Check(ctx context.Context, memberID string) error {
	if l == nil || l.redis == nil || l.max <= 0 {
		return nil
	}
	count, err := l.redis.Get(ctx, rateLimitKey(memberID)).Int()
	if err != nil && err != redis.Nil {
		return fmt.Errorf("read rate limit: %w", err)
	}
	if count >= l.max {
		return ErrRateLimited
	}
	return nil
}

func (l *RateLimiter) Increment(ctx context.Context, memberID string) error {
	if l == nil || l.redis == nil || l.max <= 0 {
		return nil
	}
	key := rateLimitKey(memberID)
	pipe := l.redis.Pipeline()
	pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, l.window)
	_, err := pipe.Exec(ctx)
	return err
}
