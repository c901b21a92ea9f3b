package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"tzsync/internal/shared/biztime"
)

const keyPrefix = "ratelimit:"

// RedisRateLimiter is a fixed-window counter shared by every instance that
// talks to the same Redis. Each key gets one counter per window bucket.
type RedisRateLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
	now    func() time.Time
}

func NewRedisRateLimiter(client *redis.Client, limit int, window time.Duration) *RedisRateLimiter {
	return &RedisRateLimiter{
		client: client,
		limit:  limit,
		window: window,
		now:    biztime.NowUTC,
	}
}

func (l *RedisRateLimiter) Allow(ctx context.Context, key string) (*Decision, error) {
	now := l.now()
	windowSeconds := int64(l.window / time.Second)
	if windowSeconds < 1 {
		windowSeconds = 1
	}
	bucket := now.Unix() / windowSeconds
	redisKey := fmt.Sprintf("%s%s:%d", keyPrefix, key, bucket)

	pipe := l.client.TxPipeline()
	incr := pipe.Incr(ctx, redisKey)
	pipe.Expire(ctx, redisKey, l.window+time.Second)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to increment rate limit counter: %w", err)
	}

	count := int(incr.Val())
	remaining := l.limit - count
	if remaining < 0 {
		remaining = 0
	}
	windowEnd := time.Unix((bucket+1)*windowSeconds, 0)

	return &Decision{
		Allowed:    count <= l.limit,
		Limit:      l.limit,
		Remaining:  remaining,
		ResetAfter: windowEnd.Sub(now),
	}, nil
}
