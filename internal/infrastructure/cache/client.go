package cache

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"tzsync/internal/shared/config"
)

// NewRedisClient builds a pooled client from cfg.URL and pings it once so a
// bad address fails startup instead of the first request.
func NewRedisClient(ctx context.Context, cfg *config.RedisConfig) (*redis.Client, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}

	timeout := cfg.ConnectTimeout()
	opts.PoolSize = cfg.PoolSize
	opts.DialTimeout = timeout
	opts.ReadTimeout = timeout
	opts.WriteTimeout = timeout
	// callers wait at most this long for a free connection
	opts.PoolTimeout = timeout

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return client, nil
}
