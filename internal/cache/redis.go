package cache

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Connect dials Redis from a URL-style DSN and fails fast when the server
// is unreachable, so a misconfigured cache surfaces at startup.
func Connect(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return client, nil
}
