package kv

import (
	"context"

	redisstore "erdash/internal/infra/kv/redis"
)

// NewRedis connects to the Redis database addressed by url.
func NewRedis(ctx context.Context, url string) (Medium, error) {
	return redisstore.New(ctx, url)
}
