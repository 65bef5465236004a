package repositories

import (
	"context"
	"time"
)

type CacheRepositoryInterface interface {
	Del(ctx context.Context, key ...string) error
	HSet(ctx context.Context, key string, values map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	Expire(ctx context.Context, key string, expiration time.Duration) (bool, error)
	Ping(ctx context.Context) error
}
