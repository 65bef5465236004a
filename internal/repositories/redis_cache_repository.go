package repositories

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisCacheRepository - реализация кеша на Redis.
type RedisCacheRepository struct {
	client *redis.Client
}

// NewRedisCacheRepository - конструктор для репозитория.
// Он возвращает объект, который соответствует CacheRepositoryInterface.
func NewRedisCacheRepository(client *redis.Client) CacheRepositoryInterface {
	return &RedisCacheRepository{client: client}
}

// Del удаляет ключи из кеша.
func (r *RedisCacheRepository) Del(ctx context.Context, keys ...string) error {
	return r.client.Del(ctx, keys...).Err()
}

// HSet записывает поля хеша одной командой.
func (r *RedisCacheRepository) HSet(ctx context.Context, key string, values map[string]string) error {
	args := make(map[string]interface{}, len(values))
	for k, v := range values {
		args[k] = v
	}
	return r.client.HSet(ctx, key, args).Err()
}

// HGetAll возвращает все поля хеша; для отсутствующего ключа - пустую карту.
func (r *RedisCacheRepository) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	return r.client.HGetAll(ctx, key).Result()
}

// Expire устанавливает время жизни для ключа.
func (r *RedisCacheRepository) Expire(ctx context.Context, key string, expiration time.Duration) (bool, error) {
	return r.client.Expire(ctx, key, expiration).Result()
}

func (r *RedisCacheRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
