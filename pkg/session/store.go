package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Obkeldiyev/vitality-clinic-hub/internal/repositories"
)

// Store хранит четыре ключа сессии между запросами.
type Store interface {
	Load(ctx context.Context, id string) (map[string]string, error)
	Save(ctx context.Context, id string, values map[string]string, ttl time.Duration) error
	Delete(ctx context.Context, id string) error
}

// RedisStore держит сессию в хеше session:<id>.
type RedisStore struct {
	cache  repositories.CacheRepositoryInterface
	prefix string
}

func NewRedisStore(cache repositories.CacheRepositoryInterface) *RedisStore {
	return &RedisStore{cache: cache, prefix: "session:"}
}

func (s *RedisStore) key(id string) string { return s.prefix + id }

func (s *RedisStore) Load(ctx context.Context, id string) (map[string]string, error) {
	values, err := s.cache.HGetAll(ctx, s.key(id))
	if err != nil {
		return nil, fmt.Errorf("не удалось прочитать сессию: %w", err)
	}
	return values, nil
}

// Save перезаписывает хеш целиком, чтобы удалённые ключи не остались.
func (s *RedisStore) Save(ctx context.Context, id string, values map[string]string, ttl time.Duration) error {
	key := s.key(id)
	if err := s.cache.Del(ctx, key); err != nil {
		return fmt.Errorf("не удалось очистить сессию: %w", err)
	}
	if len(values) == 0 {
		return nil
	}
	if err := s.cache.HSet(ctx, key, values); err != nil {
		return fmt.Errorf("не удалось сохранить сессию: %w", err)
	}
	if ttl > 0 {
		if _, err := s.cache.Expire(ctx, key, ttl); err != nil {
			return fmt.Errorf("не удалось установить TTL сессии: %w", err)
		}
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := s.cache.Del(ctx, s.key(id)); err != nil {
		return fmt.Errorf("не удалось удалить сессию: %w", err)
	}
	return nil
}

type memoryEntry struct {
	values  map[string]string
	expires time.Time
}

// MemoryStore - хранилище в памяти процесса, для тестов и запуска без Redis.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]memoryEntry
	now  func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]memoryEntry), now: time.Now}
}

func (s *MemoryStore) Load(_ context.Context, id string) (map[string]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.data[id]
	if !ok || (!entry.expires.IsZero() && s.now().After(entry.expires)) {
		return map[string]string{}, nil
	}
	out := make(map[string]string, len(entry.values))
	for k, v := range entry.values {
		out[k] = v
	}
	return out, nil
}

func (s *MemoryStore) Save(_ context.Context, id string, values map[string]string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(values) == 0 {
		delete(s.data, id)
		return nil
	}
	entry := memoryEntry{values: make(map[string]string, len(values))}
	for k, v := range values {
		entry.values[k] = v
	}
	if ttl > 0 {
		entry.expires = s.now().Add(ttl)
	}
	s.data[id] = entry
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, id)
	return nil
}
