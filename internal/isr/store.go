package isr

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/redis/go-redis/v9"
)

// Store хранит сгенерированные страницы.
type Store interface {
	Get(ctx context.Context, path string) (Page, bool, error)
	Set(ctx context.Context, page Page) error
}

// DefaultMemoryCapacity — сколько страниц MemoryStore держит, если размер не задан.
const DefaultMemoryCapacity = 10000

type memEntry struct {
	page      Page
	expiresAt time.Time
}

// MemoryStore хранит страницы в памяти процесса: не больше capacity штук,
// при переполнении вытесняется давно не читавшаяся страница.
type MemoryStore struct {
	cache *lru.Cache[string, memEntry]
	ttl   time.Duration
	now   func() time.Time
}

// NewMemoryStore создаёт хранилище в памяти. capacity <= 0 — DefaultMemoryCapacity,
// ttl == 0 — без истечения.
func NewMemoryStore(capacity int, ttl time.Duration) *MemoryStore {
	if capacity <= 0 {
		capacity = DefaultMemoryCapacity
	}
	// lru.New возвращает ошибку только для неположительного размера.
	cache, _ := lru.New[string, memEntry](capacity)
	return &MemoryStore{cache: cache, ttl: ttl, now: time.Now}
}

func (s *MemoryStore) Get(_ context.Context, path string) (Page, bool, error) {
	e, ok := s.cache.Get(path)
	if !ok {
		return Page{}, false, nil
	}
	if !e.expiresAt.IsZero() && !s.now().Before(e.expiresAt) {
		s.cache.Remove(path)
		return Page{}, false, nil
	}
	return e.page, true, nil
}

func (s *MemoryStore) Set(_ context.Context, page Page) error {
	e := memEntry{page: page}
	if s.ttl > 0 {
		e.expiresAt = s.now().Add(s.ttl)
	}
	s.cache.Add(page.Path, e)
	return nil
}

// Len возвращает число страниц в хранилище, включая ещё не вычищенные просроченные.
func (s *MemoryStore) Len() int {
	return s.cache.Len()
}

// RedisStore хранит страницы в Redis, чтобы кэш был общим для нескольких инстансов.
type RedisStore struct {
	R   *redis.Client
	TTL time.Duration
}

// NewRedisStore создаёт хранилище поверх клиента Redis. ttl == 0 — без истечения.
func NewRedisStore(r *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{R: r, TTL: ttl}
}

func pageKey(path string) string { return "page:" + path }

func (s *RedisStore) Get(ctx context.Context, path string) (Page, bool, error) {
	b, err := s.R.Get(ctx, pageKey(path)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Page{}, false, nil
		}
		return Page{}, false, fmt.Errorf("redis get %s: %w", path, err)
	}

	var p Page
	if err := json.Unmarshal(b, &p); err != nil {
		return Page{}, false, fmt.Errorf("decode page %s: %w", path, err)
	}
	return p, true, nil
}

func (s *RedisStore) Set(ctx context.Context, page Page) error {
	b, err := json.Marshal(page)
	if err != nil {
		return fmt.Errorf("encode page %s: %w", page.Path, err)
	}
	if err := s.R.Set(ctx, pageKey(page.Path), b, s.TTL).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", page.Path, err)
	}
	return nil
}
