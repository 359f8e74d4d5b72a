package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrCacheMiss = errors.New("cache miss")

// entry is the stored shape: payload plus the wall-clock write time, aged at
// read time against the caller's TTL.
type entry struct {
	Data      json.RawMessage `json:"data"`
	Timestamp int64           `json:"timestamp"` // unix milliseconds
}

func (e entry) fresh(maxAge time.Duration) bool {
	return time.Since(time.UnixMilli(e.Timestamp)) < maxAge
}

// Cache holds short-lived copies of upstream responses. Get enforces
// freshness; GetStale ignores it so a failed fetch can fall back to the last
// good answer.
type Cache interface {
	Get(ctx context.Context, key string, maxAge time.Duration, out any) error
	GetStale(ctx context.Context, key string, out any) error
	Set(ctx context.Context, key string, v any) error
}

// MemoryCache is the zero-dependency default.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]entry
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]entry)}
}

func (m *MemoryCache) Get(_ context.Context, key string, maxAge time.Duration, out any) error {
	m.mu.RLock()
	e, ok := m.entries[key]
	m.mu.RUnlock()
	if !ok || !e.fresh(maxAge) {
		return ErrCacheMiss
	}
	return json.Unmarshal(e.Data, out)
}

func (m *MemoryCache) GetStale(_ context.Context, key string, out any) error {
	m.mu.RLock()
	e, ok := m.entries[key]
	m.mu.RUnlock()
	if !ok {
		return ErrCacheMiss
	}
	return json.Unmarshal(e.Data, out)
}

func (m *MemoryCache) Set(_ context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.entries[key] = entry{Data: data, Timestamp: time.Now().UnixMilli()}
	m.mu.Unlock()
	return nil
}

// FileCache persists entries through the storage layer so a restart still
// has a stale snapshot to fall back on.
type FileCache struct {
	kv *KV
}

func NewFileCache(kv *KV) *FileCache {
	return &FileCache{kv: kv}
}

func (f *FileCache) Get(_ context.Context, key string, maxAge time.Duration, out any) error {
	var e entry
	if err := f.kv.Get("cache_"+key, &e); err != nil {
		return ErrCacheMiss
	}
	if !e.fresh(maxAge) {
		return ErrCacheMiss
	}
	return json.Unmarshal(e.Data, out)
}

func (f *FileCache) GetStale(_ context.Context, key string, out any) error {
	var e entry
	if err := f.kv.Get("cache_"+key, &e); err != nil {
		return ErrCacheMiss
	}
	return json.Unmarshal(e.Data, out)
}

func (f *FileCache) Set(_ context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return f.kv.Set("cache_"+key, entry{Data: data, Timestamp: time.Now().UnixMilli()})
}

// RedisCache shares one cache between storefront replicas. Entries live
// well past their freshness window (with jitter so keys don't expire in
// lockstep), which is what makes the stale fallback useful.
type RedisCache struct {
	client  *redis.Client
	baseTTL time.Duration
}

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client, baseTTL: 15 * time.Minute}
}

func (r *RedisCache) Get(ctx context.Context, key string, maxAge time.Duration, out any) error {
	e, err := r.load(ctx, key)
	if err != nil {
		return err
	}
	if !e.fresh(maxAge) {
		return ErrCacheMiss
	}
	return json.Unmarshal(e.Data, out)
}

func (r *RedisCache) GetStale(ctx context.Context, key string, out any) error {
	e, err := r.load(ctx, key)
	if err != nil {
		return err
	}
	return json.Unmarshal(e.Data, out)
}

func (r *RedisCache) load(ctx context.Context, key string) (entry, error) {
	data, err := r.client.Get(ctx, "storefront:cache:"+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return entry{}, ErrCacheMiss
	}
	if err != nil {
		return entry{}, fmt.Errorf("redis get failed: %w", err)
	}
	var e entry
	if err := json.Unmarshal(data, &e); err != nil {
		return entry{}, fmt.Errorf("unmarshal cache entry failed: %w", err)
	}
	return e, nil
}

func (r *RedisCache) Set(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal cache entry failed: %w", err)
	}
	raw, err := json.Marshal(entry{Data: data, Timestamp: time.Now().UnixMilli()})
	if err != nil {
		return err
	}
	jitter := time.Duration(rand.Intn(5)) * time.Minute
	if err := r.client.Set(ctx, "storefront:cache:"+key, raw, r.baseTTL+jitter).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}
