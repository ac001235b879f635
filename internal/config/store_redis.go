package config

import (
	"context"
	"errors"
	"log/slog"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"messhall/internal/platform/redis"
	"messhall/pkg/platform/sentinel"
)

const cacheKeyPrefix = "messhall:settings:"

// missMarker caches "key is unset" so an unconfigured deployment does not hit
// the database on every request.
const missMarker = "\x00unset"

// CachedStore is a read-through Redis cache in front of another Store.
// Settings are read on every ledger operation but change rarely; a short TTL
// keeps admin updates visible quickly. Cache failures fall back to the inner
// store and are logged, never surfaced.
type CachedStore struct {
	inner  Store
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func NewCachedStore(inner Store, client *redis.Client, ttl time.Duration, logger *slog.Logger) *CachedStore {
	return &CachedStore{inner: inner, client: client, ttl: ttl, logger: logger}
}

func (s *CachedStore) Get(ctx context.Context, key string) (string, error) {
	cached, err := s.client.Get(ctx, cacheKeyPrefix+key).Result()
	switch {
	case err == nil:
		if cached == missMarker {
			return "", sentinel.ErrNotFound
		}
		return cached, nil
	case !errors.Is(err, goredis.Nil):
		s.logger.WarnContext(ctx, "settings cache read failed", "key", key, "error", err)
	}

	value, err := s.inner.Get(ctx, key)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			s.fill(ctx, key, missMarker)
		}
		return "", err
	}
	s.fill(ctx, key, value)
	return value, nil
}

func (s *CachedStore) Set(ctx context.Context, setting Setting) error {
	if err := s.inner.Set(ctx, setting); err != nil {
		return err
	}
	// Invalidate; the next read refills from the inner store.
	if err := s.client.Del(ctx, cacheKeyPrefix+setting.Key).Err(); err != nil {
		s.logger.WarnContext(ctx, "settings cache invalidation failed", "key", setting.Key, "error", err)
	}
	return nil
}

func (s *CachedStore) List(ctx context.Context) ([]Setting, error) {
	return s.inner.List(ctx)
}

func (s *CachedStore) fill(ctx context.Context, key, value string) {
	if err := s.client.Set(ctx, cacheKeyPrefix+key, value, s.ttl).Err(); err != nil {
		s.logger.WarnContext(ctx, "settings cache write failed", "key", key, "error", err)
	}
}
