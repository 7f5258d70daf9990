package tracking

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"github.com/parcelo/parcelo-api/internal/domain"
)

// ErrCacheMiss is returned by a KV backend when a key is absent.
var ErrCacheMiss = errors.New("cache miss")

// KV is the minimal key-value contract the lookup cache needs.
// It exists so the cache can be tested without a running Redis server.
type KV interface {
	// Get returns the value for key, or ErrCacheMiss when absent.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key with the given TTL.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// RedisKV implements KV on top of a go-redis client.
type RedisKV struct {
	rdb *redis.Client
}

// NewRedisKV creates a Redis-backed KV store.
func NewRedisKV(addr, password string, db int) *RedisKV {
	return &RedisKV{
		rdb: redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db}),
	}
}

// Get implements KV.Get
func (r *RedisKV) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := r.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	return b, err
}

// Set implements KV.Set
func (r *RedisKV) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return r.rdb.Set(ctx, key, value, ttl).Err()
}

// CachedProvider is a read-through cache around a Provider. Only anonymous
// lookups are cached: owned registrations must always see fresh carrier
// data because their result is persisted. Concurrent misses for the same
// code are coalesced into a single carrier request.
type CachedProvider struct {
	inner  Provider
	kv     KV
	ttl    time.Duration
	logger *slog.Logger
	sf     singleflight.Group
}

// Ensure CachedProvider implements Provider
var _ Provider = (*CachedProvider)(nil)

// NewCachedProvider wraps inner with a KV-backed lookup cache.
func NewCachedProvider(inner Provider, kv KV, ttl time.Duration, logger *slog.Logger) *CachedProvider {
	if logger == nil {
		logger = slog.Default()
	}
	return &CachedProvider{
		inner:  inner,
		kv:     kv,
		ttl:    ttl,
		logger: logger.With(slog.String("component", "tracking_cache")),
	}
}

// Lookup implements Provider.Lookup.
func (p *CachedProvider) Lookup(ctx context.Context, code string, ownerID uuid.UUID) (*domain.Tracker, error) {
	if ownerID != uuid.Nil {
		return p.inner.Lookup(ctx, code, ownerID)
	}

	key := "tracking:code:" + code

	if b, err := p.kv.Get(ctx, key); err == nil {
		var tracker domain.Tracker
		if err := json.Unmarshal(b, &tracker); err == nil {
			p.logger.Debug("cache hit", slog.String("code", code))
			return &tracker, nil
		}
		p.logger.Warn("discarding undecodable cache entry", slog.String("code", code))
	} else if !errors.Is(err, ErrCacheMiss) {
		// Cache failures are soft: log and go to the carrier.
		p.logger.Warn("cache read failed",
			slog.String("code", code),
			slog.String("error", err.Error()))
	}

	v, err, _ := p.sf.Do(key, func() (any, error) {
		tracker, err := p.inner.Lookup(ctx, code, uuid.Nil)
		if err != nil {
			return nil, err
		}

		// Empty results are not cached so a parcel that enters the
		// carrier's system becomes visible without waiting out the TTL.
		if tracker.HasEvents() {
			if b, err := json.Marshal(tracker); err == nil {
				if err := p.kv.Set(ctx, key, b, p.ttl); err != nil {
					p.logger.Warn("cache write failed",
						slog.String("code", code),
						slog.String("error", err.Error()))
				}
			}
		}

		return tracker, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*domain.Tracker), nil
}
