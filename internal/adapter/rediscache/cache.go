// Package rediscache caches city documents in Redis in front of another
// repository.
package rediscache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/couchcryptid/climate-insights-service/internal/domain"
	"github.com/couchcryptid/climate-insights-service/internal/observability"
)

const keyPrefix = "climate:city:"

// client is the subset of *redis.Client the cache uses.
type client interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Ping(ctx context.Context) *redis.StatusCmd
}

// CachedRepository is a read-through cache decorator. Only successful loads
// are cached, and Redis failures fall through to the inner repository.
type CachedRepository struct {
	inner   domain.CityRepository
	rdb     client
	ttl     time.Duration
	metrics *observability.Metrics
	logger  *slog.Logger
}

// NewClient connects to addr.
func NewClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		PoolSize:     10,
		MinIdleConns: 2,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
}

// NewCachedRepository wraps inner with a Redis cache whose entries expire
// after ttl.
func NewCachedRepository(inner domain.CityRepository, rdb *redis.Client, ttl time.Duration, metrics *observability.Metrics, logger *slog.Logger) *CachedRepository {
	return newCachedRepository(inner, rdb, ttl, metrics, logger)
}

func newCachedRepository(inner domain.CityRepository, rdb client, ttl time.Duration, metrics *observability.Metrics, logger *slog.Logger) *CachedRepository {
	return &CachedRepository{inner: inner, rdb: rdb, ttl: ttl, metrics: metrics, logger: logger}
}

func (c *CachedRepository) City(ctx context.Context, slug string) (domain.CityData, error) {
	key := keyPrefix + slug

	b, err := c.rdb.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		city, decodeErr := domain.DecodeCity(b, slug)
		if decodeErr == nil {
			c.metrics.CityCache.WithLabelValues("hit").Inc()
			return city, nil
		}
		c.logger.Warn("discarding corrupt cache entry", "slug", slug, "error", decodeErr)
		c.metrics.CityCache.WithLabelValues("error").Inc()
	case errors.Is(err, redis.Nil):
		c.metrics.CityCache.WithLabelValues("miss").Inc()
	default:
		c.logger.Warn("redis get failed", "slug", slug, "error", err)
		c.metrics.CityCache.WithLabelValues("error").Inc()
	}

	city, err := c.inner.City(ctx, slug)
	if err != nil {
		return domain.CityData{}, err
	}

	payload, err := domain.EncodeCity(city)
	if err != nil {
		c.logger.Warn("encode city for cache failed", "slug", slug, "error", err)
		c.metrics.CityCache.WithLabelValues("error").Inc()
		return city, nil
	}
	if err := c.rdb.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		c.logger.Warn("redis set failed", "slug", slug, "error", err)
		c.metrics.CityCache.WithLabelValues("error").Inc()
	}
	return city, nil
}

// Slugs is not cached; listings are cheap next to full documents.
func (c *CachedRepository) Slugs(ctx context.Context) ([]string, error) {
	return c.inner.Slugs(ctx)
}

// CheckReadiness pings Redis.
func (c *CachedRepository) CheckReadiness(ctx context.Context) error {
	if err := c.rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}
