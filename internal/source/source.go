// Package source builds the configured city repository.
package source

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"

	"github.com/couchcryptid/climate-insights-service/internal/adapter/filestore"
	"github.com/couchcryptid/climate-insights-service/internal/adapter/httpsource"
	"github.com/couchcryptid/climate-insights-service/internal/adapter/rediscache"
	"github.com/couchcryptid/climate-insights-service/internal/adapter/s3"
	"github.com/couchcryptid/climate-insights-service/internal/adapter/sqlite"
	"github.com/couchcryptid/climate-insights-service/internal/config"
	"github.com/couchcryptid/climate-insights-service/internal/domain"
	"github.com/couchcryptid/climate-insights-service/internal/observability"
)

const (
	httpTimeout    = 10 * time.Second
	httpMaxElapsed = 30 * time.Second
)

// Repository is an opened city repository plus whatever it holds open.
type Repository struct {
	domain.CityRepository

	// Checks lists the backing stores that can report readiness.
	Checks  []sharedobs.ReadinessChecker
	closers []func() error
}

// Close releases every backing store.
func (r *Repository) Close() error {
	var first error
	for _, c := range r.closers {
		if err := c(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Open builds the repository selected by cfg.DataSource, wrapped in the
// Redis cache when REDIS_ADDR is set.
func Open(ctx context.Context, cfg *config.Config, metrics *observability.Metrics, logger *slog.Logger) (*Repository, error) {
	r := &Repository{}

	switch cfg.DataSource {
	case config.SourceDir:
		r.CityRepository = filestore.New(cfg.DataDir)
	case config.SourceHTTP:
		r.CityRepository = httpsource.NewSource(cfg.DataBaseURL, httpTimeout, httpMaxElapsed, logger)
	case config.SourceS3:
		src, err := s3.NewSource(s3.Options{
			Endpoint:  cfg.S3Endpoint,
			Bucket:    cfg.S3Bucket,
			Prefix:    cfg.S3Prefix,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			UseSSL:    cfg.S3UseSSL,
		})
		if err != nil {
			return nil, err
		}
		r.CityRepository = src
	case config.SourceSQLite:
		store, err := sqlite.Open(ctx, cfg.SQLitePath, logger)
		if err != nil {
			return nil, err
		}
		r.CityRepository = store
		r.Checks = append(r.Checks, store)
		r.closers = append(r.closers, store.Close)
	default:
		return nil, fmt.Errorf("unknown data source %q", cfg.DataSource)
	}
	logger.Info("city source configured", "source", cfg.DataSource)

	if cfg.RedisAddr != "" {
		rdb := rediscache.NewClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		cached := rediscache.NewCachedRepository(r.CityRepository, rdb, cfg.RedisTTL, metrics, logger)
		r.CityRepository = cached
		r.Checks = append(r.Checks, cached)
		r.closers = append(r.closers, rdb.Close)
		logger.Info("redis city cache enabled", "addr", cfg.RedisAddr, "ttl", cfg.RedisTTL)
	}
	return r, nil
}
