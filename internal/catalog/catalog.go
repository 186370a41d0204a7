// Package catalog keeps an in-memory snapshot of every city dataset.
//
// The snapshot is loaded from a backing domain.CityRepository and replaced
// atomically on reload, so readers never see a half-loaded catalog and a
// failed reload keeps serving the previous data.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/couchcryptid/climate-insights-service/internal/domain"
	"github.com/couchcryptid/climate-insights-service/internal/observability"
)

// ErrNotLoaded is reported by readiness checks before the first load.
var ErrNotLoaded = errors.New("catalog not loaded")

type snapshot struct {
	cities   map[string]domain.CityData
	slugs    []string
	loadedAt time.Time
}

// Catalog implements domain.CityRepository over the current snapshot.
type Catalog struct {
	source      domain.CityRepository
	concurrency int
	metrics     *observability.Metrics
	logger      *slog.Logger

	snap     atomic.Pointer[snapshot]
	reloadMu sync.Mutex
}

// New creates an empty catalog over source. Up to concurrency cities are
// loaded at once.
func New(source domain.CityRepository, concurrency int, metrics *observability.Metrics, logger *slog.Logger) *Catalog {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Catalog{source: source, concurrency: concurrency, metrics: metrics, logger: logger}
}

// Reload loads every city from the source and swaps in the new snapshot.
// Cities that fail to load are logged and left out; the reload fails only
// when the listing fails or no city loads at all.
func (c *Catalog) Reload(ctx context.Context) error {
	c.reloadMu.Lock()
	defer c.reloadMu.Unlock()

	start := time.Now()
	slugs, err := c.source.Slugs(ctx)
	if err != nil {
		c.metrics.DatasetReloads.WithLabelValues("error").Inc()
		return fmt.Errorf("list cities: %w", err)
	}

	cities, failed := c.loadAll(ctx, slugs)
	if err := ctx.Err(); err != nil {
		c.metrics.DatasetReloads.WithLabelValues("error").Inc()
		return err
	}
	if len(cities) == 0 && len(slugs) > 0 {
		c.metrics.DatasetReloads.WithLabelValues("error").Inc()
		return fmt.Errorf("reload: all %d cities failed to load", len(slugs))
	}

	loaded := make([]string, 0, len(cities))
	for slug := range cities {
		loaded = append(loaded, slug)
	}
	sort.Strings(loaded)

	c.snap.Store(&snapshot{cities: cities, slugs: loaded, loadedAt: domain.Now()})
	c.metrics.DatasetReloads.WithLabelValues("success").Inc()
	c.metrics.CitiesLoaded.Set(float64(len(cities)))
	c.logger.Info("catalog reloaded",
		"cities", len(cities),
		"failed", failed,
		"duration", time.Since(start),
	)
	return nil
}

func (c *Catalog) loadAll(ctx context.Context, slugs []string) (map[string]domain.CityData, int) {
	loaded := make([]domain.CityData, len(slugs))
	errs := make([]error, len(slugs))

	var g errgroup.Group
	g.SetLimit(c.concurrency)
	for i, slug := range slugs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				errs[i] = err
				return nil
			}
			loaded[i], errs[i] = c.source.City(ctx, slug)
			return nil
		})
	}
	_ = g.Wait()

	cities := make(map[string]domain.CityData, len(slugs))
	failed := 0
	for i, slug := range slugs {
		if errs[i] != nil {
			failed++
			c.logger.Warn("city failed to load", "slug", slug, "error", errs[i])
			continue
		}
		cities[slug] = loaded[i]
	}
	return cities, failed
}

// City returns a city from the snapshot. Before the first load it reads
// through to the source.
func (c *Catalog) City(ctx context.Context, slug string) (domain.CityData, error) {
	s := c.snap.Load()
	if s == nil {
		return c.source.City(ctx, slug)
	}
	city, ok := s.cities[slug]
	if !ok {
		return domain.CityData{}, fmt.Errorf("%s: %w", slug, domain.ErrCityNotFound)
	}
	return city, nil
}

// Slugs lists the cities in the snapshot, sorted.
func (c *Catalog) Slugs(ctx context.Context) ([]string, error) {
	s := c.snap.Load()
	if s == nil {
		return c.source.Slugs(ctx)
	}
	return append([]string(nil), s.slugs...), nil
}

// Cities returns every loaded city sorted by slug.
func (c *Catalog) Cities() []domain.CityData {
	s := c.snap.Load()
	if s == nil {
		return nil
	}
	out := make([]domain.CityData, 0, len(s.slugs))
	for _, slug := range s.slugs {
		out = append(out, s.cities[slug])
	}
	return out
}

// Locations returns the coordinates of every loaded city.
func (c *Catalog) Locations() []domain.CityLocation {
	cities := c.Cities()
	out := make([]domain.CityLocation, 0, len(cities))
	for _, city := range cities {
		out = append(out, domain.CityLocation{
			Slug:    city.Slug,
			Name:    city.Meta.Name,
			Country: city.Meta.Country,
			Point:   domain.GeoPoint{Lat: city.Meta.Lat, Lon: city.Meta.Lon},
		})
	}
	return out
}

// LoadedAt is the time of the last successful reload, or zero.
func (c *Catalog) LoadedAt() time.Time {
	if s := c.snap.Load(); s != nil {
		return s.loadedAt
	}
	return time.Time{}
}

// CheckReadiness reports ErrNotLoaded until the first successful reload.
func (c *Catalog) CheckReadiness(_ context.Context) error {
	if c.snap.Load() == nil {
		return ErrNotLoaded
	}
	return nil
}
