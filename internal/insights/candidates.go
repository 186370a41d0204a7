package insights

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/couchcryptid/climate-insights-service/internal/domain"
)

// loadCandidates loads slugs with at most s.concurrency lookups in flight
// and returns the cities that loaded, in slug order. Missing cities are
// skipped silently; other failures are logged and skipped.
func (s *Service) loadCandidates(ctx context.Context, slugs []string) []domain.CityData {
	loaded := make([]*domain.CityData, len(slugs))

	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for i, slug := range slugs {
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			city, err := s.city(ctx, slug)
			switch {
			case err == nil:
				loaded[i] = &city
			case errors.Is(err, domain.ErrNotFound):
			default:
				s.logger.Warn("comparison city failed to load", "slug", slug, "error", err)
			}
			return nil
		})
	}
	_ = g.Wait()

	out := make([]domain.CityData, 0, len(slugs))
	for _, c := range loaded {
		if c != nil {
			out = append(out, *c)
		}
	}
	return out
}
