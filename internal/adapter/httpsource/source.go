// Package httpsource reads city documents published over HTTP.
package httpsource

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/couchcryptid/climate-insights-service/internal/domain"
)

// Source implements domain.CityRepository over {base}/data/{slug}.json with
// the slug list at {base}/data/index.json.
type Source struct {
	baseURL    string
	httpClient *http.Client
	newBackOff func() backoff.BackOff
	logger     *slog.Logger
}

// NewSource creates an HTTP source. Server errors and transport failures
// are retried with exponential backoff for up to maxElapsed.
func NewSource(baseURL string, timeout, maxElapsed time.Duration, logger *slog.Logger) *Source {
	return &Source{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		newBackOff: func() backoff.BackOff {
			bo := backoff.NewExponentialBackOff()
			bo.InitialInterval = 200 * time.Millisecond
			bo.MaxInterval = 5 * time.Second
			bo.MaxElapsedTime = maxElapsed
			return bo
		},
		logger: logger,
	}
}

func (s *Source) City(ctx context.Context, slug string) (domain.CityData, error) {
	if !domain.ValidSlug(slug) {
		return domain.CityData{}, fmt.Errorf("%q: %w", slug, domain.ErrCityNotFound)
	}
	body, err := s.fetch(ctx, fmt.Sprintf("%s/data/%s.json", s.baseURL, slug))
	if errors.Is(err, errNotFound) {
		return domain.CityData{}, fmt.Errorf("%s: %w", slug, domain.ErrCityNotFound)
	}
	if err != nil {
		return domain.CityData{}, fmt.Errorf("fetch city %s: %w", slug, err)
	}
	return domain.DecodeCity(body, slug)
}

func (s *Source) Slugs(ctx context.Context) ([]string, error) {
	body, err := s.fetch(ctx, s.baseURL+"/data/index.json")
	if err != nil {
		return nil, fmt.Errorf("fetch city index: %w", err)
	}
	var slugs []string
	if err := json.Unmarshal(body, &slugs); err != nil {
		return nil, fmt.Errorf("decode city index: %w", err)
	}
	sort.Strings(slugs)
	return slugs, nil
}

var errNotFound = errors.New("404 not found")

func (s *Source) fetch(ctx context.Context, url string) ([]byte, error) {
	var body []byte
	attempt := 0
	operation := func() error {
		attempt++
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("create request: %w", err))
		}
		resp, err := s.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return backoff.Permanent(ctx.Err())
			}
			s.logger.Warn("dataset fetch failed, retrying", "url", url, "attempt", attempt, "error", err)
			return err
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusNotFound:
			return backoff.Permanent(errNotFound)
		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
			s.logger.Warn("dataset fetch failed, retrying", "url", url, "attempt", attempt, "status", resp.StatusCode)
			return fmt.Errorf("status %d", resp.StatusCode)
		case resp.StatusCode != http.StatusOK:
			b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
			return backoff.Permanent(fmt.Errorf("status %d: %s", resp.StatusCode, b))
		}

		body, err = io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("read body: %w", err)
		}
		return nil
	}

	if err := backoff.Retry(operation, backoff.WithContext(s.newBackOff(), ctx)); err != nil {
		return nil, err
	}
	return body, nil
}
