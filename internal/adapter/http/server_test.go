package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpadapter "github.com/couchcryptid/climate-insights-service/internal/adapter/http"
	"github.com/couchcryptid/climate-insights-service/internal/domain"
	"github.com/couchcryptid/climate-insights-service/internal/insights"
	"github.com/couchcryptid/climate-insights-service/internal/observability"
)

type mockReadiness struct {
	err error
}

func (m *mockReadiness) CheckReadiness(_ context.Context) error { return m.err }

type mapRepo map[string]domain.CityData

func (m mapRepo) City(_ context.Context, slug string) (domain.CityData, error) {
	if slug == "broken" {
		return domain.CityData{}, errors.New("disk failure")
	}
	c, ok := m[slug]
	if !ok {
		return domain.CityData{}, fmt.Errorf("%s: %w", slug, domain.ErrCityNotFound)
	}
	return c, nil
}

func (m mapRepo) Slugs(context.Context) ([]string, error) {
	return []string{"lisbon", "rome"}, nil
}

func day(wedding, tempMax float64) domain.DayRecord {
	return domain.DayRecord{
		Stats:  domain.DayStats{TempMax: tempMax, TempMin: tempMax - 8, PrecipProb: 10, WindKmh: 10},
		Scores: domain.DayScores{Wedding: wedding},
	}
}

func testRepo() mapRepo {
	return mapRepo{
		"lisbon": {
			Slug: "lisbon",
			Meta: domain.CityMeta{Name: "Lisbon", Country: "Portugal", Lat: 38.72, Lon: -9.14},
			Days: map[string]domain.DayRecord{"06-15": day(60, 25), "06-17": day(90, 26)},
		},
		"rome": {
			Slug: "rome",
			Meta: domain.CityMeta{Name: "Rome", Country: "Italy", Lat: 41.9, Lon: 12.5},
			Days: map[string]domain.DayRecord{"06-15": day(85, 29)},
		},
	}
}

type testEnv struct {
	srv     *httpadapter.Server
	metrics *observability.Metrics
}

func newTestEnv(readyErr error) testEnv {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	metrics := observability.NewMetricsForTesting()
	svc := insights.NewService(testRepo(), insights.Options{ComparisonCities: []string{"lisbon", "rome"}}, metrics, logger)
	return testEnv{
		srv:     httpadapter.NewServer(":0", svc, &mockReadiness{err: readyErr}, metrics, logger),
		metrics: metrics,
	}
}

func get(t *testing.T, srv http.Handler, path string) (int, map[string]any) {
	t.Helper()
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	return rec.Code, body
}

func TestHealthzReturns200(t *testing.T) {
	code, body := get(t, newTestEnv(nil).srv, "/healthz")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "healthy", body["status"])
}

func TestReadyz(t *testing.T) {
	code, body := get(t, newTestEnv(nil).srv, "/readyz")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ready", body["status"])

	code, body = get(t, newTestEnv(errors.New("catalog not loaded")).srv, "/readyz")
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "not ready", body["status"])
	assert.Equal(t, "catalog not loaded", body["error"])
}

func TestMetricsEndpoint(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestEnv(nil).srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestAPIStatusCodes(t *testing.T) {
	tests := []struct {
		path string
		want int
	}{
		{"/v1/cities", http.StatusOK},
		{"/v1/cities/lisbon", http.StatusOK},
		{"/v1/cities/atlantis", http.StatusNotFound},
		{"/v1/cities/broken", http.StatusInternalServerError},
		{"/v1/cities/lisbon/months/june", http.StatusOK},
		{"/v1/cities/lisbon/months/6", http.StatusOK},
		{"/v1/cities/lisbon/months/january", http.StatusNotFound},
		{"/v1/cities/lisbon/months/smarch", http.StatusBadRequest},
		{"/v1/weather/lisbon/06-15", http.StatusOK},
		{"/v1/weather/lisbon/02-30", http.StatusBadRequest},
		{"/v1/weather/lisbon/01-01", http.StatusNotFound},
		{"/v1/weather/atlantis/06-15", http.StatusNotFound},
		{"/v1/weather/lisbon/06-15/alternatives", http.StatusOK},
		{"/v1/weather/lisbon/06-15/alternatives?limit=0", http.StatusBadRequest},
		{"/v1/weather/lisbon/06-15/compare?limit=2", http.StatusOK},
		{"/v1/weather/lisbon/06-15/narrative", http.StatusOK},
		{"/v1/nearest?lat=41&lon=12", http.StatusOK},
		{"/v1/nearest?lat=north&lon=12", http.StatusBadRequest},
		{"/v1/nearest?lat=95&lon=12", http.StatusBadRequest},
		{"/v1/geocode", http.StatusBadRequest},
		{"/v1/geocode?q=Vatican", http.StatusServiceUnavailable},
	}
	env := newTestEnv(nil)
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			code, body := get(t, env.srv, tt.path)
			assert.Equal(t, tt.want, code)
			if tt.want != http.StatusOK {
				assert.NotEmpty(t, body["error"])
			}
		})
	}
}

func TestInternalErrorHidesDetails(t *testing.T) {
	_, body := get(t, newTestEnv(nil).srv, "/v1/cities/broken")
	assert.Equal(t, "internal error", body["error"])
}

func TestDayReport(t *testing.T) {
	env := newTestEnv(nil)
	code, body := get(t, env.srv, "/v1/weather/Lisbon/06-15")
	require.Equal(t, http.StatusOK, code)

	assert.Equal(t, "06-15", body["date"])
	metrics := body["metrics"].(map[string]any)
	assert.EqualValues(t, 60, metrics["score"])

	alts := body["alternatives"].([]any)
	require.Len(t, alts, 1)
	assert.Equal(t, "06-17", alts[0].(map[string]any)["date"])

	comparison := body["comparison"].([]any)
	require.Len(t, comparison, 1)
	assert.Equal(t, "rome", comparison[0].(map[string]any)["slug"])

	assert.Equal(t, 1.0, testutil.ToFloat64(env.metrics.Derivations.WithLabelValues("http")))
}

func TestAlternatives_EmptyIsArray(t *testing.T) {
	code, body := get(t, newTestEnv(nil).srv, "/v1/weather/lisbon/06-17/alternatives")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, []any{}, body["alternatives"])
}

func TestNearest(t *testing.T) {
	code, body := get(t, newTestEnv(nil).srv, "/v1/nearest?lat=41&lon=12&n=1")
	require.Equal(t, http.StatusOK, code)

	cities := body["cities"].([]any)
	require.Len(t, cities, 1)
	assert.Equal(t, "rome", cities[0].(map[string]any)["slug"])
}

func TestNarrative(t *testing.T) {
	code, body := get(t, newTestEnv(nil).srv, "/v1/weather/lisbon/06-15/narrative")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, insights.NarrativeSourceTemplate, body["source"])
	assert.Contains(t, body["text"], "Lisbon on June 15")
}
