package nominatim

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/climate-insights-service/internal/observability"
)

const testUserAgent = "climate-insights-test/1.0"

func testClient(baseURL string, metrics *observability.Metrics) *Client {
	return NewClient(Options{
		BaseURL:   baseURL,
		UserAgent: testUserAgent,
		Timeout:   5 * time.Second,
	}, metrics, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func jsonHandler(t *testing.T, body string, check func(r *http.Request)) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		if check != nil {
			check(r)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, body)
	}
}

func TestClient_ForwardGeocode_Success(t *testing.T) {
	srv := httptest.NewServer(jsonHandler(t, `[{
		"lat": "50.0874654", "lon": "14.4212535",
		"display_name": "Prague, Czechia", "name": "Prague",
		"importance": 0.83, "address": {"country_code": "cz"}
	}]`, func(r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "Prague", r.URL.Query().Get("q"))
		assert.Equal(t, "jsonv2", r.URL.Query().Get("format"))
		assert.Equal(t, "1", r.URL.Query().Get("limit"))
		assert.Equal(t, testUserAgent, r.Header.Get("User-Agent"))
	}))
	defer srv.Close()

	m := observability.NewMetricsForTesting()
	result, err := testClient(srv.URL, m).ForwardGeocode(context.Background(), "Prague")
	require.NoError(t, err)

	assert.InDelta(t, 50.0874654, result.Lat, 1e-9)
	assert.InDelta(t, 14.4212535, result.Lon, 1e-9)
	assert.Equal(t, "Prague, Czechia", result.DisplayName)
	assert.Equal(t, "Prague", result.PlaceName)
	assert.Equal(t, "cz", result.CountryCode)
	assert.Equal(t, 0.83, result.Importance)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.GeocodeRequests.WithLabelValues("forward", "success")))
}

func TestClient_ForwardGeocode_NoResults(t *testing.T) {
	srv := httptest.NewServer(jsonHandler(t, `[]`, nil))
	defer srv.Close()

	m := observability.NewMetricsForTesting()
	result, err := testClient(srv.URL, m).ForwardGeocode(context.Background(), "Atlantis")
	require.NoError(t, err)
	assert.Zero(t, result.Lat)
	assert.Empty(t, result.DisplayName)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.GeocodeRequests.WithLabelValues("forward", "empty")))
}

func TestClient_ReverseGeocode(t *testing.T) {
	srv := httptest.NewServer(jsonHandler(t, `{
		"lat": "41.9028", "lon": "12.4964", "display_name": "Rome, Lazio, Italy", "name": "Rome",
		"address": {"country_code": "it"}
	}`, func(r *http.Request) {
		assert.Equal(t, "/reverse", r.URL.Path)
		assert.Equal(t, "41.902800", r.URL.Query().Get("lat"))
		assert.Equal(t, "12.496400", r.URL.Query().Get("lon"))
	}))
	defer srv.Close()

	result, err := testClient(srv.URL, observability.NewMetricsForTesting()).ReverseGeocode(context.Background(), 41.9028, 12.4964)
	require.NoError(t, err)
	assert.Equal(t, "Rome, Lazio, Italy", result.DisplayName)
	assert.Equal(t, "it", result.CountryCode)
}

func TestClient_ReverseGeocode_Unknown(t *testing.T) {
	srv := httptest.NewServer(jsonHandler(t, `{"error": "Unable to geocode"}`, nil))
	defer srv.Close()

	result, err := testClient(srv.URL, observability.NewMetricsForTesting()).ReverseGeocode(context.Background(), 0, -160)
	require.NoError(t, err)
	assert.Empty(t, result.DisplayName)
}

func TestClient_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = io.WriteString(w, "Access blocked")
	}))
	defer srv.Close()

	m := observability.NewMetricsForTesting()
	_, err := testClient(srv.URL, m).ForwardGeocode(context.Background(), "Prague")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.GeocodeRequests.WithLabelValues("forward", "error")))
}

func TestClient_BadCoordinates(t *testing.T) {
	srv := httptest.NewServer(jsonHandler(t, `[{"lat": "north", "lon": "1", "display_name": "X"}]`, nil))
	defer srv.Close()

	_, err := testClient(srv.URL, observability.NewMetricsForTesting()).ForwardGeocode(context.Background(), "X")
	require.ErrorContains(t, err, "parse lat")
}

func TestClient_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(Options{BaseURL: srv.URL, Timeout: 50 * time.Millisecond},
		observability.NewMetricsForTesting(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	_, err := c.ForwardGeocode(context.Background(), "Prague")
	require.Error(t, err)
}

func TestClient_RateLimited(t *testing.T) {
	srv := httptest.NewServer(jsonHandler(t, `[]`, nil))
	defer srv.Close()

	c := NewClient(Options{BaseURL: srv.URL, Timeout: time.Second, MinInterval: time.Hour},
		observability.NewMetricsForTesting(), slog.New(slog.NewTextHandler(io.Discard, nil)))

	_, err := c.ForwardGeocode(context.Background(), "first")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = c.ForwardGeocode(ctx, "second")
	require.ErrorContains(t, err, "rate limit")
}
