package httpsource

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/climate-insights-service/internal/domain"
)

const cityJSON = `{"meta":{"name":"Oslo","country":"Norway"},"days":{"01-01":{"stats":{"temp_max":-1}}}}`

func newTestSource(url string) *Source {
	s := NewSource(url, time.Second, time.Second, slog.New(slog.NewTextHandler(io.Discard, nil)))
	s.newBackOff = func() backoff.BackOff {
		return backoff.WithMaxRetries(backoff.NewConstantBackOff(time.Millisecond), 3)
	}
	return s
}

func TestSource_City(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/data/oslo.json", r.URL.Path)
		_, _ = w.Write([]byte(cityJSON))
	}))
	defer srv.Close()

	c, err := newTestSource(srv.URL).City(context.Background(), "oslo")
	require.NoError(t, err)
	assert.Equal(t, "oslo", c.Slug)
	assert.Equal(t, "Oslo", c.Meta.Name)
}

func TestSource_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(cityJSON))
	}))
	defer srv.Close()

	_, err := newTestSource(srv.URL).City(context.Background(), "oslo")
	require.NoError(t, err)
	assert.Equal(t, int32(3), calls.Load())
}

func TestSource_NotFoundIsPermanent(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		http.NotFound(w, nil)
	}))
	defer srv.Close()

	_, err := newTestSource(srv.URL).City(context.Background(), "atlantis")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrCityNotFound))
	assert.Equal(t, int32(1), calls.Load())
}

func TestSource_ClientErrorNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := newTestSource(srv.URL).City(context.Background(), "oslo")
	require.Error(t, err)
	assert.False(t, errors.Is(err, domain.ErrNotFound))
	assert.Equal(t, int32(1), calls.Load())
}

func TestSource_GivesUpAfterRetries(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := newTestSource(srv.URL).City(context.Background(), "oslo")
	require.Error(t, err)
	assert.Equal(t, int32(4), calls.Load())
}

func TestSource_Slugs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/data/index.json", r.URL.Path)
		_, _ = w.Write([]byte(`["rome","oslo"]`))
	}))
	defer srv.Close()

	slugs, err := newTestSource(srv.URL).Slugs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"oslo", "rome"}, slugs)
}
