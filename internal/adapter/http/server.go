// Package http serves the insights API and the operational probes.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/climate-insights-service/internal/climate"
	"github.com/couchcryptid/climate-insights-service/internal/domain"
	"github.com/couchcryptid/climate-insights-service/internal/insights"
	"github.com/couchcryptid/climate-insights-service/internal/observability"
)

// Insights is the read API served under /v1.
type Insights interface {
	Cities(ctx context.Context) ([]insights.CitySummary, error)
	City(ctx context.Context, slug string) (insights.CityReport, error)
	Month(ctx context.Context, slug string, month time.Month) (insights.MonthReport, error)
	Day(ctx context.Context, slug string, date domain.DateKey) (insights.DayReport, error)
	Alternatives(ctx context.Context, slug string, date domain.DateKey, limit int) ([]climate.Alternative, error)
	Compare(ctx context.Context, slug string, date domain.DateKey, limit int) ([]climate.CityScore, error)
	Narrate(ctx context.Context, slug string, date domain.DateKey) (insights.Narrative, error)
	Nearest(ctx context.Context, lat, lon float64, n int) ([]domain.CityDistance, error)
	Geocode(ctx context.Context, query string, n int) (insights.GeocodeResult, error)
}

// Server exposes the API plus health, readiness, and metrics endpoints.
type Server struct {
	httpServer *http.Server
	api        Insights
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewServer creates an HTTP server listening on addr.
func NewServer(addr string, api Insights, ready sharedobs.ReadinessChecker, metrics *observability.Metrics, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		api:     api,
		metrics: metrics,
		logger:  logger,
	}

	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(ready))
	mux.Handle("GET /metrics", promhttp.Handler())

	s.route(mux, "GET /v1/cities", s.handleCities)
	s.route(mux, "GET /v1/cities/{city}", s.handleCity)
	s.route(mux, "GET /v1/cities/{city}/months/{month}", s.handleMonth)
	s.route(mux, "GET /v1/weather/{city}/{date}", s.handleDay)
	s.route(mux, "GET /v1/weather/{city}/{date}/alternatives", s.handleAlternatives)
	s.route(mux, "GET /v1/weather/{city}/{date}/compare", s.handleCompare)
	s.route(mux, "GET /v1/weather/{city}/{date}/narrative", s.handleNarrative)
	s.route(mux, "GET /v1/nearest", s.handleNearest)
	s.route(mux, "GET /v1/geocode", s.handleGeocode)

	return s
}

// route registers h under pattern and records its latency by pattern.
func (s *Server) route(mux *http.ServeMux, pattern string, h http.HandlerFunc) {
	observer := s.metrics.RequestDuration.WithLabelValues(pattern)
	mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		h(w, r)
		observer.Observe(time.Since(start).Seconds())
	})
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}
