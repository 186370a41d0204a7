package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"

	httpadapter "github.com/couchcryptid/climate-insights-service/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/climate-insights-service/internal/adapter/kafka"
	"github.com/couchcryptid/climate-insights-service/internal/adapter/llm"
	"github.com/couchcryptid/climate-insights-service/internal/adapter/nominatim"
	"github.com/couchcryptid/climate-insights-service/internal/catalog"
	"github.com/couchcryptid/climate-insights-service/internal/config"
	"github.com/couchcryptid/climate-insights-service/internal/domain"
	"github.com/couchcryptid/climate-insights-service/internal/insights"
	"github.com/couchcryptid/climate-insights-service/internal/observability"
	"github.com/couchcryptid/climate-insights-service/internal/pipeline"
	"github.com/couchcryptid/climate-insights-service/internal/source"
)

const reloadTimeout = 2 * time.Minute

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repo, err := source.Open(ctx, cfg, metrics, logger)
	if err != nil {
		logger.Error("failed to open city source", "error", err)
		os.Exit(1)
	}
	defer func() { _ = repo.Close() }()

	cat := catalog.New(repo, cfg.LoadConcurrency, metrics, logger)
	if err := cat.Reload(ctx); err != nil {
		logger.Error("initial city load failed", "error", err)
		os.Exit(1)
	}

	var scheduler *catalog.Scheduler
	if cfg.ReloadSchedule != "" {
		scheduler, err = catalog.NewScheduler(cat, cfg.ReloadSchedule, reloadTimeout)
		if err != nil {
			logger.Error("invalid reload schedule", "error", err)
			os.Exit(1)
		}
		scheduler.Start()
		logger.Info("scheduled city reloads", "schedule", cfg.ReloadSchedule)
	}

	// Initialize geocoder (feature-flagged via NOMINATIM_ENABLED).
	var geocoder domain.Geocoder
	if cfg.NominatimEnabled {
		client := nominatim.NewClient(nominatim.Options{
			BaseURL:     cfg.NominatimURL,
			UserAgent:   cfg.NominatimUserAgent,
			Timeout:     cfg.NominatimTimeout,
			MinInterval: cfg.NominatimInterval,
		}, metrics, logger)
		geocoder = nominatim.NewCachedGeocoder(client, cfg.NominatimCacheSize, metrics)
		metrics.GeocodeEnabled.Set(1)
		logger.Info("nominatim geocoding enabled", "cache_size", cfg.NominatimCacheSize, "timeout", cfg.NominatimTimeout)
	} else {
		logger.Info("nominatim geocoding disabled")
	}

	var narrator insights.Narrator
	if cfg.OpenAIAPIKey != "" {
		n, err := llm.NewNarrator(llm.Options{APIKey: cfg.OpenAIAPIKey, Model: cfg.OpenAIModel}, logger)
		if err != nil {
			logger.Error("failed to create narrator", "error", err)
			os.Exit(1)
		}
		narrator = n
		logger.Info("model narration enabled", "model", cfg.OpenAIModel)
	}

	comparison := insights.DefaultComparisonCities
	if cfg.ComparisonCitiesFile != "" {
		comparison, err = insights.LoadComparisonCities(cfg.ComparisonCitiesFile)
		if err != nil {
			logger.Error("failed to load comparison cities", "error", err)
			os.Exit(1)
		}
	}

	svc := insights.NewService(cat, insights.Options{
		ComparisonCities: comparison,
		Concurrency:      cfg.LoadConcurrency,
		Geocoder:         geocoder,
		Narrator:         narrator,
	}, metrics, logger)

	checks := append([]sharedobs.ReadinessChecker{cat}, repo.Checks...)

	var (
		p      *pipeline.Pipeline
		reader *kafkaadapter.Reader
		writer *kafkaadapter.Writer
	)
	if cfg.KafkaEnabled {
		reader = kafkaadapter.NewReader(cfg, logger)
		writer = kafkaadapter.NewWriter(cfg, logger)
		transformer := pipeline.NewTransformer(svc, metrics, logger)
		p = pipeline.New(reader, transformer, writer, logger, metrics, cfg.BatchSize)
		checks = append(checks, p)
	}

	srv := httpadapter.NewServer(cfg.HTTPAddr, svc, observability.AllReady(checks...), metrics, logger)

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Start derive-request pipeline.
	if p != nil {
		go func() {
			if err := p.Run(ctx); err != nil {
				logger.Error("pipeline error", "error", err)
			}
		}()
	}

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if scheduler != nil {
		scheduler.Stop(shutdownCtx)
	}
	if reader != nil {
		if err := reader.Close(); err != nil {
			logger.Error("kafka reader close error", "error", err)
		}
	}
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
