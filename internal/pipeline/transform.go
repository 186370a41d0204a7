package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/couchcryptid/climate-insights-service/internal/domain"
	"github.com/couchcryptid/climate-insights-service/internal/insights"
	"github.com/couchcryptid/climate-insights-service/internal/observability"
)

// Output event header names.
const (
	HeaderCity        = "city"
	HeaderDate        = "date"
	HeaderGeneratedAt = "generated_at"
)

// DayReporter builds the report for one city and day.
type DayReporter interface {
	Day(ctx context.Context, slug string, date domain.DateKey) (insights.DayReport, error)
}

// ReportEnvelope is the payload published for each derive request.
type ReportEnvelope struct {
	ID          string             `json:"id"`
	RequestID   string             `json:"request_id,omitempty"`
	GeneratedAt time.Time          `json:"generated_at"`
	Report      insights.DayReport `json:"report"`
}

// ReportTransformer implements Transformer by deriving the requested day.
type ReportTransformer struct {
	reporter DayReporter
	metrics  *observability.Metrics
	logger   *slog.Logger
	newID    func() string
}

// NewTransformer creates a ReportTransformer.
func NewTransformer(reporter DayReporter, metrics *observability.Metrics, logger *slog.Logger) *ReportTransformer {
	return &ReportTransformer{
		reporter: reporter,
		metrics:  metrics,
		logger:   logger,
		newID:    uuid.NewString,
	}
}

// Transform parses raw as a derive request and returns the serialized
// report. Unknown cities and dates yield an error matching
// domain.ErrNotFound.
func (t *ReportTransformer) Transform(ctx context.Context, raw domain.RawEvent) (domain.OutputEvent, error) {
	req, date, err := domain.ParseDeriveRequest(raw)
	if err != nil {
		return domain.OutputEvent{}, err
	}

	report, err := t.reporter.Day(ctx, req.City, date)
	if err != nil {
		return domain.OutputEvent{}, fmt.Errorf("derive %s %s: %w", req.City, req.Date, err)
	}
	t.metrics.Derivations.WithLabelValues("kafka").Inc()

	env := ReportEnvelope{
		ID:          t.newID(),
		RequestID:   req.RequestID,
		GeneratedAt: domain.Now().UTC(),
		Report:      report,
	}
	return Serialize(env)
}

// Serialize encodes env as an output event keyed by its report ID.
func Serialize(env ReportEnvelope) (domain.OutputEvent, error) {
	data, err := json.Marshal(env)
	if err != nil {
		return domain.OutputEvent{}, fmt.Errorf("serialize report: %w", err)
	}
	return domain.OutputEvent{
		Key:   []byte(env.Report.ID),
		Value: data,
		Headers: map[string]string{
			HeaderCity:        env.Report.City.Slug,
			HeaderDate:        env.Report.Date.String(),
			HeaderGeneratedAt: env.GeneratedAt.Format(time.RFC3339),
		},
	}, nil
}
