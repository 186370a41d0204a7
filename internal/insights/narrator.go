package insights

import (
	"context"
	"fmt"
	"strings"

	"github.com/couchcryptid/climate-insights-service/internal/domain"
)

// Narrator turns a day report into a short prose summary.
type Narrator interface {
	Narrate(ctx context.Context, report DayReport) (string, error)
}

// Narrative is a prose summary and the narrator that produced it.
type Narrative struct {
	ReportID string `json:"report_id"`
	Text     string `json:"text"`
	Source   string `json:"source"`
}

const (
	NarrativeSourceModel    = "model"
	NarrativeSourceTemplate = "template"
)

// TemplateNarrator writes summaries from fixed sentence templates.
type TemplateNarrator struct{}

// Narrate never fails.
func (TemplateNarrator) Narrate(_ context.Context, r DayReport) (string, error) {
	m := r.Metrics
	var b strings.Builder

	fmt.Fprintf(&b, "%s on %s: %s, highs around %.0f°C (feels like %.0f°C) with a %.0f%% chance of rain.",
		displayName(r.City), r.Date.Time().Format("January 2"), strings.ToLower(m.Temperature.Label),
		m.TempMax, m.FeelsLikeC, m.PrecipProb)
	fmt.Fprintf(&b, " Overall score %d/100, verdict %s.", m.Score, m.Verdict.Label)

	if len(r.Alternatives) > 0 {
		best := r.Alternatives[0]
		fmt.Fprintf(&b, " %s scores better at %d.", best.Date.Time().Format("January 2"), best.Score)
	}
	if len(r.Comparison) > 0 {
		top := r.Comparison[0]
		fmt.Fprintf(&b, " Among other cities, %s leads with %d.", top.Name, top.Score)
	}
	if r.TourismNote != "" {
		b.WriteString(" ")
		b.WriteString(r.TourismNote)
	}
	return b.String(), nil
}

func displayName(c CitySummary) string {
	if c.Name != "" {
		return c.Name
	}
	return c.Slug
}

// Narrate summarizes the day report of slug on date. When the configured
// narrator fails the template narrator is used instead.
func (s *Service) Narrate(ctx context.Context, slug string, date domain.DateKey) (Narrative, error) {
	report, err := s.Day(ctx, slug, date)
	if err != nil {
		return Narrative{}, err
	}

	if s.narrator != nil {
		text, err := s.narrator.Narrate(ctx, report)
		if err == nil && strings.TrimSpace(text) != "" {
			return Narrative{ReportID: report.ID, Text: strings.TrimSpace(text), Source: NarrativeSourceModel}, nil
		}
		if err != nil {
			s.logger.Warn("narrator failed, using template", "report_id", report.ID, "error", err)
		}
	}

	text, _ := s.template.Narrate(ctx, report)
	return Narrative{ReportID: report.ID, Text: text, Source: NarrativeSourceTemplate}, nil
}
