package insights

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/climate-insights-service/internal/domain"
)

type stubNarrator struct {
	text string
	err  error
}

func (n stubNarrator) Narrate(context.Context, DayReport) (string, error) { return n.text, n.err }

func TestNarrate(t *testing.T) {
	date := domain.MustDateKey("06-15")
	tests := []struct {
		name       string
		narrator   Narrator
		wantSource string
		wantText   string
	}{
		{name: "no narrator", wantSource: NarrativeSourceTemplate},
		{name: "model", narrator: stubNarrator{text: "  Sunny and mild.\n"}, wantSource: NarrativeSourceModel, wantText: "Sunny and mild."},
		{name: "model error", narrator: stubNarrator{err: errors.New("quota")}, wantSource: NarrativeSourceTemplate},
		{name: "model blank", narrator: stubNarrator{text: " "}, wantSource: NarrativeSourceTemplate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(fixtures(), Options{Narrator: tt.narrator})
			n, err := svc.Narrate(context.Background(), "lisbon", date)
			require.NoError(t, err)
			assert.Equal(t, tt.wantSource, n.Source)
			assert.Equal(t, domain.ReportID("lisbon", date), n.ReportID)
			if tt.wantText != "" {
				assert.Equal(t, tt.wantText, n.Text)
			}
		})
	}
}

func TestNarrate_NotFound(t *testing.T) {
	svc := newTestService(fixtures(), Options{})
	_, err := svc.Narrate(context.Background(), "atlantis", domain.MustDateKey("06-15"))
	require.ErrorIs(t, err, domain.ErrCityNotFound)
}

func TestTemplateNarrator(t *testing.T) {
	svc := newTestService(fixtures(), Options{})
	r, err := svc.Day(context.Background(), "lisbon", domain.MustDateKey("06-15"))
	require.NoError(t, err)

	text, err := TemplateNarrator{}.Narrate(context.Background(), r)
	require.NoError(t, err)
	assert.Contains(t, text, "Lisbon on June 15")
	assert.Contains(t, text, "Overall score 60/100")
	assert.Contains(t, text, "June 18 scores better at 90")
	assert.Contains(t, text, "Rome leads with 85")
}
