package climate

import (
	"fmt"

	"github.com/couchcryptid/climate-insights-service/internal/domain"
)

// Options tunes Derive.
type Options struct {
	// Fallback is the tourism curve for cities without tourism data.
	Fallback FallbackTable
	// Score is the day score behind verdicts and alternatives.
	Score ScoreFunc
	// DayPolicy and MonthPolicy are the verdict thresholds per surface.
	DayPolicy   VerdictPolicy
	MonthPolicy VerdictPolicy
}

// DefaultOptions returns the production settings.
func DefaultOptions() Options {
	return Options{
		Fallback:    DefaultFallback,
		Score:       WeddingScore,
		DayPolicy:   PolicyDay,
		MonthPolicy: PolicyMonth,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Fallback == (FallbackTable{}) {
		o.Fallback = d.Fallback
	}
	if o.Score == nil {
		o.Score = d.Score
	}
	if o.DayPolicy == (VerdictPolicy{}) {
		o.DayPolicy = d.DayPolicy
	}
	if o.MonthPolicy == (VerdictPolicy{}) {
		o.MonthPolicy = d.MonthPolicy
	}
	return o
}

// DerivedMetrics is every index computed for one city and day. Pointer
// fields are nil when the input they depend on is absent.
type DerivedMetrics struct {
	City string         `json:"city"`
	Date domain.DateKey `json:"date"`

	TempMax       float64  `json:"temp_max"`
	TempMin       float64  `json:"temp_min"`
	PrecipProb    float64  `json:"precip_prob"`
	FeelsLikeC    float64  `json:"feels_like_c"`
	FeelsLikeNote string   `json:"feels_like_note"`
	Temperature   TempBand `json:"temperature"`

	Walkability     int             `json:"walkability"`
	BeerGarden      int             `json:"beer_garden"`
	Reliability     int             `json:"reliability"`
	SimpleScore     int             `json:"simple_score"`
	Score           int             `json:"score"`
	ReliabilityInfo ReliabilityInfo `json:"reliability_info"`
	Tourism         TourismIndex    `json:"tourism"`

	Health       *HealthAssessment        `json:"health,omitempty"`
	Altitude     *domain.AltitudeEffects  `json:"altitude,omitempty"`
	MarineStatus MarineStatus             `json:"marine_status"`
	Marine       *MarineReport            `json:"marine,omitempty"`
	Safety       *SafetyReport            `json:"safety,omitempty"`
	Condition    *domain.WeatherCondition `json:"condition,omitempty"`

	Verdict      VerdictResult `json:"verdict"`
	MonthVerdict VerdictResult `json:"month_verdict"`
	DayTier      DayTier       `json:"day_tier"`
	Clothing     []string      `json:"clothing"`
}

// Derive computes the metrics of city on key. A missing day is reported as
// domain.ErrDateNotFound; nothing is computed for it.
func Derive(city domain.CityData, key domain.DateKey, opts Options) (DerivedMetrics, error) {
	rec, ok := city.Day(key)
	if !ok {
		return DerivedMetrics{}, fmt.Errorf("%s %s: %w", city.Slug, key, domain.ErrDateNotFound)
	}
	return DeriveRecord(city, key, rec, opts), nil
}

// DeriveRecord computes the metrics of a record known to exist.
func DeriveRecord(city domain.CityData, key domain.DateKey, rec domain.DayRecord, opts Options) DerivedMetrics {
	opts = opts.withDefaults()
	s := rec.Stats

	feels := FeelsLike(s.TempMax, s.WindKmh, s.Humidity)
	score := opts.Score(rec)

	m := DerivedMetrics{
		City:          city.Slug,
		Date:          key,
		TempMax:       s.TempMax,
		TempMin:       s.TempMin,
		PrecipProb:    s.PrecipProb,
		FeelsLikeC:    feels,
		FeelsLikeNote: FeelsLikeDescription(s.TempMax, feels),
		Temperature:   Band(s.TempMax),

		Walkability:     Walkability(s),
		BeerGarden:      BeerGarden(s),
		Reliability:     Reliability(s.PrecipProb, rec.PressureStats),
		SimpleScore:     SimpleScore(s.TempMax, s.PrecipProb, s.WindKmh),
		Score:           score,
		ReliabilityInfo: ReliabilityTier(reliabilityRaw(s.PrecipProb, nil), rec.PressureStats),
		Tourism:         TourismIndexOf(rec, key.Month, city.Tourism, opts.Fallback),

		MarineStatus: MarineStatusOf(rec.Marine),
		Verdict:      Verdict(score, opts.DayPolicy),
		MonthVerdict: Verdict(score, opts.MonthPolicy),
		DayTier:      DayTierOf(s.PrecipProb),
		Clothing:     rec.Clothing,
	}
	if len(m.Clothing) == 0 {
		m.Clothing = Clothing(s)
	}

	if h, ok := HealthOf(rec); ok {
		m.Health = &h
	}
	if a, ok := AltitudeEffectsOf(city.Meta.GeoInfo); ok {
		m.Altitude = &a
	}
	if mr, ok := MarineReportOf(rec.Marine, key.Month); ok {
		m.Marine = &mr
	}
	if sr, ok := SafetyOf(city, key.Month); ok {
		m.Safety = &sr
	}
	switch {
	case rec.Condition != nil:
		c := *rec.Condition
		m.Condition = &c
	default:
		if c, ok := DominantCondition(rec.HistoricalRecords); ok {
			m.Condition = &c
		}
	}
	return m
}
