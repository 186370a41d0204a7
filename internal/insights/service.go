// Package insights answers travel-planning questions about cities by
// combining a city repository with the climate engine.
package insights

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/couchcryptid/climate-insights-service/internal/climate"
	"github.com/couchcryptid/climate-insights-service/internal/domain"
	"github.com/couchcryptid/climate-insights-service/internal/observability"
)

// Options configures a Service. Zero values select the defaults.
type Options struct {
	Engine           climate.Options
	ComparisonCities []string
	Concurrency      int
	Geocoder         domain.Geocoder
	Narrator         Narrator
}

// Service is the read API of the climate insights system.
type Service struct {
	repo        domain.CityRepository
	engine      climate.Options
	comparison  []string
	concurrency int
	geocoder    domain.Geocoder
	narrator    Narrator
	template    TemplateNarrator
	metrics     *observability.Metrics
	logger      *slog.Logger
}

// NewService creates a Service over repo.
func NewService(repo domain.CityRepository, opts Options, metrics *observability.Metrics, logger *slog.Logger) *Service {
	if len(opts.ComparisonCities) == 0 {
		opts.ComparisonCities = DefaultComparisonCities
	}
	if opts.Concurrency < 1 {
		opts.Concurrency = 4
	}
	if opts.Engine.Score == nil {
		opts.Engine.Score = climate.WeddingScore
	}
	if opts.Engine.Fallback == (climate.FallbackTable{}) {
		opts.Engine.Fallback = climate.DefaultFallback
	}
	return &Service{
		repo:        repo,
		engine:      opts.Engine,
		comparison:  opts.ComparisonCities,
		concurrency: opts.Concurrency,
		geocoder:    opts.Geocoder,
		narrator:    opts.Narrator,
		metrics:     metrics,
		logger:      logger,
	}
}

// CitySummary identifies a city in responses.
type CitySummary struct {
	Slug        string  `json:"slug"`
	Name        string  `json:"name"`
	Country     string  `json:"country"`
	Description string  `json:"description,omitempty"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	IsCoastal   bool    `json:"is_coastal"`
}

func summaryOf(c domain.CityData) CitySummary {
	return CitySummary{
		Slug:        c.Slug,
		Name:        c.Meta.Name,
		Country:     c.Meta.Country,
		Description: c.Meta.Description,
		Lat:         c.Meta.Lat,
		Lon:         c.Meta.Lon,
		IsCoastal:   c.Meta.IsCoastal,
	}
}

// DayReport is everything known about one city on one calendar day.
type DayReport struct {
	ID             string                 `json:"id"`
	City           CitySummary            `json:"city"`
	Date           domain.DateKey         `json:"date"`
	Metrics        climate.DerivedMetrics `json:"metrics"`
	Alternatives   []climate.Alternative  `json:"alternatives"`
	Comparison     []climate.CityScore    `json:"comparison"`
	TourismNote    string                 `json:"tourism_note"`
	Attribution    string                 `json:"tourism_attribution"`
	FlightPressure *int                   `json:"flight_pressure,omitempty"`
}

// Day builds the full report for slug on date. A missing city or date is
// reported as an error matching domain.ErrNotFound.
func (s *Service) Day(ctx context.Context, slug string, date domain.DateKey) (DayReport, error) {
	city, err := s.city(ctx, slug)
	if err != nil {
		return DayReport{}, err
	}
	m, err := climate.Derive(city, date, s.engine)
	if err != nil {
		return DayReport{}, err
	}

	report := DayReport{
		ID:           domain.ReportID(city.Slug, date),
		City:         summaryOf(city),
		Date:         date,
		Metrics:      m,
		Alternatives: climate.FindBetterAlternatives(city.Days, date, m.Score, s.engine.Score, climate.DefaultWindowDays, climate.DefaultAlternativesLimit),
		TourismNote:  climate.TourismInsights(city.Tourism, date.Month),
		Attribution:  climate.TourismAttribution(city.Tourism),
	}
	if p, ok := climate.FlightPressure(city.Meta.FlightInfo, date.Month); ok {
		report.FlightPressure = &p
	}

	report.Comparison, err = s.Compare(ctx, city.Slug, date, climate.DefaultCompareLimit)
	if err != nil {
		return DayReport{}, err
	}
	return report, nil
}

// Alternatives returns up to limit nearby dates that beat date for slug.
func (s *Service) Alternatives(ctx context.Context, slug string, date domain.DateKey, limit int) ([]climate.Alternative, error) {
	city, err := s.city(ctx, slug)
	if err != nil {
		return nil, err
	}
	rec, ok := city.Day(date)
	if !ok {
		return nil, fmt.Errorf("%s %s: %w", slug, date, domain.ErrDateNotFound)
	}
	return climate.FindBetterAlternatives(city.Days, date, s.engine.Score(rec), s.engine.Score, climate.DefaultWindowDays, limit), nil
}

// Compare scores date across the comparison cities, excluding slug.
func (s *Service) Compare(ctx context.Context, slug string, date domain.DateKey, limit int) ([]climate.CityScore, error) {
	if limit <= 0 {
		limit = climate.DefaultCompareLimit
	}
	candidates := make([]string, 0, len(s.comparison))
	for _, c := range s.comparison {
		if c != slug {
			candidates = append(candidates, c)
		}
	}
	if len(candidates) > limit {
		candidates = candidates[:limit]
	}

	cities := s.loadCandidates(ctx, candidates)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return climate.CompareAcrossCities(cities, date, slug, s.engine.Score, limit), nil
}

// DayScore is one day's score within a month.
type DayScore struct {
	Date  domain.DateKey `json:"date"`
	Score int            `json:"score"`
}

// MonthReport summarizes one month of a city.
type MonthReport struct {
	City       CitySummary           `json:"city"`
	Summary    climate.MonthSummary  `json:"summary"`
	RainAdvice string                `json:"rain_advice"`
	BestDays   []DayScore            `json:"best_days"`
	Safety     *climate.SafetyReport `json:"safety,omitempty"`
}

const bestDaysPerMonth = 5

// Month summarizes month for slug. A month without any data is reported as
// domain.ErrDateNotFound.
func (s *Service) Month(ctx context.Context, slug string, month time.Month) (MonthReport, error) {
	city, err := s.city(ctx, slug)
	if err != nil {
		return MonthReport{}, err
	}
	summary, ok := climate.SummarizeMonth(city, month, s.engine.Fallback)
	if !ok {
		return MonthReport{}, fmt.Errorf("%s %s: %w", slug, month, domain.ErrDateNotFound)
	}

	var days []DayScore
	for d := 1; d <= domain.DaysIn(month); d++ {
		key := domain.DateKey{Month: month, Day: d}
		if rec, ok := city.Day(key); ok {
			days = append(days, DayScore{Date: key, Score: s.engine.Score(rec)})
		}
	}
	sort.SliceStable(days, func(i, j int) bool { return days[i].Score > days[j].Score })
	if len(days) > bestDaysPerMonth {
		days = days[:bestDaysPerMonth]
	}

	report := MonthReport{
		City:       summaryOf(city),
		Summary:    summary,
		RainAdvice: summary.RainAdvice(),
		BestDays:   days,
	}
	if sr, ok := climate.SafetyOf(city, month); ok {
		report.Safety = &sr
	}
	return report, nil
}

// CityReport is the twelve-month digest of a city.
type CityReport struct {
	City        CitySummary             `json:"city"`
	Overview    climate.CityOverview    `json:"overview"`
	YearlyStats *domain.YearlyStats     `json:"yearly_stats,omitempty"`
	Altitude    *domain.AltitudeEffects `json:"altitude,omitempty"`
	Hurricane   *climate.HurricaneRisk  `json:"hurricane,omitempty"`
	Flood       climate.FloodRisk       `json:"flood"`
}

// City builds the digest of slug.
func (s *Service) City(ctx context.Context, slug string) (CityReport, error) {
	city, err := s.city(ctx, slug)
	if err != nil {
		return CityReport{}, err
	}
	report := CityReport{
		City:        summaryOf(city),
		Overview:    climate.Overview(city, s.engine.Fallback),
		YearlyStats: city.YearlyStats,
	}
	if a, ok := climate.AltitudeEffectsOf(city.Meta.GeoInfo); ok {
		report.Altitude = &a
	}
	if h, ok := climate.HurricaneRiskAt(city.Meta.Lat, city.Meta.Lon, city.Meta.IsCoastal); ok {
		report.Hurricane = &h
	}

	var elevation, maxPrecip *float64
	if city.Meta.GeoInfo != nil {
		elevation = city.Meta.GeoInfo.Elevation
	}
	if p := city.Meta.SafetyProfile; p != nil {
		maxPrecip = p.MaxPrecipMM
	}
	report.Flood = climate.AnnualFloodRisk(elevation, city.Meta.IsCoastal, maxPrecip)
	return report, nil
}

// Cities lists every available city.
func (s *Service) Cities(ctx context.Context) ([]CitySummary, error) {
	slugs, err := s.repo.Slugs(ctx)
	if err != nil {
		return nil, fmt.Errorf("list cities: %w", err)
	}
	cities := s.loadCandidates(ctx, slugs)
	out := make([]CitySummary, 0, len(cities))
	for _, c := range cities {
		out = append(out, summaryOf(c))
	}
	return out, nil
}

// locator is implemented by repositories that keep coordinates in memory.
type locator interface {
	Locations() []domain.CityLocation
}

// Nearest returns the n cities closest to (lat, lon).
func (s *Service) Nearest(ctx context.Context, lat, lon float64, n int) ([]domain.CityDistance, error) {
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return nil, fmt.Errorf("%w: coordinates out of range", ErrInvalidInput)
	}
	locs, err := s.locations(ctx)
	if err != nil {
		return nil, err
	}
	return domain.NearestCities(domain.GeoPoint{Lat: lat, Lon: lon}, locs, n), nil
}

func (s *Service) locations(ctx context.Context) ([]domain.CityLocation, error) {
	if l, ok := s.repo.(locator); ok {
		if locs := l.Locations(); len(locs) > 0 {
			return locs, nil
		}
	}
	slugs, err := s.repo.Slugs(ctx)
	if err != nil {
		return nil, fmt.Errorf("list cities: %w", err)
	}
	var locs []domain.CityLocation
	for _, c := range s.loadCandidates(ctx, slugs) {
		locs = append(locs, domain.CityLocation{
			Slug:    c.Slug,
			Name:    c.Meta.Name,
			Country: c.Meta.Country,
			Point:   domain.GeoPoint{Lat: c.Meta.Lat, Lon: c.Meta.Lon},
		})
	}
	return locs, nil
}

// GeocodeResult is a resolved place with the cities closest to it.
type GeocodeResult struct {
	Query    string                  `json:"query"`
	Location domain.ResolvedLocation `json:"location"`
	Nearest  []domain.CityDistance   `json:"nearest"`
}

// ErrGeocodingDisabled is returned by Geocode when no geocoder is configured.
var ErrGeocodingDisabled = errors.New("geocoding disabled")

// ErrInvalidInput marks caller mistakes such as out-of-range coordinates.
var ErrInvalidInput = errors.New("invalid input")

// Geocode resolves a free-text place and lists the n nearest cities. An
// unresolvable place yields an empty Nearest list, not an error.
func (s *Service) Geocode(ctx context.Context, query string, n int) (GeocodeResult, error) {
	if s.geocoder == nil {
		return GeocodeResult{}, ErrGeocodingDisabled
	}
	res := GeocodeResult{Query: query}
	loc, ok := domain.ResolveLocation(ctx, query, s.geocoder, s.logger)
	res.Location = loc
	if !ok {
		return res, nil
	}
	nearest, err := s.Nearest(ctx, loc.Point.Lat, loc.Point.Lon, n)
	if err != nil {
		return GeocodeResult{}, err
	}
	res.Nearest = nearest
	return res, nil
}

func (s *Service) city(ctx context.Context, slug string) (domain.CityData, error) {
	city, err := s.repo.City(ctx, domain.NormalizeSlug(slug))
	switch {
	case err == nil:
		s.metrics.CityLookups.WithLabelValues("found").Inc()
	case errors.Is(err, domain.ErrNotFound):
		s.metrics.CityLookups.WithLabelValues("not_found").Inc()
	default:
		s.metrics.CityLookups.WithLabelValues("error").Inc()
	}
	return city, err
}
