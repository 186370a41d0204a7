package insights

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/climate-insights-service/internal/domain"
	"github.com/couchcryptid/climate-insights-service/internal/observability"
)

type memRepo struct {
	mu     sync.Mutex
	cities map[string]domain.CityData
	errs   map[string]error
	calls  map[string]int
}

func newMemRepo(cities ...domain.CityData) *memRepo {
	r := &memRepo{cities: map[string]domain.CityData{}, errs: map[string]error{}, calls: map[string]int{}}
	for _, c := range cities {
		r.cities[c.Slug] = c
	}
	return r
}

func (r *memRepo) City(_ context.Context, slug string) (domain.CityData, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls[slug]++
	if err := r.errs[slug]; err != nil {
		return domain.CityData{}, err
	}
	c, ok := r.cities[slug]
	if !ok {
		return domain.CityData{}, domain.ErrCityNotFound
	}
	return c, nil
}

func (r *memRepo) Slugs(context.Context) ([]string, error) {
	return []string{"lisbon", "paris", "rome"}, nil
}

func day(wedding, tempMax, precipProb float64) domain.DayRecord {
	return domain.DayRecord{
		Stats:  domain.DayStats{TempMax: tempMax, TempMin: tempMax - 8, PrecipProb: precipProb, WindKmh: 10},
		Scores: domain.DayScores{Wedding: wedding},
	}
}

func city(slug, name string, lat, lon float64, days map[string]domain.DayRecord) domain.CityData {
	return domain.CityData{
		Slug: slug,
		Meta: domain.CityMeta{Name: name, Country: "EU", Lat: lat, Lon: lon},
		Days: days,
	}
}

func fixtures() *memRepo {
	return newMemRepo(
		city("lisbon", "Lisbon", 38.72, -9.14, map[string]domain.DayRecord{
			"06-10": day(70, 24, 10),
			"06-15": day(60, 25, 20),
			"06-18": day(90, 26, 5),
		}),
		city("rome", "Rome", 41.9, 12.5, map[string]domain.DayRecord{"06-15": day(85, 29, 5)}),
		city("paris", "Paris", 48.86, 2.35, map[string]domain.DayRecord{"06-15": day(75, 22, 30)}),
	)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestService(repo domain.CityRepository, opts Options) *Service {
	if opts.ComparisonCities == nil {
		opts.ComparisonCities = []string{"lisbon", "rome", "ghost", "paris"}
	}
	return NewService(repo, opts, observability.NewMetricsForTesting(), discardLogger())
}

func TestDay(t *testing.T) {
	svc := newTestService(fixtures(), Options{})
	date := domain.MustDateKey("06-15")

	r, err := svc.Day(context.Background(), "Lisbon", date)
	require.NoError(t, err)

	assert.Equal(t, domain.ReportID("lisbon", date), r.ID)
	assert.Equal(t, "Lisbon", r.City.Name)
	assert.Equal(t, 60, r.Metrics.Score)

	require.Len(t, r.Alternatives, 2)
	assert.Equal(t, "06-18", r.Alternatives[0].Date.String())
	assert.Equal(t, "06-10", r.Alternatives[1].Date.String())

	require.Len(t, r.Comparison, 2)
	assert.Equal(t, "rome", r.Comparison[0].Slug)
	assert.Equal(t, "paris", r.Comparison[1].Slug)

	assert.Equal(t, "Tourism data based on seasonal patterns", r.TourismNote)
	assert.Equal(t, "Seasonal estimates", r.Attribution)
	assert.Nil(t, r.FlightPressure)
}

func TestDay_NotFound(t *testing.T) {
	svc := newTestService(fixtures(), Options{})

	_, err := svc.Day(context.Background(), "atlantis", domain.MustDateKey("06-15"))
	require.ErrorIs(t, err, domain.ErrCityNotFound)

	_, err = svc.Day(context.Background(), "lisbon", domain.MustDateKey("01-01"))
	require.ErrorIs(t, err, domain.ErrDateNotFound)
	assert.NotErrorIs(t, err, domain.ErrCityNotFound)
}

func TestAlternatives(t *testing.T) {
	svc := newTestService(fixtures(), Options{})

	alts, err := svc.Alternatives(context.Background(), "lisbon", domain.MustDateKey("06-15"), 1)
	require.NoError(t, err)
	require.Len(t, alts, 1)
	assert.Equal(t, 3, alts[0].Offset)
	assert.Equal(t, 30, alts[0].Improvement)

	_, err = svc.Alternatives(context.Background(), "lisbon", domain.MustDateKey("02-01"), 3)
	require.ErrorIs(t, err, domain.ErrDateNotFound)
}

func TestCompare_SkipsFailingCandidates(t *testing.T) {
	repo := fixtures()
	repo.errs["paris"] = errors.New("disk on fire")
	svc := newTestService(repo, Options{})

	scores, err := svc.Compare(context.Background(), "lisbon", domain.MustDateKey("06-15"), 6)
	require.NoError(t, err)
	require.Len(t, scores, 1)
	assert.Equal(t, "rome", scores[0].Slug)
}

func TestCompare_CapsCandidatesBeforeLoading(t *testing.T) {
	repo := fixtures()
	svc := newTestService(repo, Options{})

	scores, err := svc.Compare(context.Background(), "lisbon", domain.MustDateKey("06-15"), 1)
	require.NoError(t, err)
	require.Len(t, scores, 1)
	assert.Equal(t, "rome", scores[0].Slug)
	assert.Zero(t, repo.calls["paris"])
	assert.Zero(t, repo.calls["lisbon"])
}

func TestCompare_CancelledContext(t *testing.T) {
	svc := newTestService(fixtures(), Options{Concurrency: 1})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Compare(ctx, "lisbon", domain.MustDateKey("06-15"), 6)
	require.ErrorIs(t, err, context.Canceled)
}

func TestMonth(t *testing.T) {
	svc := newTestService(fixtures(), Options{})

	r, err := svc.Month(context.Background(), "lisbon", time.June)
	require.NoError(t, err)
	assert.Equal(t, "Lisbon", r.City.Name)
	assert.NotEmpty(t, r.RainAdvice)
	require.Len(t, r.BestDays, 3)
	assert.Equal(t, []DayScore{
		{Date: domain.MustDateKey("06-18"), Score: 90},
		{Date: domain.MustDateKey("06-10"), Score: 70},
		{Date: domain.MustDateKey("06-15"), Score: 60},
	}, r.BestDays)
	require.NotNil(t, r.Safety)
	assert.NotNil(t, r.Safety.Flood)
	assert.Nil(t, r.Safety.Hurricane)

	_, err = svc.Month(context.Background(), "lisbon", time.January)
	require.ErrorIs(t, err, domain.ErrDateNotFound)
}

func TestCity(t *testing.T) {
	svc := newTestService(fixtures(), Options{})

	r, err := svc.City(context.Background(), "lisbon")
	require.NoError(t, err)
	assert.Equal(t, "lisbon", r.City.Slug)
	require.Len(t, r.Overview.Months, 1)
	assert.Equal(t, "June", r.Overview.Warmest)
	assert.Nil(t, r.Hurricane)
	assert.Nil(t, r.Altitude)

	_, err = svc.City(context.Background(), "atlantis")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCities(t *testing.T) {
	svc := newTestService(fixtures(), Options{})

	cities, err := svc.Cities(context.Background())
	require.NoError(t, err)
	require.Len(t, cities, 3)
	assert.Equal(t, "lisbon", cities[0].Slug)
	assert.Equal(t, "rome", cities[2].Slug)
}

type locatingRepo struct {
	*memRepo
	locs []domain.CityLocation
}

func (r locatingRepo) Locations() []domain.CityLocation { return r.locs }

func TestNearest(t *testing.T) {
	svc := newTestService(fixtures(), Options{})

	got, err := svc.Nearest(context.Background(), 41.0, 12.0, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "rome", got[0].Slug)
	assert.Equal(t, "paris", got[1].Slug)

	_, err = svc.Nearest(context.Background(), 91, 0, 2)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestNearest_UsesInMemoryLocations(t *testing.T) {
	repo := locatingRepo{
		memRepo: fixtures(),
		locs:    []domain.CityLocation{{Slug: "oslo", Point: domain.GeoPoint{Lat: 59.9, Lon: 10.7}}},
	}
	svc := newTestService(repo, Options{})

	got, err := svc.Nearest(context.Background(), 0, 0, 5)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "oslo", got[0].Slug)
	assert.Empty(t, repo.calls)
}

type fakeGeocoder struct {
	result domain.GeocodingResult
	err    error
}

func (g fakeGeocoder) ForwardGeocode(context.Context, string) (domain.GeocodingResult, error) {
	return g.result, g.err
}

func (g fakeGeocoder) ReverseGeocode(context.Context, float64, float64) (domain.GeocodingResult, error) {
	return g.result, g.err
}

func TestGeocode(t *testing.T) {
	_, err := newTestService(fixtures(), Options{}).Geocode(context.Background(), "Vatican", 1)
	require.ErrorIs(t, err, ErrGeocodingDisabled)

	svc := newTestService(fixtures(), Options{Geocoder: fakeGeocoder{
		result: domain.GeocodingResult{Lat: 41.9, Lon: 12.45, DisplayName: "Vatican City"},
	}})
	res, err := svc.Geocode(context.Background(), "Vatican", 1)
	require.NoError(t, err)
	assert.Equal(t, domain.LocationSourceForward, res.Location.Source)
	require.Len(t, res.Nearest, 1)
	assert.Equal(t, "rome", res.Nearest[0].Slug)

	svc = newTestService(fixtures(), Options{Geocoder: fakeGeocoder{err: errors.New("timeout")}})
	res, err = svc.Geocode(context.Background(), "Vatican", 1)
	require.NoError(t, err)
	assert.Equal(t, domain.LocationSourceFailed, res.Location.Source)
	assert.Empty(t, res.Nearest)
}
