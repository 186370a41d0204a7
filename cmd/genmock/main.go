// Command genmock writes a deterministic synthetic city dataset for local
// runs and demos. Each city gets 366 days of plausible averaged weather,
// monthly tourism pressure and yearly aggregates, generated from a small
// climate profile and a seeded RNG so reruns produce identical files.
//
// Usage:
//
//	go run ./cmd/genmock -out data/mock -seed 42
//
// index.json lists the slugs for serving the directory over HTTP.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/climate-insights-service/internal/adapter/filestore"
	"github.com/couchcryptid/climate-insights-service/internal/climate"
	"github.com/couchcryptid/climate-insights-service/internal/domain"
)

// profile is the handful of numbers a synthetic city is grown from.
type profile struct {
	slug, name, country string
	lat, lon            float64
	elevation           float64
	coastal             bool
	meanTemp            float64 // annual mean daily max, °C
	amplitude           float64 // half the summer/winter swing
	rainProb            float64 // mean precipitation probability
	wetSummer           bool
	waterTemp           float64
	peakMonths          []int
}

var profiles = []profile{
	{slug: "lisbon", name: "Lisbon", country: "Portugal", lat: 38.7223, lon: -9.1393, elevation: 45, coastal: true, meanTemp: 21, amplitude: 7, rainProb: 30, waterTemp: 18, peakMonths: []int{7, 8}},
	{slug: "rome", name: "Rome", country: "Italy", lat: 41.9028, lon: 12.4964, elevation: 21, meanTemp: 22, amplitude: 9, rainProb: 28, peakMonths: []int{5, 6, 7, 8, 9}},
	{slug: "berlin", name: "Berlin", country: "Germany", lat: 52.52, lon: 13.405, elevation: 34, meanTemp: 14, amplitude: 10, rainProb: 42, wetSummer: true, peakMonths: []int{7, 8}},
	{slug: "reykjavik", name: "Reykjavik", country: "Iceland", lat: 64.1466, lon: -21.9426, elevation: 15, coastal: true, meanTemp: 7, amplitude: 6, rainProb: 55, waterTemp: 8, peakMonths: []int{6, 7, 8}},
	{slug: "bogota", name: "Bogota", country: "Colombia", lat: 4.711, lon: -74.0721, elevation: 2640, meanTemp: 19, amplitude: 1, rainProb: 50, peakMonths: []int{12, 1}},
	{slug: "miami", name: "Miami", country: "United States", lat: 25.7617, lon: -80.1918, elevation: 2, coastal: true, meanTemp: 29, amplitude: 3, rainProb: 40, wetSummer: true, waterTemp: 27, peakMonths: []int{12, 1, 2, 3}},
	{slug: "sydney", name: "Sydney", country: "Australia", lat: -33.8688, lon: 151.2093, elevation: 58, coastal: true, meanTemp: 22, amplitude: 4, rainProb: 35, waterTemp: 21, peakMonths: []int{12, 1}},
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", "data/mock", "output directory for {slug}.json files")
	seed := flag.Int64("seed", 42, "RNG seed")
	flag.Parse()

	// Fixed clock for a reproducible manifest timestamp.
	domain.SetClock(clockwork.NewFakeClockAt(
		time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
	))
	defer domain.SetClock(nil)

	rng := rand.New(rand.NewSource(*seed)) //nolint:gosec // deterministic fixtures, not security

	store := filestore.New(*out)
	slugs := make([]string, 0, len(profiles))
	for _, p := range profiles {
		city := generate(p, rng)
		if err := store.Save(city); err != nil {
			return err
		}
		slugs = append(slugs, p.slug)
		log.Printf("%s: %d days", p.slug, len(city.Days))
	}
	sort.Strings(slugs)

	if err := writeJSON(filepath.Join(*out, filestore.IndexSlug+".json"), slugs); err != nil {
		return fmt.Errorf("write index: %w", err)
	}
	manifest := map[string]any{
		"generated_at": domain.Now().Format(time.RFC3339),
		"seed":         *seed,
		"cities":       len(slugs),
	}
	if err := writeJSON(filepath.Join(*out, "_manifest.json"), manifest); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	log.Printf("wrote %d cities to %s", len(slugs), *out)
	return nil
}

func generate(p profile, rng *rand.Rand) domain.CityData {
	elevation := p.elevation
	city := domain.CityData{
		Slug: p.slug,
		Meta: domain.CityMeta{
			Name:      p.name,
			Country:   p.country,
			Lat:       p.lat,
			Lon:       p.lon,
			IsCoastal: p.coastal,
			GeoInfo: &domain.GeoInfo{
				Elevation:      &elevation,
				IsHighAltitude: elevation > 1500,
			},
		},
		Days: make(map[string]domain.DayRecord, 366),
	}

	var (
		sumTemp       float64
		monthTemp     [13]float64
		monthPrecip   [13]float64
		monthDayCount [13]int
	)
	for _, key := range domain.AllDateKeys() {
		rec := day(p, key, rng)
		city.Days[key.String()] = rec

		sumTemp += (rec.Stats.TempMax + rec.Stats.TempMin) / 2
		m := int(key.Month)
		monthTemp[m] += rec.Stats.TempMax
		monthPrecip[m] += rec.Stats.PrecipMM
		monthDayCount[m]++
	}

	stats := domain.YearlyStats{
		AvgTempAnnual:     round1(sumTemp / float64(len(city.Days))),
		WarmingTrend:      round1(0.1 + rng.Float64()*0.4),
		TotalDaysAnalyzed: 30 * 365,
	}
	hottest, coldest, wettest := 1, 1, 1
	for m := 1; m <= 12; m++ {
		if monthTemp[m]/float64(monthDayCount[m]) > monthTemp[hottest]/float64(monthDayCount[hottest]) {
			hottest = m
		}
		if monthTemp[m]/float64(monthDayCount[m]) < monthTemp[coldest]/float64(monthDayCount[coldest]) {
			coldest = m
		}
		if monthPrecip[m] > monthPrecip[wettest] {
			wettest = m
		}
	}
	stats.HottestMonth, stats.ColdestMonth, stats.WettestMonth = hottest, coldest, wettest
	city.YearlyStats = &stats

	city.Tourism = tourism(p, rng)
	return city
}

// seasonal is +1 at the local height of summer and -1 at midwinter.
func seasonal(p profile, key domain.DateKey) float64 {
	doy := float64(key.Time().YearDay())
	s := math.Cos(2 * math.Pi * (doy - 200) / 366)
	if p.lat < 0 {
		s = -s
	}
	return s
}

func day(p profile, key domain.DateKey, rng *rand.Rand) domain.DayRecord {
	s := seasonal(p, key)

	tmax := p.meanTemp + p.amplitude*s + rng.NormFloat64()*0.8
	tmin := tmax - 7 - rng.Float64()*3

	rain := p.rainProb - 15*s
	if p.wetSummer {
		rain = p.rainProb + 12*s
	}
	rain = clamp(rain+rng.NormFloat64()*5, 2, 95)

	wind := clamp(12+rng.NormFloat64()*4, 2, 45)
	clouds := clamp(rain*0.9+rng.NormFloat64()*8, 0, 100)
	humidity := clamp(55+rain*0.3+rng.NormFloat64()*6, 20, 100)
	sunshine := clamp(12-clouds/10+s*2, 0, 15)
	pressure := 1013 + rng.NormFloat64()*4
	std := round1(math.Abs(rng.NormFloat64()*3) + 2)

	rec := domain.DayRecord{
		Stats: domain.DayStats{
			TempMax:       round1(tmax),
			TempMin:       round1(tmin),
			PrecipMM:      round1(rain / 12),
			PrecipProb:    round1(rain),
			WindKmh:       round1(wind),
			CloudsPercent: round1(clouds),
			PressureHPA:   ptr(round1(pressure)),
			Humidity:      ptr(round1(humidity)),
			SunshineHours: ptr(round1(sunshine)),
		},
		Scores: domain.DayScores{
			Wedding:     round1(wedding(tmax, rain, wind)),
			Reliability: round1(clamp(100-std*6-rain*0.3, 0, 100)),
		},
		PressureStats: &domain.PressureStats{
			MeanHPA:    ptr(round1(pressure)),
			StdDev:     ptr(std),
			Volatility: climate.PressureVolatility(std),
		},
	}

	if p.coastal {
		water := p.waterTemp + 4*s + rng.NormFloat64()*0.5
		rec.Marine = &domain.Marine{
			WaterTemp:        round1(water),
			WaveHeight:       round1(clamp(1+rng.NormFloat64()*0.4-s*0.3, 0.1, 4)),
			JellyfishWarning: water > 24,
		}
	}
	return rec
}

func wedding(tmax, rain, wind float64) float64 {
	score := 100 - math.Abs(tmax-24)*3.5 - rain*0.6
	if wind > 25 {
		score -= (wind - 25) * 1.5
	}
	return clamp(score, 0, 100)
}

func tourism(p profile, rng *rand.Rand) *domain.TourismDataset {
	peak := map[int]bool{}
	for _, m := range p.peakMonths {
		peak[m] = true
	}
	arrivals := math.Round(1e6 + rng.Float64()*9e6)
	year := 2023

	t := &domain.TourismDataset{
		DataSources:     []string{"synthetic"},
		TouristArrivals: &arrivals,
		ArrivalsYear:    &year,
		MonthlyScores:   make(map[int]domain.MonthlyTourism, 12),
	}
	for m := 1; m <= 12; m++ {
		crowd := 35 + rng.Float64()*20
		if peak[m] {
			crowd = 75 + rng.Float64()*20
		}
		t.MonthlyScores[m] = domain.MonthlyTourism{
			Month:       m,
			CrowdScore:  round1(crowd),
			PriceScore:  round1(clamp(crowd+rng.NormFloat64()*8, 0, 100)),
			IsPeak:      peak[m],
			IsLowSeason: crowd < 45,
		}
	}
	return t
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o600)
}

func clamp(v, lo, hi float64) float64 { return math.Max(lo, math.Min(hi, v)) }

func round1(v float64) float64 { return math.Round(v*10) / 10 }

func ptr(v float64) *float64 { return &v }
