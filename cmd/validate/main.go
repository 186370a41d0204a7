// Command validate checks a directory of city documents for integrity before
// it is published: every file decodes, the calendar is complete, raw values
// are physically plausible, derived metrics stay in bounds and the tourism
// section is well formed.
//
// Usage:
//
//	go run ./cmd/validate -data-dir data/mock
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/couchcryptid/climate-insights-service/internal/adapter/filestore"
	"github.com/couchcryptid/climate-insights-service/internal/climate"
	"github.com/couchcryptid/climate-insights-service/internal/domain"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	dataDir := flag.String("data-dir", "", "directory of {slug}.json city files")
	flag.Parse()

	if *dataDir == "" {
		flag.Usage()
		os.Exit(1)
	}

	os.Exit(run(*dataDir))
}

func run(dataDir string) int {
	fmt.Println("=== City Data Integrity Validation ===")
	fmt.Println()

	cities, decode, err := loadCities(dataDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load cities: %v\n", err)
		return 1
	}

	phases := []*phase{
		decode,
		validateIndex(dataDir, cities),
		validateCalendar(cities),
		validateRanges(cities),
		validateDerived(cities),
		validateTourism(cities),
	}
	return report(phases, len(cities))
}

func report(phases []*phase, cityCount int) int {
	fmt.Println()
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-42s %s\n", p.name, status)
	}

	fmt.Println()
	fmt.Printf("Cities: %d\n", cityCount)

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

// ── Phase 1: Decoding ──

// loadCities decodes every city in dir. Files that fail to decode are
// reported in the returned phase and left out of the later phases.
func loadCities(dir string) ([]domain.CityData, *phase, error) {
	p := &phase{name: "Phase 1: Decoding"}
	store := filestore.New(dir)

	slugs, err := store.Slugs(context.Background())
	if err != nil {
		return nil, nil, err
	}
	if len(slugs) == 0 {
		p.errorf("no city files in %s", dir)
	}

	cities := make([]domain.CityData, 0, len(slugs))
	for _, slug := range slugs {
		c, err := store.City(context.Background(), slug)
		if err != nil {
			p.errorf("%s: %v", slug, err)
			continue
		}
		if c.Slug != slug {
			p.errorf("%s: document slug %q does not match file name", slug, c.Slug)
		}
		if c.Meta.Name == "" {
			p.errorf("%s: missing meta.name", slug)
		}
		if math.Abs(c.Meta.Lat) > 90 || math.Abs(c.Meta.Lon) > 180 {
			p.errorf("%s: coordinates (%v, %v) out of range", slug, c.Meta.Lat, c.Meta.Lon)
		}
		cities = append(cities, c)
	}
	return cities, p, nil
}

// ── Phase 2: Index ──
// index.json is optional; when present it must list exactly the city files.

func validateIndex(dir string, cities []domain.CityData) *phase {
	p := &phase{name: "Phase 2: Index (index.json)"}

	index, err := loadJSON[string](filepath.Join(dir, filestore.IndexSlug+".json"))
	if errors.Is(err, fs.ErrNotExist) {
		return p
	}
	if err != nil {
		p.errorf("index.json: %v", err)
		return p
	}

	listed := map[string]bool{}
	for _, slug := range index {
		listed[slug] = true
	}
	for _, c := range cities {
		if !listed[c.Slug] {
			p.errorf("%s: not listed in index.json", c.Slug)
		}
		delete(listed, c.Slug)
	}
	extra := make([]string, 0, len(listed))
	for slug := range listed {
		extra = append(extra, slug)
	}
	sort.Strings(extra)
	for _, slug := range extra {
		p.errorf("%s: listed in index.json but has no readable file", slug)
	}
	return p
}

// ── Phase 3: Calendar ──

func validateCalendar(cities []domain.CityData) *phase {
	p := &phase{name: "Phase 3: Calendar completeness"}
	for _, c := range cities {
		var missing []string
		for _, key := range domain.AllDateKeys() {
			if _, ok := c.Day(key); !ok {
				missing = append(missing, key.String())
			}
		}
		switch {
		case len(missing) > 5:
			p.errorf("%s: %d of 366 days missing (first %s)", c.Slug, len(missing), missing[0])
		case len(missing) > 0:
			p.errorf("%s: missing days %v", c.Slug, missing)
		}
	}
	return p
}

// ── Phase 4: Ranges ──
// Raw values outside physical bounds usually mean a unit mix-up upstream.

func validateRanges(cities []domain.CityData) *phase {
	p := &phase{name: "Phase 4: Value ranges"}
	for _, c := range cities {
		for _, key := range sortedKeys(c) {
			rec := c.Days[key]
			at := c.Slug + " " + key
			s := rec.Stats

			if s.TempMin > s.TempMax {
				p.errorf("%s: temp_min %.1f above temp_max %.1f", at, s.TempMin, s.TempMax)
			}
			checkRange(p, at, "temp_max", s.TempMax, -60, 60)
			checkRange(p, at, "precip_prob", s.PrecipProb, 0, 100)
			checkRange(p, at, "precip_mm", s.PrecipMM, 0, 500)
			checkRange(p, at, "wind_kmh", s.WindKmh, 0, 250)
			checkRange(p, at, "clouds_percent", s.CloudsPercent, 0, 100)
			if s.Humidity != nil {
				checkRange(p, at, "humidity_percent", *s.Humidity, 0, 100)
			}
			if s.PressureHPA != nil {
				checkRange(p, at, "pressure_hpa", *s.PressureHPA, 850, 1090)
			}
			if s.SunshineHours != nil {
				checkRange(p, at, "sunshine_hours", *s.SunshineHours, 0, 24)
			}
			checkRange(p, at, "scores.wedding", rec.Scores.Wedding, 0, 100)
			checkRange(p, at, "scores.reliability", rec.Scores.Reliability, 0, 100)
			if rec.Marine != nil {
				checkRange(p, at, "marine.water_temp", rec.Marine.WaterTemp, -3, 40)
			}
		}
	}
	return p
}

func checkRange(p *phase, at, field string, v, lo, hi float64) {
	if math.IsNaN(v) || v < lo || v > hi {
		p.errorf("%s: %s=%v outside [%v, %v]", at, field, v, lo, hi)
	}
}

// ── Phase 5: Derived metrics ──
// Re-runs the engine over every day and month and checks its outputs.

func validateDerived(cities []domain.CityData) *phase {
	p := &phase{name: "Phase 5: Derived metrics"}
	opts := climate.DefaultOptions()
	verdicts := map[climate.VerdictLabel]bool{
		climate.VerdictYes: true, climate.VerdictMaybe: true, climate.VerdictNo: true,
	}

	for _, c := range cities {
		for _, key := range sortedKeys(c) {
			date, err := domain.ParseDateKey(key)
			if err != nil {
				p.errorf("%s %s: %v", c.Slug, key, err)
				continue
			}
			m, err := climate.Derive(c, date, opts)
			if err != nil {
				p.errorf("%s %s: %v", c.Slug, key, err)
				continue
			}
			at := c.Slug + " " + key
			for name, v := range map[string]int{
				"score":       m.Score,
				"walkability": m.Walkability,
				"beer_garden": m.BeerGarden,
				"reliability": m.Reliability,
				"simple":      m.SimpleScore,
				"crowds":      m.Tourism.Crowds,
				"price":       m.Tourism.Price,
			} {
				if v < 0 || v > 100 {
					p.errorf("%s: %s=%d outside [0, 100]", at, name, v)
				}
			}
			if math.IsNaN(m.FeelsLikeC) || math.IsInf(m.FeelsLikeC, 0) {
				p.errorf("%s: feels-like is not finite", at)
			}
			if !verdicts[m.Verdict.Label] {
				p.errorf("%s: unknown verdict %q", at, m.Verdict.Label)
			}

			alts := climate.FindBetterAlternatives(c.Days, date, m.Score, opts.Score, climate.DefaultWindowDays, climate.DefaultAlternativesLimit)
			for _, a := range alts {
				if a.Score <= m.Score {
					p.errorf("%s: alternative %s scores %d, not above %d", at, a.Date, a.Score, m.Score)
				}
			}
		}

		for month := 1; month <= 12; month++ {
			s, ok := climate.SummarizeMonth(c, time.Month(month), opts.Fallback)
			if !ok {
				continue
			}
			if s.AvgMin > s.AvgMax {
				p.errorf("%s %s: average min above average max", c.Slug, s.Name)
			}
			if s.AvgScore < 0 || s.AvgScore > 100 {
				p.errorf("%s %s: avg_score=%d outside [0, 100]", c.Slug, s.Name, s.AvgScore)
			}
			if s.RainyDays > s.Days {
				p.errorf("%s %s: %d rainy days in a %d-day month", c.Slug, s.Name, s.RainyDays, s.Days)
			}
		}
	}
	return p
}

// ── Phase 6: Tourism ──

func validateTourism(cities []domain.CityData) *phase {
	p := &phase{name: "Phase 6: Tourism data"}
	for _, c := range cities {
		if c.Tourism == nil {
			continue
		}
		if len(c.Tourism.MonthlyScores) == 0 {
			p.errorf("%s: tourism section has no monthly scores", c.Slug)
		}
		for key, mt := range c.Tourism.MonthlyScores {
			at := fmt.Sprintf("%s tourism month %d", c.Slug, key)
			if key < 1 || key > 12 {
				p.errorf("%s: month key outside 1-12", at)
				continue
			}
			if mt.Month != 0 && mt.Month != key {
				p.errorf("%s: month field says %d", at, mt.Month)
			}
			checkRange(p, at, "crowd_score", mt.CrowdScore, 0, 100)
			checkRange(p, at, "price_score", mt.PriceScore, 0, 100)
			if mt.IsPeak && mt.IsLowSeason {
				p.errorf("%s: both peak and low season", at)
			}
		}
		if c.Tourism.TouristArrivals != nil && *c.Tourism.TouristArrivals < 0 {
			p.errorf("%s: negative tourist arrivals", c.Slug)
		}
	}
	return p
}

// ── Helpers ──

func sortedKeys(c domain.CityData) []string {
	keys := make([]string, 0, len(c.Days))
	for k := range c.Days {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func loadJSON[T any](path string) ([]T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, err
	}
	return items, nil
}
