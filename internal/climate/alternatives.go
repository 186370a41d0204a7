package climate

import (
	"sort"

	"github.com/couchcryptid/climate-insights-service/internal/domain"
)

const (
	// DefaultWindowDays is the half-width of the alternative-date search.
	DefaultWindowDays = 7
	// DefaultAlternativesLimit caps "better alternatives" surfaces.
	DefaultAlternativesLimit = 3
	// DefaultCompareLimit caps cross-city comparisons.
	DefaultCompareLimit = 6
)

// ScoreFunc scores a single day record.
type ScoreFunc func(domain.DayRecord) int

// WeddingScore scores a day by its stored wedding score.
func WeddingScore(rec domain.DayRecord) int {
	return clampScore(rec.Scores.Wedding)
}

// Alternative is a nearby date that beats the reference date.
type Alternative struct {
	Date        domain.DateKey `json:"date"`
	Offset      int            `json:"offset_days"`
	Score       int            `json:"score"`
	Improvement int            `json:"improvement"`
}

// FindBetterAlternatives scans the window days either side of ref, wrapping
// across the year boundary, and returns the dates whose score strictly
// exceeds refScore, best first. Dates without a record are skipped. A
// non-positive limit returns every match.
func FindBetterAlternatives(days map[string]domain.DayRecord, ref domain.DateKey, refScore int, score ScoreFunc, window, limit int) []Alternative {
	if score == nil {
		score = SimpleScoreOf
	}

	var out []Alternative
	seen := map[domain.DateKey]bool{ref: true}
	for offset := -window; offset <= window; offset++ {
		if offset == 0 {
			continue
		}
		key := ref.Shift(offset)
		if seen[key] {
			continue
		}
		seen[key] = true

		rec, ok := days[key.String()]
		if !ok {
			continue
		}
		s := score(rec)
		if s <= refScore {
			continue
		}
		out = append(out, Alternative{Date: key, Offset: offset, Score: s, Improvement: s - refScore})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return abs(out[i].Offset) < abs(out[j].Offset)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// CityScore is one city's result in a cross-city comparison.
type CityScore struct {
	Slug       string  `json:"slug"`
	Name       string  `json:"name"`
	Country    string  `json:"country,omitempty"`
	Score      int     `json:"score"`
	TempMax    float64 `json:"temp_max"`
	PrecipProb float64 `json:"precip_prob"`
}

// CompareAcrossCities scores the same date across candidate cities and
// returns them best first. exclude is removed, then the first limit
// candidates are evaluated; those without a record for date are omitted.
// Ties keep candidate order.
func CompareAcrossCities(cities []domain.CityData, date domain.DateKey, exclude string, score ScoreFunc, limit int) []CityScore {
	if score == nil {
		score = SimpleScoreOf
	}

	candidates := make([]domain.CityData, 0, len(cities))
	for _, c := range cities {
		if c.Slug != exclude {
			candidates = append(candidates, c)
		}
	}
	if limit > 0 && len(candidates) > limit {
		candidates = candidates[:limit]
	}

	var out []CityScore
	for _, c := range candidates {
		rec, ok := c.Day(date)
		if !ok {
			continue
		}
		out = append(out, CityScore{
			Slug:       c.Slug,
			Name:       c.Meta.Name,
			Country:    c.Meta.Country,
			Score:      score(rec),
			TempMax:    rec.Stats.TempMax,
			PrecipProb: rec.Stats.PrecipProb,
		})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
