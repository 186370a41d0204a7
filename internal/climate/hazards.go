package climate

import (
	"fmt"
	"sort"
	"time"

	"github.com/couchcryptid/climate-insights-service/internal/domain"
)

// AirQuality is the US EPA category for an AQI value.
type AirQuality struct {
	AQI        int    `json:"aqi"`
	Category   string `json:"category"`
	HealthNote string `json:"health_note"`
}

// ClassifyAQI buckets a US AQI value.
func ClassifyAQI(aqi float64) AirQuality {
	q := AirQuality{AQI: int(roundHalfUp(aqi))}
	switch {
	case aqi <= 50:
		q.Category = "Good"
		q.HealthNote = "Air quality is excellent. Perfect for outdoor activities."
	case aqi <= 100:
		q.Category = "Moderate"
		q.HealthNote = "Air quality is acceptable. Sensitive individuals should limit prolonged outdoor exertion."
	case aqi <= 150:
		q.Category = "Unhealthy for Sensitive"
		q.HealthNote = "Unhealthy for sensitive groups. Consider wearing a mask outdoors."
	case aqi <= 200:
		q.Category = "Unhealthy"
		q.HealthNote = "Unhealthy. Everyone should reduce outdoor activities."
	case aqi <= 300:
		q.Category = "Very Unhealthy"
		q.HealthNote = "Very unhealthy. Avoid outdoor activities. Wear N95 mask if you must go out."
	default:
		q.Category = "Hazardous"
		q.HealthNote = "Hazardous. Stay indoors. Seal windows and doors."
	}
	return q
}

// SeismicStability scores earthquake frequency (events per year within
// 100 km). Higher scores mean more stable ground.
func SeismicStability(avgPerYear float64) (score int, level string) {
	switch {
	case avgPerYear <= 0:
		return 100, "Stable"
	case avgPerYear < 1:
		return 80, "Low"
	case avgPerYear < 5:
		return 50, "Medium"
	case avgPerYear < 20:
		return 20, "High"
	default:
		return 5, "Very High"
	}
}

// VolcanoRisk is the risk from the closest volcanoes.
type VolcanoRisk struct {
	Level   string           `json:"risk_level"`
	Nearby  []domain.Volcano `json:"nearby_volcanoes"`
	Count   int              `json:"count"`
	Closest float64          `json:"closest_km"`
}

// ClassifyVolcanoes rates the volcano risk of a city. It returns false when
// the list is empty. At most three volcanoes are reported, closest first.
func ClassifyVolcanoes(volcanoes []domain.Volcano) (VolcanoRisk, bool) {
	if len(volcanoes) == 0 {
		return VolcanoRisk{}, false
	}
	sorted := append([]domain.Volcano(nil), volcanoes...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].DistanceKM < sorted[j].DistanceKM })

	closest := sorted[0].DistanceKM
	level := "Medium"
	switch {
	case closest < 30:
		level = "Very High"
	case closest < 50:
		level = "High"
	}

	top := sorted
	if len(top) > 3 {
		top = top[:3]
	}
	return VolcanoRisk{Level: level, Nearby: top, Count: len(sorted), Closest: closest}, true
}

// HurricaneZone is a tropical-cyclone basin.
type HurricaneZone struct {
	Name            string
	StormType       string
	LatMin, LatMax  float64
	LonMin, LonMax  float64
	SeasonStart     time.Month
	SeasonEnd       time.Month
	AnnualAvgStorms float64
}

// HurricaneZones lists the basins in lookup order.
var HurricaneZones = []HurricaneZone{
	{Name: "Atlantic", StormType: "Atlantic Hurricane", LatMin: 5, LatMax: 45, LonMin: -100, LonMax: -10, SeasonStart: time.June, SeasonEnd: time.November, AnnualAvgStorms: 14},
	{Name: "Eastern Pacific", StormType: "Eastern Pacific Hurricane", LatMin: 5, LatMax: 40, LonMin: -180, LonMax: -80, SeasonStart: time.May, SeasonEnd: time.November, AnnualAvgStorms: 17},
	{Name: "Western Pacific", StormType: "Typhoon", LatMin: 5, LatMax: 45, LonMin: 100, LonMax: 180, SeasonStart: time.January, SeasonEnd: time.December, AnnualAvgStorms: 27},
	{Name: "Indian Ocean", StormType: "Cyclone", LatMin: -30, LatMax: 30, LonMin: 40, LonMax: 100, SeasonStart: time.April, SeasonEnd: time.December, AnnualAvgStorms: 12},
}

// HurricaneRisk is the annual tropical-cyclone exposure of a coastal city.
type HurricaneRisk struct {
	Zone        string     `json:"zone"`
	StormType   string     `json:"storm_type"`
	SeasonStart time.Month `json:"season_start"`
	SeasonEnd   time.Month `json:"season_end"`
	YearRound   bool       `json:"is_year_round"`
	Level       string     `json:"risk_level"`
	AnnualAvg   float64    `json:"annual_avg_storms"`
}

// HurricaneRiskAt finds the basin containing a coastal location. Inland
// locations and locations outside every basin return false. South of the
// equator the season runs November to April.
func HurricaneRiskAt(lat, lon float64, coastal bool) (HurricaneRisk, bool) {
	if !coastal {
		return HurricaneRisk{}, false
	}
	for _, z := range HurricaneZones {
		if lat < z.LatMin || lat > z.LatMax || lon < z.LonMin || lon > z.LonMax {
			continue
		}
		r := HurricaneRisk{
			Zone:        z.Name,
			StormType:   z.StormType,
			SeasonStart: z.SeasonStart,
			SeasonEnd:   z.SeasonEnd,
			AnnualAvg:   z.AnnualAvgStorms,
		}
		if lat < 0 && !(z.SeasonStart == time.January && z.SeasonEnd == time.December) {
			r.SeasonStart, r.SeasonEnd = time.November, time.April
		}
		r.YearRound = r.SeasonStart == time.January && r.SeasonEnd == time.December
		switch {
		case z.AnnualAvgStorms >= 20:
			r.Level = "Very High"
		case z.AnnualAvgStorms >= 15:
			r.Level = "High"
		default:
			r.Level = "Moderate"
		}
		return r, true
	}
	return HurricaneRisk{}, false
}

// MonthlyHurricaneRisk is the hurricane exposure for one month.
type MonthlyHurricaneRisk struct {
	Zone             string  `json:"zone"`
	StormType        string  `json:"storm_type"`
	Level            string  `json:"risk_level"`
	PeakSeason       bool    `json:"is_peak_season"`
	MonthlyAvgStorms float64 `json:"monthly_avg_storms"`
	SeasonMonths     string  `json:"season_months"`
}

// ForMonth spreads the annual risk over the calendar. Peak-season months
// share 90% of the annual storms and keep the base level; the remaining
// months share 10% and are downgraded (Very High to Medium, anything else
// to Low).
func (r HurricaneRisk) ForMonth(month time.Month) MonthlyHurricaneRisk {
	start, end := r.SeasonStart, r.SeasonEnd

	var peak bool
	var peakMonths int
	if start > end {
		peak = month >= start || month <= end
		peakMonths = int(12-start+1) + int(end)
	} else {
		peak = month >= start && month <= end
		peakMonths = int(end - start + 1)
	}

	out := MonthlyHurricaneRisk{
		Zone:         r.Zone,
		StormType:    r.StormType,
		PeakSeason:   peak,
		SeasonMonths: fmt.Sprintf("%d-%d", start, end),
	}
	if peak {
		out.Level = r.Level
		out.MonthlyAvgStorms = round1(r.AnnualAvg * 0.9 / float64(peakMonths))
		return out
	}

	if r.Level == "Very High" {
		out.Level = "Medium"
	} else {
		out.Level = "Low"
	}
	offMonths := 12 - peakMonths
	if offMonths < 1 {
		offMonths = 1
	}
	out.MonthlyAvgStorms = round1(r.AnnualAvg * 0.1 / float64(offMonths))
	return out
}

// FloodRisk is a flood exposure score with contributing factors.
type FloodRisk struct {
	Level   string   `json:"risk_level"`
	Score   int      `json:"risk_score"`
	Factors []string `json:"risk_factors,omitempty"`
}

// AnnualFloodRisk scores elevation, coast and extreme daily rainfall. Any
// argument may be nil when unknown.
func AnnualFloodRisk(elevationM *float64, coastal bool, maxDailyPrecipMM *float64) FloodRisk {
	var r FloodRisk
	if elevationM != nil {
		switch e := *elevationM; {
		case e < 5:
			r.Score += 40
			r.Factors = append(r.Factors, "Very low elevation (<5m)")
		case e < 20:
			r.Score += 25
			r.Factors = append(r.Factors, "Low elevation (<20m)")
		case e < 50:
			r.Score += 10
			r.Factors = append(r.Factors, "Moderate elevation")
		}
	}
	if coastal {
		r.Score += 20
		r.Factors = append(r.Factors, "Coastal location (storm surge risk)")
	}
	if maxDailyPrecipMM != nil {
		switch p := *maxDailyPrecipMM; {
		case p > 100:
			r.Score += 30
			r.Factors = append(r.Factors, fmt.Sprintf("Extreme rainfall events (%.0fmm/day)", p))
		case p > 50:
			r.Score += 15
			r.Factors = append(r.Factors, fmt.Sprintf("Heavy rainfall events (%.0fmm/day)", p))
		}
	}

	switch {
	case r.Score >= 60:
		r.Level = "High"
	case r.Score >= 30:
		r.Level = "Medium"
	case r.Score > 0:
		r.Level = "Low"
	default:
		r.Level = "Minimal"
	}
	return r
}

// MonthlyFloodRisk scores one month from its average rainfall and its
// wettest day.
func MonthlyFloodRisk(elevationM *float64, coastal bool, monthlyAvgMM, monthlyMaxMM float64) FloodRisk {
	var r FloodRisk
	if elevationM != nil {
		switch e := *elevationM; {
		case e < 5:
			r.Score += 30
		case e < 20:
			r.Score += 20
		case e < 50:
			r.Score += 10
		}
	}
	if coastal {
		r.Score += 15
	}
	switch {
	case monthlyAvgMM > 200:
		r.Score += 40
	case monthlyAvgMM > 150:
		r.Score += 30
	case monthlyAvgMM > 100:
		r.Score += 20
	case monthlyAvgMM > 50:
		r.Score += 10
	}
	switch {
	case monthlyMaxMM > 100:
		r.Score += 15
	case monthlyMaxMM > 50:
		r.Score += 10
	}

	switch {
	case r.Score >= 60:
		r.Level = "High"
	case r.Score >= 35:
		r.Level = "Medium"
	case r.Score >= 15:
		r.Level = "Low"
	default:
		r.Level = "Minimal"
	}
	return r
}
