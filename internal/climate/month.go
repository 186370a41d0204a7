package climate

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/couchcryptid/climate-insights-service/internal/domain"
)

// rainyDayThreshold is the precipitation probability above which a day
// counts as rainy in month summaries.
const rainyDayThreshold = 25

// SeasonOf names the meteorological season of a month.
func SeasonOf(month time.Month) string {
	switch month {
	case time.December, time.January, time.February:
		return "Winter"
	case time.March, time.April, time.May:
		return "Spring"
	case time.June, time.July, time.August:
		return "Summer"
	default:
		return "Autumn"
	}
}

// MonthVerdict is the one-line character of a month.
type MonthVerdict struct {
	Text  string `json:"text"`
	Emoji string `json:"emoji"`
}

// MonthVerdictOf characterizes a month by rain first, then temperature.
func MonthVerdictOf(avgMax, avgRainProb float64) MonthVerdict {
	switch {
	case avgRainProb > 40:
		return MonthVerdict{Text: "Wet Season", Emoji: "🌧️"}
	case avgMax < 10:
		return MonthVerdict{Text: "Cool & Crisp", Emoji: "❄️"}
	case avgMax > 28:
		return MonthVerdict{Text: "Hot & Sunny", Emoji: "☀️"}
	case avgMax > 20:
		return MonthVerdict{Text: "Warm & Pleasant", Emoji: "😊"}
	default:
		return MonthVerdict{Text: "Mild & Comfortable", Emoji: "🌤️"}
	}
}

// MonthSummary aggregates every day of one month.
type MonthSummary struct {
	Month         time.Month      `json:"month"`
	Name          string          `json:"name"`
	Days          int             `json:"days"`
	AvgMax        int             `json:"temp_high"`
	AvgMin        int             `json:"temp_low"`
	AvgRainProb   int             `json:"rain_chance"`
	AvgWind       int             `json:"wind_avg"`
	AvgSunHours   *int            `json:"sun_hours,omitempty"`
	RainyDays     int             `json:"rainy_days"`
	AvgSeaTemp    *float64        `json:"sea_temp,omitempty"`
	AvgScore      int             `json:"avg_score"`
	Season        string          `json:"season"`
	Verdict       MonthVerdict    `json:"verdict"`
	TravelVerdict string          `json:"travel_verdict"`
	Tourism       TourismPressure `json:"tourism"`

	rawMax, rawRain float64
}

// SummarizeMonth aggregates the days of month. It returns false when the
// city has no days in that month.
func SummarizeMonth(city domain.CityData, month time.Month, fallback FallbackTable) (MonthSummary, bool) {
	var (
		n, rainy, sunN, seaN             int
		maxSum, minSum, rainSum, windSum float64
		sunSum, seaSum                   float64
		scoreSum                         int
	)
	for d := 1; d <= domain.DaysIn(month); d++ {
		rec, ok := city.Day(domain.DateKey{Month: month, Day: d})
		if !ok {
			continue
		}
		n++
		s := rec.Stats
		maxSum += s.TempMax
		minSum += s.TempMin
		rainSum += s.PrecipProb
		windSum += s.WindKmh
		scoreSum += SimpleScoreOf(rec)
		if s.PrecipProb > rainyDayThreshold {
			rainy++
		}
		if s.SunshineHours != nil {
			sunSum += *s.SunshineHours
			sunN++
		}
		if rec.Marine != nil {
			seaSum += rec.Marine.WaterTemp
			seaN++
		}
	}
	if n == 0 {
		return MonthSummary{}, false
	}

	fn := float64(n)
	ms := MonthSummary{
		Month:       month,
		Name:        month.String(),
		Days:        n,
		AvgMax:      int(roundHalfUp(maxSum / fn)),
		AvgMin:      int(roundHalfUp(minSum / fn)),
		AvgRainProb: int(roundHalfUp(rainSum / fn)),
		AvgWind:     int(roundHalfUp(windSum / fn)),
		RainyDays:   rainy,
		AvgScore:    int(roundHalfUp(float64(scoreSum) / fn)),
		Season:      SeasonOf(month),
		Verdict:     MonthVerdictOf(maxSum/fn, rainSum/fn),
		Tourism:     NormalizeTourism(city.Tourism, month, fallback),
		rawMax:      maxSum / fn,
		rawRain:     rainSum / fn,
	}
	ms.TravelVerdict = "Neutral"
	if ms.rawMax > 20 && ms.rawRain < 30 {
		ms.TravelVerdict = "Good for travel"
	}
	if sunN > 0 {
		v := int(roundHalfUp(sunSum / float64(sunN)))
		ms.AvgSunHours = &v
	}
	if seaN > 0 {
		v := round1(seaSum / float64(seaN))
		ms.AvgSeaTemp = &v
	}
	return ms, true
}

// RainAdvice is a packing hint based on the number of rainy days.
func (m MonthSummary) RainAdvice() string {
	switch {
	case m.RainyDays > 15:
		return "Expect frequent rain. Pack waterproof layers and plan indoor alternatives."
	case m.RainyDays > 8:
		return "A mix of sunny and rainy days. An umbrella is advisable."
	default:
		return "One of the drier periods. Ideal for outdoor activities and sightseeing."
	}
}

// CityOverview is a twelve-month digest of a city.
type CityOverview struct {
	Months     []MonthSummary `json:"months"`
	BestMonths []string       `json:"best_months"`
	Driest     string         `json:"driest_month,omitempty"`
	Wettest    string         `json:"wettest_month,omitempty"`
	Warmest    string         `json:"warmest_month,omitempty"`
	Coldest    string         `json:"coldest_month,omitempty"`
}

// Overview summarizes every month that has data. Best months are those that
// are good for travel; when none qualify, the three warmest months are used.
func Overview(city domain.CityData, fallback FallbackTable) CityOverview {
	var ov CityOverview
	for m := time.January; m <= time.December; m++ {
		if s, ok := SummarizeMonth(city, m, fallback); ok {
			ov.Months = append(ov.Months, s)
		}
	}
	if len(ov.Months) == 0 {
		return ov
	}

	for _, m := range ov.Months {
		if m.TravelVerdict == "Good for travel" {
			ov.BestMonths = append(ov.BestMonths, m.Name)
		}
	}
	if len(ov.BestMonths) == 0 {
		byWarmth := append([]MonthSummary(nil), ov.Months...)
		sort.SliceStable(byWarmth, func(i, j int) bool { return byWarmth[i].AvgMax > byWarmth[j].AvgMax })
		for i := 0; i < len(byWarmth) && i < 3; i++ {
			ov.BestMonths = append(ov.BestMonths, byWarmth[i].Name)
		}
	}

	driest, wettest, warmest, coldest := ov.Months[0], ov.Months[0], ov.Months[0], ov.Months[0]
	for _, m := range ov.Months[1:] {
		if m.AvgRainProb < driest.AvgRainProb {
			driest = m
		}
		if m.AvgRainProb > wettest.AvgRainProb {
			wettest = m
		}
		if m.AvgMax > warmest.AvgMax {
			warmest = m
		}
		if m.AvgMin < coldest.AvgMin {
			coldest = m
		}
	}
	ov.Driest, ov.Wettest = driest.Name, wettest.Name
	ov.Warmest, ov.Coldest = warmest.Name, coldest.Name
	return ov
}

// MonthlyPrecipStats returns, per month, the expected monthly rainfall
// total and the wettest single day, both from day stats.
func MonthlyPrecipStats(city domain.CityData) (totals, wettest map[time.Month]float64) {
	totals = map[time.Month]float64{}
	wettest = map[time.Month]float64{}
	for m := time.January; m <= time.December; m++ {
		var sum float64
		var n int
		for d := 1; d <= domain.DaysIn(m); d++ {
			rec, ok := city.Day(domain.DateKey{Month: m, Day: d})
			if !ok {
				continue
			}
			sum += rec.Stats.PrecipMM
			n++
			wettest[m] = math.Max(wettest[m], rec.Stats.PrecipMM)
		}
		if n > 0 {
			totals[m] = sum / float64(n) * float64(domain.DaysIn(m))
		}
	}
	return totals, wettest
}

// MonthFromName parses "march", "Mar" or "3".
func MonthFromName(s string) (time.Month, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for m := time.January; m <= time.December; m++ {
		name := strings.ToLower(m.String())
		if s == name || s == name[:3] {
			return m, true
		}
	}
	var n int
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
		n = n*10 + int(r-'0')
		if n > 12 {
			return 0, false
		}
	}
	if n < 1 {
		return 0, false
	}
	return time.Month(n), true
}
