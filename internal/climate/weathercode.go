package climate

import (
	"fmt"

	"github.com/couchcryptid/climate-insights-service/internal/domain"
)

var wmoCodes = map[int]domain.WeatherCondition{
	0:  {Description: "Clear sky", Icon: "sun", Severity: "clear"},
	1:  {Description: "Mainly clear", Icon: "sun-cloud", Severity: "clear"},
	2:  {Description: "Partly cloudy", Icon: "cloud-sun", Severity: "cloudy"},
	3:  {Description: "Overcast", Icon: "cloud", Severity: "cloudy"},
	45: {Description: "Fog", Icon: "fog", Severity: "fog"},
	48: {Description: "Depositing rime fog", Icon: "fog", Severity: "fog"},
	51: {Description: "Light drizzle", Icon: "drizzle", Severity: "rain"},
	53: {Description: "Moderate drizzle", Icon: "drizzle", Severity: "rain"},
	55: {Description: "Dense drizzle", Icon: "drizzle", Severity: "rain"},
	56: {Description: "Light freezing drizzle", Icon: "sleet", Severity: "freezing"},
	57: {Description: "Dense freezing drizzle", Icon: "sleet", Severity: "freezing"},
	61: {Description: "Slight rain", Icon: "rain", Severity: "rain"},
	63: {Description: "Moderate rain", Icon: "rain", Severity: "rain"},
	65: {Description: "Heavy rain", Icon: "rain-heavy", Severity: "rain"},
	66: {Description: "Light freezing rain", Icon: "sleet", Severity: "freezing"},
	67: {Description: "Heavy freezing rain", Icon: "sleet", Severity: "freezing"},
	71: {Description: "Slight snow", Icon: "snow", Severity: "snow"},
	73: {Description: "Moderate snow", Icon: "snow", Severity: "snow"},
	75: {Description: "Heavy snow", Icon: "snow-heavy", Severity: "snow"},
	77: {Description: "Snow grains", Icon: "snow", Severity: "snow"},
	80: {Description: "Slight rain showers", Icon: "rain-showers", Severity: "rain"},
	81: {Description: "Moderate rain showers", Icon: "rain-showers", Severity: "rain"},
	82: {Description: "Violent rain showers", Icon: "rain-heavy", Severity: "rain"},
	85: {Description: "Slight snow showers", Icon: "snow-showers", Severity: "snow"},
	86: {Description: "Heavy snow showers", Icon: "snow-heavy", Severity: "snow"},
	95: {Description: "Thunderstorm", Icon: "thunderstorm", Severity: "storm"},
	96: {Description: "Thunderstorm with slight hail", Icon: "thunderstorm-hail", Severity: "storm"},
	99: {Description: "Thunderstorm with heavy hail", Icon: "thunderstorm-hail", Severity: "storm"},
}

// WeatherCode interprets a WMO weather code. Unknown codes are reported as
// such rather than mapped to a neighbour.
func WeatherCode(code int) domain.WeatherCondition {
	if c, ok := wmoCodes[code]; ok {
		return c
	}
	return domain.WeatherCondition{Description: fmt.Sprintf("Unknown (%d)", code), Icon: "question", Severity: "unknown"}
}

// DominantCondition returns the most frequent weather code across a day's
// historical records. Ties go to the more recent year. It returns false when
// no record carries a code.
func DominantCondition(records []domain.HistoricalRecord) (domain.WeatherCondition, bool) {
	counts := map[int]int{}
	latest := map[int]int{}
	for _, r := range records {
		if r.WeatherCode == nil {
			continue
		}
		counts[*r.WeatherCode]++
		if r.Year > latest[*r.WeatherCode] {
			latest[*r.WeatherCode] = r.Year
		}
	}
	if len(counts) == 0 {
		return domain.WeatherCondition{}, false
	}

	best, bestN := 0, -1
	for code, n := range counts {
		if n > bestN || (n == bestN && latest[code] > latest[best]) {
			best, bestN = code, n
		}
	}
	return WeatherCode(best), true
}
