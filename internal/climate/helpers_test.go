package climate

import (
	"github.com/couchcryptid/climate-insights-service/internal/domain"
)

// scored returns a day record whose stored wedding score is s.
func scored(s float64) domain.DayRecord {
	return domain.DayRecord{
		Stats:  domain.DayStats{TempMax: 22, TempMin: 14, PrecipProb: 20, WindKmh: 10},
		Scores: domain.DayScores{Wedding: s},
	}
}

func pleasantDay() domain.DayRecord {
	return domain.DayRecord{
		Stats:  domain.DayStats{TempMax: 25, TempMin: 15, PrecipProb: 10, PrecipMM: 0, WindKmh: 10, CloudsPercent: 20},
		Scores: domain.DayScores{Wedding: 88, Reliability: 85},
	}
}

func cityWith(slug string, days map[string]domain.DayRecord) domain.CityData {
	return domain.CityData{
		Slug: slug,
		Meta: domain.CityMeta{Name: slug, Country: "Testland"},
		Days: days,
	}
}
