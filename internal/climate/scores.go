package climate

import (
	"math"

	"github.com/couchcryptid/climate-insights-service/internal/domain"
)

// Walkability rates how comfortable a day is for walking around a city.
// The heat penalties stack: above 32°C the per-degree penalty over 28°C and
// the flat extreme-heat penalty both apply.
func Walkability(s domain.DayStats) int {
	score := 100.0

	if s.TempMax < 10 {
		score -= (10 - s.TempMax) * 4
	}
	if s.TempMax > 28 {
		score -= (s.TempMax - 28) * 5
	}
	if s.TempMax > 32 {
		score -= 30
	}

	score -= s.PrecipProb * 0.5
	if s.PrecipMM > 2 {
		score -= 20
	}

	if s.WindKmh > 20 {
		score -= s.WindKmh - 20
	}

	return clampScore(score)
}

// BeerGarden rates outdoor dining. Days at or below 16°C score zero.
func BeerGarden(s domain.DayStats) int {
	if s.TempMax <= 16 {
		return 0
	}

	score := 100.0
	if s.TempMax < 20 {
		score -= (20 - s.TempMax) * 5
	}
	if s.TempMax > 30 {
		score -= 10
	}
	score -= s.PrecipProb * 0.8
	if s.WindKmh > 15 {
		score -= 15
	}

	return clampScore(score)
}

// Reliability rates how consistent the weather on a day historically is.
// A nil ps applies no volatility adjustment.
func Reliability(precipProb float64, ps *domain.PressureStats) int {
	return clampScore(reliabilityRaw(precipProb, ps))
}

func reliabilityRaw(precipProb float64, ps *domain.PressureStats) float64 {
	return 100 - precipProb*0.8 + volatilityAdjustment(ps)
}

// volatilityAdjustment is the reliability bonus or penalty for pressure
// behaviour: up to -10 for high volatility past 8 hPa std-dev, +5 for low.
func volatilityAdjustment(ps *domain.PressureStats) float64 {
	if ps == nil {
		return 0
	}
	switch ps.Volatility {
	case domain.RiskHigh:
		if ps.StdDev != nil && *ps.StdDev > 8 {
			return -math.Min(10, (*ps.StdDev-8)*1.5)
		}
	case domain.RiskLow:
		return 5
	}
	return 0
}

// SimpleScore is the day-suitability ("wedding") score.
func SimpleScore(tempMax, precipProb, windKmh float64) int {
	score := 100.0

	if tempMax < 15 {
		score -= (15 - tempMax) * 3
	}
	if tempMax > 30 {
		score -= (tempMax - 30) * 3
	}

	score -= precipProb * 0.5

	if windKmh > 20 {
		score -= (windKmh - 20) * 1.5
	}

	return clampScore(score)
}

// SimpleScoreOf applies SimpleScore to a day record.
func SimpleScoreOf(rec domain.DayRecord) int {
	return SimpleScore(rec.Stats.TempMax, rec.Stats.PrecipProb, rec.Stats.WindKmh)
}

// ReliabilityInfo is a reliability score with its presentation tier.
type ReliabilityInfo struct {
	Score       int    `json:"score"`
	Label       string `json:"label"`
	Description string `json:"description"`
	Emoji       string `json:"emoji"`
}

// ReliabilityTier adjusts a stored reliability score for pressure volatility
// and assigns it a tier.
func ReliabilityTier(reliability float64, ps *domain.PressureStats) ReliabilityInfo {
	adjusted := math.Max(0, math.Min(100, reliability+volatilityAdjustment(ps)))

	info := ReliabilityInfo{Score: clampScore(adjusted)}
	switch {
	case adjusted >= 75:
		info.Label, info.Description, info.Emoji = "Very Reliable", "Weather patterns are highly consistent", "🎯"
	case adjusted >= 60:
		info.Label, info.Description, info.Emoji = "Reliable", "Typical conditions expected", "✓"
	case adjusted >= 45:
		info.Label, info.Description, info.Emoji = "Moderate", "Some year-to-year variation", "~"
	default:
		info.Label, info.Description, info.Emoji = "Variable", "Expect unpredictable conditions", "?"
	}
	return info
}
