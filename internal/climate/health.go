package climate

import "github.com/couchcryptid/climate-insights-service/internal/domain"

// Fishing condition labels.
const (
	FishingPoor      = "Poor"
	FishingFair      = "Fair"
	FishingExcellent = "Excellent"
)

// HealthScore maps the two pressure-driven risks to a 0-100 score. Each
// factor costs 30 points at High and 15 at Medium.
func HealthScore(migraine, jointPain domain.Risk) int {
	score := 100 - riskPenalty(migraine) - riskPenalty(jointPain)
	if score < 0 {
		return 0
	}
	return score
}

func riskPenalty(r domain.Risk) int {
	switch r {
	case domain.RiskHigh:
		return 30
	case domain.RiskMedium:
		return 15
	default:
		return 0
	}
}

// HealthColor is the display colour of a health score.
func HealthColor(score int) string {
	switch {
	case score < 50:
		return "red"
	case score < 80:
		return "yellow"
	default:
		return "green"
	}
}

// PressureVolatility buckets the standard deviation of daily pressure.
func PressureVolatility(stdDev float64) domain.Risk {
	switch {
	case stdDev > 8:
		return domain.RiskHigh
	case stdDev > 4:
		return domain.RiskMedium
	default:
		return domain.RiskLow
	}
}

// JointPainRisk classifies joint pain from pressure, humidity and cold. When
// humidity is unknown, precipitation probability stands in for it.
func JointPainRisk(pressureHPA, tempMax, precipProb float64, humidity *float64) domain.Risk {
	if pressureHPA <= 0 {
		return domain.RiskLow
	}
	if humidity != nil {
		switch {
		case pressureHPA < 1010 && *humidity > 80 && tempMax < 15:
			return domain.RiskHigh
		case pressureHPA < 1013 && *humidity > 70:
			return domain.RiskMedium
		}
		return domain.RiskLow
	}
	switch {
	case pressureHPA < 1010 && precipProb > 40 && tempMax < 15:
		return domain.RiskHigh
	case pressureHPA < 1013 && precipProb > 30:
		return domain.RiskMedium
	}
	return domain.RiskLow
}

// FishingConditions: fish bite when pressure moves and sulk under a stable high.
func FishingConditions(volatility domain.Risk, pressureHPA float64) string {
	switch {
	case volatility == domain.RiskHigh:
		return FishingExcellent
	case pressureHPA > 1020:
		return FishingPoor
	default:
		return FishingFair
	}
}

// HealthAssessment is the health section of a day's derived metrics.
type HealthAssessment struct {
	domain.HealthImpact
	Score int    `json:"score"`
	Color string `json:"color"`
}

// HealthOf returns the health assessment of a day. Upstream classifications
// are used as given; otherwise they are derived from pressure statistics.
// Days with neither report false.
func HealthOf(rec domain.DayRecord) (HealthAssessment, bool) {
	impact, ok := healthImpact(rec)
	if !ok {
		return HealthAssessment{}, false
	}
	score := HealthScore(impact.MigraineRisk, impact.JointPainRisk)
	return HealthAssessment{HealthImpact: impact, Score: score, Color: HealthColor(score)}, true
}

func healthImpact(rec domain.DayRecord) (domain.HealthImpact, bool) {
	if rec.HealthImpact != nil {
		return *rec.HealthImpact, true
	}
	ps := rec.PressureStats
	if ps == nil {
		return domain.HealthImpact{}, false
	}

	volatility := ps.Volatility
	if volatility == "" && ps.StdDev != nil {
		volatility = PressureVolatility(*ps.StdDev)
	}
	if volatility == "" {
		return domain.HealthImpact{}, false
	}

	var pressure float64
	switch {
	case ps.MeanHPA != nil:
		pressure = *ps.MeanHPA
	case rec.Stats.PressureHPA != nil:
		pressure = *rec.Stats.PressureHPA
	}

	return domain.HealthImpact{
		MigraineRisk:      volatility,
		JointPainRisk:     JointPainRisk(pressure, rec.Stats.TempMax, rec.Stats.PrecipProb, rec.Stats.Humidity),
		FishingConditions: FishingConditions(volatility, pressure),
	}, true
}
