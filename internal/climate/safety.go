package climate

import (
	"time"

	"github.com/couchcryptid/climate-insights-service/internal/domain"
)

// Seismic is the seismic section of a safety report.
type Seismic struct {
	Score      int     `json:"seismic_score"`
	Level      string  `json:"risk_level"`
	AvgPerYear float64 `json:"avg_per_year"`
}

// SafetyReport collects the natural-hazard exposure of a city for a month.
// Sections without input data are nil.
type SafetyReport struct {
	AirQuality *AirQuality           `json:"air_quality,omitempty"`
	Seismic    *Seismic              `json:"seismic,omitempty"`
	Volcano    *VolcanoRisk          `json:"volcano,omitempty"`
	Hurricane  *MonthlyHurricaneRisk `json:"hurricane,omitempty"`
	Flood      *FloodRisk            `json:"flood,omitempty"`
}

// SafetyOf builds the safety report of a city for month. It returns false
// when no section could be computed.
func SafetyOf(city domain.CityData, month time.Month) (SafetyReport, bool) {
	var r SafetyReport
	meta := city.Meta

	if p := meta.SafetyProfile; p != nil {
		if p.AQI != nil {
			q := ClassifyAQI(*p.AQI)
			r.AirQuality = &q
		}
		if p.Seismic != nil {
			score, level := SeismicStability(p.Seismic.AvgPerYear)
			r.Seismic = &Seismic{Score: score, Level: level, AvgPerYear: p.Seismic.AvgPerYear}
		}
		if v, ok := ClassifyVolcanoes(p.NearbyVolcanoes); ok {
			r.Volcano = &v
		}
	}

	if h, ok := HurricaneRiskAt(meta.Lat, meta.Lon, meta.IsCoastal); ok {
		m := h.ForMonth(month)
		r.Hurricane = &m
	}

	var elevation *float64
	if meta.GeoInfo != nil {
		elevation = meta.GeoInfo.Elevation
	}
	totals, wettest := MonthlyPrecipStats(city)
	if total, ok := totals[month]; ok {
		if p := meta.SafetyProfile; p != nil {
			if v, ok := p.MonthlyPrecipAvg[int(month)]; ok {
				total = v
			}
		}
		f := MonthlyFloodRisk(elevation, meta.IsCoastal, total, wettest[month])
		r.Flood = &f
	}

	ok := r.AirQuality != nil || r.Seismic != nil || r.Volcano != nil || r.Hurricane != nil || r.Flood != nil
	return r, ok
}
