package climate

import (
	"time"

	"github.com/couchcryptid/climate-insights-service/internal/domain"
)

// MarineStatus is the headline swim classification of a coastal day.
type MarineStatus string

const (
	MarineExcellentSwim MarineStatus = "Excellent Swim"
	MarineColdWater     MarineStatus = "Cold Water"
	MarineMixed         MarineStatus = "Mixed Conditions"
	// MarineNA is reported when a city has no marine readings.
	MarineNA MarineStatus = "N/A"
)

// ClassifyMarine classifies known readings.
func ClassifyMarine(waterTemp, waveHeight float64) MarineStatus {
	switch {
	case waterTemp > 21 && waveHeight < 1.0:
		return MarineExcellentSwim
	case waterTemp < 18:
		return MarineColdWater
	default:
		return MarineMixed
	}
}

// MarineStatusOf classifies m, or returns MarineNA when m is nil.
func MarineStatusOf(m *domain.Marine) MarineStatus {
	if m == nil {
		return MarineNA
	}
	return ClassifyMarine(m.WaterTemp, m.WaveHeight)
}

// ShiverBand is an upper water-temperature bound and its label.
type ShiverBand struct {
	Below float64
	Label string
}

// ShiverScale is an ascending list of bands followed by a label for
// everything above the last bound.
type ShiverScale struct {
	Bands []ShiverBand
	Above string
}

// DisplayShiverScale is the scale shown to readers.
var DisplayShiverScale = ShiverScale{
	Bands: []ShiverBand{
		{Below: 15, Label: "Polar Plunge"},
		{Below: 18, Label: "Refreshing"},
		{Below: 22, Label: "Pleasant"},
		{Below: 26, Label: "Warm"},
	},
	Above: "Tropical",
}

// UpstreamShiverScale is the coarser scale used when the datasets were built.
var UpstreamShiverScale = ShiverScale{
	Bands: []ShiverBand{
		{Below: 17, Label: "Polar Plunge"},
		{Below: 21, Label: "Refreshing Tonic"},
		{Below: 25, Label: "Swimming Pool"},
		{Below: 29, Label: "Tropical Bath"},
	},
	Above: "Hot Soup",
}

// Classify returns the band label for a water temperature.
func (s ShiverScale) Classify(waterTemp float64) string {
	for _, b := range s.Bands {
		if waterTemp < b.Below {
			return b.Label
		}
	}
	return s.Above
}

// ShiverFactorOf classifies the water temperature of m on scale.
func ShiverFactorOf(m *domain.Marine, scale ShiverScale) (string, bool) {
	if m == nil {
		return "", false
	}
	return scale.Classify(m.WaterTemp), true
}

// FamilySafety rates wave height for families with children.
func FamilySafety(waveHeight float64) string {
	switch {
	case waveHeight < 0.5:
		return "Lake-like"
	case waveHeight < 1.2:
		return "Fun Waves"
	default:
		return "Surfers Only"
	}
}

// JellyfishWarning flags warm late-summer water.
func JellyfishWarning(waterTemp float64, month time.Month) bool {
	return waterTemp > 26 && (month == time.August || month == time.September)
}

// SwimCondition is a sentence describing a water temperature.
func SwimCondition(waterTemp float64) string {
	switch {
	case waterTemp >= 22:
		return "Excellent for swimming"
	case waterTemp >= 18:
		return "Good for swimming"
	case waterTemp >= 15:
		return "Cool, wetsuits recommended"
	default:
		return "Cold water hazard"
	}
}

// MarineReport is the marine section of a day's derived metrics.
type MarineReport struct {
	Status           MarineStatus `json:"status"`
	WaterTemp        float64      `json:"water_temp"`
	WaveHeight       float64      `json:"wave_height"`
	ShiverFactor     string       `json:"shiver_factor"`
	UpstreamShiver   string       `json:"upstream_shiver_factor"`
	FamilySafety     string       `json:"family_safety"`
	JellyfishWarning bool         `json:"jellyfish_warning"`
	SwimCondition    string       `json:"swim_condition"`
}

// MarineReportOf builds the marine section for a day in month. It returns
// false when m is nil. A stored jellyfish warning is kept; otherwise it is
// derived from the water temperature. The upstream shiver band is the stored
// one when present, else it is classified on UpstreamShiverScale.
func MarineReportOf(m *domain.Marine, month time.Month) (MarineReport, bool) {
	if m == nil {
		return MarineReport{}, false
	}
	safety := m.FamilySafety
	if safety == "" {
		safety = FamilySafety(m.WaveHeight)
	}
	display, _ := ShiverFactorOf(m, DisplayShiverScale)
	upstream := m.ShiverFactor
	if upstream == "" {
		upstream, _ = ShiverFactorOf(m, UpstreamShiverScale)
	}
	return MarineReport{
		Status:           ClassifyMarine(m.WaterTemp, m.WaveHeight),
		WaterTemp:        m.WaterTemp,
		WaveHeight:       m.WaveHeight,
		ShiverFactor:     display,
		UpstreamShiver:   upstream,
		FamilySafety:     safety,
		JellyfishWarning: m.JellyfishWarning || JellyfishWarning(m.WaterTemp, month),
		SwimCondition:    SwimCondition(m.WaterTemp),
	}, true
}
