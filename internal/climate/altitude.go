package climate

import "github.com/couchcryptid/climate-insights-service/internal/domain"

const (
	// altitudeThresholdM is the elevation at which altitude effects are reported.
	altitudeThresholdM = 500.0
	// highAltitudeM is the elevation above which a city counts as high altitude.
	highAltitudeM = 1500.0
)

// Sunburn risk labels.
const (
	SunburnNormal = "Normal"
	SunburnMedium = "Medium"
	SunburnHigh   = "High"
)

// AltitudeEffectsOf reports altitude effects for a city. It returns false when
// elevation is unknown, or when the city is below 500 m and not flagged high
// altitude. Precomputed UV and sunburn values are passed through; they are
// derived from elevation only when upstream omitted them. The alcohol warning
// follows the high-altitude flag.
func AltitudeEffectsOf(geo *domain.GeoInfo) (domain.AltitudeEffects, bool) {
	if geo == nil || geo.Elevation == nil {
		return domain.AltitudeEffects{}, false
	}
	elev := *geo.Elevation
	if elev < altitudeThresholdM && !geo.IsHighAltitude {
		return domain.AltitudeEffects{}, false
	}

	if pre := geo.AltitudeEffects; pre != nil {
		return domain.AltitudeEffects{
			UVMultiplier:   pre.UVMultiplier,
			SunburnRisk:    pre.SunburnRisk,
			AlcoholWarning: geo.IsHighAltitude,
		}, true
	}

	return domain.AltitudeEffects{
		UVMultiplier:   UVMultiplier(elev),
		SunburnRisk:    SunburnRisk(elev),
		AlcoholWarning: geo.IsHighAltitude,
	}, true
}

// UVMultiplier adds 4% UV per 300 m of elevation, rounded to two decimals.
func UVMultiplier(elevationM float64) float64 {
	if elevationM <= 0 {
		return 1
	}
	return roundHalfUp((1+elevationM/300*0.04)*100) / 100
}

// SunburnRisk buckets elevation.
func SunburnRisk(elevationM float64) string {
	switch {
	case elevationM > highAltitudeM:
		return SunburnHigh
	case elevationM > 800:
		return SunburnMedium
	default:
		return SunburnNormal
	}
}

// IsHighAltitude reports whether an elevation counts as high altitude.
func IsHighAltitude(elevationM float64) bool {
	return elevationM > highAltitudeM
}
