package climate

import "math"

// DefaultHumidity is assumed when a day has no humidity reading.
const DefaultHumidity = 50.0

// FeelsLike returns the apparent temperature in °C, rounded to one decimal.
//
// Three disjoint regimes apply:
//
//   - cold (tempC <= 15 and wind > 4.8 km/h): the wind-chill polynomial at or
//     below 10°C, and a linear taper of the wind effect between 10 and 15°C.
//   - hot (tempC >= 20 and humidity >= 40%): the Rothfusz heat index at or
//     above 27°C, and a linear taper of the humidity effect between 20 and 27°C.
//   - neutral: tempC unchanged.
//
// The tapers make the result continuous at 15°C and 20°C. A nil humidity uses
// DefaultHumidity.
func FeelsLike(tempC, windKmh float64, humidity *float64) float64 {
	h := DefaultHumidity
	if humidity != nil {
		h = *humidity
	}

	if tempC <= 15 && windKmh > 4.8 {
		if tempC <= 10 {
			v := math.Pow(windKmh, 0.16)
			return round1(13.12 + 0.6215*tempC - 11.37*v + 0.3965*tempC*v)
		}
		windEffect := (windKmh / 10) * ((15 - tempC) / 5)
		return round1(tempC - windEffect)
	}

	if tempC >= 20 && h >= 40 {
		if tempC >= 27 {
			return round1(heatIndexC(tempC, h))
		}
		humidityEffect := ((h - 40) / 60) * ((tempC - 20) / 7) * 2
		return round1(tempC + humidityEffect)
	}

	return round1(tempC)
}

// heatIndexC evaluates the NOAA Rothfusz regression in Fahrenheit and
// converts the result back to Celsius.
func heatIndexC(tempC, humidity float64) float64 {
	f := tempC*9/5 + 32
	r := humidity
	hi := -42.379 +
		2.04901523*f +
		10.14333127*r -
		0.22475541*f*r -
		6.83783e-3*f*f -
		5.481717e-2*r*r +
		1.22874e-3*f*f*r +
		8.5282e-4*f*r*r -
		1.99e-6*f*f*r*r
	return (hi - 32) * 5 / 9
}

// FeelsLikeDescription explains the gap between actual and apparent temperature.
func FeelsLikeDescription(actual, feelsLike float64) string {
	diff := feelsLike - actual
	switch {
	case math.Abs(diff) < 1:
		return "Feels accurate"
	case diff < -5:
		return "Wind chill effect"
	case diff < -2:
		return "Slightly colder"
	case diff > 5:
		return "Heat index effect"
	case diff > 2:
		return "Feels warmer"
	default:
		return "Minor difference"
	}
}
