package climate

import "github.com/couchcryptid/climate-insights-service/internal/domain"

// Clothing recommends what to pack for a day.
func Clothing(s domain.DayStats) []string {
	var items []string
	avg := (s.TempMax + s.TempMin) / 2
	switch {
	case avg < 10:
		items = append(items, "Heavy Coat", "Scarf", "Gloves")
	case avg < 18:
		items = append(items, "Light Jacket", "Long Pants")
	default:
		items = append(items, "T-Shirt", "Light Clothing")
	}
	if s.PrecipProb > 30 {
		items = append(items, "Umbrella")
	}
	if s.TempMax-s.TempMin > 12 {
		items = append(items, "Layers (Onion System)")
	}
	return items
}
