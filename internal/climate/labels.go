package climate

// TempBand is the presentation of a temperature.
type TempBand struct {
	Label string `json:"label"`
	Color string `json:"color"`
	Emoji string `json:"emoji"`
}

// TempLabel names a temperature range.
func TempLabel(t float64) string {
	switch {
	case t < 0:
		return "Freezing"
	case t < 10:
		return "Cold"
	case t < 15:
		return "Cool"
	case t < 20:
		return "Mild"
	case t < 25:
		return "Warm"
	case t < 30:
		return "Hot"
	default:
		return "Very Hot"
	}
}

// TempColor returns the colour family for a temperature. The colour bands are
// coarser than the labels: 20-28°C is amber and 28°C and above is red.
func TempColor(t float64) string {
	switch {
	case t < 0:
		return "blue"
	case t < 10:
		return "cyan"
	case t < 20:
		return "emerald"
	case t < 28:
		return "amber"
	default:
		return "red"
	}
}

// TempEmoji uses the same bands as TempColor.
func TempEmoji(t float64) string {
	switch {
	case t < 0:
		return "🥶"
	case t < 10:
		return "❄️"
	case t < 20:
		return "🌤️"
	case t < 28:
		return "☀️"
	default:
		return "🔥"
	}
}

// Band bundles TempLabel, TempColor and TempEmoji.
func Band(t float64) TempBand {
	return TempBand{Label: TempLabel(t), Color: TempColor(t), Emoji: TempEmoji(t)}
}
