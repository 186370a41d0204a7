package climate

// VerdictLabel is the coarse recommendation for a date.
type VerdictLabel string

const (
	VerdictYes   VerdictLabel = "YES"
	VerdictMaybe VerdictLabel = "MAYBE"
	VerdictNo    VerdictLabel = "NO"
)

// VerdictPolicy holds the cutoffs of a verdict: scores at or above YesMin
// are YES, scores below NoMax are NO, everything between is MAYBE.
type VerdictPolicy struct {
	Name   string `json:"name"`
	YesMin int    `json:"yes_min"`
	NoMax  int    `json:"no_max"`
}

var (
	// PolicyMonth is used on month-aware surfaces.
	PolicyMonth = VerdictPolicy{Name: "month", YesMin: 80, NoMax: 50}
	// PolicyDay is used on single-day surfaces.
	PolicyDay = VerdictPolicy{Name: "day", YesMin: 80, NoMax: 40}
)

// VerdictResult is a label with its explanation.
type VerdictResult struct {
	Label       VerdictLabel `json:"label"`
	Description string       `json:"description"`
}

// Verdict classifies score under policy.
func Verdict(score int, policy VerdictPolicy) VerdictResult {
	switch {
	case score >= policy.YesMin:
		return VerdictResult{Label: VerdictYes, Description: "Perfect conditions expected based on historical data."}
	case score < policy.NoMax:
		return VerdictResult{Label: VerdictNo, Description: "Historically poor conditions (rain or cold)."}
	default:
		return VerdictResult{Label: VerdictMaybe, Description: "Conditions are mixed."}
	}
}

// DayTier is the headline of a day page, chosen by rain probability.
type DayTier struct {
	Title    string       `json:"title"`
	Subtitle string       `json:"subtitle"`
	Tone     VerdictLabel `json:"tone"`
}

// DayTierOf picks the headline for a precipitation probability.
func DayTierOf(precipProb float64) DayTier {
	switch {
	case precipProb < 15:
		return DayTier{Title: "YES, IT'S PARADISE", Subtitle: "Rain is very unlikely on this date.", Tone: VerdictYes}
	case precipProb < 40:
		return DayTier{Title: "YES, GOOD CHOICE", Subtitle: "Mostly dry, with a small chance of showers.", Tone: VerdictYes}
	case precipProb < 70:
		return DayTier{Title: "IT'S A GAMBLE", Subtitle: "Pack an umbrella and keep a backup plan.", Tone: VerdictMaybe}
	default:
		return DayTier{Title: "PROBABLY NOT", Subtitle: "Rain is more likely than not.", Tone: VerdictNo}
	}
}
