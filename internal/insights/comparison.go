package insights

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/couchcryptid/climate-insights-service/internal/domain"
)

// DefaultComparisonCities is the curated list used for cross-city
// comparisons, in presentation order.
var DefaultComparisonCities = []string{
	"prague", "paris", "rome", "barcelona", "london", "amsterdam", "lisbon",
	"tokyo", "dubai", "bangkok", "bali", "new-york", "cancun",
}

type comparisonFile struct {
	ComparisonCities []string `yaml:"comparison_cities"`
}

// LoadComparisonCities reads a YAML file of the form
//
//	comparison_cities:
//	  - lisbon
//	  - rome
//
// Slugs are normalized and duplicates dropped, keeping first occurrence.
func LoadComparisonCities(path string) ([]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read comparison cities: %w", err)
	}
	return ParseComparisonCities(b)
}

// ParseComparisonCities parses the YAML document read by LoadComparisonCities.
func ParseComparisonCities(b []byte) ([]string, error) {
	var f comparisonFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("parse comparison cities: %w", err)
	}

	seen := map[string]bool{}
	var out []string
	for _, raw := range f.ComparisonCities {
		slug := domain.NormalizeSlug(raw)
		if !domain.ValidSlug(slug) {
			return nil, fmt.Errorf("parse comparison cities: invalid slug %q", raw)
		}
		if !seen[slug] {
			seen[slug] = true
			out = append(out, slug)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("parse comparison cities: list is empty")
	}
	return out, nil
}
