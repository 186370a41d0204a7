package domain

import (
	"encoding/json"
	"fmt"
	"regexp"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)

// ValidSlug reports whether s is a well-formed city slug. Slugs double as
// file and object names, so anything outside [a-z0-9-] is rejected.
func ValidSlug(s string) bool {
	return len(s) <= 100 && slugPattern.MatchString(s)
}

// DecodeCity parses a city document. The slug is filled in from the caller
// when the document omits it, and day keys that are not valid "MM-DD" keys
// are rejected.
func DecodeCity(data []byte, slug string) (CityData, error) {
	var c CityData
	if err := json.Unmarshal(data, &c); err != nil {
		return CityData{}, fmt.Errorf("decode city %s: %w", slug, err)
	}
	if c.Slug == "" {
		c.Slug = slug
	}
	for k := range c.Days {
		if _, err := ParseDateKey(k); err != nil {
			return CityData{}, fmt.Errorf("decode city %s: day %q: %w", slug, k, err)
		}
	}
	return c, nil
}

// EncodeCity serializes a city document with its slug.
func EncodeCity(c CityData) ([]byte, error) {
	return json.Marshal(c)
}
