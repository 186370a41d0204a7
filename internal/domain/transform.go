package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
)

// ParseDeriveRequest decodes and validates a request message. The city slug
// is normalized to lower case and the date must be a valid "MM-DD" key.
func ParseDeriveRequest(raw RawEvent) (DeriveRequest, DateKey, error) {
	var req DeriveRequest
	if err := json.Unmarshal(raw.Value, &req); err != nil {
		return DeriveRequest{}, DateKey{}, fmt.Errorf("parse derive request: %w", err)
	}
	req.City = NormalizeSlug(req.City)
	if req.City == "" {
		return DeriveRequest{}, DateKey{}, fmt.Errorf("parse derive request: city is required")
	}
	key, err := ParseDateKey(strings.TrimSpace(req.Date))
	if err != nil {
		return DeriveRequest{}, DateKey{}, fmt.Errorf("parse derive request: %w", err)
	}
	req.Date = key.String()
	return req, key, nil
}

// NormalizeSlug lower-cases and trims a city slug.
func NormalizeSlug(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// ReportID returns a deterministic identifier for a city/day report so that
// replays of the same request produce the same key.
func ReportID(city string, key DateKey) string {
	h := sha256.Sum256([]byte(city + "|" + key.String()))
	return city + "-" + key.String() + "-" + hex.EncodeToString(h[:])[:12]
}
