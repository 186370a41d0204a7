package domain

import (
	"context"
	"log/slog"
)

// Location source values reported by ResolveLocation.
const (
	LocationSourceForward = "forward"
	LocationSourceFailed  = "failed"
	LocationSourceNone    = "none"
)

// ResolvedLocation is the outcome of a best-effort place lookup.
type ResolvedLocation struct {
	Point       GeoPoint `json:"point"`
	DisplayName string   `json:"display_name,omitempty"`
	Source      string   `json:"source"`
}

// ResolveLocation looks a place query up with geocoder. A nil geocoder, an
// error or an empty result degrade to a location without coordinates; the
// Source field tells the caller which happened.
func ResolveLocation(ctx context.Context, query string, geocoder Geocoder, logger *slog.Logger) (ResolvedLocation, bool) {
	if geocoder == nil || query == "" {
		return ResolvedLocation{Source: LocationSourceNone}, false
	}

	result, err := geocoder.ForwardGeocode(ctx, query)
	if err != nil {
		logger.Warn("forward geocoding failed", "query", query, "error", err)
		return ResolvedLocation{Source: LocationSourceFailed}, false
	}
	if result.Lat == 0 && result.Lon == 0 {
		return ResolvedLocation{Source: LocationSourceNone}, false
	}
	return ResolvedLocation{
		Point:       GeoPoint{Lat: result.Lat, Lon: result.Lon},
		DisplayName: result.DisplayName,
		Source:      LocationSourceForward,
	}, true
}
