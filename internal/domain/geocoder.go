package domain

import "context"

// GeocodingResult contains location data returned by a geocoding provider.
type GeocodingResult struct {
	Lat         float64
	Lon         float64
	DisplayName string
	PlaceName   string
	CountryCode string
	Importance  float64 // 0.0-1.0 provider ranking
}

// Geocoder resolves free-text places and coordinates.
type Geocoder interface {
	// ForwardGeocode converts a place query such as "Prague" to coordinates.
	ForwardGeocode(ctx context.Context, query string) (GeocodingResult, error)

	// ReverseGeocode converts coordinates to place details.
	ReverseGeocode(ctx context.Context, lat, lon float64) (GeocodingResult, error)
}
