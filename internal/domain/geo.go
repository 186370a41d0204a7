package domain

import (
	"math"
	"sort"
)

const earthRadiusKM = 6371.0

// GeoPoint is a WGS-84 latitude/longitude pair.
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// DistanceKM returns the great-circle (haversine) distance between a and b.
func DistanceKM(a, b GeoPoint) float64 {
	dLat := toRad(b.Lat - a.Lat)
	dLon := toRad(b.Lon - a.Lon)
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(a.Lat))*math.Cos(toRad(b.Lat))*math.Sin(dLon/2)*math.Sin(dLon/2)
	return earthRadiusKM * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

func toRad(deg float64) float64 { return deg * math.Pi / 180 }

// CityLocation is the minimal view of a city needed for proximity queries.
type CityLocation struct {
	Slug    string   `json:"slug"`
	Name    string   `json:"name"`
	Country string   `json:"country"`
	Point   GeoPoint `json:"point"`
}

// CityDistance is a city with its distance from a query point.
type CityDistance struct {
	CityLocation
	DistanceKM float64 `json:"distance_km"`
}

// NearestCities sorts cities by distance from p and returns at most n.
// A non-positive n returns every city.
func NearestCities(p GeoPoint, cities []CityLocation, n int) []CityDistance {
	out := make([]CityDistance, 0, len(cities))
	for _, c := range cities {
		out = append(out, CityDistance{CityLocation: c, DistanceKM: math.Round(DistanceKM(p, c.Point)*10) / 10})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].DistanceKM < out[j].DistanceKM })
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
