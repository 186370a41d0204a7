package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	prague = GeoPoint{Lat: 50.0755, Lon: 14.4378}
	vienna = GeoPoint{Lat: 48.2082, Lon: 16.3738}
	paris  = GeoPoint{Lat: 48.8566, Lon: 2.3522}
)

func TestDistanceKM(t *testing.T) {
	assert.InDelta(t, 252, DistanceKM(prague, vienna), 3)
	assert.InDelta(t, 0, DistanceKM(paris, paris), 1e-9)
	assert.InDelta(t, DistanceKM(prague, paris), DistanceKM(paris, prague), 1e-9)
}

func TestNearestCities(t *testing.T) {
	cities := []CityLocation{
		{Slug: "paris", Point: paris},
		{Slug: "vienna", Point: vienna},
		{Slug: "prague", Point: prague},
	}

	got := NearestCities(GeoPoint{Lat: 49.9, Lon: 14.5}, cities, 2)

	require.Len(t, got, 2)
	assert.Equal(t, "prague", got[0].Slug)
	assert.Equal(t, "vienna", got[1].Slug)
	assert.Less(t, got[0].DistanceKM, got[1].DistanceKM)

	assert.Len(t, NearestCities(prague, cities, 0), 3)
}
