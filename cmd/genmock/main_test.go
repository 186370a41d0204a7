package main

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/climate-insights-service/internal/climate"
)

func TestGenerate_VolatilityMatchesStdDev(t *testing.T) {
	for _, p := range profiles {
		t.Run(p.slug, func(t *testing.T) {
			city := generate(p, rand.New(rand.NewSource(7))) //nolint:gosec // deterministic fixtures
			require.Len(t, city.Days, 366)
			for key, day := range city.Days {
				require.NotNil(t, day.PressureStats, key)
				require.NotNil(t, day.PressureStats.StdDev, key)
				assert.Equal(t, climate.PressureVolatility(*day.PressureStats.StdDev), day.PressureStats.Volatility, key)
			}
		})
	}
}
