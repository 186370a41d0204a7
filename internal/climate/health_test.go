package climate

import (
	"testing"

	"github.com/couchcryptid/climate-insights-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthScore(t *testing.T) {
	tests := []struct {
		migraine, joint domain.Risk
		want            int
		color           string
	}{
		{domain.RiskLow, domain.RiskLow, 100, "green"},
		{domain.RiskMedium, domain.RiskLow, 85, "green"},
		{domain.RiskMedium, domain.RiskMedium, 70, "yellow"},
		{domain.RiskHigh, domain.RiskMedium, 55, "yellow"},
		{domain.RiskHigh, domain.RiskHigh, 40, "red"},
	}
	for _, tt := range tests {
		got := HealthScore(tt.migraine, tt.joint)
		assert.Equal(t, tt.want, got, "%s/%s", tt.migraine, tt.joint)
		assert.Equal(t, tt.color, HealthColor(got))
	}
}

func TestPressureVolatility(t *testing.T) {
	assert.Equal(t, domain.RiskLow, PressureVolatility(3))
	assert.Equal(t, domain.RiskMedium, PressureVolatility(4.5))
	assert.Equal(t, domain.RiskHigh, PressureVolatility(8.1))
}

func TestJointPainRisk(t *testing.T) {
	assert.Equal(t, domain.RiskHigh, JointPainRisk(1008, 10, 0, ptr(85.0)))
	assert.Equal(t, domain.RiskMedium, JointPainRisk(1012, 20, 0, ptr(75.0)))
	assert.Equal(t, domain.RiskLow, JointPainRisk(1020, 10, 90, ptr(90.0)))
	assert.Equal(t, domain.RiskHigh, JointPainRisk(1005, 5, 50, nil), "precip stands in for humidity")
	assert.Equal(t, domain.RiskLow, JointPainRisk(0, 5, 90, nil), "unknown pressure")
}

func TestHealthOf(t *testing.T) {
	t.Run("upstream classification passes through", func(t *testing.T) {
		rec := domain.DayRecord{HealthImpact: &domain.HealthImpact{
			MigraineRisk:      domain.RiskMedium,
			JointPainRisk:     domain.RiskLow,
			FishingConditions: FishingFair,
		}}
		got, ok := HealthOf(rec)
		require.True(t, ok)
		assert.Equal(t, domain.RiskMedium, got.MigraineRisk)
		assert.Equal(t, 85, got.Score)
		assert.Equal(t, "green", got.Color)
	})

	t.Run("derived from pressure statistics", func(t *testing.T) {
		rec := domain.DayRecord{
			Stats:         domain.DayStats{TempMax: 10, Humidity: ptr(85.0)},
			PressureStats: &domain.PressureStats{MeanHPA: ptr(1008.0), StdDev: ptr(9.0)},
		}
		got, ok := HealthOf(rec)
		require.True(t, ok)
		assert.Equal(t, domain.RiskHigh, got.MigraineRisk)
		assert.Equal(t, domain.RiskHigh, got.JointPainRisk)
		assert.Equal(t, FishingExcellent, got.FishingConditions)
		assert.Equal(t, 40, got.Score)
		assert.Equal(t, "red", got.Color)
	})

	t.Run("no pressure data", func(t *testing.T) {
		_, ok := HealthOf(domain.DayRecord{Stats: domain.DayStats{TempMax: 20}})
		assert.False(t, ok)
	})
}

func TestAltitudeEffectsOf(t *testing.T) {
	tests := []struct {
		name    string
		geo     *domain.GeoInfo
		ok      bool
		uv      float64
		sunburn string
		alcohol bool
	}{
		{name: "no geo info"},
		{name: "unknown elevation", geo: &domain.GeoInfo{}},
		{name: "sea level", geo: &domain.GeoInfo{Elevation: ptr(20.0)}},
		{name: "moderate", geo: &domain.GeoInfo{Elevation: ptr(600.0)}, ok: true, uv: 1.08, sunburn: SunburnNormal},
		{name: "raised", geo: &domain.GeoInfo{Elevation: ptr(900.0)}, ok: true, uv: 1.12, sunburn: SunburnMedium},
		{name: "high", geo: &domain.GeoInfo{Elevation: ptr(2000.0), IsHighAltitude: true}, ok: true, uv: 1.27, sunburn: SunburnHigh, alcohol: true},
		{name: "flagged below threshold", geo: &domain.GeoInfo{Elevation: ptr(300.0), IsHighAltitude: true}, ok: true, uv: 1.04, sunburn: SunburnNormal, alcohol: true},
		{
			name: "precomputed values kept",
			geo: &domain.GeoInfo{
				Elevation:       ptr(2240.0),
				IsHighAltitude:  true,
				AltitudeEffects: &domain.AltitudeEffects{UVMultiplier: 1.3, SunburnRisk: "Very High"},
			},
			ok: true, uv: 1.3, sunburn: "Very High", alcohol: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := AltitudeEffectsOf(tt.geo)
			require.Equal(t, tt.ok, ok)
			if !ok {
				return
			}
			assert.InDelta(t, tt.uv, got.UVMultiplier, 1e-9)
			assert.Equal(t, tt.sunburn, got.SunburnRisk)
			assert.Equal(t, tt.alcohol, got.AlcoholWarning)
		})
	}
}
