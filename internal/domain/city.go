package domain

// Risk is a three-level categorical rating used by health classifiers.
type Risk string

const (
	RiskLow    Risk = "Low"
	RiskMedium Risk = "Medium"
	RiskHigh   Risk = "High"
)

// DayStats holds the 30-year averaged weather for one calendar day.
type DayStats struct {
	TempMax       float64  `json:"temp_max"`
	TempMin       float64  `json:"temp_min"`
	PrecipMM      float64  `json:"precip_mm"`
	PrecipProb    float64  `json:"precip_prob"` // 0-100
	WindKmh       float64  `json:"wind_kmh"`
	CloudsPercent float64  `json:"clouds_percent"`
	PressureHPA   *float64 `json:"pressure_hpa,omitempty"`
	Humidity      *float64 `json:"humidity_percent,omitempty"`
	SunshineHours *float64 `json:"sunshine_hours,omitempty"`
	SnowfallCM    *float64 `json:"snowfall_cm,omitempty"`
}

// PressureStats summarizes day-to-day pressure variation.
type PressureStats struct {
	MeanHPA    *float64 `json:"mean_hpa,omitempty"`
	StdDev     *float64 `json:"std_dev,omitempty"`
	Volatility Risk     `json:"volatility"`
}

// HealthImpact is the upstream pressure-driven health classification.
type HealthImpact struct {
	MigraineRisk      Risk   `json:"migraine_risk"`
	JointPainRisk     Risk   `json:"joint_pain_risk"`
	FishingConditions string `json:"fishing_conditions"`
}

// Marine holds sea readings for coastal cities.
type Marine struct {
	WaterTemp        float64 `json:"water_temp"`
	WaveHeight       float64 `json:"wave_height"`
	ShiverFactor     string  `json:"shiver_factor,omitempty"`
	FamilySafety     string  `json:"family_safety,omitempty"`
	JellyfishWarning bool    `json:"jellyfish_warning"`
}

// AltitudeEffects are precomputed upstream from elevation.
type AltitudeEffects struct {
	UVMultiplier   float64 `json:"uv_multiplier"`
	AlcoholWarning bool    `json:"alcohol_warning"`
	SunburnRisk    string  `json:"sunburn_risk"`
}

// GeoInfo is per-city elevation data.
type GeoInfo struct {
	Elevation       *float64         `json:"elevation,omitempty"`
	IsHighAltitude  bool             `json:"is_high_altitude"`
	AltitudeEffects *AltitudeEffects `json:"altitude_effects,omitempty"`
}

// WeatherCondition is the dominant WMO condition for a day.
type WeatherCondition struct {
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Severity    string `json:"severity"`
}

// DayScores are the scores embedded in the upstream file.
type DayScores struct {
	Wedding     float64  `json:"wedding"`
	Reliability float64  `json:"reliability"`
	Swim        *float64 `json:"swim,omitempty"`
	Crowd       *float64 `json:"crowd,omitempty"`
}

// HistoricalRecord is one year's observation for a calendar day.
type HistoricalRecord struct {
	Year        int      `json:"year"`
	TempMax     float64  `json:"temp_max"`
	TempMin     float64  `json:"temp_min"`
	Precip      float64  `json:"precip"`
	Snowfall    *float64 `json:"snowfall,omitempty"`
	WeatherCode *int     `json:"weather_code,omitempty"`
}

// DayRecord is one calendar day for one city.
type DayRecord struct {
	Stats             DayStats           `json:"stats"`
	Condition         *WeatherCondition  `json:"weather_condition,omitempty"`
	Scores            DayScores          `json:"scores"`
	PressureStats     *PressureStats     `json:"pressure_stats,omitempty"`
	HealthImpact      *HealthImpact      `json:"health_impact,omitempty"`
	Marine            *Marine            `json:"marine,omitempty"`
	Clothing          []string           `json:"clothing,omitempty"`
	HistoricalRecords []HistoricalRecord `json:"historical_records,omitempty"`
}

// FlightInfo carries landing-slot seasonality used as a crowd proxy.
type FlightInfo struct {
	Source             string          `json:"source"`
	PeakDailyArrivals  *float64        `json:"peak_daily_arrivals,omitempty"`
	TotalDailyArrivals *float64        `json:"total_daily_arrivals,omitempty"`
	PressureScore      float64         `json:"pressure_score"`
	Seasonality        map[int]float64 `json:"seasonality,omitempty"`
	ICAO               string          `json:"icao,omitempty"`
}

// SeismicRisk summarizes 30 years of nearby earthquakes.
type SeismicRisk struct {
	Count30y     int      `json:"count_30y"`
	AvgPerYear   float64  `json:"avg_per_year"`
	MaxMagnitude *float64 `json:"max_magnitude,omitempty"`
	SeismicScore int      `json:"seismic_score"`
	RiskLevel    string   `json:"risk_level"`
}

// Volcano is a volcano near a city.
type Volcano struct {
	Name          string  `json:"name"`
	DistanceKM    float64 `json:"distance_km"`
	LastEruption  int     `json:"last_eruption"`
	ActivityLevel string  `json:"activity_level"`
}

// SafetyProfile groups the per-city natural hazard data.
type SafetyProfile struct {
	Seismic          *SeismicRisk    `json:"seismic,omitempty"`
	NearbyVolcanoes  []Volcano       `json:"nearby_volcanoes,omitempty"`
	AQI              *float64        `json:"aqi,omitempty"`
	MaxPrecipMM      *float64        `json:"max_precip_mm,omitempty"`
	MonthlyPrecipAvg map[int]float64 `json:"monthly_precip_avg,omitempty"`
}

// CityMeta describes a city independent of the calendar day.
type CityMeta struct {
	Name          string         `json:"name"`
	Country       string         `json:"country"`
	Lat           float64        `json:"lat"`
	Lon           float64        `json:"lon"`
	Description   string         `json:"desc,omitempty"`
	GeoInfo       *GeoInfo       `json:"geo_info,omitempty"`
	IsCoastal     bool           `json:"is_coastal"`
	Timezone      string         `json:"timezone,omitempty"`
	FlightInfo    *FlightInfo    `json:"flight_info,omitempty"`
	SafetyProfile *SafetyProfile `json:"safety_profile,omitempty"`
}

// YearlyStats are precomputed annual aggregates.
type YearlyStats struct {
	AvgTempAnnual     float64 `json:"avg_temp_annual"`
	WarmingTrend      float64 `json:"warming_trend"`
	ColdestMonth      int     `json:"coldest_month"`
	HottestMonth      int     `json:"hottest_month"`
	WettestMonth      int     `json:"wettest_month"`
	TotalDaysAnalyzed int     `json:"total_days_analyzed"`
}

// MonthlyTourism is one month of raw tourism pressure data.
type MonthlyTourism struct {
	Month       int     `json:"month"`
	CrowdScore  float64 `json:"crowd_score"`
	PriceScore  float64 `json:"price_score"`
	IsPeak      bool    `json:"is_peak_season"`
	IsLowSeason bool    `json:"is_low_season"`
}

// TourismDataset is the optional tourism section of a city file.
type TourismDataset struct {
	DataSources      []string               `json:"data_sources,omitempty"`
	TouristArrivals  *float64               `json:"tourist_arrivals,omitempty"`
	ArrivalsYear     *int                   `json:"tourist_arrivals_year,omitempty"`
	TotalAttractions *int                   `json:"total_attractions,omitempty"`
	MonthlyScores    map[int]MonthlyTourism `json:"monthly_scores"`
}

// CityData is a full city document.
type CityData struct {
	Slug        string               `json:"slug,omitempty"`
	Meta        CityMeta             `json:"meta"`
	YearlyStats *YearlyStats         `json:"yearly_stats,omitempty"`
	Tourism     *TourismDataset      `json:"tourism,omitempty"`
	Days        map[string]DayRecord `json:"days"`
}

// Day returns the record for key. The second result is false when the city
// has no data for that day.
func (c CityData) Day(key DateKey) (DayRecord, bool) {
	rec, ok := c.Days[key.String()]
	return rec, ok
}
