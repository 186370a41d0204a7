package climate

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/couchcryptid/climate-insights-service/internal/domain"
)

// TourismPressure is the crowd and price level of a month, both 0-100.
type TourismPressure struct {
	Crowd int `json:"crowds"`
	Price int `json:"price"`
}

// FallbackTable is a 12-month seasonal curve indexed January first. It is
// used whenever a city has no tourism dataset.
type FallbackTable [12]TourismPressure

// DefaultFallback peaks in August and troughs in February.
var DefaultFallback = FallbackTable{
	{Crowd: 40, Price: 50},   // Jan
	{Crowd: 35, Price: 45},   // Feb
	{Crowd: 50, Price: 60},   // Mar
	{Crowd: 70, Price: 75},   // Apr
	{Crowd: 85, Price: 85},   // May
	{Crowd: 90, Price: 90},   // Jun
	{Crowd: 95, Price: 95},   // Jul
	{Crowd: 100, Price: 100}, // Aug
	{Crowd: 85, Price: 90},   // Sep
	{Crowd: 70, Price: 75},   // Oct
	{Crowd: 50, Price: 60},   // Nov
	{Crowd: 80, Price: 95},   // Dec
}

// neutralPressure is returned for months outside 1-12.
var neutralPressure = TourismPressure{Crowd: 50, Price: 50}

// Month returns the fallback entry for month.
func (t FallbackTable) Month(month time.Month) TourismPressure {
	if month < time.January || month > time.December {
		return neutralPressure
	}
	return t[month-1]
}

// NormalizeTourism returns the tourism pressure of a month. With a dataset,
// the month's crowd score is re-expressed as a percentage of the city's
// busiest month and the price score passes through. Without a dataset, or
// when the month is missing from it, fallback is used.
func NormalizeTourism(data *domain.TourismDataset, month time.Month, fallback FallbackTable) TourismPressure {
	if data == nil {
		return fallback.Month(month)
	}
	m, ok := data.MonthlyScores[int(month)]
	if !ok {
		return fallback.Month(month)
	}

	maxCrowd := 0.0
	for _, s := range data.MonthlyScores {
		maxCrowd = math.Max(maxCrowd, s.CrowdScore)
	}

	crowd := m.CrowdScore
	if maxCrowd > 0 {
		crowd = m.CrowdScore / maxCrowd * 100
	}
	return TourismPressure{Crowd: int(roundHalfUp(crowd)), Price: int(roundHalfUp(m.PriceScore))}
}

// TourismIndex is the tourism panel of a day.
type TourismIndex struct {
	Walkability int `json:"walkability"`
	BeerGarden  int `json:"beer_garden"`
	Crowds      int `json:"crowds"`
	Price       int `json:"price"`
	Reliability int `json:"reliability"`
}

// TourismIndexOf combines the weather scores of a day with the normalized
// tourism pressure of its month.
func TourismIndexOf(rec domain.DayRecord, month time.Month, data *domain.TourismDataset, fallback FallbackTable) TourismIndex {
	p := NormalizeTourism(data, month, fallback)
	return TourismIndex{
		Walkability: Walkability(rec.Stats),
		BeerGarden:  BeerGarden(rec.Stats),
		Crowds:      p.Crowd,
		Price:       p.Price,
		Reliability: Reliability(rec.Stats.PrecipProb, nil),
	}
}

// TourismInsights summarizes the tourism dataset for a month in one line.
func TourismInsights(data *domain.TourismDataset, month time.Month) string {
	const seasonal = "Tourism data based on seasonal patterns"
	if data == nil {
		return seasonal
	}
	m, ok := data.MonthlyScores[int(month)]
	if !ok {
		return seasonal
	}

	var parts []string
	switch {
	case m.IsPeak:
		parts = append(parts, "⚠️ Peak tourist season")
	case m.IsLowSeason:
		parts = append(parts, "✅ Low season - fewer crowds")
	}
	if data.TouristArrivals != nil && *data.TouristArrivals > 0 {
		s := fmt.Sprintf("%.1fM annual visitors", *data.TouristArrivals/1_000_000)
		if data.ArrivalsYear != nil {
			s += fmt.Sprintf(" (%d)", *data.ArrivalsYear)
		}
		parts = append(parts, s)
	}
	if data.TotalAttractions != nil && *data.TotalAttractions > 0 {
		parts = append(parts, fmt.Sprintf("%d attractions nearby", *data.TotalAttractions))
	}
	return strings.Join(parts, " • ")
}

// TourismAttribution credits the tourism data sources.
func TourismAttribution(data *domain.TourismDataset) string {
	if data == nil || len(data.DataSources) == 0 {
		return "Seasonal estimates"
	}
	return "Data: " + strings.Join(data.DataSources, ", ")
}

// FlightPressure converts flight seasonality into a 0-100 crowd proxy for a
// month. With monthly volumes it is the month's share of the peak month;
// otherwise daily arrivals are mapped on a log scale (1,000 arrivals ≈ 100).
// It returns false when the city has no flight data.
func FlightPressure(info *domain.FlightInfo, month time.Month) (int, bool) {
	if info == nil {
		return 0, false
	}
	if v, ok := info.Seasonality[int(month)]; ok {
		peak := 0.0
		for _, s := range info.Seasonality {
			peak = math.Max(peak, s)
		}
		if peak > 0 {
			return clampScore(v / peak * 100), true
		}
	}
	if info.TotalDailyArrivals != nil && *info.TotalDailyArrivals > 0 {
		return clampScore(math.Min(100, math.Log10(*info.TotalDailyArrivals)*33)), true
	}
	if info.PressureScore > 0 {
		return clampScore(info.PressureScore), true
	}
	return 0, false
}
