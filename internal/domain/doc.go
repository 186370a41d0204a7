// Package domain models the per-city historical climate dataset consumed by the
// insights engine.
//
// # Data Source
//
// City files are produced upstream by an ETL job that aggregates 30 years
// (1991-2021) of NASA POWER daily observations per calendar day. Each city is
// a single JSON document:
//
//	{
//	  "meta":         { "name": ..., "country": ..., "lat": ..., "lon": ..., "geo_info": {...}, ... },
//	  "yearly_stats": { ... },
//	  "tourism":      { "monthly_scores": { "1": {...}, ... }, ... },
//	  "days":         { "01-01": {...}, ..., "12-31": {...} }
//	}
//
// # Date Keys
//
// Days are keyed by "MM-DD". Keys are validated against a leap year so that
// "02-29" is accepted while "02-30" or "13-01" are rejected. Date arithmetic
// (see DateKey.Shift) runs on the 2024 calendar and wraps across the year
// boundary, so the day after "12-31" is "01-01".
//
// # Optional Sections
//
// Pressure statistics, marine readings and geo info are only present for some
// cities. They are pointers; a nil value means the upstream data had nothing
// to say and every derived field that depends on it must be suppressed rather
// than defaulted.
//
// # Not Found
//
// Lookups never fabricate records. A missing city or date surfaces as
// ErrCityNotFound or ErrDateNotFound (both match ErrNotFound via errors.Is).
package domain
