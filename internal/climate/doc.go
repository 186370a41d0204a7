// Package climate derives human-facing indices from historical day records.
//
// Every function in this package is pure: it takes values, returns values and
// touches no shared state, so callers may invoke it concurrently without
// coordination. Scores are integers clamped to [0, 100] after all penalties
// are applied; intermediate values are never clamped.
//
// Inputs that are optional upstream (pressure statistics, marine readings,
// geo info) are passed as pointers. Functions that depend on them return a
// second boolean result, and Derive leaves the matching DerivedMetrics field
// nil, so a missing input is never mistaken for a real zero.
package climate
