// Package activity holds the normalization core: raw request fields from the
// upstream webhook become typed values with documented fallbacks.
//
// The duration parser, start-time parser, and activity-type classifier never
// fail the run; malformed input is logged at warning level and replaced with a
// fixed default. Parsing helpers are exported as pure functions so callers can
// test behavior without a logger or clock.
package activity
