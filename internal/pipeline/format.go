package pipeline

import "time"

// FormatStartTime renders a start time the way the Garmin create endpoint
// expects it: wall clock with millisecond precision and a literal Z suffix.
// The value is not converted to UTC first; the trailing Z is applied to the
// parsed wall-clock reading as-is.
func FormatStartTime(t time.Time) string {
	return t.Format("2006-01-02T15:04:05.000Z")
}
