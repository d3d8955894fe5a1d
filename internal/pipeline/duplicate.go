package pipeline

import (
	"context"
	"strings"
	"time"

	"fitsync/internal/activity"
)

// duplicateWindow is the wall-clock proximity that marks an existing activity
// as a duplicate. The comparison is strict: a difference of exactly this
// value is not a duplicate.
const duplicateWindow = 300 * time.Second

// isDuplicate reports whether an activity materially identical to the
// candidate already exists on the same calendar day. The duration is accepted
// for symmetry with the upload call but does not participate in the
// comparison. Lookup failures degrade to false.
func (p *Pipeline) isDuplicate(ctx context.Context, start time.Time, durationSeconds int) bool {
	_ = durationSeconds

	date := start.Format("2006-01-02")
	existing, err := p.api.ActivitiesByDate(ctx, date)
	if err != nil {
		p.log.Warn("could not check for duplicates, proceeding with upload", "date", date, "error", err)
		return false
	}
	if len(existing) == 0 {
		return false
	}

	candidate := stripOffset(start)
	for _, entry := range existing {
		raw := strings.TrimSpace(entry.StartTimeLocal)
		if raw == "" {
			continue
		}
		existingStart, err := activity.ParseStartTime(raw)
		if err != nil {
			continue
		}
		diff := stripOffset(existingStart).Sub(candidate)
		if diff < 0 {
			diff = -diff
		}
		if diff < duplicateWindow {
			p.log.Warn("duplicate detected",
				"existing_name", entry.ActivityName,
				"existing_start", entry.StartTimeLocal)
			return true
		}
	}
	return false
}

// stripOffset rebuilds the wall-clock reading of t in UTC, discarding its
// offset. Garmin reports startTimeLocal without an offset, so both sides of
// the comparison are reduced to wall-clock values. When the existing local
// time and the candidate use different offsets this can mismatch near offset
// boundaries; that is long-standing behavior, kept intentionally.
func stripOffset(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}
