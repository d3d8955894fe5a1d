package activity

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"
)

// DefaultDurationSeconds is substituted when a duration cannot be parsed.
const DefaultDurationSeconds = 3600

// Normalizer converts raw request fields into typed values, applying the
// documented fallbacks instead of failing the run.
type Normalizer struct {
	log *slog.Logger
	now func() time.Time
}

// Option customizes a Normalizer.
type Option func(*Normalizer)

// WithClock overrides the time source (used in tests).
func WithClock(now func() time.Time) Option {
	return func(n *Normalizer) {
		if now != nil {
			n.now = now
		}
	}
}

// NewNormalizer builds a Normalizer that reports recovered parse failures on
// the supplied logger.
func NewNormalizer(log *slog.Logger, opts ...Option) *Normalizer {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(math.MaxInt)}))
	}
	n := &Normalizer{log: log, now: time.Now}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Normalize derives a typed Activity from the raw request fields.
func (n *Normalizer) Normalize(req Request) Activity {
	mapped, known := Classify(req.RawType)
	if !known {
		n.log.Warn("unknown activity type, defaulting to strength training",
			"activity_type", req.RawType, "type_key", mapped.Key)
	}
	return Activity{
		Name:            req.Name,
		Type:            mapped,
		DurationSeconds: n.Duration(req.RawDuration),
		StartTime:       n.StartTime(req.RawStartTime),
		Calories:        n.Calories(req.RawCalories),
	}
}

// Duration parses a seconds value, flooring fractional input. Unparseable
// input logs a warning and yields DefaultDurationSeconds.
func (n *Normalizer) Duration(raw string) int {
	seconds, err := ParseDuration(raw)
	if err != nil {
		n.log.Warn("could not parse duration, using default",
			"duration", raw, "default_seconds", DefaultDurationSeconds)
		return DefaultDurationSeconds
	}
	return seconds
}

// ParseDuration converts a numeric string (possibly fractional) to whole
// seconds, flooring toward negative infinity.
func ParseDuration(raw string) (int, error) {
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, fmt.Errorf("duration %q is not a finite number", raw)
	}
	return int(math.Floor(value)), nil
}

// StartTime parses an optional timestamp. Absent input resolves to the
// current UTC instant; parse failure logs a warning and falls back the same
// way. Parsed values without an explicit offset are tagged UTC.
func (n *Normalizer) StartTime(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return n.now().UTC()
	}
	parsed, err := ParseStartTime(raw)
	if err != nil {
		n.log.Warn("could not parse start time, using current time", "start_time", raw)
		return n.now().UTC()
	}
	return parsed
}

// Calories parses the calories field, treating blank or malformed values as
// zero.
func (n *Normalizer) Calories(raw string) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		n.log.Warn("could not parse calories, using zero", "calories", raw)
		return 0
	}
	return value
}

// startTimeLayouts are tried in order when parsing upstream timestamps.
// Layouts without an offset produce UTC values via time.Parse.
var startTimeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	time.RFC1123Z,
	time.RFC1123,
}

// ParseStartTime attempts a best-effort parse of a loosely formatted
// timestamp. Explicit offsets are preserved; naive values come back in UTC.
func ParseStartTime(raw string) (time.Time, error) {
	for _, layout := range startTimeLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time %q", raw)
}
