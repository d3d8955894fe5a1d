package activity

import "time"

// Request carries the raw activity fields exactly as the caller supplied
// them. It is never mutated; normalization derives an Activity from it.
type Request struct {
	Name         string
	RawType      string
	RawDuration  string
	RawStartTime string // empty means not provided
	RawCalories  string
}

// Activity is a fully normalized activity ready for upload.
type Activity struct {
	Name            string
	Type            Type
	DurationSeconds int
	StartTime       time.Time
	Calories        int
}
