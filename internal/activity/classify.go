package activity

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Type identifies a Garmin Connect activity type.
type Type struct {
	ID  int
	Key string
}

// Garmin Connect activity type ids come from the Connect activity_types
// properties catalog.
var (
	StrengthTraining = Type{ID: 13, Key: "strength_training"}
	Yoga             = Type{ID: 106, Key: "yoga"}
	Pilates          = Type{ID: 107, Key: "pilates"}
)

var typeTable = map[string]Type{
	"weight_training":   StrengthTraining,
	"strength_training": StrengthTraining,
	"workout":           StrengthTraining,
	"crossfit":          StrengthTraining,
	"yoga":              Yoga,
	"pilates":           Pilates,
}

// NormalizeLabel lowercases a free-text label and collapses spaces and
// hyphens to underscores, producing the lookup key for the type table.
func NormalizeLabel(label string) string {
	normalized := strings.ToLower(strings.TrimSpace(label))
	normalized = strings.ReplaceAll(normalized, " ", "_")
	return strings.ReplaceAll(normalized, "-", "_")
}

// Classify maps a free-text activity label onto a Garmin type. Unknown labels
// resolve to strength training; ok reports whether the label was recognized.
func Classify(label string) (mapped Type, ok bool) {
	if t, found := typeTable[NormalizeLabel(label)]; found {
		return t, true
	}
	return StrengthTraining, false
}

var titleCaser = cases.Title(language.English)

// DisplayName renders the type key for human-facing output, for example
// "strength_training" becomes "Strength Training".
func (t Type) DisplayName() string {
	return titleCaser.String(strings.ReplaceAll(t.Key, "_", " "))
}
