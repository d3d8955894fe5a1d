package activity_test

import (
	"testing"

	"fitsync/internal/activity"
)

func TestClassifyKnownVariants(t *testing.T) {
	variants := []string{
		"weight_training",
		"Weight Training",
		"weight-training",
		"WEIGHT_TRAINING",
		" Weight-Training ",
	}
	for _, label := range variants {
		mapped, ok := activity.Classify(label)
		if !ok {
			t.Fatalf("Classify(%q) reported unknown", label)
		}
		if mapped != activity.StrengthTraining {
			t.Fatalf("Classify(%q) = %+v, want strength training", label, mapped)
		}
	}
}

func TestClassifyTable(t *testing.T) {
	cases := []struct {
		label string
		want  activity.Type
	}{
		{"strength_training", activity.StrengthTraining},
		{"workout", activity.StrengthTraining},
		{"crossfit", activity.StrengthTraining},
		{"CrossFit", activity.StrengthTraining},
		{"yoga", activity.Yoga},
		{"Yoga", activity.Yoga},
		{"pilates", activity.Pilates},
	}
	for _, tc := range cases {
		mapped, ok := activity.Classify(tc.label)
		if !ok {
			t.Fatalf("Classify(%q) reported unknown", tc.label)
		}
		if mapped != tc.want {
			t.Fatalf("Classify(%q) = %+v, want %+v", tc.label, mapped, tc.want)
		}
	}
}

func TestClassifyUnknownFallsBack(t *testing.T) {
	mapped, ok := activity.Classify("Yoga Flow")
	if ok {
		t.Fatal("expected unknown label to be reported")
	}
	if mapped != activity.StrengthTraining {
		t.Fatalf("fallback = %+v, want strength training", mapped)
	}
	if mapped.ID != 13 || mapped.Key != "strength_training" {
		t.Fatalf("unexpected strength training entry: %+v", mapped)
	}
}

func TestClassifyMatchesNormalizedLabel(t *testing.T) {
	for _, label := range []string{"Weight Training", "yoga", "Pilates", "not-a-thing"} {
		direct, _ := activity.Classify(label)
		normalized, _ := activity.Classify(activity.NormalizeLabel(label))
		if direct != normalized {
			t.Fatalf("Classify(%q) != Classify(NormalizeLabel(%q))", label, label)
		}
	}
}

func TestDisplayName(t *testing.T) {
	if got := activity.StrengthTraining.DisplayName(); got != "Strength Training" {
		t.Fatalf("DisplayName = %q", got)
	}
	if got := activity.Yoga.DisplayName(); got != "Yoga" {
		t.Fatalf("DisplayName = %q", got)
	}
}
