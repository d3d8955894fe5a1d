package main

import (
	"strings"
	"testing"
	"time"

	"fitsync/internal/activity"
)

func TestRootCommandSubcommands(t *testing.T) {
	root := newRootCommand()

	want := map[string]bool{
		"upload":      false,
		"session":     false,
		"config":      false,
		"test-notify": false,
	}
	for _, cmd := range root.Commands() {
		if _, ok := want[cmd.Name()]; ok {
			want[cmd.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("missing subcommand %q", name)
		}
	}

	if flag := root.PersistentFlags().Lookup("config"); flag == nil {
		t.Fatal("missing persistent --config flag")
	} else if flag.Shorthand != "c" {
		t.Fatalf("config shorthand = %q, want c", flag.Shorthand)
	}
}

func TestUploadCommandRequiredFlags(t *testing.T) {
	root := newRootCommand()
	root.SetArgs([]string{"upload"})
	root.SetOut(new(strings.Builder))
	root.SetErr(new(strings.Builder))

	err := root.Execute()
	if err == nil {
		t.Fatal("expected error when required flags are absent")
	}
	for _, flag := range []string{"name", "type", "duration"} {
		if !strings.Contains(err.Error(), flag) {
			t.Errorf("error = %v, want mention of %q", err, flag)
		}
	}
}

func TestRenderActivityDetailsPlainOutput(t *testing.T) {
	// Tests never run on a tty, so the plain key/value path is exercised.
	act := activity.Activity{
		Name:            "Upper Body",
		Type:            activity.StrengthTraining,
		DurationSeconds: 2700,
		StartTime:       time.Date(2026, 3, 14, 18, 30, 0, 0, time.UTC),
		Calories:        310,
	}

	out := renderActivityDetails(act)
	for _, want := range []string{
		"Name: Upper Body",
		"Type: Strength Training (ID: 13)",
		"Duration: 45 minutes",
		"Start Time: 2026-03-14T18:30:00.000Z",
		"Calories: 310",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
