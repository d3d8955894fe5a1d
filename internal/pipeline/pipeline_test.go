package pipeline_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"fitsync/internal/activity"
	"fitsync/internal/pipeline"
	"fitsync/internal/services/garmin"
)

type fakeAPI struct {
	activities   []garmin.Activity
	lookupErr    error
	lookupDates  []string
	created      []garmin.ManualActivity
	createErr    error
	nextActivity int64
}

func (f *fakeAPI) ActivitiesByDate(_ context.Context, date string) ([]garmin.Activity, error) {
	f.lookupDates = append(f.lookupDates, date)
	if f.lookupErr != nil {
		return nil, f.lookupErr
	}
	return f.activities, nil
}

func (f *fakeAPI) AddManualActivity(_ context.Context, act garmin.ManualActivity) (int64, error) {
	if f.createErr != nil {
		return 0, f.createErr
	}
	f.created = append(f.created, act)
	return f.nextActivity, nil
}

func normalized(t *testing.T, req activity.Request, now time.Time) activity.Activity {
	t.Helper()
	n := activity.NewNormalizer(nil, activity.WithClock(func() time.Time { return now }))
	return n.Normalize(req)
}

func TestRunUploadsNormalizedActivity(t *testing.T) {
	now := time.Date(2026, 3, 14, 18, 30, 0, 0, time.UTC)
	api := &fakeAPI{nextActivity: 42}
	p := pipeline.New(api, nil)

	act := normalized(t, activity.Request{
		Name:        "Evening Lift",
		RawType:     "weight_training",
		RawDuration: "3600",
		RawCalories: "450",
	}, now)

	result, err := p.Run(context.Background(), act, pipeline.Options{})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if result.Outcome != pipeline.OutcomeUploaded {
		t.Fatalf("Outcome = %v, want uploaded", result.Outcome)
	}
	if result.ActivityID != 42 {
		t.Fatalf("ActivityID = %d", result.ActivityID)
	}
	if len(api.created) != 1 {
		t.Fatalf("created %d activities, want 1", len(api.created))
	}

	created := api.created[0]
	if created.TypeID != 13 || created.TypeKey != "strength_training" {
		t.Fatalf("type = %d/%s, want 13/strength_training", created.TypeID, created.TypeKey)
	}
	if created.DurationSeconds != 3600 {
		t.Fatalf("DurationSeconds = %d", created.DurationSeconds)
	}
	if created.Calories != 450 {
		t.Fatalf("Calories = %d", created.Calories)
	}
	if created.StartTime != "2026-03-14T18:30:00.000Z" {
		t.Fatalf("StartTime = %q", created.StartTime)
	}
	if created.Description != "Synced from Fitbod via Strava" {
		t.Fatalf("Description = %q", created.Description)
	}
}

func TestRunUnknownTypeFallsBackToStrengthTraining(t *testing.T) {
	now := time.Date(2026, 3, 14, 18, 30, 0, 0, time.UTC)
	api := &fakeAPI{nextActivity: 7}
	p := pipeline.New(api, nil)

	act := normalized(t, activity.Request{
		Name:        "Flow",
		RawType:     "Yoga Flow",
		RawDuration: "1800",
	}, now)

	result, err := p.Run(context.Background(), act, pipeline.Options{})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if result.Activity.Type.ID != 13 {
		t.Fatalf("Type.ID = %d, want 13", result.Activity.Type.ID)
	}
	if api.created[0].TypeID != 13 {
		t.Fatalf("created TypeID = %d, want 13", api.created[0].TypeID)
	}
}

func TestRunSkipsDuplicate(t *testing.T) {
	now := time.Date(2026, 3, 14, 18, 30, 0, 0, time.UTC)
	api := &fakeAPI{
		activities: []garmin.Activity{
			{ActivityName: "Evening Lift", StartTimeLocal: "2026-03-14 18:28:00"},
		},
	}
	p := pipeline.New(api, nil)

	act := normalized(t, activity.Request{
		Name:        "Evening Lift",
		RawType:     "weight_training",
		RawDuration: "3600",
	}, now)

	result, err := p.Run(context.Background(), act, pipeline.Options{})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if result.Outcome != pipeline.OutcomeSkippedDuplicate {
		t.Fatalf("Outcome = %v, want duplicate skip", result.Outcome)
	}
	if len(api.created) != 0 {
		t.Fatalf("created %d activities, want 0", len(api.created))
	}
}

func TestRunSkipDuplicateCheckBypassesLookup(t *testing.T) {
	now := time.Date(2026, 3, 14, 18, 30, 0, 0, time.UTC)
	api := &fakeAPI{
		activities: []garmin.Activity{
			{ActivityName: "Evening Lift", StartTimeLocal: "2026-03-14 18:30:00"},
		},
		nextActivity: 9,
	}
	p := pipeline.New(api, nil)

	act := normalized(t, activity.Request{
		Name:        "Evening Lift",
		RawType:     "weight_training",
		RawDuration: "3600",
	}, now)

	result, err := p.Run(context.Background(), act, pipeline.Options{SkipDuplicateCheck: true})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if result.Outcome != pipeline.OutcomeUploaded {
		t.Fatalf("Outcome = %v, want uploaded", result.Outcome)
	}
	if len(api.lookupDates) != 0 {
		t.Fatalf("lookup performed %d times despite bypass", len(api.lookupDates))
	}
	if len(api.created) != 1 {
		t.Fatalf("created %d activities, want 1", len(api.created))
	}
}

func TestRunUploadFailurePropagates(t *testing.T) {
	now := time.Date(2026, 3, 14, 18, 30, 0, 0, time.UTC)
	api := &fakeAPI{createErr: errors.New("boom")}
	p := pipeline.New(api, nil)

	act := normalized(t, activity.Request{
		Name:        "Evening Lift",
		RawType:     "weight_training",
		RawDuration: "3600",
	}, now)

	result, err := p.Run(context.Background(), act, pipeline.Options{})
	if err == nil {
		t.Fatal("expected error when upload fails")
	}
	if result.Activity.Name != "Evening Lift" {
		t.Fatalf("failed result lost the activity: %+v", result.Activity)
	}
}
