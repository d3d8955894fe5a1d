package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"

	"fitsync/internal/activity"
	"fitsync/internal/notifications"
	"fitsync/internal/services/garmin"
)

// uploadDescription annotates every created activity with its origin.
const uploadDescription = "Synced from Fitbod via Strava"

// Outcome describes how a run ended.
type Outcome int

const (
	// OutcomeUploaded means the activity was created on Garmin Connect.
	OutcomeUploaded Outcome = iota
	// OutcomeSkippedDuplicate means a near-duplicate already existed.
	OutcomeSkippedDuplicate
)

// Result reports what the pipeline did.
type Result struct {
	Outcome    Outcome
	ActivityID int64
	Activity   activity.Activity
}

// Options configure a single run.
type Options struct {
	// SkipDuplicateCheck submits unconditionally, regardless of existing
	// activities.
	SkipDuplicateCheck bool
}

// Pipeline executes the duplicate-check and upload flow against an
// authenticated Garmin Connect session. Callers normalize the raw request
// first so its derived values can be shown before the upload is attempted.
type Pipeline struct {
	api      garmin.API
	notifier notifications.Service
	log      *slog.Logger
}

// PipelineOption customizes a Pipeline.
type PipelineOption func(*Pipeline)

// WithNotifier attaches a notification service.
func WithNotifier(notifier notifications.Service) PipelineOption {
	return func(p *Pipeline) {
		if notifier != nil {
			p.notifier = notifier
		}
	}
}

// New builds a Pipeline over an authenticated Garmin API.
func New(api garmin.API, log *slog.Logger, opts ...PipelineOption) *Pipeline {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(math.MaxInt)}))
	}
	p := &Pipeline{
		api:      api,
		notifier: notifications.NewService(nil),
		log:      log,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run performs the upload for a normalized activity, honoring the duplicate
// check unless it was explicitly bypassed. A duplicate skip is a successful
// outcome; only upload submission failures return an error.
func (p *Pipeline) Run(ctx context.Context, act activity.Activity, opts Options) (Result, error) {
	p.log.Info("uploading activity",
		"name", act.Name,
		"type_key", act.Type.Key,
		"type_id", act.Type.ID,
		"duration_seconds", act.DurationSeconds,
		"start_time", FormatStartTime(act.StartTime),
		"calories", act.Calories)

	if opts.SkipDuplicateCheck {
		p.log.Info("duplicate check bypassed")
	} else if p.isDuplicate(ctx, act.StartTime, act.DurationSeconds) {
		p.log.Info("skipping upload: activity already exists in garmin connect", "name", act.Name)
		if err := p.notifier.NotifyDuplicateSkipped(ctx, act.Name); err != nil {
			p.log.Warn("duplicate-skip notification failed", "error", err)
		}
		return Result{Outcome: OutcomeSkippedDuplicate, Activity: act}, nil
	}

	activityID, err := p.api.AddManualActivity(ctx, garmin.ManualActivity{
		Name:            act.Name,
		TypeID:          act.Type.ID,
		TypeKey:         act.Type.Key,
		StartTime:       FormatStartTime(act.StartTime),
		DurationSeconds: act.DurationSeconds,
		Calories:        act.Calories,
		Description:     uploadDescription,
	})
	if err != nil {
		if notifyErr := p.notifier.NotifyError(ctx, err, "upload"); notifyErr != nil {
			p.log.Warn("error notification failed", "error", notifyErr)
		}
		return Result{Activity: act}, fmt.Errorf("upload activity: %w", err)
	}

	p.log.Info("activity uploaded", "activity_id", activityID, "name", act.Name)
	if err := p.notifier.NotifyUploadCompleted(ctx, act.Name, activityID); err != nil {
		p.log.Warn("upload notification failed", "error", err)
	}
	return Result{Outcome: OutcomeUploaded, ActivityID: activityID, Activity: act}, nil
}
