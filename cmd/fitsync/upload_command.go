package main

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"fitsync/internal/activity"
	"fitsync/internal/notifications"
	"fitsync/internal/pipeline"
)

func newUploadCommand(ctx *commandContext) *cobra.Command {
	var (
		name          string
		activityType  string
		duration      string
		startTime     string
		calories      string
		skipDuplicate bool
	)

	cmd := &cobra.Command{
		Use:   "upload",
		Short: "Upload a manual activity to Garmin Connect",
		Long: `Upload a manual activity to Garmin Connect.

Duration is given in seconds; fractional values are floored. When the start
time is omitted the current time is used. A near-duplicate already present on
the same day (start within five minutes) causes the upload to be skipped.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			logger, err := ctx.newLogger("upload")
			if err != nil {
				return err
			}
			logger = logger.With("run_id", uuid.NewString())

			client, strategy, err := ctx.authenticate(cmd.Context(), logger)
			if err != nil {
				return fmt.Errorf("authenticate with garmin connect: %w", err)
			}
			if strategy == "email/password" {
				logger.Info("tip: run `fitsync session login` to store a reusable session token")
			}

			act := activity.NewNormalizer(logger).Normalize(activity.Request{
				Name:         name,
				RawType:      activityType,
				RawDuration:  duration,
				RawStartTime: startTime,
				RawCalories:  calories,
			})

			// Shown before the upload attempt so a failed submit still
			// reports what was about to be sent.
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderActivityDetails(act))

			run := pipeline.New(client, logger,
				pipeline.WithNotifier(notifications.NewService(cfg)))
			result, err := run.Run(cmd.Context(), act, pipeline.Options{
				SkipDuplicateCheck: skipDuplicate,
			})
			if err != nil {
				return err
			}

			switch result.Outcome {
			case pipeline.OutcomeSkippedDuplicate:
				fmt.Fprintln(out, "Skipped: activity already exists in Garmin Connect")
			default:
				fmt.Fprintf(out, "Uploaded activity %s\n", strconv.FormatInt(result.ActivityID, 10))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Activity name")
	cmd.Flags().StringVar(&activityType, "type", "", "Activity type label (e.g. weight_training, yoga)")
	cmd.Flags().StringVar(&duration, "duration", "", "Duration in seconds")
	cmd.Flags().StringVar(&startTime, "start-time", "", "Start time (ISO format); defaults to now")
	cmd.Flags().StringVar(&calories, "calories", "0", "Calories burned")
	cmd.Flags().BoolVar(&skipDuplicate, "skip-duplicate-check", false, "Skip checking for duplicate activities")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("type")
	_ = cmd.MarkFlagRequired("duration")

	return cmd
}
