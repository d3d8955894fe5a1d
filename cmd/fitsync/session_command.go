package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"fitsync/internal/services/garmin"
)

func newSessionCommand(ctx *commandContext) *cobra.Command {
	sessionCmd := &cobra.Command{
		Use:   "session",
		Short: "Manage the stored Garmin Connect session",
	}

	sessionCmd.AddCommand(newSessionLoginCommand(ctx))
	sessionCmd.AddCommand(newSessionShowCommand(ctx))

	return sessionCmd
}

// newSessionLoginCommand performs a credential login and stores the session
// blob for reuse, so later runs avoid the CAPTCHA-prone password flow.
func newSessionLoginCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Log in with credentials and store a reusable session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if cfg.Garmin.Email == "" || cfg.Garmin.Password == "" {
				return fmt.Errorf("garmin email and password required (set GARMIN_EMAIL and GARMIN_PASSWORD or edit the config file)")
			}

			logger, err := ctx.newLogger("session")
			if err != nil {
				return err
			}

			client, err := ctx.newGarminClient()
			if err != nil {
				return err
			}
			session, err := client.Login(cmd.Context(), cfg.Garmin.Email, cfg.Garmin.Password)
			if err != nil {
				return fmt.Errorf("log into garmin connect: %w", err)
			}

			store := garmin.NewFileTokenStore(cfg.SessionFilePath())
			if err := store.Save(session); err != nil {
				return fmt.Errorf("store session: %w", err)
			}

			logger.Info("session stored", "path", store.Path())
			fmt.Fprintf(cmd.OutOrStdout(), "Session token stored at %s\n", store.Path())
			return nil
		},
	}
}

func newSessionShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the stored session status",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			store := garmin.NewFileTokenStore(cfg.SessionFilePath())
			session, err := store.Load()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Session file: %s\n", store.Path())
			if session.Token == "" {
				fmt.Fprintln(out, "No stored session; run `fitsync session login`")
				return nil
			}
			fmt.Fprintln(out, "Stored session present")
			if !session.ExpiresAt.IsZero() {
				fmt.Fprintf(out, "Expires: %s\n", session.ExpiresAt.UTC().Format("2006-01-02T15:04:05Z"))
			}
			return nil
		},
	}
}
