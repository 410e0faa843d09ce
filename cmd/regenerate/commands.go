package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var allCmd = &cobra.Command{
	Use:   "all",
	Short: "Regenerate suggestions for every user with a profile",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		c, log, err := bootstrap()
		if err != nil {
			return err
		}
		defer c.Close()
		defer log.Sync() //nolint:errcheck

		ctx, stop := signalContext()
		defer stop()

		batch, runErr := c.MatchUseCase.RegenerateAll(ctx)
		if batch != nil {
			if err := printJSON(batch); err != nil {
				return err
			}
		}
		if runErr != nil {
			log.Error("regeneration stopped", zap.Error(runErr))
			return runErr
		}
		if n := len(batch.Failures); n > 0 {
			return fmt.Errorf("%d of %d users failed", n, batch.Users)
		}
		return nil
	},
}

var userCmd = &cobra.Command{
	Use:   "user <user-id>",
	Short: "Regenerate suggestions for one user",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		userID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid user id %q: %w", args[0], err)
		}

		c, log, err := bootstrap()
		if err != nil {
			return err
		}
		defer c.Close()
		defer log.Sync() //nolint:errcheck

		ctx, stop := signalContext()
		defer stop()

		res, err := c.MatchUseCase.RegenerateForUser(ctx, userID)
		if err != nil {
			log.Error("regeneration failed", zap.String("user_id", userID.String()), zap.Error(err))
			return err
		}
		return printJSON(res)
	},
}

var tokenCmd = &cobra.Command{
	Use:   "token <user-id>",
	Short: "Issue a bearer token for a user, for local testing of the HTTP API",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		userID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid user id %q: %w", args[0], err)
		}

		c, _, err := bootstrap()
		if err != nil {
			return err
		}
		defer c.Close()

		token, expiresAt, err := c.Tokens.IssueToken(userID)
		if err != nil {
			return err
		}
		return printJSON(map[string]any{
			"token":      token,
			"expires_at": expiresAt.Unix(),
		})
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Printf("%s version: %s\n", app, version)
	},
}

func init() {
	rootCmd.AddCommand(allCmd, userCmd, tokenCmd, versionCmd)
}
