package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/launcher-core/internal/application"
	"github.com/bnema/launcher-core/internal/domain"
)

func newRefreshCmd(state *appState) *cobra.Command {
	var (
		accountID string
		force     bool
	)

	cmd := &cobra.Command{
		Use:   "refresh",
		Short: "Refresh stored account tokens",
		Long:  "Refresh game tokens that are expired or about to expire. Without --account every stored account is refreshed.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := state.get(cmd)
			if err != nil {
				return err
			}

			var (
				results    []application.RefreshResult
				refreshErr error
			)
			err = runWithSpinner(cmd.Context(), cmd.ErrOrStderr(), "Refreshing accounts...", func(ctx context.Context) error {
				if accountID != "" {
					result, err := app.service.Refresh(ctx, domain.AccountID(accountID), force)
					if err != nil {
						return err
					}
					results = []application.RefreshResult{result}
					return nil
				}
				results, refreshErr = app.service.RefreshAll(ctx, force)
				return nil
			})
			if err != nil {
				return err
			}

			for _, result := range results {
				writeRefreshResult(cmd, result)
			}
			if refreshErr != nil {
				if errors.Is(refreshErr, domain.ErrReauthenticationRequired) {
					_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "some accounts must sign in again: run `launcher url` and `launcher login`")
				}
				return refreshErr
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&accountID, "account", "", "Account ID to refresh (default: all accounts)")
	cmd.Flags().BoolVar(&force, "force", false, "Refresh even when the token is still valid")

	return cmd
}

func writeRefreshResult(cmd *cobra.Command, result application.RefreshResult) {
	account := result.Account
	switch {
	case !result.Refreshed:
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Skipped %s (%s): token still valid\n", account.Username, account.ID)
	case result.PreviousID != account.ID:
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Refreshed %s (%s, was %s)\n", account.Username, account.ID, result.PreviousID)
	default:
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Refreshed %s (%s)\n", account.Username, account.ID)
	}
}
