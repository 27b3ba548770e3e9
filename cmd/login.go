package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/launcher-core/internal/domain"
)

func newURLCmd(state *appState) *cobra.Command {
	return &cobra.Command{
		Use:   "url",
		Short: "Print the Microsoft sign-in URL",
		Long:  "Print the Microsoft sign-in URL. Open it in a browser, sign in, then pass the code (or the whole address the browser ended on) to `launcher login`.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := state.get(cmd)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), app.service.LoginURL())
			return err
		},
	}
}

func newLoginCmd(state *appState) *cobra.Command {
	return &cobra.Command{
		Use:   "login <code|redirect-url>",
		Short: "Sign in with a Microsoft authorization code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := state.get(cmd)
			if err != nil {
				return err
			}

			var account domain.Account
			err = runWithSpinner(cmd.Context(), cmd.ErrOrStderr(), "Signing in with Microsoft...", func(ctx context.Context) error {
				var loginErr error
				account, loginErr = app.service.Login(ctx, args[0])
				return loginErr
			})
			if err != nil {
				return err
			}

			if !account.HasProfile {
				_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "note: no game profile found for this account; stored with a placeholder identity")
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (%s)\n", account.Username, account.ID)
			return err
		},
	}
}

func newLoginOfflineCmd(state *appState) *cobra.Command {
	return &cobra.Command{
		Use:   "login-offline <username>",
		Short: "Add an offline account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := state.get(cmd)
			if err != nil {
				return err
			}

			account, err := app.service.LoginOffline(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Added offline account %s (%s)\n", account.Username, account.ID)
			return err
		},
	}
}
