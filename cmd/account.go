package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	accountsrender "github.com/bnema/launcher-core/internal/adapters/render/accounts"
	"github.com/bnema/launcher-core/internal/domain"
)

func newAccountCmd(state *appState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Manage stored accounts",
	}

	cmd.AddCommand(
		newAccountListCmd(state),
		newAccountRemoveCmd(state),
	)

	return cmd
}

func newAccountListCmd(state *appState) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := state.get(cmd)
			if err != nil {
				return err
			}

			views, err := app.service.Accounts(cmd.Context())
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(views)
			}

			rendered, err := app.renderer(views, accountsrender.RenderOptions{Now: app.now()})
			if err != nil {
				return fmt.Errorf("render accounts: %w", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")

	return cmd
}

func newAccountRemoveCmd(state *appState) *cobra.Command {
	var accountID string

	cmd := &cobra.Command{
		Use:   "remove",
		Short: "Remove a stored account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := state.get(cmd)
			if err != nil {
				return err
			}

			if err := app.service.Remove(cmd.Context(), domain.AccountID(accountID)); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Removed account %s\n", accountID)
			return err
		},
	}

	cmd.Flags().StringVar(&accountID, "account", "", "Account ID")
	_ = cmd.MarkFlagRequired("account")

	return cmd
}
