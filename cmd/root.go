package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd, state := newRootCmd()
	defer state.close()

	return rootCmd.ExecuteContext(ctx)
}

func newRootCmd(opts ...wireOption) (*cobra.Command, *appState) {
	rootCmd := &cobra.Command{
		Use:           "launcher",
		Short:         "Launcher core: accounts, credentials and downloads",
		Long:          "launcher signs players in with Microsoft or offline accounts, keeps their credentials in an encrypted registry, and downloads game files through a paced, retrying request queue.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	state := newAppState(opts...)

	rootCmd.AddCommand(
		newVersionCmd(),
		newURLCmd(state),
		newLoginCmd(state),
		newLoginOfflineCmd(state),
		newRefreshCmd(state),
		newAccountCmd(state),
		newDownloadCmd(state),
	)

	return rootCmd, state
}
