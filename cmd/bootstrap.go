package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/embedkit/boardagent"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newBootstrapCmd() *cobra.Command {
	var flagVerbose bool

	cmd := &cobra.Command{
		Use:   "bootstrap",
		Short: "Install the project template package",
		Long: `Runs the dependency installer in the foreground: checks network
reachability, then invokes the package manager (default: dotnet new install).
Hosts embedding boardagent run the same step fire-and-forget at startup.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			sigCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			installer := boardagent.NewInstaller(boardagent.ExecRunner{})
			group := boardagent.NewGroup(sigCtx)
			var outcome boardagent.InstallOutcome
			group.Go("template-install", func(ctx context.Context) error {
				outcome = installer.Install(ctx)
				return nil
			})
			if err := group.WaitOrInterrupt(2 * time.Second); err != nil {
				return err
			}

			if flagVerbose && outcome.Stdout != "" {
				fmt.Fprint(cmd.OutOrStdout(), outcome.Stdout)
			}
			if flagVerbose && outcome.Stderr != "" {
				fmt.Fprint(cmd.ErrOrStderr(), outcome.Stderr)
			}
			switch outcome.Status {
			case boardagent.InstallSucceeded:
				fmt.Fprintln(cmd.OutOrStdout(), "template package installed")
			case boardagent.InstallSkipped:
				fmt.Fprintln(cmd.OutOrStdout(), "no network, install skipped")
			default:
				log.Warn().Err(outcome.Err).Msg("template install failed")
				fmt.Fprintln(cmd.OutOrStdout(), "template install failed")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Print captured installer output")
	return cmd
}
