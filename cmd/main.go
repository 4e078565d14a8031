package main

import (
	"os"

	"github.com/embedkit/boardagent/internal/env"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "boardagent",
	Short: "Serial board target selection and toolchain bootstrap",
	Long: `boardagent keeps a single "current device target" in sync with the serial
devices actually connected, and bootstraps the project template package the
toolchain needs. The selection commands mirror the host picker protocol:
list, current, select.`,
}

func init() {
	output := zerolog.ConsoleWriter{Out: os.Stderr}
	log.Logger = zerolog.New(output).With().Timestamp().Logger()
	rootCmd.AddCommand(
		newDevicesCmd(),
		newCurrentCmd(),
		newSelectCmd(),
		newBootstrapCmd(),
		newWatchCmd(),
	)
	_ = env.Ensure()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal().Err(err).Msg("boardagent command failed")
	}
}
