package main

import (
	"github.com/spf13/cobra"
)

func newSelectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "select <device>",
		Short: "Select a device target",
		Long:  "Persists the given device as the current target. The device must be in the connected list (matched case-insensitively).",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sync, store := buildSynchronizer()
			defer store.Close()
			return sync.SetValue(cmd.Context(), args[0])
		},
	}
}
