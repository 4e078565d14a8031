package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCurrentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "current",
		Short: "Show the currently selected device target",
		RunE: func(cmd *cobra.Command, args []string) error {
			sync, store := buildSynchronizer()
			defer store.Close()
			current, err := sync.CurrentValue(cmd.Context())
			if err != nil {
				return err
			}
			if current == "" {
				fmt.Fprintln(cmd.OutOrStdout(), "(none)")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), current)
			return nil
		},
	}
}
