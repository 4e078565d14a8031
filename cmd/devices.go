package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDevicesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "devices",
		Short: "List connected serial devices",
		Long:  "Prints the live device list, or the No Devices Found placeholder when nothing is connected.",
		RunE: func(cmd *cobra.Command, args []string) error {
			sync, store := buildSynchronizer()
			defer store.Close()
			values, err := sync.ListValues(cmd.Context())
			if err != nil {
				return err
			}
			for _, serial := range values {
				fmt.Fprintln(cmd.OutOrStdout(), serial)
			}
			return nil
		},
	}
}
