package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/inventory/database/seeders"
)

// inventory seed
func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert the demo products; existing barcodes are left alone",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := boot(cmd.Context(), bootOptions{noLookup: true})
			if err != nil {
				return err
			}
			defer rt.close()

			fmt.Fprintln(cmd.OutOrStdout(), "Running seeders…")
			return seeders.RunAll(cmd.Context(), cmd.OutOrStdout(), rt.repo)
		},
	}
}
