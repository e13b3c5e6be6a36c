package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/inventory/app/services"
	"github.com/shashiranjanraj/inventory/config"
)

// report prints a successful outcome, or turns a duplicate / not-found
// outcome into the command's error.
func report(cmd *cobra.Command, out services.Outcome) error {
	if !out.OK {
		return errors.New(out.Message)
	}
	fmt.Fprintln(cmd.OutOrStdout(), out.Message)
	return nil
}

// inventory init
func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the store and the products table if missing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := boot(cmd.Context(), bootOptions{noLookup: true})
			if err != nil {
				return err
			}
			defer rt.close()

			fmt.Fprintf(cmd.OutOrStdout(), "Inventory ready (%s).\n", config.DatabaseDSN())
			return nil
		},
	}
}

// inventory add
func newAddCmd() *cobra.Command {
	var (
		form     services.AddForm
		noLookup bool
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a product; the barcode database name wins over --name",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := boot(cmd.Context(), bootOptions{noLookup: noLookup})
			if err != nil {
				return err
			}
			defer rt.close()

			out, err := rt.service.Add(cmd.Context(), form)
			if err != nil {
				return err
			}
			if err := report(cmd, out); err != nil {
				return err
			}
			if out.NameFromLookup {
				fmt.Fprintf(cmd.OutOrStdout(), "Name from barcode database: %s\n", out.Name)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&form.Name, "name", "", "product name, used when the barcode is unknown")
	cmd.Flags().StringVar(&form.Barcode, "barcode", "", "product barcode (unique)")
	cmd.Flags().StringVar(&form.Quantity, "quantity", "", "whole number of items")
	cmd.Flags().StringVar(&form.Supplier, "supplier", "", "supplier name (optional)")
	cmd.Flags().BoolVar(&noLookup, "no-lookup", false, "skip the barcode database")
	return cmd
}

// inventory remove <barcode>
func newRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "remove <barcode>",
		Aliases: []string{"rm"},
		Short:   "Remove the product with this barcode",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := boot(cmd.Context(), bootOptions{noLookup: true})
			if err != nil {
				return err
			}
			defer rt.close()

			out, err := rt.service.Remove(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return report(cmd, out)
		},
	}
}

// inventory update <barcode> <quantity>
func newUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <barcode> <quantity>",
		Short: "Set the quantity of a product",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := boot(cmd.Context(), bootOptions{noLookup: true})
			if err != nil {
				return err
			}
			defer rt.close()

			out, err := rt.service.UpdateQuantity(cmd.Context(), services.UpdateForm{
				Barcode:  args[0],
				Quantity: args[1],
			})
			if err != nil {
				return err
			}
			return report(cmd, out)
		},
	}
	// Everything after the barcode is positional, so "-5" is a quantity.
	cmd.Flags().SetInterspersed(false)
	return cmd
}

// inventory list
func newListCmd() *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Show every product in store order",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := boot(cmd.Context(), bootOptions{noLookup: true})
			if err != nil {
				return err
			}
			defer rt.close()

			products, err := rt.service.List(cmd.Context())
			if err != nil {
				return err
			}
			if plain {
				fmt.Fprint(cmd.OutOrStdout(), renderPlain(products))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderProducts(products))
			return nil
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "tab-separated output without borders")
	return cmd
}

// inventory export
func newExportCmd() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every product to a CSV file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if path = strings.TrimSpace(path); path != "" {
				config.Set("EXPORT_PATH", path)
			}

			rt, err := boot(cmd.Context(), bootOptions{noLookup: true})
			if err != nil {
				return err
			}
			defer rt.close()

			out, err := rt.service.Export(cmd.Context())
			if err != nil {
				return err
			}
			return report(cmd, out)
		},
	}

	cmd.Flags().StringVar(&path, "path", "", "export file path on the export disk (default from EXPORT_PATH)")
	return cmd
}

// inventory lookup <barcode>
func newLookupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lookup <barcode>",
		Short: "Look a barcode up in the barcode database without storing it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := boot(cmd.Context(), bootOptions{})
			if err != nil {
				return err
			}
			defer rt.close()

			res := rt.service.LookupName(cmd.Context(), args[0])
			fmt.Fprintln(cmd.OutOrStdout(), res.NameOr("no name available"))
			return nil
		},
	}
}
