// Command inventory manages a small product inventory from the terminal and
// serves it as a JSON API.
//
//	inventory init
//	inventory add --name Water --barcode 111 --quantity 10 --supplier Acme
//	inventory update 111 5
//	inventory list
//	inventory export --path stock.csv
//	inventory serve --port 8080
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/inventory/config"
	"github.com/shashiranjanraj/inventory/pkg/apperror"
	"github.com/shashiranjanraj/inventory/pkg/logger"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, describe(err))
		os.Exit(1)
	}
}

type rootFlags struct {
	driver string
	dsn    string
	quiet  bool
}

func newRootCmd() *cobra.Command {
	var flags rootFlags

	cmd := &cobra.Command{
		Use:           "inventory",
		Short:         "Track products, quantities and suppliers",
		Long:          "inventory keeps products in a SQLite store, looks names up by barcode on OpenFoodFacts and exports the stock as CSV.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Load(); err != nil {
				return err
			}
			if flags.driver != "" {
				config.Set("DB_DRIVER", flags.driver)
			}
			if flags.dsn != "" {
				config.Set("DATABASE_DSN", flags.dsn)
			}
			if flags.quiet {
				logger.SetOutput(io.Discard, config.AppEnv())
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&flags.driver, "driver", "", "database driver: sqlite, postgres, mysql or sqlserver (default from DB_DRIVER)")
	cmd.PersistentFlags().StringVar(&flags.dsn, "db", "", "database file or DSN (default from DATABASE_DSN)")
	cmd.PersistentFlags().BoolVarP(&flags.quiet, "quiet", "q", false, "suppress log output")

	// Products
	cmd.AddCommand(newInitCmd())
	cmd.AddCommand(newAddCmd())
	cmd.AddCommand(newRemoveCmd())
	cmd.AddCommand(newUpdateCmd())
	cmd.AddCommand(newListCmd())
	cmd.AddCommand(newExportCmd())
	cmd.AddCommand(newLookupCmd())

	// Database
	cmd.AddCommand(newSeedCmd())

	// Server
	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newRouteListCmd())
	return cmd
}

// describe turns an error into the line shown to the user. Coded errors
// show their message and field reasons; everything else shows as is.
func describe(err error) string {
	appErr, ok := apperror.As(err)
	if !ok {
		return "Error: " + err.Error()
	}
	msg := appErr.Message
	for _, field := range []string{"name", "barcode", "quantity"} {
		if reason, ok := appErr.Fields[field]; ok {
			msg += fmt.Sprintf("\n  %s: %s", field, reason)
		}
	}
	if appErr.Err != nil {
		msg += fmt.Sprintf("\n  cause: %v", appErr.Err)
	}
	return msg
}
