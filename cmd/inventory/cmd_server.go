package main

import (
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/inventory/app/controllers"
	"github.com/shashiranjanraj/inventory/config"
	"github.com/shashiranjanraj/inventory/internal/server"
)

func handlerOptions() server.HandlerOptions {
	return server.HandlerOptions{
		CORSOrigins:     config.CORSOrigins(),
		LookupPerMinute: config.LookupRateLimit(),
	}
}

// inventory serve
func newServeCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON API and /metrics until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			rt, err := boot(ctx, bootOptions{})
			if err != nil {
				return err
			}
			defer rt.close()

			if port == "" {
				port = config.AppPort()
			}
			r := server.NewRouter(controllers.NewProductController(rt.service), handlerOptions())
			return server.Start(ctx, net.JoinHostPort("", port), r.Handler())
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "", "listen port (default from APP_PORT)")
	return cmd
}

// inventory route:list
func newRouteListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "route:list",
		Short: "List every HTTP route",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r := server.NewRouter(controllers.NewProductController(nil), handlerOptions())

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
			fmt.Fprintln(w, "METHOD\tPATH\tNAME")
			fmt.Fprintln(w, "------\t----\t----")
			for _, ri := range r.Routes() {
				fmt.Fprintf(w, "%s\t%s\t%s\n", ri.Method, ri.Path, ri.Name)
			}
			return w.Flush()
		},
	}
}
