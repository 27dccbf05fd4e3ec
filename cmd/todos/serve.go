// Serve command runs the Snapshot Store HTTP server.
package main

import (
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/todos/internal/server"
)

var flagAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the Snapshot Store HTTP server",
	Long: `Serve exposes the local database over HTTP:

  POST /api/store-todos     replace the stored list
  GET  /api/retrieve-todos  read the stored list

The listen address comes from --addr, then the addr config key (TODOS_ADDR),
then PORT, then localhost:3001.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, err := attachBackend()
		if err != nil {
			return err
		}
		defer backend.Detach()

		ln, err := net.Listen("tcp", resolveAddr(flagAddr))
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		fmt.Fprintf(cmd.OutOrStdout(), "Serving todos on http://%s\n", ln.Addr())
		return server.Serve(ctx, ln, server.New(backend, logger), logger)
	},
}

func init() {
	serveCmd.Flags().StringVar(&flagAddr, "addr", "", "listen address (default: localhost:3001)")
}
