// List command prints the stored snapshot.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the stored to-do list",
	Long: `List retrieves the stored snapshot from the server at server_url (or
--server) and prints it. Use --json for machine-readable output.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		remote, err := newRemote(flagServer)
		if err != nil {
			return err
		}

		tasks, err := remote.ReadAll(cmd.Context())
		if err != nil {
			return fmt.Errorf("retrieve todos: %w", err)
		}
		return printTasks(cmd.OutOrStdout(), tasks)
	},
}

func init() {
	listCmd.Flags().StringVar(&flagServer, "server", "", "Snapshot Store URL (default: server_url from config)")
}
