// Export and import commands move the stored snapshot to and from JSONL.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/todos/internal/sqlite"
)

var exportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Write the stored list to a JSONL file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, err := attachBackend()
		if err != nil {
			return err
		}
		defer backend.Detach()

		tasks, err := backend.ReadAll(cmd.Context())
		if err != nil {
			return fmt.Errorf("read todos: %w", err)
		}
		if err := sqlite.ExportJSONL(args[0], tasks); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Exported %d tasks to %s\n", len(tasks), args[0])
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace the stored list with a JSONL file",
	Long: `Import reads one task per line and replaces the stored list with it.
Blank and malformed lines are skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tasks, err := sqlite.ImportJSONL(args[0])
		if err != nil {
			return err
		}

		backend, err := attachBackend()
		if err != nil {
			return err
		}
		defer backend.Detach()

		if err := backend.ReplaceAll(cmd.Context(), tasks); err != nil {
			return fmt.Errorf("store todos: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d tasks from %s\n", len(tasks), args[0])
		return nil
	},
}
