// Version command for the todos CLI.
package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/todos/pkg/todos"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the todos version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if flagJSON {
			out, err := json.Marshal(map[string]string{
				"version": todos.Version,
				"module":  todos.ModulePath,
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "todos v%s\nmodule: %s\n", todos.Version, todos.ModulePath)
		return nil
	},
}
