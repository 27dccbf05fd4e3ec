// Package main provides the todos CLI: a Snapshot Store HTTP server, a
// terminal list editor, and maintenance commands for the local database.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "todos:", err)
		os.Exit(exitUserError)
	}
}
