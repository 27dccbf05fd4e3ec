// Edit command opens the terminal list editor.
package main

import (
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/todos/internal/editor"
	"github.com/mesh-intelligence/todos/internal/tui"
	"github.com/mesh-intelligence/todos/pkg/types"
)

var (
	flagServer  string
	flagLocal   bool
	flagLogFile string
)

var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit a to-do list in the terminal",
	Long: `Edit opens an empty list. Press s to store it to the Snapshot Store and
r to replace it with the stored one (after confirming).

By default the store is the HTTP server at server_url. With --local the
editor opens the database in the data directory directly.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		editorLogger := slog.New(slog.DiscardHandler)
		if flagLogFile != "" {
			fileLogger, closeLog, err := openLogFile(flagLogFile, flagLogLevel.level)
			if err != nil {
				return err
			}
			defer closeLog()
			editorLogger = fileLogger
		}

		var store types.SnapshotStore
		if flagLocal {
			backend, err := attachBackend()
			if err != nil {
				return err
			}
			defer backend.Detach()
			store = backend
		} else {
			remote, err := newRemote(flagServer)
			if err != nil {
				return err
			}
			store = remote
		}

		ed := editor.New(store, editor.WithLogger(editorLogger))
		model := tui.NewModel(cmd.Context(), ed)
		program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
		_, err := program.Run()
		return err
	},
}

func init() {
	editCmd.Flags().StringVar(&flagServer, "server", "", "Snapshot Store URL (default: server_url from config)")
	editCmd.Flags().BoolVar(&flagLocal, "local", false, "use the local database instead of a server")
	editCmd.Flags().StringVar(&flagLogFile, "log-file", "", "append logs to this file")
	editCmd.MarkFlagsMutuallyExclusive("server", "local")
}
