// Shared helpers for todos CLI commands.
package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/mesh-intelligence/todos/internal/client"
	"github.com/mesh-intelligence/todos/pkg/sqlite"
	"github.com/mesh-intelligence/todos/pkg/types"
)

// attachBackend resolves the data directory and attaches a SQLite backend.
// The caller must defer backend.Detach().
func attachBackend() (types.Backend, error) {
	dataDir, err := resolveDataDir()
	if err != nil {
		return nil, fmt.Errorf("resolve data dir: %w", err)
	}

	cfg := types.Config{
		Backend: config.GetString(cfgKeyBackend),
		DataDir: dataDir,
	}

	backend := sqlite.NewBackend(logger)
	if err := backend.Attach(cfg); err != nil {
		return nil, fmt.Errorf("attach backend: %w", err)
	}

	return backend, nil
}

// newRemote builds an HTTP client for the Snapshot Store at serverURL, or
// at the configured server_url when serverURL is empty.
func newRemote(serverURL string) (*client.Client, error) {
	if serverURL == "" {
		serverURL = config.GetString(cfgKeyServerURL)
	}
	return client.New(client.Config{
		BaseURL: serverURL,
		Timeout: requestTimeout(),
		Logger:  logger,
	})
}

// printTasks writes tasks as indented JSON in --json mode and as a
// checklist otherwise.
func printTasks(w io.Writer, tasks []types.Task) error {
	if flagJSON {
		if tasks == nil {
			tasks = []types.Task{}
		}
		out, err := json.MarshalIndent(tasks, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal tasks: %w", err)
		}
		_, err = fmt.Fprintln(w, string(out))
		return err
	}

	if len(tasks) == 0 {
		_, err := fmt.Fprintln(w, "No tasks.")
		return err
	}
	for _, task := range tasks {
		check := "[ ]"
		if task.Completed {
			check = "[x]"
		}
		if _, err := fmt.Fprintf(w, "%s %s\n", check, task.Text); err != nil {
			return err
		}
	}
	return nil
}
