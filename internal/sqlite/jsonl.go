package sqlite

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mesh-intelligence/todos/pkg/types"
)

// maxLineBytes bounds a single task line in a snapshot file.
const maxLineBytes = 4 << 20

// ImportJSONL reads a snapshot file with one task per line. Blank lines and
// lines that do not decode into a task are skipped.
func ImportJSONL(path string) ([]types.Task, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening snapshot file: %w", err)
	}
	defer f.Close()

	tasks := []types.Task{}
	scanner := bufio.NewScanner(f)
	scanner.Buffer(nil, maxLineBytes)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var task types.Task
		if json.Unmarshal(line, &task) != nil {
			continue
		}
		tasks = append(tasks, task)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return tasks, nil
}

// ExportJSONL writes tasks to path, one per line. The file is written next
// to path under a temporary name, synced, and renamed into place, so
// readers see either the old file or the complete new one.
func ExportJSONL(path string, tasks []types.Task) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	buf := bufio.NewWriter(tmp)
	enc := json.NewEncoder(buf)
	for _, task := range tasks {
		// Encode appends the newline.
		if err := enc.Encode(task); err != nil {
			return fmt.Errorf("encoding task %d: %w", task.ID, err)
		}
	}
	if err := buf.Flush(); err != nil {
		return fmt.Errorf("writing %s: %w", tmp.Name(), err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("syncing %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}
