// Package sqlite implements the snapshot store on SQLite.
//
// The store holds exactly one list snapshot in the todos table. ReplaceAll
// swaps it inside a single transaction, so a failed write leaves the prior
// snapshot intact.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/todos/internal/paths"
	"github.com/mesh-intelligence/todos/pkg/types"
)

// Backend implements types.Backend using a SQLite database file in the
// configured data directory.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	db       *sql.DB
	logger   *slog.Logger
}

// NewBackend returns a detached Backend. A nil logger discards output.
func NewBackend(logger *slog.Logger) *Backend {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Backend{logger: logger}
}

// Attach opens <DataDir>/todos.db, creating the directory and the todos
// table when missing. An existing snapshot is kept. Attaching twice
// returns ErrAlreadyAttached.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}

	if err := config.Validate(); err != nil {
		return err
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := paths.DatabasePath(dataDir)
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("opening %s: %w", dbPath, err)
	}
	// SQLite serializes writers; one connection keeps pragmas and
	// transactions on the same handle.
	db.SetMaxOpenConns(1)

	for _, stmt := range append([]string{pragmaBusyTimeout, pragmaJournalMode}, schemaDDL...) {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return fmt.Errorf("initializing schema: %w", err)
		}
	}

	b.db = db
	b.config = config
	b.attached = true

	b.logger.Info("snapshot store attached", "path", dbPath)
	return nil
}

// Detach closes the database. Later calls are no-ops, and snapshot
// operations return ErrDetached until the next Attach.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}

	if b.db != nil {
		if err := b.db.Close(); err != nil {
			return fmt.Errorf("closing database: %w", err)
		}
		b.db = nil
	}

	b.attached = false
	b.logger.Info("snapshot store detached")
	return nil
}

// ReplaceAll clears the stored snapshot and writes tasks in order, all in
// one transaction. A failed clear returns ErrClearFailed before any insert
// is attempted; a failed insert returns ErrWriteFailed. In both cases the
// transaction is rolled back and the previous snapshot remains.
func (b *Backend) ReplaceAll(ctx context.Context, tasks []types.Task) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return types.ErrDetached
	}

	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: beginning transaction: %v", types.ErrClearFailed, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, execClearTodos); err != nil {
		return fmt.Errorf("%w: %v", types.ErrClearFailed, err)
	}

	stmt, err := tx.PrepareContext(ctx, execInsertTodo)
	if err != nil {
		return fmt.Errorf("%w: preparing insert: %v", types.ErrWriteFailed, err)
	}
	defer stmt.Close()

	for i, task := range tasks {
		if _, err := stmt.ExecContext(ctx, task.Text, boolToInt(task.Completed)); err != nil {
			return fmt.Errorf("%w: inserting task %d: %v", types.ErrWriteFailed, i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: committing: %v", types.ErrWriteFailed, err)
	}

	b.logger.Debug("snapshot replaced", "tasks", len(tasks))
	return nil
}

// ReadAll returns the stored snapshot ordered by id. An empty table yields
// an empty slice. ErrNotFound means the todos table itself is missing.
func (b *Backend) ReadAll(ctx context.Context) ([]types.Task, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrDetached
	}

	var name string
	err := b.db.QueryRowContext(ctx, queryTableExists).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("checking todos table: %w", err)
	}

	rows, err := b.db.QueryContext(ctx, queryAllTodos)
	if err != nil {
		return nil, fmt.Errorf("querying todos: %w", err)
	}
	defer rows.Close()

	tasks := []types.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating todos: %w", err)
	}
	return tasks, nil
}

// scanTask maps a todos row into a Task. NULL text reads as "" and
// completed is true only for the stored value 1.
func scanTask(rows *sql.Rows) (types.Task, error) {
	var (
		task      types.Task
		text      sql.NullString
		completed sql.NullInt64
	)
	if err := rows.Scan(&task.ID, &text, &completed); err != nil {
		return types.Task{}, fmt.Errorf("scanning todo: %w", err)
	}
	task.Text = text.String
	task.Completed = completed.Valid && completed.Int64 == 1
	return task, nil
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
