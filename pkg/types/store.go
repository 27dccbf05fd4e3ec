package types

import (
	"context"
	"errors"
)

// SnapshotStore holds exactly one list snapshot. ReplaceAll overwrites it
// wholesale and ReadAll returns it; there is no partial update.
type SnapshotStore interface {
	// ReplaceAll clears the stored snapshot and writes tasks in order.
	// Ids on the given tasks are ignored; the store assigns its own.
	ReplaceAll(ctx context.Context, tasks []Task) error

	// ReadAll returns the stored snapshot in order. An empty store yields
	// an empty slice and a nil error.
	ReadAll(ctx context.Context) ([]Task, error)
}

// Backend is a SnapshotStore with an explicit storage lifetime. Callers
// attach at startup and detach at shutdown.
type Backend interface {
	SnapshotStore

	// Attach opens the storage described by config, creating the data
	// directory and schema if absent. Returns ErrAlreadyAttached if called
	// while already attached.
	Attach(config Config) error

	// Detach releases storage resources. Idempotent. After Detach,
	// ReplaceAll and ReadAll return ErrDetached.
	Detach() error
}

// Backend lifecycle errors.
var (
	ErrDetached        = errors.New("store is detached")
	ErrAlreadyAttached = errors.New("store is already attached")
)

// Snapshot operation errors.
var (
	// ErrNotFound reports that the snapshot table itself is missing, which
	// is distinct from an empty snapshot.
	ErrNotFound    = errors.New("no todos found")
	ErrClearFailed = errors.New("failed to clear existing todos")
	ErrWriteFailed = errors.New("failed to store todos")
)
