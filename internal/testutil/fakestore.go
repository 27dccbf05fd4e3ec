// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"sync"

	"github.com/mesh-intelligence/todos/pkg/types"
)

// FakeStore is an in-memory implementation of types.SnapshotStore for
// testing. It assigns sequence ids on ReplaceAll the way the SQLite store
// does and counts calls so tests can assert that no request was made.
type FakeStore struct {
	mu     sync.Mutex
	tasks  []types.Task
	nextID int64

	ReplaceCalls int
	ReadCalls    int

	// Error injection for testing
	ReplaceAllErr error
	ReadAllErr    error

	// Panic, when set, makes the next call panic with this value.
	Panic any
}

// NewFakeStore creates an empty FakeStore.
func NewFakeStore() *FakeStore {
	return &FakeStore{nextID: 1}
}

// Seed sets the stored snapshot directly, bypassing ReplaceAll.
func (f *FakeStore) Seed(tasks ...types.Task) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks = f.assignIDs(tasks)
}

// Snapshot returns a copy of the stored tasks.
func (f *FakeStore) Snapshot() []types.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	return types.CloneTasks(f.tasks)
}

// ReplaceAll implements types.SnapshotStore.
func (f *FakeStore) ReplaceAll(ctx context.Context, tasks []types.Task) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ReplaceCalls++
	if f.Panic != nil {
		p := f.Panic
		f.Panic = nil
		panic(p)
	}
	if f.ReplaceAllErr != nil {
		return f.ReplaceAllErr
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	f.tasks = f.assignIDs(tasks)
	return nil
}

// ReadAll implements types.SnapshotStore.
func (f *FakeStore) ReadAll(ctx context.Context) ([]types.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ReadCalls++
	if f.Panic != nil {
		p := f.Panic
		f.Panic = nil
		panic(p)
	}
	if f.ReadAllErr != nil {
		return nil, f.ReadAllErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return types.CloneTasks(f.tasks), nil
}

// assignIDs copies tasks and gives each a fresh sequence id.
// The caller must hold f.mu.
func (f *FakeStore) assignIDs(tasks []types.Task) []types.Task {
	out := types.CloneTasks(tasks)
	for i := range out {
		out[i].ID = f.nextID
		f.nextID++
	}
	return out
}
