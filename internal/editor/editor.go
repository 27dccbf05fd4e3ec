// Package editor holds the in-session to-do list and its synchronization
// with a snapshot store.
//
// Local mutations (Add, ToggleComplete, EditText, Delete) apply at once and
// never touch the store. Store and Retrieve are the only operations that
// cross the boundary; both replace the other side wholesale, and Retrieve is
// staged behind a confirmation Gate because it discards the local list.
//
// An Editor is not safe for concurrent use. Asynchronous callers use the
// Begin/Finish pairs and run the network call on a snapshot copy.
package editor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/mesh-intelligence/todos/pkg/types"
)

// RetrieveWarning is the confirmation message staged by RequestRetrieve.
const RetrieveWarning = "Are you sure you want to replace the current list with the one from the database?"

// User-visible notice texts.
const (
	msgStored         = "Todos stored successfully!"
	msgStoreFailed    = "Failed to store todos."
	msgStoreError     = "An error occurred while storing todos."
	msgRetrieved      = "Todos retrieved successfully!"
	msgRetrieveFailed = "Failed to retrieve todos."
	msgRetrieveError  = "An error occurred while retrieving todos:"
	msgSyncInFlight   = "A store or retrieve is already in progress."
)

// ErrSyncInFlight is returned by BeginStore and BeginRetrieve while another
// store or retrieve has not finished.
var ErrSyncInFlight = errors.New("store or retrieve already in flight")

// Option configures an Editor.
type Option func(*Editor)

// WithClock sets the time source used for task ids.
func WithClock(now func() time.Time) Option {
	return func(e *Editor) { e.now = now }
}

// WithLogger sets the logger for sync outcomes.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Editor) { e.logger = logger }
}

// Editor owns the in-session task list.
type Editor struct {
	store    types.SnapshotStore
	tasks    []types.Task
	synced   []types.Task // list as of the last successful store or retrieve
	gate     Gate
	inFlight bool
	lastID   int64
	now      func() time.Time
	logger   *slog.Logger
}

// New returns an empty Editor that stores to and retrieves from store.
func New(store types.SnapshotStore, opts ...Option) *Editor {
	e := &Editor{
		store:  store,
		tasks:  []types.Task{},
		synced: []types.Task{},
		now:    time.Now,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Remote returns the store the editor synchronizes with.
func (e *Editor) Remote() types.SnapshotStore { return e.store }

// Tasks returns a copy of the current list.
func (e *Editor) Tasks() []types.Task { return types.CloneTasks(e.tasks) }

// Len returns the number of tasks.
func (e *Editor) Len() int { return len(e.tasks) }

// Dirty reports whether the list differs from the last stored or
// retrieved snapshot.
func (e *Editor) Dirty() bool { return !types.SameContent(e.tasks, e.synced) }

// Busy reports whether a store or retrieve is in flight.
func (e *Editor) Busy() bool { return e.inFlight }

// Gate returns the confirmation gate state.
func (e *Editor) Gate() Gate { return e.gate }

// Add appends a task with text trimmed of surrounding whitespace. Blank
// text is ignored and Add reports false.
func (e *Editor) Add(text string) (types.Task, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return types.Task{}, false
	}
	task := types.Task{ID: e.nextID(), Text: text}
	e.tasks = append(e.tasks, task)
	return task, true
}

// ToggleComplete flips the completion flag of the task with id.
func (e *Editor) ToggleComplete(id int64) {
	if i := e.indexOf(id); i >= 0 {
		e.tasks[i].Completed = !e.tasks[i].Completed
	}
}

// EditText replaces the text of the task with id verbatim.
func (e *Editor) EditText(id int64, text string) {
	if i := e.indexOf(id); i >= 0 {
		e.tasks[i].Text = text
	}
}

// Delete removes the task with id.
func (e *Editor) Delete(id int64) {
	if i := e.indexOf(id); i >= 0 {
		e.tasks = append(e.tasks[:i], e.tasks[i+1:]...)
	}
}

// Store replaces the durable snapshot with the current list. The local
// list is never modified.
func (e *Editor) Store(ctx context.Context) Notice {
	snapshot, err := e.BeginStore()
	if err != nil {
		return failure(msgSyncInFlight, err)
	}
	return e.FinishStore(snapshot, ReplaceRemote(ctx, e.store, snapshot))
}

// BeginStore marks a store in flight and returns the list to send.
func (e *Editor) BeginStore() ([]types.Task, error) {
	if e.inFlight {
		return nil, ErrSyncInFlight
	}
	e.inFlight = true
	return types.CloneTasks(e.tasks), nil
}

// FinishStore clears the in-flight mark and converts the outcome of
// sending snapshot into a notice.
func (e *Editor) FinishStore(snapshot []types.Task, err error) Notice {
	e.inFlight = false

	var remote *types.RemoteError
	switch {
	case err == nil:
		e.synced = types.CloneTasks(snapshot)
		e.logger.Info("todos stored", "tasks", len(snapshot))
		return success(msgStored)
	case errors.As(err, &remote):
		e.logger.Error("store rejected", "status", remote.StatusCode, "error", err)
		return failure(msgStoreFailed, err)
	default:
		e.logger.Error("store failed", "error", err)
		return failure(msgStoreError, err)
	}
}

// RequestRetrieve stages a retrieve behind the confirmation gate. Nothing
// is fetched until Confirm.
func (e *Editor) RequestRetrieve() {
	e.gate.Request(RetrieveWarning, ActionRetrieve)
}

// Cancel dismisses a pending confirmation.
func (e *Editor) Cancel() {
	e.gate.Cancel()
}

// ConfirmAction dismisses a pending confirmation and returns its action
// without running it. Callers that run the action themselves use this in
// place of Confirm.
func (e *Editor) ConfirmAction() Action {
	return e.gate.Confirm()
}

// Confirm dismisses a pending confirmation and runs its action. With
// nothing pending it returns a zero Notice.
func (e *Editor) Confirm(ctx context.Context) Notice {
	switch e.gate.Confirm() {
	case ActionRetrieve:
		return e.retrieve(ctx)
	default:
		return Notice{}
	}
}

func (e *Editor) retrieve(ctx context.Context) Notice {
	if err := e.BeginRetrieve(); err != nil {
		return failure(msgSyncInFlight, err)
	}
	tasks, err := ReadRemote(ctx, e.store)
	return e.FinishRetrieve(tasks, err)
}

// BeginRetrieve marks a retrieve in flight.
func (e *Editor) BeginRetrieve() error {
	if e.inFlight {
		return ErrSyncInFlight
	}
	e.inFlight = true
	return nil
}

// FinishRetrieve clears the in-flight mark and, when err is nil, replaces
// the whole list with tasks. On failure the list is left as it was.
func (e *Editor) FinishRetrieve(tasks []types.Task, err error) Notice {
	e.inFlight = false

	var remote *types.RemoteError
	switch {
	case err == nil:
		e.replace(tasks)
		e.logger.Info("todos retrieved", "tasks", len(tasks))
		return success(msgRetrieved)
	case errors.As(err, &remote):
		e.logger.Error("retrieve rejected", "status", remote.StatusCode, "error", err)
		text := strings.TrimSpace(fmt.Sprintf("%s %s %s", msgRetrieveFailed, remote.Message, remote.Details))
		return failure(text, err)
	default:
		e.logger.Error("retrieve failed", "error", err)
		return failure(fmt.Sprintf("%s %v", msgRetrieveError, err), err)
	}
}

// replace swaps in a retrieved list and keeps future ids unique against it.
func (e *Editor) replace(tasks []types.Task) {
	e.tasks = types.CloneTasks(tasks)
	e.synced = types.CloneTasks(tasks)
	for _, task := range e.tasks {
		if task.ID > e.lastID {
			e.lastID = task.ID
		}
	}
}

// nextID returns a millisecond timestamp, bumped past the last id handed
// out so that ids stay unique within the list.
func (e *Editor) nextID() int64 {
	id := e.now().UnixMilli()
	if id <= e.lastID {
		id = e.lastID + 1
	}
	e.lastID = id
	return id
}

func (e *Editor) indexOf(id int64) int {
	for i, task := range e.tasks {
		if task.ID == id {
			return i
		}
	}
	return -1
}

// ReplaceRemote calls store.ReplaceAll, converting a panic into an error.
func ReplaceRemote(ctx context.Context, store types.SnapshotStore, tasks []types.Task) (err error) {
	defer recoverInto(&err)
	return store.ReplaceAll(ctx, tasks)
}

// ReadRemote calls store.ReadAll, converting a panic into an error.
func ReadRemote(ctx context.Context, store types.SnapshotStore) (tasks []types.Task, err error) {
	defer recoverInto(&err)
	return store.ReadAll(ctx)
}

func recoverInto(err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("store panicked: %v", r)
	}
}
