package editor

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/todos/internal/testutil"
	"github.com/mesh-intelligence/todos/pkg/types"
)

// fixedClock returns a clock frozen at a single instant, which forces the
// editor to bump ids to keep them unique.
func fixedClock() func() time.Time {
	at := time.UnixMilli(1700000000000)
	return func() time.Time { return at }
}

func newTestEditor(store types.SnapshotStore) *Editor {
	return New(store, WithClock(fixedClock()))
}

func TestAdd(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantAdd  bool
		wantText string
	}{
		{name: "plain text", input: "buy milk", wantAdd: true, wantText: "buy milk"},
		{name: "trimmed", input: " a ", wantAdd: true, wantText: "a"},
		{name: "tabs and newlines trimmed", input: "\t walk dog \n", wantAdd: true, wantText: "walk dog"},
		{name: "empty rejected", input: ""},
		{name: "blank rejected", input: "   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEditor(testutil.NewFakeStore())

			task, ok := e.Add(tt.input)

			assert.Equal(t, tt.wantAdd, ok)
			if !tt.wantAdd {
				assert.Zero(t, e.Len())
				return
			}
			require.Equal(t, 1, e.Len())
			assert.Equal(t, tt.wantText, task.Text)
			assert.False(t, task.Completed)
			assert.Equal(t, task, e.Tasks()[0])
		})
	}
}

func TestAdd_IDsUnique(t *testing.T) {
	e := newTestEditor(testutil.NewFakeStore())
	seen := map[int64]bool{}
	for i := 0; i < 50; i++ {
		task, ok := e.Add("task")
		require.True(t, ok)
		assert.False(t, seen[task.ID], "duplicate id %d", task.ID)
		seen[task.ID] = true
	}
}

func TestAdd_IDsAreTimeBased(t *testing.T) {
	at := time.UnixMilli(1700000123456)
	e := New(testutil.NewFakeStore(), WithClock(func() time.Time { return at }))

	task, _ := e.Add("a")
	assert.Equal(t, int64(1700000123456), task.ID)
}

func TestMutations_UnknownIDIsNoop(t *testing.T) {
	e := newTestEditor(testutil.NewFakeStore())
	e.Add("a")
	before := e.Tasks()

	e.ToggleComplete(-1)
	e.EditText(-1, "changed")
	e.Delete(-1)

	assert.Equal(t, before, e.Tasks())
}

func TestEditText_Verbatim(t *testing.T) {
	e := newTestEditor(testutil.NewFakeStore())
	task, _ := e.Add("a")

	e.EditText(task.ID, "  spaced  ")
	assert.Equal(t, "  spaced  ", e.Tasks()[0].Text)

	e.EditText(task.ID, "")
	assert.Equal(t, "", e.Tasks()[0].Text, "edit does not validate")
}

func TestTasks_ReturnsCopy(t *testing.T) {
	e := newTestEditor(testutil.NewFakeStore())
	e.Add("a")

	tasks := e.Tasks()
	tasks[0].Text = "mutated"
	assert.Equal(t, "a", e.Tasks()[0].Text)
}

// TestMutations_MatchReferenceModel applies random operation sequences to an
// Editor and to a plain slice and checks they agree after every step.
func TestMutations_MatchReferenceModel(t *testing.T) {
	texts := []string{"a", " b ", "", "   ", "c", "buy milk"}

	for seed := int64(1); seed <= 20; seed++ {
		rng := rand.New(rand.NewSource(seed))
		e := newTestEditor(testutil.NewFakeStore())
		var model []types.Task

		pickID := func() int64 {
			if len(model) == 0 || rng.Intn(5) == 0 {
				return -42
			}
			return model[rng.Intn(len(model))].ID
		}

		for step := 0; step < 200; step++ {
			switch rng.Intn(4) {
			case 0:
				text := texts[rng.Intn(len(texts))]
				task, ok := e.Add(text)
				if ok {
					model = append(model, task)
				}
			case 1:
				id := pickID()
				e.ToggleComplete(id)
				for i := range model {
					if model[i].ID == id {
						model[i].Completed = !model[i].Completed
					}
				}
			case 2:
				id := pickID()
				text := texts[rng.Intn(len(texts))]
				e.EditText(id, text)
				for i := range model {
					if model[i].ID == id {
						model[i].Text = text
					}
				}
			case 3:
				id := pickID()
				e.Delete(id)
				for i := range model {
					if model[i].ID == id {
						model = append(model[:i], model[i+1:]...)
						break
					}
				}
			}
			require.Equal(t, types.CloneTasks(model), e.Tasks(), "seed %d step %d", seed, step)
		}
	}
}

func TestStore_Success(t *testing.T) {
	store := testutil.NewFakeStore()
	e := newTestEditor(store)
	e.Add("buy milk")
	task, _ := e.Add("walk dog")
	e.ToggleComplete(task.ID)
	before := e.Tasks()
	require.True(t, e.Dirty())

	n := e.Store(context.Background())

	assert.Equal(t, NoticeSuccess, n.Kind)
	assert.Equal(t, "Todos stored successfully!", n.Text)
	assert.Equal(t, before, e.Tasks(), "store never mutates local state")
	assert.True(t, types.SameContent(before, store.Snapshot()))
	assert.False(t, e.Dirty())
	assert.False(t, e.Busy())
}

func TestStore_Failures(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantText string
	}{
		{
			name:     "non-success reply",
			err:      &types.RemoteError{StatusCode: 500, Message: "Failed to clear existing todos"},
			wantText: "Failed to store todos.",
		},
		{
			name:     "transport error",
			err:      errors.New("dial tcp: connection refused"),
			wantText: "An error occurred while storing todos.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := testutil.NewFakeStore()
			store.ReplaceAllErr = tt.err
			e := newTestEditor(store)
			e.Add("a")
			before := e.Tasks()

			n := e.Store(context.Background())

			assert.True(t, n.Failed())
			assert.Equal(t, tt.wantText, n.Text)
			assert.ErrorIs(t, n.Err, tt.err)
			assert.Equal(t, before, e.Tasks())
			assert.True(t, e.Dirty())
			assert.False(t, e.Busy())
		})
	}
}

func TestStore_PanicBecomesFailure(t *testing.T) {
	store := testutil.NewFakeStore()
	store.Panic = "boom"
	e := newTestEditor(store)

	n := e.Store(context.Background())

	assert.True(t, n.Failed())
	assert.Equal(t, "An error occurred while storing todos.", n.Text)
	assert.False(t, e.Busy())
}

func TestRetrieve_WithoutConfirmationDoesNothing(t *testing.T) {
	store := testutil.NewFakeStore()
	store.Seed(types.Task{Text: "remote"})
	e := newTestEditor(store)
	e.Add("local")
	before := e.Tasks()

	e.RequestRetrieve()
	assert.True(t, e.Gate().Pending())
	assert.Equal(t, RetrieveWarning, e.Gate().Message())
	assert.Zero(t, store.ReadCalls, "no network call before confirmation")
	assert.Equal(t, before, e.Tasks())

	e.Cancel()
	assert.False(t, e.Gate().Pending())
	assert.Zero(t, store.ReadCalls)
	assert.Equal(t, before, e.Tasks())

	assert.Equal(t, Notice{}, e.Confirm(context.Background()), "nothing pending after cancel")
	assert.Zero(t, store.ReadCalls)
}

func TestRetrieve_Confirmed(t *testing.T) {
	store := testutil.NewFakeStore()
	store.Seed(types.Task{Text: "remote a"}, types.Task{Text: "remote b", Completed: true})
	e := newTestEditor(store)
	e.Add("local")

	e.RequestRetrieve()
	n := e.Confirm(context.Background())

	assert.Equal(t, NoticeSuccess, n.Kind)
	assert.Equal(t, "Todos retrieved successfully!", n.Text)
	assert.Equal(t, 1, store.ReadCalls)
	assert.Equal(t, store.Snapshot(), e.Tasks())
	assert.False(t, e.Gate().Pending())
	assert.False(t, e.Dirty())

	assert.Equal(t, Notice{}, e.Confirm(context.Background()), "confirm action runs once")
	assert.Equal(t, 1, store.ReadCalls)
}

func TestRetrieve_EmptyStoreClearsList(t *testing.T) {
	e := newTestEditor(testutil.NewFakeStore())
	e.Add("local")

	e.RequestRetrieve()
	n := e.Confirm(context.Background())

	assert.Equal(t, NoticeSuccess, n.Kind)
	assert.Zero(t, e.Len())
}

func TestRetrieve_Failures(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantText string
	}{
		{
			name:     "server error with details",
			err:      &types.RemoteError{StatusCode: 500, Message: "Failed to retrieve todos", Details: "database is locked"},
			wantText: "Failed to retrieve todos. Failed to retrieve todos database is locked",
		},
		{
			name:     "not found",
			err:      &types.RemoteError{StatusCode: 404, Message: "No todos found"},
			wantText: "Failed to retrieve todos. No todos found",
		},
		{
			name:     "transport error",
			err:      errors.New("connection refused"),
			wantText: "An error occurred while retrieving todos: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := testutil.NewFakeStore()
			store.ReadAllErr = tt.err
			e := newTestEditor(store)
			e.Add("local")
			before := e.Tasks()

			e.RequestRetrieve()
			n := e.Confirm(context.Background())

			assert.True(t, n.Failed())
			assert.Equal(t, tt.wantText, n.Text)
			assert.Equal(t, before, e.Tasks(), "local state unchanged on failure")
			assert.False(t, e.Busy())
		})
	}
}

func TestSync_SerializedWhileInFlight(t *testing.T) {
	store := testutil.NewFakeStore()
	e := newTestEditor(store)
	e.Add("a")

	snapshot, err := e.BeginStore()
	require.NoError(t, err)
	assert.True(t, e.Busy())

	_, err = e.BeginStore()
	assert.ErrorIs(t, err, ErrSyncInFlight)
	assert.ErrorIs(t, e.BeginRetrieve(), ErrSyncInFlight)

	n := e.Store(context.Background())
	assert.True(t, n.Failed())
	assert.Equal(t, "A store or retrieve is already in progress.", n.Text)
	assert.Zero(t, store.ReplaceCalls)

	e.RequestRetrieve()
	n = e.Confirm(context.Background())
	assert.True(t, n.Failed())
	assert.Zero(t, store.ReadCalls)

	// Local edits stay available while a sync is in flight.
	e.Add("b")
	assert.Equal(t, 2, e.Len())

	n = e.FinishStore(snapshot, ReplaceRemote(context.Background(), store, snapshot))
	assert.Equal(t, NoticeSuccess, n.Kind)
	assert.False(t, e.Busy())
	assert.True(t, e.Dirty(), "b was added after the snapshot was taken")
}

func TestRetrieve_IDsStayUniqueAfterReplace(t *testing.T) {
	store := testutil.NewFakeStore()
	e := New(store, WithClock(func() time.Time { return time.UnixMilli(1) }))
	store.Seed(types.Task{Text: "x"}, types.Task{Text: "y"}, types.Task{Text: "z"})

	e.RequestRetrieve()
	require.Equal(t, NoticeSuccess, e.Confirm(context.Background()).Kind)

	task, _ := e.Add("new")
	for _, existing := range e.Tasks()[:3] {
		assert.NotEqual(t, existing.ID, task.ID)
	}
}

func TestReadRemote_NilStore(t *testing.T) {
	_, err := ReadRemote(context.Background(), nil)
	assert.Error(t, err)
}
