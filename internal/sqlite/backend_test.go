package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/todos/pkg/types"
)

// attachTemp returns a backend attached to a fresh temp directory.
func attachTemp(t *testing.T) (*Backend, string) {
	t.Helper()
	dir := t.TempDir()
	b := NewBackend(nil)
	require.NoError(t, b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: dir}))
	t.Cleanup(func() { b.Detach() })
	return b, dir
}

func TestBackend_Attach(t *testing.T) {
	tmpDir := filepath.Join(t.TempDir(), "nested", "data")

	b := NewBackend(nil)
	config := types.Config{
		Backend: types.BackendSQLite,
		DataDir: tmpDir,
	}

	err := b.Attach(config)
	if err != nil {
		t.Fatalf("Attach failed: %v", err)
	}
	defer b.Detach()

	if _, err := os.Stat(filepath.Join(tmpDir, "todos.db")); os.IsNotExist(err) {
		t.Error("todos.db not created")
	}

	err = b.Attach(config)
	if err != types.ErrAlreadyAttached {
		t.Errorf("expected ErrAlreadyAttached, got %v", err)
	}
}

func TestBackend_AttachRejectsInvalidConfig(t *testing.T) {
	b := NewBackend(nil)
	err := b.Attach(types.Config{Backend: "postgres", DataDir: t.TempDir()})
	assert.ErrorIs(t, err, types.ErrBackendUnknown)

	_, err = b.ReadAll(context.Background())
	assert.ErrorIs(t, err, types.ErrDetached)
}

func TestBackend_Detach(t *testing.T) {
	b, _ := attachTemp(t)

	require.NoError(t, b.Detach())
	assert.NoError(t, b.Detach(), "second Detach should not error")

	_, err := b.ReadAll(context.Background())
	assert.ErrorIs(t, err, types.ErrDetached)
	assert.ErrorIs(t, b.ReplaceAll(context.Background(), nil), types.ErrDetached)
}

func TestBackend_ReadAllEmpty(t *testing.T) {
	b, _ := attachTemp(t)

	tasks, err := b.ReadAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, tasks)
	assert.Empty(t, tasks)
}

func TestBackend_ReplaceAllEmptyThenReadAll(t *testing.T) {
	b, _ := attachTemp(t)
	ctx := context.Background()

	require.NoError(t, b.ReplaceAll(ctx, []types.Task{{Text: "old"}}))
	require.NoError(t, b.ReplaceAll(ctx, []types.Task{}))

	tasks, err := b.ReadAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestBackend_ReplaceAllOverwrites(t *testing.T) {
	b, _ := attachTemp(t)
	ctx := context.Background()

	first := []types.Task{{Text: "a"}, {Text: "b", Completed: true}, {Text: "c"}}
	second := []types.Task{{ID: 99, Text: "x", Completed: true}, {ID: 98, Text: "y"}}

	require.NoError(t, b.ReplaceAll(ctx, first))
	require.NoError(t, b.ReplaceAll(ctx, second))

	got, err := b.ReadAll(ctx)
	require.NoError(t, err)
	assert.True(t, types.SameContent(second, got), "got %+v", got)
	assert.NotEqual(t, int64(99), got[0].ID, "store assigns its own ids")
	assert.Less(t, got[0].ID, got[1].ID, "ids follow insertion order")
}

func TestBackend_ReplaceAllKeepsTextVerbatim(t *testing.T) {
	b, _ := attachTemp(t)
	ctx := context.Background()

	in := []types.Task{{Text: "  padded  "}, {Text: ""}, {Text: "ünïcode ✓"}}
	require.NoError(t, b.ReplaceAll(ctx, in))

	got, err := b.ReadAll(ctx)
	require.NoError(t, err)
	assert.True(t, types.SameContent(in, got))
}

func TestBackend_ReadAllNormalizesCompleted(t *testing.T) {
	b, _ := attachTemp(t)
	ctx := context.Background()

	_, err := b.db.Exec(`INSERT INTO todos (text, completed) VALUES ('one', 1), ('two', 0), ('three', NULL), (NULL, 2)`)
	require.NoError(t, err)

	got, err := b.ReadAll(ctx)
	require.NoError(t, err)
	require.Len(t, got, 4)
	assert.True(t, got[0].Completed)
	assert.False(t, got[1].Completed)
	assert.False(t, got[2].Completed)
	assert.False(t, got[3].Completed)
	assert.Equal(t, "", got[3].Text)
}

func TestBackend_ReplaceAllRollsBackOnWriteFailure(t *testing.T) {
	b, _ := attachTemp(t)
	ctx := context.Background()

	prior := []types.Task{{Text: "keep me"}}
	require.NoError(t, b.ReplaceAll(ctx, prior))

	_, err := b.db.Exec(`CREATE TRIGGER reject_boom BEFORE INSERT ON todos
		WHEN NEW.text = 'boom' BEGIN SELECT RAISE(ABORT, 'boom rejected'); END;`)
	require.NoError(t, err)

	err = b.ReplaceAll(ctx, []types.Task{{Text: "fine"}, {Text: "boom"}})
	assert.ErrorIs(t, err, types.ErrWriteFailed)

	got, err := b.ReadAll(ctx)
	require.NoError(t, err)
	assert.True(t, types.SameContent(prior, got), "prior snapshot must survive, got %+v", got)
}

func TestBackend_ReplaceAllClearFailure(t *testing.T) {
	b, _ := attachTemp(t)
	ctx := context.Background()

	prior := []types.Task{{Text: "keep me"}}
	require.NoError(t, b.ReplaceAll(ctx, prior))

	_, err := b.db.Exec(`CREATE TRIGGER reject_delete BEFORE DELETE ON todos
		BEGIN SELECT RAISE(ABORT, 'delete rejected'); END;`)
	require.NoError(t, err)

	err = b.ReplaceAll(ctx, []types.Task{{Text: "new"}})
	assert.ErrorIs(t, err, types.ErrClearFailed)

	got, err := b.ReadAll(ctx)
	require.NoError(t, err)
	assert.True(t, types.SameContent(prior, got))
}

func TestBackend_ReadAllMissingTable(t *testing.T) {
	b, _ := attachTemp(t)

	_, err := b.db.Exec(`DROP TABLE todos`)
	require.NoError(t, err)

	_, err = b.ReadAll(context.Background())
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestBackend_SnapshotSurvivesReattach(t *testing.T) {
	dir := t.TempDir()
	cfg := types.Config{Backend: types.BackendSQLite, DataDir: dir}
	ctx := context.Background()
	want := []types.Task{{Text: "buy milk"}, {Text: "walk dog", Completed: true}}

	b := NewBackend(nil)
	require.NoError(t, b.Attach(cfg))
	require.NoError(t, b.ReplaceAll(ctx, want))
	require.NoError(t, b.Detach())

	reopened := NewBackend(nil)
	require.NoError(t, reopened.Attach(cfg))
	defer reopened.Detach()

	got, err := reopened.ReadAll(ctx)
	require.NoError(t, err)
	assert.True(t, types.SameContent(want, got))
}

func TestBackend_ReplaceAllHonoursCancelledContext(t *testing.T) {
	b, _ := attachTemp(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := b.ReplaceAll(ctx, []types.Task{{Text: "never"}})
	assert.Error(t, err)

	got, err := b.ReadAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}
