package editor_test

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/todos/internal/client"
	"github.com/mesh-intelligence/todos/internal/editor"
	"github.com/mesh-intelligence/todos/internal/server"
	"github.com/mesh-intelligence/todos/internal/sqlite"
	"github.com/mesh-intelligence/todos/pkg/types"
)

// newRemoteEditor wires an editor to a real server backed by SQLite in a
// temp directory.
func newRemoteEditor(t *testing.T) (*editor.Editor, *sqlite.Backend) {
	t.Helper()
	backend := sqlite.NewBackend(nil)
	require.NoError(t, backend.Attach(types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()}))
	t.Cleanup(func() { backend.Detach() })

	ts := httptest.NewServer(server.New(backend, nil))
	t.Cleanup(ts.Close)

	c, err := client.New(client.Config{BaseURL: ts.URL})
	require.NoError(t, err)
	return editor.New(c), backend
}

func TestRoundTrip_BuyMilk(t *testing.T) {
	e, _ := newRemoteEditor(t)
	ctx := context.Background()

	e.Add("buy milk")
	require.Equal(t, editor.NoticeSuccess, e.Store(ctx).Kind)

	e.RequestRetrieve()
	n := e.Confirm(ctx)
	require.Equal(t, editor.NoticeSuccess, n.Kind, n.Text)

	got := e.Tasks()
	require.Len(t, got, 1)
	assert.Equal(t, "buy milk", got[0].Text)
	assert.False(t, got[0].Completed)
}

func TestRoundTrip_PreservesTextCompletionAndOrder(t *testing.T) {
	e, _ := newRemoteEditor(t)
	ctx := context.Background()

	a, _ := e.Add("a")
	e.Add("b")
	c, _ := e.Add("c")
	e.ToggleComplete(a.ID)
	e.EditText(c.ID, "  c edited ")
	stored := e.Tasks()

	require.Equal(t, editor.NoticeSuccess, e.Store(ctx).Kind)

	// Local edits after the store are discarded by the retrieve.
	e.Delete(a.ID)
	e.Add("unsaved")

	e.RequestRetrieve()
	require.Equal(t, editor.NoticeSuccess, e.Confirm(ctx).Kind)

	assert.True(t, types.SameContent(stored, e.Tasks()), "got %+v", e.Tasks())
}

func TestRoundTrip_EmptyStore(t *testing.T) {
	e, _ := newRemoteEditor(t)
	ctx := context.Background()
	e.Add("local only")

	e.RequestRetrieve()
	n := e.Confirm(ctx)

	assert.Equal(t, editor.NoticeSuccess, n.Kind)
	assert.Zero(t, e.Len())
}

func TestRoundTrip_StorageFailureKeepsLocalList(t *testing.T) {
	e, backend := newRemoteEditor(t)
	ctx := context.Background()
	e.Add("local")

	// Storage goes away underneath the running server.
	require.NoError(t, backend.Detach())

	e.RequestRetrieve()
	n := e.Confirm(ctx)

	assert.True(t, n.Failed())
	assert.Contains(t, n.Text, "Failed to retrieve todos.")
	assert.Equal(t, 1, e.Len())
}

func TestLocalBackend_DirectEditing(t *testing.T) {
	backend := sqlite.NewBackend(nil)
	require.NoError(t, backend.Attach(types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()}))
	defer backend.Detach()
	ctx := context.Background()

	e := editor.New(backend)
	e.Add("offline task")
	require.Equal(t, editor.NoticeSuccess, e.Store(ctx).Kind)

	stored, err := backend.ReadAll(ctx)
	require.NoError(t, err)
	assert.True(t, types.SameContent(e.Tasks(), stored))
}
