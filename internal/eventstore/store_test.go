package eventstore

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBuildID = "7d4f8a2e-5c55-4a43-9d8f-2b0b6c0f6a11"

func newStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestEventStoreAppendAndRetrieve(t *testing.T) {
	store := newStore(t)
	ctx := t.Context()

	started, err := NewEvent(testBuildID, TypeBuildStarted, BuildStartedPayload{Root: "zowe", Output: "help-site"})
	require.NoError(t, err)
	started.EventMetadata = map[string]string{"trigger": "cli"}
	require.NoError(t, store.Append(ctx, started))

	other, err := NewEvent("other-build", TypeBuildSkipped, BuildSkippedPayload{Reason: "no_changes"})
	require.NoError(t, err)
	require.NoError(t, store.Append(ctx, other))

	events, err := store.GetByBuildID(ctx, testBuildID)
	require.NoError(t, err)
	require.Len(t, events, 1)

	event := events[0]
	assert.Positive(t, event.ID())
	assert.Equal(t, TypeBuildStarted, event.Type())
	assert.Equal(t, "cli", event.Metadata()["trigger"])

	var payload BuildStartedPayload
	require.NoError(t, DecodePayload(event, &payload))
	assert.Equal(t, "zowe", payload.Root)
}

func TestEventStoreGetRange(t *testing.T) {
	store := newStore(t)
	ctx := t.Context()

	old := &BaseEvent{EventBuildID: "old", EventType: TypeBuildStarted, EventTimestamp: time.Now().Add(-48 * time.Hour), EventPayload: []byte(`{}`)}
	recent := &BaseEvent{EventBuildID: "new", EventType: TypeBuildStarted, EventTimestamp: time.Now(), EventPayload: []byte(`{}`)}
	require.NoError(t, store.Append(ctx, old))
	require.NoError(t, store.Append(ctx, recent))

	events, err := store.GetRange(ctx, time.Now().Add(-time.Hour), time.Now().Add(time.Minute))
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "new", events[0].BuildID())
}

func TestEventStorePersistsToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	store, err := NewSQLiteStore(path)
	require.NoError(t, err)
	ev, err := NewEvent(testBuildID, TypeBuildCompleted, BuildCompletedPayload{Pages: 3})
	require.NoError(t, err)
	require.NoError(t, store.Append(t.Context(), ev))
	require.NoError(t, store.Close())

	reopened, err := NewSQLiteStore(path)
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()
	events, err := reopened.GetByBuildID(t.Context(), testBuildID)
	require.NoError(t, err)
	assert.Len(t, events, 1)
}
