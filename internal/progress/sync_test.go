package progress

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okarpov/studykeeper/internal/logging"
	"github.com/okarpov/studykeeper/internal/remote/inmemory"
	"github.com/okarpov/studykeeper/internal/store"
)

func boolPtr(v bool) *bool { return &v }

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func newSyncFixture(t *testing.T) (*Synchronizer, *inmemory.Store, store.Paths) {
	t.Helper()
	backend := inmemory.New()
	opts := store.Options{Timeout: time.Second, MaxAttempts: 1, BackoffBase: time.Millisecond, Jitter: time.Millisecond}
	adapter := store.NewAdapter(backend, opts, testLogger())
	paths := store.Paths{AppID: "test-app"}
	return NewSynchronizer(adapter, paths, testLogger()), backend, paths
}

func TestPush_PartialFieldsPreserveOtherFlag(t *testing.T) {
	ctx := context.Background()
	sync, backend, paths := newSyncFixture(t)

	require.NoError(t, sync.Push(ctx, "alice", Point{SubjectID: "math", Title: "X", Difficult: boolPtr(true)}))
	require.NoError(t, sync.Push(ctx, "alice", Point{SubjectID: "math", Title: "X", Mastered: boolPtr(true)}))

	snap, err := backend.GetDocument(ctx, paths.ProgressDoc("alice", DocID("math", "X")))
	require.NoError(t, err)
	require.True(t, snap.Exists)
	assert.Equal(t, int64(1), snap.Fields["is_difficult"], "merge write must not clobber the other flag")
	assert.Equal(t, int64(1), snap.Fields["is_mastered"])
	assert.Equal(t, "math", snap.Fields["subject_id"])
	assert.Equal(t, "X", snap.Fields["title"])
	assert.NotEmpty(t, snap.Fields["update_at"])
}

func TestPush_RepeatedTogglesAddressSameDocument(t *testing.T) {
	ctx := context.Background()
	sync, backend, paths := newSyncFixture(t)

	require.NoError(t, sync.Push(ctx, "alice", Point{SubjectID: "math", Title: "Derivatives", Mastered: boolPtr(true)}))
	require.NoError(t, sync.Push(ctx, "alice", Point{SubjectID: "math", Title: "Derivatives", Mastered: boolPtr(false)}))
	require.NoError(t, sync.Push(ctx, "alice", Point{SubjectID: "math", Title: "Derivatives", Mastered: boolPtr(true)}))

	assert.Equal(t, 1, backend.DocumentCount(paths.ProgressCollection("alice")))
}

func TestPull_FullReplaceSemantics(t *testing.T) {
	ctx := context.Background()
	sync, backend, paths := newSyncFixture(t)

	seed := func(title string, mastered, difficult int64) {
		err := backend.SetDocument(ctx, paths.ProgressDoc("alice", DocID("math", title)), map[string]any{
			"subject_id":   "math",
			"title":        title,
			"is_mastered":  mastered,
			"is_difficult": difficult,
		}, true)
		require.NoError(t, err)
	}
	seed("A", 1, 0)
	seed("B", 0, 1)
	seed("C", 1, 1)

	sets, err := sync.Pull(ctx, "alice")
	require.NoError(t, err)

	assert.Contains(t, sets.Mastered, "math_A")
	assert.NotContains(t, sets.Mastered, "math_B", "is_mastered=0 must stay out of the mastered set")
	assert.Contains(t, sets.Mastered, "math_C")
	assert.Contains(t, sets.Difficult, "math_B")
	assert.Contains(t, sets.Difficult, "math_C")
	assert.NotContains(t, sets.Difficult, "math_A")
}

func TestPull_IgnoresMalformedRecords(t *testing.T) {
	ctx := context.Background()
	sync, backend, paths := newSyncFixture(t)

	require.NoError(t, backend.SetDocument(ctx, paths.ProgressDoc("alice", "junk"), map[string]any{
		"is_mastered": int64(1),
	}, true))

	sets, err := sync.Pull(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, sets.Mastered)
	assert.Empty(t, sets.Difficult)
}

func TestScenario_ToggleOnThenOffThenFreshPull(t *testing.T) {
	ctx := context.Background()
	sync, _, _ := newSyncFixture(t)

	require.NoError(t, sync.Push(ctx, "alice", Point{SubjectID: "math", Title: "Derivatives", Mastered: boolPtr(true)}))
	require.NoError(t, sync.Push(ctx, "alice", Point{SubjectID: "math", Title: "Derivatives", Mastered: boolPtr(false)}))

	// Fresh session: pull must not resurrect the toggled-off point.
	sets, err := sync.Pull(ctx, "alice")
	require.NoError(t, err)
	assert.NotContains(t, sets.Mastered, "math_Derivatives")
}

func TestPull_UsersArePartitioned(t *testing.T) {
	ctx := context.Background()
	sync, _, _ := newSyncFixture(t)

	require.NoError(t, sync.Push(ctx, "alice", Point{SubjectID: "math", Title: "A", Mastered: boolPtr(true)}))
	require.NoError(t, sync.Push(ctx, "bob", Point{SubjectID: "math", Title: "B", Mastered: boolPtr(true)}))

	aliceSets, err := sync.Pull(ctx, "alice")
	require.NoError(t, err)
	bobSets, err := sync.Pull(ctx, "bob")
	require.NoError(t, err)

	assert.Contains(t, aliceSets.Mastered, "math_A")
	assert.NotContains(t, aliceSets.Mastered, "math_B")
	assert.Contains(t, bobSets.Mastered, "math_B")
	assert.NotContains(t, bobSets.Mastered, "math_A")
}

func TestPoint_FieldsTriState(t *testing.T) {
	origNow := nowFn
	nowFn = func() time.Time { return time.Date(2026, 6, 7, 12, 0, 0, 0, time.UTC) }
	t.Cleanup(func() { nowFn = origNow })

	m := Point{SubjectID: "math", Title: "X", Mastered: boolPtr(false)}.fields()
	assert.Equal(t, int64(0), m["is_mastered"])
	assert.NotContains(t, m, "is_difficult", "unsupplied flag must not travel")
	assert.Equal(t, "2026-06-07", m["update_at"])
}
