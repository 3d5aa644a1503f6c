package store

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/okarpov/studykeeper/internal/logging"
	"github.com/okarpov/studykeeper/internal/remote"
)

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// fakeStore counts calls and returns scripted errors. err applies to every
// call; errs, when set, is consumed one element per call (nil = success).
type fakeStore struct {
	calls int
	err   error
	errs  []error

	snap *remote.Snapshot
}

func (f *fakeStore) nextErr() error {
	f.calls++
	if f.errs != nil {
		if f.calls <= len(f.errs) {
			return f.errs[f.calls-1]
		}
		return nil
	}
	return f.err
}

func (f *fakeStore) GetDocument(ctx context.Context, path string) (*remote.Snapshot, error) {
	if err := f.nextErr(); err != nil {
		return nil, err
	}
	if f.snap != nil {
		return f.snap, nil
	}
	return &remote.Snapshot{ID: "doc", Exists: true, Fields: map[string]any{}}, nil
}

func (f *fakeStore) SetDocument(ctx context.Context, path string, fields map[string]any, merge bool) error {
	return f.nextErr()
}

func (f *fakeStore) StreamCollection(ctx context.Context, path string) (remote.Iterator, error) {
	if err := f.nextErr(); err != nil {
		return nil, err
	}
	return emptyIterator{}, nil
}

func (f *fakeStore) AtomicIncrement(ctx context.Context, path, field string) error {
	return f.nextErr()
}

func (f *fakeStore) Close() error { return nil }

type emptyIterator struct{}

func (emptyIterator) Next() (*remote.Snapshot, error) { return nil, remote.Done }
func (emptyIterator) Stop()                           {}

func fastOptions(attempts int) Options {
	return Options{
		Timeout:     time.Second,
		MaxAttempts: attempts,
		BackoffBase: time.Millisecond,
		Jitter:      time.Millisecond,
	}
}

func TestAdapter_RetryCeiling(t *testing.T) {
	fake := &fakeStore{err: status.Error(codes.Unavailable, "backend down")}
	a := NewAdapter(fake, fastOptions(3), testLogger())

	_, err := a.Get(context.Background(), "a/b/c/d")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, 3, fake.calls, "every configured attempt must be used, no more")
}

func TestAdapter_NoRetryOnPermissionDenied(t *testing.T) {
	fake := &fakeStore{err: status.Error(codes.PermissionDenied, "nope")}
	a := NewAdapter(fake, fastOptions(3), testLogger())

	err := a.Set(context.Background(), "a/b/c/d", map[string]any{"x": 1}, true)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPermissionDenied)
	assert.Equal(t, 1, fake.calls)
}

func TestAdapter_NoRetryOnNotFound(t *testing.T) {
	fake := &fakeStore{err: status.Error(codes.NotFound, "gone")}
	a := NewAdapter(fake, fastOptions(3), testLogger())

	_, err := a.Stream(context.Background(), "a/b/c")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 1, fake.calls)
}

func TestAdapter_RecoversAfterTransientFailures(t *testing.T) {
	fake := &fakeStore{errs: []error{
		status.Error(codes.Unavailable, "blip"),
		status.Error(codes.DeadlineExceeded, "slow"),
		nil,
	}}
	a := NewAdapter(fake, fastOptions(4), testLogger())

	snap, err := a.Get(context.Background(), "a/b/c/d")

	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.Equal(t, 3, fake.calls)
}

func TestAdapter_IncrementRetriesTransient(t *testing.T) {
	fake := &fakeStore{errs: []error{status.Error(codes.ResourceExhausted, "quota"), nil}}
	a := NewAdapter(fake, fastOptions(3), testLogger())

	require.NoError(t, a.Increment(context.Background(), "a/b/c/d", "user_count"))
	assert.Equal(t, 2, fake.calls)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		in   error
		want error
	}{
		{"unavailable", status.Error(codes.Unavailable, "x"), ErrUnavailable},
		{"deadline code", status.Error(codes.DeadlineExceeded, "x"), ErrUnavailable},
		{"resource exhausted", status.Error(codes.ResourceExhausted, "x"), ErrUnavailable},
		{"aborted", status.Error(codes.Aborted, "x"), ErrUnavailable},
		{"context deadline", context.DeadlineExceeded, ErrUnavailable},
		{"permission denied", status.Error(codes.PermissionDenied, "x"), ErrPermissionDenied},
		{"unauthenticated", status.Error(codes.Unauthenticated, "x"), ErrPermissionDenied},
		{"not found", status.Error(codes.NotFound, "x"), ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, Classify(tt.in), tt.want)
		})
	}

	t.Run("nil stays nil", func(t *testing.T) {
		assert.NoError(t, Classify(nil))
	})

	t.Run("unknown error passes through", func(t *testing.T) {
		plain := errors.New("boom")
		got := Classify(plain)
		assert.ErrorIs(t, got, plain)
		assert.NotErrorIs(t, got, ErrUnavailable)
	})

	t.Run("cancellation passes through", func(t *testing.T) {
		got := Classify(context.Canceled)
		assert.ErrorIs(t, got, context.Canceled)
		assert.NotErrorIs(t, got, ErrUnavailable)
	})
}

func TestPaths(t *testing.T) {
	p := Paths{AppID: "highschool-pro-prod"}

	assert.Equal(t, "artifacts/highschool-pro-prod/users/alice/progress", p.ProgressCollection("alice"))
	assert.Equal(t, "artifacts/highschool-pro-prod/users/alice/progress/abc", p.ProgressDoc("alice", "abc"))
	assert.Equal(t, "artifacts/highschool-pro-prod/public/data/users/alice", p.CredentialDoc("alice"))
	assert.Equal(t, "artifacts/highschool-pro-prod/public/data/stats/global", p.GlobalStatsDoc())
}
