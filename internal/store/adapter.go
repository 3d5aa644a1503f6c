// Package store wraps the remote document store with the hardening every
// remote call needs: a per-call timeout, a bounded retry loop with
// exponential backoff and jitter, and error classification. Only classified
// transient failures are retried; authorization and not-found failures
// surface immediately.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/okarpov/studykeeper/internal/logging"
	"github.com/okarpov/studykeeper/internal/remote"
)

const (
	DefaultTimeout     = 30 * time.Second
	DefaultMaxAttempts = 3
	DefaultBackoffBase = time.Second
	DefaultJitter      = time.Second
)

// Options tunes the adapter. Zero values fall back to the defaults above.
type Options struct {
	// Timeout bounds every individual attempt.
	Timeout time.Duration

	// MaxAttempts is the total number of attempts (first try included).
	MaxAttempts int

	// BackoffBase is the first retry delay; it doubles per attempt.
	BackoffBase time.Duration

	// Jitter is the maximum random spread added to each delay.
	Jitter time.Duration
}

func (o Options) withDefaults() Options {
	if o.Timeout <= 0 {
		o.Timeout = DefaultTimeout
	}
	if o.MaxAttempts <= 0 {
		o.MaxAttempts = DefaultMaxAttempts
	}
	if o.BackoffBase <= 0 {
		o.BackoffBase = DefaultBackoffBase
	}
	if o.Jitter <= 0 {
		o.Jitter = DefaultJitter
	}
	return o
}

// Adapter decorates a remote.Store. It performs network I/O only and never
// mutates local state. Calls block for at most
// attempts*timeout + sum(backoff delays).
type Adapter struct {
	store  remote.Store
	opts   Options
	logger logging.Logger
}

func NewAdapter(s remote.Store, opts Options, l logging.Logger) *Adapter {
	return &Adapter{
		store:  s,
		opts:   opts.withDefaults(),
		logger: l.With("module", "store_adapter"),
	}
}

// do runs op under the retry policy. Each attempt gets a fresh timeout.
// Transient classifications are marked retryable; everything else stops the
// loop at once. When the budget is exhausted the last classified transient
// error is returned.
func (a *Adapter) do(ctx context.Context, name string, op func(ctx context.Context) error) error {
	attempt := 0

	b := retry.NewExponential(a.opts.BackoffBase)
	b = retry.WithJitter(a.opts.Jitter, b)
	b = retry.WithMaxRetries(uint64(a.opts.MaxAttempts-1), b)

	return retry.Do(ctx, b, func(ctx context.Context) error {
		attempt++

		cctx, cancel := context.WithTimeout(ctx, a.opts.Timeout)
		defer cancel()

		err := op(cctx)
		if err == nil {
			return nil
		}

		cerr := Classify(err)
		if errors.Is(cerr, ErrUnavailable) {
			a.logger.Warn(ctx, "transient remote failure", "op", name, "attempt", attempt, "error", err.Error())
			return retry.RetryableError(cerr)
		}
		return cerr
	})
}

// Get fetches one document. A missing document is not an error.
func (a *Adapter) Get(ctx context.Context, path string) (*remote.Snapshot, error) {
	var snap *remote.Snapshot
	err := a.do(ctx, "get", func(ctx context.Context) error {
		s, err := a.store.GetDocument(ctx, path)
		if err != nil {
			return err
		}
		snap = s
		return nil
	})
	if err != nil {
		return nil, err
	}
	return snap, nil
}

// Set writes a field map. merge=true upserts supplied fields only.
func (a *Adapter) Set(ctx context.Context, path string, fields map[string]any, merge bool) error {
	return a.do(ctx, "set", func(ctx context.Context) error {
		return a.store.SetDocument(ctx, path, fields, merge)
	})
}

// Stream scans a collection and drains it into a slice. The underlying scan
// is one-shot and not restartable, so draining happens inside a single
// attempt; a retry re-issues the whole scan.
func (a *Adapter) Stream(ctx context.Context, path string) ([]*remote.Snapshot, error) {
	var snaps []*remote.Snapshot
	err := a.do(ctx, "stream", func(ctx context.Context) error {
		it, err := a.store.StreamCollection(ctx, path)
		if err != nil {
			return err
		}
		defer it.Stop()

		collected := make([]*remote.Snapshot, 0, len(snaps))
		for {
			snap, err := it.Next()
			if err == remote.Done {
				break
			}
			if err != nil {
				return err
			}
			collected = append(collected, snap)
		}
		snaps = collected
		return nil
	})
	if err != nil {
		return nil, err
	}
	return snaps, nil
}

// Increment atomically adds 1 to a numeric field.
func (a *Adapter) Increment(ctx context.Context, path string, field string) error {
	return a.do(ctx, "increment", func(ctx context.Context) error {
		return a.store.AtomicIncrement(ctx, path, field)
	})
}
