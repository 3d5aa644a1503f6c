package store

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var (
	// ErrUnavailable marks transient failures: the call may succeed if
	// re-issued. The adapter retries these before surfacing them.
	ErrUnavailable = errors.New("remote store unavailable")

	// ErrPermissionDenied marks authorization failures. Terminal, never retried.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrNotFound marks lookups the backend rejected outright. Terminal,
	// never retried. Note that a missing document on a plain get is not an
	// error at all (remote.Snapshot.Exists is false).
	ErrNotFound = errors.New("document not found")
)

// Classify maps a raw remote-store error onto the adapter's taxonomy.
// The remote backend surfaces gRPC status errors; our own per-call timeouts
// surface context.DeadlineExceeded. Anything unrecognized passes through
// unchanged, which means it is treated as terminal.
func Classify(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	if errors.Is(err, context.Canceled) {
		return err
	}

	switch status.Code(err) {
	case codes.Unavailable, codes.DeadlineExceeded, codes.ResourceExhausted, codes.Aborted:
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	case codes.PermissionDenied, codes.Unauthenticated:
		return fmt.Errorf("%w: %w", ErrPermissionDenied, err)
	case codes.NotFound:
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	default:
		return err
	}
}
