// Package remote defines the contract for the path-addressed remote document
// store that holds per-user study state. The store addresses records by
// hierarchical slash-separated paths, supports field-level merge writes,
// one-shot collection scans, and server-side atomic increments.
//
// Implementations live in subpackages: remote/firestore talks to the real
// backend, remote/inmemory backs tests and local development.
package remote

import (
	"context"
	"errors"
)

// Done is returned by Iterator.Next once the collection scan is exhausted.
var Done = errors.New("no more documents")

// Snapshot is a point-in-time view of a single document.
// Fields is nil when the document does not exist.
type Snapshot struct {
	ID     string
	Exists bool
	Fields map[string]any
}

// Iterator yields documents from a one-shot collection scan. A scan is not
// restartable; callers re-issue StreamCollection to scan again.
type Iterator interface {
	// Next returns the next document snapshot, or Done when exhausted.
	Next() (*Snapshot, error)

	// Stop releases resources held by the scan. Safe to call more than once.
	Stop()
}

// Store is the narrow surface of the remote document database.
//
// Contract:
//   - GetDocument: fetch one document; a missing document is reported via
//     Snapshot.Exists=false, not an error.
//   - SetDocument: write fields; merge=true performs a field-level upsert
//     leaving unsupplied fields untouched, merge=false replaces the document.
//   - StreamCollection: scan all documents directly under a collection path.
//   - AtomicIncrement: add 1 to a numeric field server-side, creating the
//     document and field if absent. Never read-modify-write.
//
// All methods must honor context cancellation and deadlines.
type Store interface {
	GetDocument(ctx context.Context, path string) (*Snapshot, error)
	SetDocument(ctx context.Context, path string, fields map[string]any, merge bool) error
	StreamCollection(ctx context.Context, path string) (Iterator, error)
	AtomicIncrement(ctx context.Context, path string, field string) error
	Close() error
}
