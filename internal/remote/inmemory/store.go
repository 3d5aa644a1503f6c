// Package inmemory implements the remote.Store contract on a mutex-guarded
// map. It reproduces the semantics the sync layer relies on — field-level
// merge, prefix collection scans, lost-update-free increments — and backs
// tests and local development.
package inmemory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/okarpov/studykeeper/internal/remote"
)

type Store struct {
	mu   sync.RWMutex
	docs map[string]map[string]any
}

func New() *Store {
	return &Store{docs: make(map[string]map[string]any)}
}

func copyFields(src map[string]any) map[string]any {
	if src == nil {
		return nil
	}
	dst := make(map[string]any, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

func (s *Store) GetDocument(ctx context.Context, path string) (*remote.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	fields, ok := s.docs[path]
	if !ok {
		return &remote.Snapshot{ID: docID(path), Exists: false}, nil
	}
	return &remote.Snapshot{ID: docID(path), Exists: true, Fields: copyFields(fields)}, nil
}

func (s *Store) SetDocument(ctx context.Context, path string, fields map[string]any, merge bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !merge {
		s.docs[path] = copyFields(fields)
		return nil
	}

	doc, ok := s.docs[path]
	if !ok {
		doc = make(map[string]any, len(fields))
		s.docs[path] = doc
	}
	for k, v := range fields {
		doc[k] = v
	}
	return nil
}

func (s *Store) StreamCollection(ctx context.Context, path string) (remote.Iterator, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	prefix := strings.TrimSuffix(path, "/") + "/"

	s.mu.RLock()
	defer s.mu.RUnlock()

	var snaps []*remote.Snapshot
	for p, fields := range s.docs {
		if !strings.HasPrefix(p, prefix) {
			continue
		}
		// Direct children only; nested subcollections are out of scope here.
		if strings.Contains(strings.TrimPrefix(p, prefix), "/") {
			continue
		}
		snaps = append(snaps, &remote.Snapshot{ID: docID(p), Exists: true, Fields: copyFields(fields)})
	}
	sort.Slice(snaps, func(i, j int) bool { return snaps[i].ID < snaps[j].ID })

	return &sliceIterator{snaps: snaps}, nil
}

func (s *Store) AtomicIncrement(ctx context.Context, path string, field string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.docs[path]
	if !ok {
		doc = make(map[string]any, 1)
		s.docs[path] = doc
	}
	current, _ := doc[field].(int64)
	doc[field] = current + 1
	return nil
}

func (s *Store) Close() error {
	return nil
}

// DocumentCount reports how many documents sit directly under the collection
// path. Test helper; not part of the remote.Store contract.
func (s *Store) DocumentCount(path string) int {
	prefix := strings.TrimSuffix(path, "/") + "/"

	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for p := range s.docs {
		if strings.HasPrefix(p, prefix) && !strings.Contains(strings.TrimPrefix(p, prefix), "/") {
			n++
		}
	}
	return n
}

func docID(path string) string {
	if i := strings.LastIndex(path, "/"); i >= 0 {
		return path[i+1:]
	}
	return path
}

type sliceIterator struct {
	snaps []*remote.Snapshot
	pos   int
}

func (it *sliceIterator) Next() (*remote.Snapshot, error) {
	if it.pos >= len(it.snaps) {
		return nil, remote.Done
	}
	snap := it.snaps[it.pos]
	it.pos++
	return snap, nil
}

func (it *sliceIterator) Stop() {}
