// Package firestore implements the remote.Store contract on Google Cloud
// Firestore, the backend the production deployment runs against.
package firestore

import (
	"context"
	"fmt"

	fs "cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/okarpov/studykeeper/internal/remote"
)

type Store struct {
	client *fs.Client
}

// New connects to Firestore using a raw service-account JSON bundle.
// The bundle is normalized first (see NormalizeServiceAccount); a malformed
// bundle fails here, which callers treat as a fatal startup error.
func New(ctx context.Context, projectID string, credentialsJSON []byte) (*Store, error) {
	normalized, err := NormalizeServiceAccount(credentialsJSON)
	if err != nil {
		return nil, fmt.Errorf("credential bundle: %w", err)
	}

	client, err := fs.NewClient(ctx, projectID, option.WithCredentialsJSON(normalized))
	if err != nil {
		return nil, fmt.Errorf("firestore client: %w", err)
	}
	return &Store{client: client}, nil
}

func (s *Store) GetDocument(ctx context.Context, path string) (*remote.Snapshot, error) {
	ref := s.client.Doc(path)
	if ref == nil {
		return nil, fmt.Errorf("invalid document path: %q", path)
	}

	snap, err := ref.Get(ctx)
	if status.Code(err) == codes.NotFound {
		return &remote.Snapshot{ID: ref.ID, Exists: false}, nil
	}
	if err != nil {
		return nil, err
	}
	return &remote.Snapshot{ID: ref.ID, Exists: true, Fields: snap.Data()}, nil
}

func (s *Store) SetDocument(ctx context.Context, path string, fields map[string]any, merge bool) error {
	ref := s.client.Doc(path)
	if ref == nil {
		return fmt.Errorf("invalid document path: %q", path)
	}

	var err error
	if merge {
		_, err = ref.Set(ctx, fields, fs.MergeAll)
	} else {
		_, err = ref.Set(ctx, fields)
	}
	return err
}

func (s *Store) StreamCollection(ctx context.Context, path string) (remote.Iterator, error) {
	col := s.client.Collection(path)
	if col == nil {
		return nil, fmt.Errorf("invalid collection path: %q", path)
	}
	return &docIterator{it: col.Documents(ctx)}, nil
}

func (s *Store) AtomicIncrement(ctx context.Context, path string, field string) error {
	ref := s.client.Doc(path)
	if ref == nil {
		return fmt.Errorf("invalid document path: %q", path)
	}

	// Merge-set with a server-side transform, so the document and field are
	// created on first use and concurrent increments never lose updates.
	_, err := ref.Set(ctx, map[string]any{field: fs.Increment(1)}, fs.MergeAll)
	return err
}

func (s *Store) Close() error {
	return s.client.Close()
}

type docIterator struct {
	it *fs.DocumentIterator
}

func (d *docIterator) Next() (*remote.Snapshot, error) {
	snap, err := d.it.Next()
	if err == iterator.Done {
		return nil, remote.Done
	}
	if err != nil {
		return nil, err
	}
	return &remote.Snapshot{ID: snap.Ref.ID, Exists: true, Fields: snap.Data()}, nil
}

func (d *docIterator) Stop() {
	d.it.Stop()
}
