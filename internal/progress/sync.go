package progress

import (
	"context"
	"fmt"

	"github.com/okarpov/studykeeper/internal/logging"
	"github.com/okarpov/studykeeper/internal/remote"
	"github.com/okarpov/studykeeper/internal/store"
)

// RemoteAdapter is the slice of the store adapter the synchronizer needs.
type RemoteAdapter interface {
	Set(ctx context.Context, path string, fields map[string]any, merge bool) error
	Stream(ctx context.Context, path string) ([]*remote.Snapshot, error)
}

// Synchronizer owns the merge and fan-out policy between session state and
// the remote per-user progress collection.
type Synchronizer struct {
	adapter RemoteAdapter
	paths   store.Paths
	logger  logging.Logger
}

func NewSynchronizer(a RemoteAdapter, paths store.Paths, l logging.Logger) *Synchronizer {
	return &Synchronizer{
		adapter: a,
		paths:   paths,
		logger:  l.With("module", "progress_sync"),
	}
}

// Pull scans the user's full progress collection and folds it into fresh
// mastery/difficulty sets. This is a full replace, not a merge: a record
// whose flag is not 1 stays out of the corresponding set even if an earlier
// session had it, so flags toggled off elsewhere clear correctly. There is no
// isolation against writers concurrent with the scan; a stale read costs a
// single re-toggle, nothing more.
func (s *Synchronizer) Pull(ctx context.Context, userID string) (*Sets, error) {
	snaps, err := s.adapter.Stream(ctx, s.paths.ProgressCollection(userID))
	if err != nil {
		return nil, fmt.Errorf("progress scan: %w", err)
	}

	sets := NewSets()
	for _, snap := range snaps {
		subjectID, _ := snap.Fields["subject_id"].(string)
		title, _ := snap.Fields["title"].(string)
		if subjectID == "" || title == "" {
			s.logger.Debug(ctx, "skipping malformed progress record", "doc", snap.ID)
			continue
		}
		key := Key(subjectID, title)
		if flagSet(snap.Fields["is_mastered"]) {
			sets.Mastered[key] = struct{}{}
		}
		if flagSet(snap.Fields["is_difficult"]) {
			sets.Difficult[key] = struct{}{}
		}
	}

	s.logger.Debug(ctx, "progress pulled", "user", userID,
		"mastered", len(sets.Mastered), "difficult", len(sets.Difficult))
	return sets, nil
}

// Push merge-writes a single progress point to its deterministic document.
// Only the supplied flags travel, so concurrent pushes for mastered vs.
// difficult on the same point never clobber each other, and repeating an
// identical push converges to the same remote state. The error is returned
// to the caller, who decides whether to surface or swallow it.
func (s *Synchronizer) Push(ctx context.Context, userID string, p Point) error {
	path := s.paths.ProgressDoc(userID, DocID(p.SubjectID, p.Title))
	if err := s.adapter.Set(ctx, path, p.fields(), true); err != nil {
		return fmt.Errorf("progress push %s: %w", Key(p.SubjectID, p.Title), err)
	}
	return nil
}
