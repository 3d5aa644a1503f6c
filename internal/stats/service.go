// Package stats maintains the single shared counters record. The only write
// path is a server-side atomic increment; a read-modify-write here would lose
// updates under concurrent registrations.
package stats

import (
	"context"
	"fmt"

	"github.com/okarpov/studykeeper/internal/remote"
	"github.com/okarpov/studykeeper/internal/store"
)

// RemoteAdapter is the slice of the store adapter this service needs.
type RemoteAdapter interface {
	Get(ctx context.Context, path string) (*remote.Snapshot, error)
	Increment(ctx context.Context, path string, field string) error
}

type Service struct {
	adapter RemoteAdapter
	paths   store.Paths
}

func NewService(a RemoteAdapter, paths store.Paths) *Service {
	return &Service{adapter: a, paths: paths}
}

// IncrementUserCount bumps the registered-user counter by one.
func (s *Service) IncrementUserCount(ctx context.Context) error {
	if err := s.adapter.Increment(ctx, s.paths.GlobalStatsDoc(), "user_count"); err != nil {
		return fmt.Errorf("increment user count: %w", err)
	}
	return nil
}

// UserCount reads the registered-user counter. A missing record reads as 0.
func (s *Service) UserCount(ctx context.Context) (int64, error) {
	snap, err := s.adapter.Get(ctx, s.paths.GlobalStatsDoc())
	if err != nil {
		return 0, fmt.Errorf("read user count: %w", err)
	}
	if !snap.Exists {
		return 0, nil
	}
	switch v := snap.Fields["user_count"].(type) {
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	case float64:
		return int64(v), nil
	default:
		return 0, nil
	}
}
