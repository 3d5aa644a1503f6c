// Package session owns the process-local lifecycle of one user's study
// session: the login state machine, the optimistic mastery/difficulty sets,
// and the orchestration of pulls and pushes around them.
package session

import (
	"github.com/google/uuid"

	"github.com/okarpov/studykeeper/internal/progress"
)

// State is the session's position in the login state machine.
type State int

const (
	StateLoggedOut State = iota
	StateAuthenticating
	StateLinkPending
	StateActive
)

func (s State) String() string {
	switch s {
	case StateLoggedOut:
		return "logged_out"
	case StateAuthenticating:
		return "authenticating"
	case StateLinkPending:
		return "link_pending"
	case StateActive:
		return "active"
	default:
		return "unknown"
	}
}

// Session is the explicit per-session context: ephemeral, exclusively owned
// by one user, never shared, wiped entirely on logout. Synced is false while
// local state may diverge from the remote store (a failed pull or a swallowed
// push); the next successful pull flips it back.
type Session struct {
	ID     string
	UserID string
	State  State
	Sets   *progress.Sets
	Synced bool
}

func New() *Session {
	return &Session{
		ID:    uuid.NewString(),
		State: StateLoggedOut,
		Sets:  progress.NewSets(),
	}
}
