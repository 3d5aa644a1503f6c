package session

import (
	"context"
	"fmt"

	"github.com/okarpov/studykeeper/internal/common"
	"github.com/okarpov/studykeeper/internal/logging"
	"github.com/okarpov/studykeeper/internal/progress"
)

// Authenticator verifies a user's secret against the credential store.
type Authenticator interface {
	Authenticate(ctx context.Context, userID, secret string) error
}

// Syncer moves progress state between the session and the remote store.
type Syncer interface {
	Pull(ctx context.Context, userID string) (*progress.Sets, error)
	Push(ctx context.Context, userID string, p progress.Point) error
}

// Manager drives sessions through the state machine
// LoggedOut → Authenticating → LinkPending → Active. Pull, push and
// credential checks all block for the adapter's full retry budget, so
// callers should keep them off latency-sensitive paths.
type Manager struct {
	auth   Authenticator
	syncer Syncer
	logger logging.Logger
}

func NewManager(a Authenticator, s Syncer, l logging.Logger) *Manager {
	return &Manager{auth: a, syncer: s, logger: l.With("module", "session")}
}

// Login authenticates and then pulls the user's full progress. The pull on
// login closes any eventual-consistency gap a prior session left behind. A
// failed pull is a warning, not a login failure: the session proceeds to
// LinkPending with empty sets and Synced=false. A failed authentication
// returns the session to LoggedOut and never triggers a pull.
func (m *Manager) Login(ctx context.Context, sess *Session, userID, secret string) error {
	if sess.State != StateLoggedOut {
		return fmt.Errorf("%w: login from %s", common.ErrorInvalidSessionState, sess.State)
	}

	sess.State = StateAuthenticating
	if err := m.auth.Authenticate(ctx, userID, secret); err != nil {
		sess.State = StateLoggedOut
		return err
	}

	sess.UserID = userID
	sets, err := m.syncer.Pull(ctx, userID)
	if err != nil {
		m.logger.Warn(ctx, "initial pull failed, session starts unsynced", "user", userID, "error", err.Error())
		sess.Sets = progress.NewSets()
		sess.Synced = false
	} else {
		sess.Sets = sets
		sess.Synced = true
	}

	sess.State = StateLinkPending
	m.logger.Info(ctx, "session linked", "session", sess.ID, "user", userID, "synced", sess.Synced)
	return nil
}

// Acknowledge is the user-confirmed gate between login and the work area.
func (m *Manager) Acknowledge(sess *Session) error {
	if sess.State != StateLinkPending {
		return fmt.Errorf("%w: acknowledge from %s", common.ErrorInvalidSessionState, sess.State)
	}
	sess.State = StateActive
	return nil
}

// SetMastered toggles a point's mastered flag. The session set is updated
// optimistically before the push; a push failure is logged and swallowed so
// a network blip never interrupts review flow. The divergence is closed by
// the next pull.
func (m *Manager) SetMastered(ctx context.Context, sess *Session, subjectID, title string, mastered bool) error {
	return m.toggle(ctx, sess, subjectID, title, progress.Point{
		SubjectID: subjectID,
		Title:     title,
		Mastered:  &mastered,
	}, sess.Sets.Mastered, mastered)
}

// SetDifficult toggles a point's difficulty flag, same policy as SetMastered.
func (m *Manager) SetDifficult(ctx context.Context, sess *Session, subjectID, title string, difficult bool) error {
	return m.toggle(ctx, sess, subjectID, title, progress.Point{
		SubjectID: subjectID,
		Title:     title,
		Difficult: &difficult,
	}, sess.Sets.Difficult, difficult)
}

func (m *Manager) toggle(ctx context.Context, sess *Session, subjectID, title string, p progress.Point, set map[string]struct{}, on bool) error {
	if sess.State != StateActive {
		return fmt.Errorf("%w: toggle from %s", common.ErrorInvalidSessionState, sess.State)
	}

	key := progress.Key(subjectID, title)
	if on {
		set[key] = struct{}{}
	} else {
		delete(set, key)
	}

	if err := m.syncer.Push(ctx, sess.UserID, p); err != nil {
		m.logger.Warn(ctx, "push swallowed, local state ahead of remote until next pull",
			"user", sess.UserID, "key", key, "error", err.Error())
		sess.Synced = false
	}
	return nil
}

// Refresh re-pulls and fully replaces the session sets. On failure the stale
// sets are retained and the error is surfaced as a recoverable warning.
func (m *Manager) Refresh(ctx context.Context, sess *Session) error {
	if sess.State != StateActive {
		return fmt.Errorf("%w: refresh from %s", common.ErrorInvalidSessionState, sess.State)
	}

	sets, err := m.syncer.Pull(ctx, sess.UserID)
	if err != nil {
		return fmt.Errorf("refresh: %w", err)
	}
	sess.Sets = sets
	sess.Synced = true
	return nil
}

// Logout wipes all session-local state. Callable from any state; the session
// instance returns to LoggedOut and holds nothing of the previous user.
func (m *Manager) Logout(ctx context.Context, sess *Session) {
	m.logger.Info(ctx, "session closed", "session", sess.ID, "user", sess.UserID)
	sess.UserID = ""
	sess.Sets = progress.NewSets()
	sess.Synced = false
	sess.State = StateLoggedOut
}
