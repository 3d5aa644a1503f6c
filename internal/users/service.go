// Package users is the credential store: it maps a user identifier to a
// hashed secret plus registration metadata, and answers registration and
// authentication requests. Records live in the remote store's public
// subtree and are never deleted.
package users

import (
	"context"
	"fmt"
	"time"

	"github.com/okarpov/studykeeper/internal/common"
	"github.com/okarpov/studykeeper/internal/logging"
	"github.com/okarpov/studykeeper/internal/remote"
	"github.com/okarpov/studykeeper/internal/store"
)

// RemoteAdapter is the slice of the store adapter this service needs.
type RemoteAdapter interface {
	Get(ctx context.Context, path string) (*remote.Snapshot, error)
	Set(ctx context.Context, path string, fields map[string]any, merge bool) error
}

// Counter receives the one increment issued per successful registration.
type Counter interface {
	IncrementUserCount(ctx context.Context) error
}

// Bootstrap configures the one-time admin provisioning shortcut. It only
// fires in setup mode, only for the configured identifier, only when that
// identifier has no credential record yet, and only with the matching
// secret. Setup mode is off by default and meant to be disabled again once
// the deployment has its admin.
type Bootstrap struct {
	Enabled bool
	AdminID string
	Secret  string
}

type Service struct {
	adapter   RemoteAdapter
	paths     store.Paths
	hasher    Hasher
	counter   Counter
	bootstrap Bootstrap
	logger    logging.Logger
}

// nowFn is a test seam for the registration date.
var nowFn = time.Now

func NewService(a RemoteAdapter, paths store.Paths, h Hasher, c Counter, b Bootstrap, l logging.Logger) *Service {
	return &Service{
		adapter:   a,
		paths:     paths,
		hasher:    h,
		counter:   c,
		bootstrap: b,
		logger:    l.With("module", "users"),
	}
}

// Register validates locally, rejects duplicates, writes the credential
// record, and bumps the global user counter. Validation failures are
// synchronous and never touch the network beyond the duplicate check.
func (s *Service) Register(ctx context.Context, userID, secret, confirm string) error {
	if userID == "" {
		return common.ErrorEmptyUserID
	}
	if len(secret) < common.MinSecretLength {
		return common.ErrorSecretTooShort
	}
	if secret != confirm {
		return common.ErrorSecretMismatch
	}

	snap, err := s.adapter.Get(ctx, s.paths.CredentialDoc(userID))
	if err != nil {
		return fmt.Errorf("duplicate check: %w", err)
	}
	if snap.Exists {
		return common.ErrorDuplicateUser
	}

	if err := s.provision(ctx, userID, secret); err != nil {
		return err
	}

	s.logger.Info(ctx, "user registered", "user", userID)
	return nil
}

// Authenticate verifies the supplied secret against the stored hash. A
// missing record and a mismatched secret are reported identically. When the
// bootstrap gate is open and the reserved identifier has no record yet, the
// matching bootstrap secret provisions the account instead of failing.
func (s *Service) Authenticate(ctx context.Context, userID, secret string) error {
	if userID == "" {
		return common.ErrorInvalidCredentials
	}

	snap, err := s.adapter.Get(ctx, s.paths.CredentialDoc(userID))
	if err != nil {
		return fmt.Errorf("credential lookup: %w", err)
	}

	if !snap.Exists {
		if s.bootstrapApplies(userID, secret) {
			if err := s.provision(ctx, userID, secret); err != nil {
				return err
			}
			s.logger.Warn(ctx, "bootstrap admin provisioned on first login; disable setup mode", "user", userID)
			return nil
		}
		return common.ErrorInvalidCredentials
	}

	stored, _ := snap.Fields["password"].(string)
	if stored == "" || !s.hasher.Verify(stored, []byte(secret)) {
		return common.ErrorInvalidCredentials
	}
	return nil
}

func (s *Service) bootstrapApplies(userID, secret string) bool {
	return s.bootstrap.Enabled &&
		s.bootstrap.AdminID != "" &&
		userID == s.bootstrap.AdminID &&
		s.bootstrap.Secret != "" &&
		secret == s.bootstrap.Secret
}

func (s *Service) provision(ctx context.Context, userID, secret string) error {
	hash, err := s.hasher.Hash([]byte(secret))
	if err != nil {
		return fmt.Errorf("hash secret: %w", err)
	}

	fields := map[string]any{
		"password": hash,
		"reg_date": nowFn().UTC().Format(common.DateLayout),
	}
	if err := s.adapter.Set(ctx, s.paths.CredentialDoc(userID), fields, true); err != nil {
		return fmt.Errorf("write credential record: %w", err)
	}

	// The account exists at this point; a failed counter bump is a stats
	// blemish, not a failed registration.
	if err := s.counter.IncrementUserCount(ctx); err != nil {
		s.logger.Warn(ctx, "user counter increment failed", "user", userID, "error", err.Error())
	}
	return nil
}
