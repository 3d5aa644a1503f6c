// Package common defines shared constants and sentinel errors used across
// StudyKeeper components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Registration validation errors. Purely local, never retried.
	ErrorEmptyUserID    = errors.New("empty identifier")
	ErrorDuplicateUser  = errors.New("identifier already registered")
	ErrorSecretTooShort = errors.New("secret too short")
	ErrorSecretMismatch = errors.New("secret confirmation does not match")

	// Auth errors. No-such-user and bad-secret are deliberately
	// indistinguishable to the caller.
	ErrorInvalidCredentials = errors.New("invalid identifier or secret")

	// Session lifecycle errors (operation not allowed in current state).
	ErrorInvalidSessionState = errors.New("invalid session state")
)
