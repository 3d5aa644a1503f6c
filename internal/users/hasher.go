package users

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Hasher abstracts the secret hashing scheme so the credential store stays
// independent of it.
type Hasher interface {
	Hash(secret []byte) (string, error)
	Verify(stored string, secret []byte) bool
}

// Supported hash scheme names, as they appear in configuration.
const (
	SchemeSHA256 = "sha256"
	SchemeBcrypt = "bcrypt"
)

// NewHasher selects a hasher by configured scheme name. An empty scheme
// means sha256, which every credential record already in the remote store
// was written with; bcrypt is for fresh deployments with no legacy records.
func NewHasher(scheme string) (Hasher, error) {
	switch scheme {
	case "", SchemeSHA256:
		return NewSHA256Hasher(), nil
	case SchemeBcrypt:
		return BcryptHasher{}, nil
	default:
		return nil, fmt.Errorf("unknown hash scheme %q", scheme)
	}
}

// SHA256Hasher stores hex SHA-256 digests. It is the default because every
// credential record already in the remote store was written in this form.
type SHA256Hasher struct{}

func NewSHA256Hasher() SHA256Hasher { return SHA256Hasher{} }

func (SHA256Hasher) Hash(secret []byte) (string, error) {
	sum := sha256.Sum256(secret)
	return hex.EncodeToString(sum[:]), nil
}

func (h SHA256Hasher) Verify(stored string, secret []byte) bool {
	candidate, _ := h.Hash(secret)
	return subtle.ConstantTimeCompare([]byte(stored), []byte(candidate)) == 1
}

// BcryptHasher is the hardened alternative for fresh deployments with no
// legacy records. Cost 0 falls back to bcrypt.DefaultCost.
type BcryptHasher struct {
	Cost int
}

func (h BcryptHasher) Hash(secret []byte) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	out, err := bcrypt.GenerateFromPassword(secret, cost)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func (BcryptHasher) Verify(stored string, secret []byte) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), secret) == nil
}
