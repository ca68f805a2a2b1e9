// Package password compares submitted login passwords with the secret stored on a member.
package password

import (
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Scheme is how member secrets are stored: it checks submitted passwords against a stored
// secret and turns a newly chosen password into the value to store.
type Scheme interface {
	Matches(stored, submitted string) bool
	Hash(plain string) (string, error)
	// Hashed reports whether stored secrets are one-way hashes. Hashed secrets are never
	// shown back to members.
	Hashed() bool
}

// Plaintext requires an exact, case-sensitive match. The comparison runs in constant time
// for equal-length inputs; the contract is plain string equality.
type Plaintext struct{}

func (Plaintext) Matches(stored, submitted string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(submitted)) == 1
}

// Hash stores plain as is.
func (Plaintext) Hash(plain string) (string, error) { return plain, nil }

func (Plaintext) Hashed() bool { return false }

// Bcrypt treats the stored secret as a bcrypt hash. An empty stored secret never matches.
type Bcrypt struct{}

func (Bcrypt) Matches(stored, submitted string) bool {
	if stored == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(submitted)) == nil
}

func (Bcrypt) Hash(plain string) (string, error) { return Hash(plain) }

func (Bcrypt) Hashed() bool { return true }

// Hash produces a bcrypt hash suitable for Bcrypt.
func Hash(plain string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(h), nil
}

// ForMode returns the scheme for a config password mode ("plaintext" or "bcrypt").
func ForMode(mode string) (Scheme, error) {
	switch mode {
	case "", "plaintext":
		return Plaintext{}, nil
	case "bcrypt":
		return Bcrypt{}, nil
	default:
		return nil, fmt.Errorf("unknown password mode %q", mode)
	}
}
