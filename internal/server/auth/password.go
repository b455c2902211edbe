// Package auth provides the credential primitives for messagely:
// one-way password hashing and signed session tokens.
package auth

import "golang.org/x/crypto/bcrypt"

// PasswordHasher produces and verifies salted bcrypt digests. The work
// factor is injected so tests can run cheap and production can run slow.
type PasswordHasher struct {
	cost int
}

func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &PasswordHasher{cost: cost}
}

// Hash produces a salted digest of the password. bcrypt embeds a fresh
// random salt per call, so equal plaintexts yield different digests.
func (h *PasswordHasher) Hash(password string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Verify reports whether password matches digest. Mismatches and malformed
// digests both report false; verification never returns an error.
func (h *PasswordHasher) Verify(password, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}
