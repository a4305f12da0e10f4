package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/ghuser/webapp/pkg/apperr"
)

// maxPasswordBytes is bcrypt's input limit; longer inputs would be silently truncated.
const maxPasswordBytes = 72

// ErrPasswordTooLong is returned by Hash for plaintexts over 72 bytes.
// It is a field error on "password" and matches apperr.ErrValidation.
var ErrPasswordTooLong error = apperr.NewFieldError("password", fmt.Sprintf("Maximum length is %d bytes", maxPasswordBytes))

// Hasher produces and checks one-way salted password digests.
type Hasher interface {
	Hash(plaintext string) (string, error)
	// Verify reports whether plaintext matches digest. A malformed digest
	// yields false, never an error.
	Verify(plaintext, digest string) bool
}

// BcryptHasher implements Hasher with bcrypt. Digests are self-describing
// ($2a$<cost>$<salt+hash>) so Verify works across cost changes.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher returns a hasher with cost clamped to bcrypt's allowed range.
func NewBcryptHasher(cost int) *BcryptHasher {
	switch {
	case cost < bcrypt.MinCost:
		cost = bcrypt.MinCost
	case cost > bcrypt.MaxCost:
		cost = bcrypt.MaxCost
	}
	return &BcryptHasher{cost: cost}
}

// Cost returns the effective work factor.
func (h *BcryptHasher) Cost() int {
	return h.cost
}

// Hash returns a bcrypt digest of plaintext with a fresh random salt.
func (h *BcryptHasher) Hash(plaintext string) (string, error) {
	if len(plaintext) > maxPasswordBytes {
		return "", ErrPasswordTooLong
	}
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(digest), nil
}

// Verify compares plaintext against digest in constant time.
func (h *BcryptHasher) Verify(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
