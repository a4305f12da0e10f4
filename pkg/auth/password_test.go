package auth

import (
	"errors"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/ghuser/webapp/pkg/apperr"
)

func TestBcryptHasher_HashVerify(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	d1, err := h.Hash("correct horse")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	d2, err := h.Hash("correct horse")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}

	if d1 == d2 {
		t.Error("two hashes of the same plaintext must differ")
	}
	if !h.Verify("correct horse", d1) || !h.Verify("correct horse", d2) {
		t.Error("both digests must verify")
	}
	if h.Verify("wrong horse", d1) {
		t.Error("wrong plaintext must not verify")
	}
	if strings.Contains(d1, "correct horse") {
		t.Error("digest must not contain the plaintext")
	}
}

func TestBcryptHasher_VerifyMalformedDigest(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)
	for _, digest := range []string{"", "not-a-digest", "$2a$10$short", "$9z$04$abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ012"} {
		if h.Verify("anything", digest) {
			t.Errorf("malformed digest %q must not verify", digest)
		}
	}
}

func TestBcryptHasher_TooLong(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)
	_, err := h.Hash(strings.Repeat("p", 73))
	if !errors.Is(err, ErrPasswordTooLong) || !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("expected ErrPasswordTooLong wrapping ErrValidation, got %v", err)
	}
	if _, err := h.Hash(strings.Repeat("p", 72)); err != nil {
		t.Fatalf("72 bytes must be accepted: %v", err)
	}
}

func TestNewBcryptHasher_ClampsCost(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{0, bcrypt.MinCost},
		{-5, bcrypt.MinCost},
		{10, 10},
		{99, bcrypt.MaxCost},
	}
	for _, tt := range tests {
		if got := NewBcryptHasher(tt.in).Cost(); got != tt.want {
			t.Errorf("NewBcryptHasher(%d).Cost() = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestBcryptHasher_DigestEmbedsCost(t *testing.T) {
	h := NewBcryptHasher(5)
	d, err := h.Hash("pw")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	cost, err := bcrypt.Cost([]byte(d))
	if err != nil || cost != 5 {
		t.Fatalf("expected embedded cost 5, got %d (%v)", cost, err)
	}
	// A hasher with a different cost still verifies existing digests.
	if !NewBcryptHasher(6).Verify("pw", d) {
		t.Error("verify must use the cost embedded in the digest")
	}
}
