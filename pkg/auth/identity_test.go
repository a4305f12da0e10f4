package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/ghuser/webapp/pkg/apperr"
)

func TestIdentityFromCtx_Missing(t *testing.T) {
	_, err := IdentityFromCtx(context.Background())
	if !errors.Is(err, ErrMissingCredential) {
		t.Fatalf("expected ErrMissingCredential, got %v", err)
	}
	if !errors.Is(err, apperr.ErrUnauthenticated) {
		t.Fatal("ErrMissingCredential must match apperr.ErrUnauthenticated")
	}
}

func TestIdentityFromCtx_NilAccountID(t *testing.T) {
	ctx := WithIdentity(context.Background(), Identity{Email: "a@example.com"})
	if _, err := IdentityFromCtx(ctx); !errors.Is(err, ErrMissingCredential) {
		t.Fatalf("expected ErrMissingCredential for uuid.Nil account, got %v", err)
	}
}

func TestWithIdentity_RoundTrip(t *testing.T) {
	want := Identity{AccountID: uuid.New(), Email: "a@example.com"}
	got, err := IdentityFromCtx(WithIdentity(context.Background(), want))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}
