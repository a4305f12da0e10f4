package auth

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/ghuser/webapp/pkg/apperr"
)

func TestAuthorize(t *testing.T) {
	owner := &Identity{AccountID: uuid.New(), Email: "owner@example.com"}
	other := &Identity{AccountID: uuid.New(), Email: "other@example.com"}
	productOwner := owner.AccountID

	tests := []struct {
		name     string
		identity *Identity
		action   Action
		wantErr  error
	}{
		{"anonymous read one", nil, ReadOne, nil},
		{"anonymous read all", nil, ReadAll, nil},
		{"other reads one", other, ReadOne, nil},
		{"anonymous read mine", nil, ReadMine, apperr.ErrUnauthenticated},
		{"owner read mine", owner, ReadMine, nil},
		{"anonymous create", nil, Create, apperr.ErrUnauthenticated},
		{"other create", other, Create, nil},
		{"owner update", owner, Update, nil},
		{"owner delete", owner, Delete, nil},
		{"other update", other, Update, apperr.ErrForbidden},
		{"other delete", other, Delete, apperr.ErrForbidden},
		{"anonymous update", nil, Update, apperr.ErrUnauthenticated},
		{"anonymous delete", nil, Delete, apperr.ErrUnauthenticated},
		{"unknown action", owner, Action(42), apperr.ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Authorize(tt.identity, productOwner, tt.action)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("expected allow, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestAuthorize_ForbiddenIsNotUnauthenticated(t *testing.T) {
	other := &Identity{AccountID: uuid.New()}
	err := Authorize(other, uuid.New(), Delete)
	if errors.Is(err, apperr.ErrUnauthenticated) {
		t.Fatal("a verified non-owner must get Forbidden, not Unauthenticated")
	}
	if !errors.Is(err, ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}
}

func TestAction_String(t *testing.T) {
	if Update.String() != "update" || ReadMine.String() != "read-mine" {
		t.Errorf("unexpected names: %s %s", Update, ReadMine)
	}
	if Action(99).String() != "action(99)" {
		t.Errorf("unexpected fallback: %s", Action(99))
	}
}
