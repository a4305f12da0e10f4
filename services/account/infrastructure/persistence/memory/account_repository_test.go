package memory

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/webapp/pkg/apperr"
	accountdomain "github.com/ghuser/webapp/services/account/domain"
	"github.com/ghuser/webapp/services/account/domain/models"
)

func newAccount(email string) *models.Account {
	return models.NewAccount(email, "digest", "Ada", "Lovelace", time.Now().UTC())
}

func TestSaveAndGet(t *testing.T) {
	ctx := context.Background()
	repo := NewAccountRepository()
	a := newAccount("a@example.com")

	if err := repo.Save(ctx, a); err != nil {
		t.Fatalf("Save: %v", err)
	}

	byEmail, err := repo.GetByEmail(ctx, "a@example.com")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if byEmail.ID != a.ID {
		t.Errorf("expected id %s, got %s", a.ID, byEmail.ID)
	}

	byID, err := repo.GetByID(ctx, a.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if byID.Email != a.Email {
		t.Errorf("expected email %q, got %q", a.Email, byID.Email)
	}
}

func TestGet_NotFound(t *testing.T) {
	ctx := context.Background()
	repo := NewAccountRepository()

	if _, err := repo.GetByEmail(ctx, "missing@example.com"); !errors.Is(err, accountdomain.ErrAccountNotFound) {
		t.Errorf("GetByEmail: expected ErrAccountNotFound, got %v", err)
	}
	if _, err := repo.GetByID(ctx, uuid.New()); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("GetByID: expected ErrNotFound, got %v", err)
	}
}

func TestSave_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	repo := NewAccountRepository()

	if err := repo.Save(ctx, newAccount("a@example.com")); err != nil {
		t.Fatalf("first Save: %v", err)
	}
	err := repo.Save(ctx, newAccount("a@example.com"))
	if !errors.Is(err, accountdomain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
	if repo.Len() != 1 {
		t.Errorf("expected 1 account, got %d", repo.Len())
	}
}

func TestSave_EmailIsCaseSensitive(t *testing.T) {
	ctx := context.Background()
	repo := NewAccountRepository()

	if err := repo.Save(ctx, newAccount("a@example.com")); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := repo.Save(ctx, newAccount("A@example.com")); err != nil {
		t.Fatalf("expected distinct emails to be accepted, got %v", err)
	}
}

func TestSave_ConcurrentDuplicate(t *testing.T) {
	ctx := context.Background()
	repo := NewAccountRepository()

	const callers = 16
	var wg sync.WaitGroup
	var ok, conflicts atomic.Int32
	for range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := repo.Save(ctx, newAccount("race@example.com"))
			switch {
			case err == nil:
				ok.Add(1)
			case errors.Is(err, apperr.ErrConflict):
				conflicts.Add(1)
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if ok.Load() != 1 || conflicts.Load() != callers-1 {
		t.Fatalf("expected 1 success and %d conflicts, got %d and %d", callers-1, ok.Load(), conflicts.Load())
	}
	if repo.Len() != 1 {
		t.Errorf("expected 1 stored account, got %d", repo.Len())
	}
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	repo := NewAccountRepository()
	a := newAccount("a@example.com")
	if err := repo.Save(ctx, a); err != nil {
		t.Fatalf("Save: %v", err)
	}

	t.Run("applies fn", func(t *testing.T) {
		got, err := repo.Update(ctx, a.ID, func(acc *models.Account) error {
			acc.FirstName = "Augusta"
			return nil
		})
		if err != nil {
			t.Fatalf("Update: %v", err)
		}
		if got.FirstName != "Augusta" {
			t.Errorf("expected Augusta, got %q", got.FirstName)
		}
	})

	t.Run("fn error leaves record unchanged", func(t *testing.T) {
		sentinel := errors.New("abort")
		_, err := repo.Update(ctx, a.ID, func(acc *models.Account) error {
			acc.FirstName = "Changed"
			return sentinel
		})
		if !errors.Is(err, sentinel) {
			t.Fatalf("expected sentinel, got %v", err)
		}
		got, _ := repo.GetByID(ctx, a.ID)
		if got.FirstName != "Augusta" {
			t.Errorf("expected unchanged name, got %q", got.FirstName)
		}
	})

	t.Run("missing id", func(t *testing.T) {
		_, err := repo.Update(ctx, uuid.New(), func(*models.Account) error { return nil })
		if !errors.Is(err, accountdomain.ErrAccountNotFound) {
			t.Fatalf("expected ErrAccountNotFound, got %v", err)
		}
	})
}
