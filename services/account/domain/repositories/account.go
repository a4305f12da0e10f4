package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/ghuser/webapp/services/account/domain/models"
)

// AccountRepository is the persistence interface for the Account aggregate.
// The domain layer owns this interface; infrastructure implements it.
type AccountRepository interface {
	// Save inserts a new account. Returns ErrEmailTaken when the email is
	// already registered, decided atomically by the store.
	Save(ctx context.Context, account *models.Account) error

	// GetByEmail returns ErrAccountNotFound when no account has the email.
	GetByEmail(ctx context.Context, email string) (*models.Account, error)

	// GetByID returns ErrAccountNotFound when no account has the id.
	GetByID(ctx context.Context, id uuid.UUID) (*models.Account, error)

	// Update locks the account, applies fn and persists the result in one
	// unit of work. fn returning an error aborts without writing.
	Update(ctx context.Context, id uuid.UUID, fn func(*models.Account) error) (*models.Account, error)
}
