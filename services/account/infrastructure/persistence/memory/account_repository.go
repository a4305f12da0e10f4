// Package memory provides an in-process AccountRepository for tests. It
// enforces the same uniqueness rules as the users table.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	accountdomain "github.com/ghuser/webapp/services/account/domain"
	"github.com/ghuser/webapp/services/account/domain/models"
)

// AccountRepository stores accounts in maps guarded by a mutex.
type AccountRepository struct {
	mu      sync.Mutex
	byID    map[uuid.UUID]*models.Account
	byEmail map[string]uuid.UUID
}

// NewAccountRepository returns an empty repository.
func NewAccountRepository() *AccountRepository {
	return &AccountRepository{
		byID:    make(map[uuid.UUID]*models.Account),
		byEmail: make(map[string]uuid.UUID),
	}
}

// Save inserts a copy of account. The email check and insert happen under
// one lock so concurrent registrations cannot both succeed.
func (r *AccountRepository) Save(_ context.Context, account *models.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byEmail[account.Email]; taken {
		return accountdomain.ErrEmailTaken
	}
	stored := *account
	r.byID[account.ID] = &stored
	r.byEmail[account.Email] = account.ID
	return nil
}

// GetByEmail returns a copy of the account registered under email.
func (r *AccountRepository) GetByEmail(_ context.Context, email string) (*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, accountdomain.ErrAccountNotFound
	}
	out := *r.byID[id]
	return &out, nil
}

// GetByID returns a copy of the account with id.
func (r *AccountRepository) GetByID(_ context.Context, id uuid.UUID) (*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.byID[id]
	if !ok {
		return nil, accountdomain.ErrAccountNotFound
	}
	out := *a
	return &out, nil
}

// Update applies fn to a working copy and stores it only if fn succeeds.
func (r *AccountRepository) Update(_ context.Context, id uuid.UUID, fn func(*models.Account) error) (*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.byID[id]
	if !ok {
		return nil, accountdomain.ErrAccountNotFound
	}
	working := *a
	if err := fn(&working); err != nil {
		return nil, err
	}
	r.byID[id] = &working
	out := working
	return &out, nil
}

// Len reports the number of stored accounts.
func (r *AccountRepository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byID)
}
