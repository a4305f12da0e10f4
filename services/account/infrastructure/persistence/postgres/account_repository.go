package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/ghuser/webapp/pkg/database"
	accountdomain "github.com/ghuser/webapp/services/account/domain"
	"github.com/ghuser/webapp/services/account/domain/models"
	"github.com/ghuser/webapp/services/account/infrastructure/persistence/postgres/db"
)

const emailConstraint = "users_email_key"

// AccountRepository implements repositories.AccountRepository against PostgreSQL.
type AccountRepository struct {
	db *database.Database
}

// NewAccountRepository returns an AccountRepository backed by the given pool.
func NewAccountRepository(database *database.Database) *AccountRepository {
	return &AccountRepository{db: database}
}

// Save inserts a new account. The users_email_key constraint decides
// duplicates, so concurrent registrations race safely.
func (r *AccountRepository) Save(ctx context.Context, account *models.Account) error {
	q := db.New(r.db.DB())
	if err := q.InsertUser(ctx, db.InsertUserParams{
		ID:             account.ID,
		Email:          account.Email,
		PasswordHash:   account.PasswordHash,
		FirstName:      account.FirstName,
		LastName:       account.LastName,
		AccountCreated: account.CreatedAt,
		AccountUpdated: account.UpdatedAt,
	}); err != nil {
		if name, ok := database.IsUniqueViolation(err); ok && name == emailConstraint {
			return accountdomain.ErrEmailTaken
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByEmail returns ErrAccountNotFound if no row matches.
func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	row, err := db.New(r.db.DB()).GetUserByEmail(ctx, email)
	if err != nil {
		return nil, mapQueryErr(err)
	}
	return rowToAccount(row), nil
}

// GetByID returns ErrAccountNotFound if no row matches.
func (r *AccountRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Account, error) {
	row, err := db.New(r.db.DB()).GetUserByID(ctx, id)
	if err != nil {
		return nil, mapQueryErr(err)
	}
	return rowToAccount(row), nil
}

// Update locks the row, applies fn and writes the result in one transaction.
func (r *AccountRepository) Update(ctx context.Context, id uuid.UUID, fn func(*models.Account) error) (*models.Account, error) {
	var updated *models.Account
	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		q := db.New(tx)
		row, err := q.GetUserByIDForUpdate(ctx, id)
		if err != nil {
			return mapQueryErr(err)
		}

		account := rowToAccount(row)
		if err := fn(account); err != nil {
			return err
		}

		if err := q.UpdateUser(ctx, db.UpdateUserParams{
			ID:             account.ID,
			FirstName:      account.FirstName,
			LastName:       account.LastName,
			PasswordHash:   account.PasswordHash,
			AccountUpdated: account.UpdatedAt,
		}); err != nil {
			return fmt.Errorf("update user: %w", err)
		}
		updated = account
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func mapQueryErr(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return accountdomain.ErrAccountNotFound
	}
	return fmt.Errorf("query user: %w", err)
}

// rowToAccount maps a db.User to a domain models.Account.
func rowToAccount(row db.User) *models.Account {
	return &models.Account{
		ID:           row.ID,
		Email:        row.Email,
		PasswordHash: row.PasswordHash,
		FirstName:    row.FirstName,
		LastName:     row.LastName,
		CreatedAt:    row.AccountCreated,
		UpdatedAt:    row.AccountUpdated,
	}
}
