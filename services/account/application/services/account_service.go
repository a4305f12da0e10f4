package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ghuser/webapp/pkg/auth"
	"github.com/ghuser/webapp/pkg/logger"
	accountdomain "github.com/ghuser/webapp/services/account/domain"
	"github.com/ghuser/webapp/services/account/domain/models"
	"github.com/ghuser/webapp/services/account/domain/repositories"
	domainsvcs "github.com/ghuser/webapp/services/account/domain/services"
)

// CreateAccountInput carries the fields of a registration.
type CreateAccountInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// UpdateProfileInput carries a self-update. Password is always rotated.
type UpdateProfileInput struct {
	FirstName string
	LastName  string
	Password  string
}

// AccountService orchestrates registration, self-service profile updates and
// credential resolution. It implements auth.Resolver.
type AccountService struct {
	repo   repositories.AccountRepository
	hasher auth.Hasher
	log    logger.Logger
	now    func() time.Time

	dummyOnce   sync.Once
	dummyDigest string
}

// NewAccountService returns an AccountService wired with the given repository and hasher.
func NewAccountService(repo repositories.AccountRepository, hasher auth.Hasher, log logger.Logger) *AccountService {
	return &AccountService{repo: repo, hasher: hasher, log: log, now: utcNow}
}

// utcNow truncates to microseconds to match PostgreSQL timestamptz precision.
func utcNow() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// Create validates the input, hashes the password and stores a new account.
// A duplicate email yields ErrEmailTaken.
func (s *AccountService) Create(ctx context.Context, in CreateAccountInput) (*models.Account, error) {
	if err := domainsvcs.ValidateRegistration(in.Email, in.Password, in.FirstName, in.LastName); err != nil {
		return nil, err
	}

	digest, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	account := models.NewAccount(in.Email, digest, in.FirstName, in.LastName, s.now())
	if err := s.repo.Save(ctx, account); err != nil {
		if errors.Is(err, accountdomain.ErrEmailTaken) {
			s.log.WarnContext(ctx, "registration rejected: email taken")
			return nil, err
		}
		return nil, fmt.Errorf("save account: %w", err)
	}

	s.log.InfoContext(ctx, "account created", "account_id", account.ID)
	return account, nil
}

// GetByEmail returns ErrAccountNotFound if no account has the email.
func (s *AccountService) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	account, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("get account: %w", err)
	}
	return account, nil
}

// GetSelf returns the account of the authenticated caller.
func (s *AccountService) GetSelf(ctx context.Context, identity auth.Identity) (*models.Account, error) {
	account, err := s.repo.GetByID(ctx, identity.AccountID)
	if err != nil {
		return nil, fmt.Errorf("get account: %w", err)
	}
	return account, nil
}

// UpdateSelf replaces the caller's names and rotates their password.
func (s *AccountService) UpdateSelf(ctx context.Context, identity auth.Identity, in UpdateProfileInput) (*models.Account, error) {
	if err := domainsvcs.ValidateProfile(in.FirstName, in.LastName, in.Password); err != nil {
		return nil, err
	}

	digest, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	account, err := s.repo.Update(ctx, identity.AccountID, func(a *models.Account) error {
		a.UpdateProfile(in.FirstName, in.LastName, digest, s.now())
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("update account: %w", err)
	}

	s.log.InfoContext(ctx, "account updated", "account_id", account.ID)
	return account, nil
}

// Resolve verifies an email and password pair. Unknown emails and wrong
// passwords both yield auth.ErrInvalidCredential; an unknown email is still
// verified against a dummy digest so both paths cost one bcrypt comparison.
func (s *AccountService) Resolve(ctx context.Context, email, password string) (auth.Identity, error) {
	account, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, accountdomain.ErrAccountNotFound) {
			s.hasher.Verify(password, s.dummy())
			return auth.Identity{}, auth.ErrInvalidCredential
		}
		return auth.Identity{}, fmt.Errorf("resolve identity: %w", err)
	}

	if !s.hasher.Verify(password, account.PasswordHash) {
		return auth.Identity{}, auth.ErrInvalidCredential
	}
	return auth.Identity{AccountID: account.ID, Email: account.Email}, nil
}

// fallbackDummyDigest is a well-formed cost-10 bcrypt digest used when the
// hasher cannot produce one, so unknown emails still pay for a comparison.
const fallbackDummyDigest = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

func (s *AccountService) dummy() string {
	s.dummyOnce.Do(func() {
		digest, err := s.hasher.Hash("dummy-password-for-unknown-accounts")
		if err != nil {
			s.log.Error("failed to compute dummy digest, using fallback", "error", err)
			digest = fallbackDummyDigest
		}
		s.dummyDigest = digest
	})
	return s.dummyDigest
}
