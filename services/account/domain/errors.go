package domain

import (
	"fmt"

	"github.com/ghuser/webapp/pkg/apperr"
)

// Sentinel errors for the account domain. Use errors.Is() to check these;
// each also matches its apperr kind.
var (
	// ErrAccountNotFound indicates no account matches the lookup key.
	ErrAccountNotFound = fmt.Errorf("account %w", apperr.ErrNotFound)

	// ErrEmailTaken indicates another account already uses the email.
	ErrEmailTaken = fmt.Errorf("email already registered: %w", apperr.ErrConflict)
)
