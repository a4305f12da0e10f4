package models

import (
	"time"

	"github.com/google/uuid"
)

// Account is the identity aggregate. PasswordHash is a bcrypt digest and
// never leaves the service layer.
type Account struct {
	ID           uuid.UUID
	Email        string // unique, case-sensitive as stored, immutable
	PasswordHash string
	FirstName    string
	LastName     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewAccount constructs an Account with a generated ID and both timestamps set to now.
func NewAccount(email, passwordHash, firstName, lastName string, now time.Time) *Account {
	return &Account{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: passwordHash,
		FirstName:    firstName,
		LastName:     lastName,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// UpdateProfile replaces the names and password digest. UpdatedAt never
// moves backwards, even if the clock does.
func (a *Account) UpdateProfile(firstName, lastName, passwordHash string, now time.Time) {
	a.FirstName = firstName
	a.LastName = lastName
	a.PasswordHash = passwordHash
	if now.After(a.UpdatedAt) {
		a.UpdatedAt = now
	}
}
