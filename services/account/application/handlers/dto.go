package handlers

import (
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/webapp/services/account/domain/models"
)

// CreateAccountRequest is the request body for POST /v1/user.
// Read-only fields (id, timestamps) are ignored if present.
type CreateAccountRequest struct {
	Email     string `json:"email"     validate:"notblank,email,max=255" example:"ada@example.com"`
	Password  string `json:"password"  validate:"notblank"               example:"correct horse battery staple"`
	FirstName string `json:"firstName" validate:"notblank,max=255"       example:"Ada"`
	LastName  string `json:"lastName"  validate:"notblank,max=255"       example:"Lovelace"`
} // @name CreateAccountRequest

// UpdateAccountRequest is the request body for PUT and PATCH /v1/user/self.
// The email cannot be changed; an email field in the body is ignored.
type UpdateAccountRequest struct {
	Password  string `json:"password"  validate:"notblank"         example:"new passphrase"`
	FirstName string `json:"firstName" validate:"notblank,max=255" example:"Augusta"`
	LastName  string `json:"lastName"  validate:"notblank,max=255" example:"King"`
} // @name UpdateAccountRequest

// AccountResponse is the public view of an account. The password digest is
// never included.
type AccountResponse struct {
	ID             uuid.UUID `json:"id"             example:"123e4567-e89b-12d3-a456-426614174000"`
	Email          string    `json:"email"          example:"ada@example.com"`
	FirstName      string    `json:"firstName"      example:"Ada"`
	LastName       string    `json:"lastName"       example:"Lovelace"`
	AccountCreated time.Time `json:"accountCreated" example:"2026-01-15T10:30:00Z"`
	AccountUpdated time.Time `json:"accountUpdated" example:"2026-01-15T10:30:00Z"`
} // @name AccountResponse

func toAccountResponse(a *models.Account) AccountResponse {
	return AccountResponse{
		ID:             a.ID,
		Email:          a.Email,
		FirstName:      a.FirstName,
		LastName:       a.LastName,
		AccountCreated: a.CreatedAt,
		AccountUpdated: a.UpdatedAt,
	}
}
