// Package services contains stateless domain services for the account
// bounded context. They run before any store interaction so invalid input
// never reaches the repository.
package services

import (
	"errors"

	"github.com/ghuser/webapp/pkg/apperr"
	pkgvalidator "github.com/ghuser/webapp/pkg/validator"
)

// ValidateRegistration checks the fields of a new account. Every failing
// field is reported, keyed by its wire name.
func ValidateRegistration(email, password, firstName, lastName string) error {
	fe := &apperr.FieldError{}
	check(fe, "email", email, "notblank,email,max=255")
	check(fe, "password", password, "notblank")
	validateNames(fe, firstName, lastName)
	return fe.OrNil()
}

// ValidateProfile checks a self-update. The password is always rotated so
// it is required here too.
func ValidateProfile(firstName, lastName, password string) error {
	fe := &apperr.FieldError{}
	validateNames(fe, firstName, lastName)
	check(fe, "password", password, "notblank")
	return fe.OrNil()
}

func validateNames(fe *apperr.FieldError, firstName, lastName string) {
	check(fe, "firstName", firstName, "notblank,max=255")
	check(fe, "lastName", lastName, "notblank,max=255")
}

// check runs a single tag and folds its message into fe.
func check(fe *apperr.FieldError, field, value, tag string) {
	err := pkgvalidator.Var(field, value, tag)
	if err == nil {
		return
	}
	var ferr *apperr.FieldError
	if errors.As(err, &ferr) {
		for f, msg := range ferr.Fields {
			fe.Add(f, msg)
		}
		return
	}
	fe.Add(field, err.Error())
}
