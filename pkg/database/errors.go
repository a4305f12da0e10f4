package database

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL SQLSTATE codes the repositories care about.
const (
	UniqueViolation     = "23505"
	ForeignKeyViolation = "23503"
	CheckViolation      = "23514"
)

// ConstraintViolation reports whether err is a PostgreSQL error with the
// given SQLSTATE code. The violated constraint name is returned so callers
// can pick a context-specific sentinel.
func ConstraintViolation(err error, code string) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == code {
		return pgErr.ConstraintName, true
	}
	return "", false
}

// IsUniqueViolation is shorthand for ConstraintViolation(err, UniqueViolation).
func IsUniqueViolation(err error) (string, bool) {
	return ConstraintViolation(err, UniqueViolation)
}
