package postgres

import (
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// PostgreSQL SQLSTATE codes and the constraint names created by the embedded migrations.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"

	accountsEmailConstraint = "accounts_email_key"
	linksCodeConstraint     = "links_pkey"
	linksURLConstraint      = "links_url_key"
)

// uniqueViolation reports whether err is a unique constraint violation and, when the driver
// error is available, which constraint was violated.
func uniqueViolation(err error) (constraint string, ok bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName, pgErr.Code == pgUniqueViolation
	}

	// Translated by gorm; the constraint name is lost.
	return "", errors.Is(err, gorm.ErrDuplicatedKey)
}

func isForeignKeyConstraintViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgForeignKeyViolation
	}

	return errors.Is(err, gorm.ErrForeignKeyViolated)
}
