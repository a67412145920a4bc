package repository

import (
	"errors"
	"strings"

	"github.com/lib/pq"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// IsUniqueViolation reports whether err is a postgres unique-constraint
// violation. When constraint is non-empty the violated constraint name
// must contain it, so callers can tell apart multiple unique columns on
// the same table.
func IsUniqueViolation(err error, constraint string) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || pqErr.Code != pgUniqueViolation {
		return false
	}
	return constraint == "" || strings.Contains(pqErr.Constraint, constraint)
}

// IsForeignKeyViolation reports whether err is a postgres foreign-key
// violation, e.g. deleting a subject still referenced by grades.
func IsForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pgForeignKeyViolation
}
