package postgres

import (
	stderrors "errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"

	"github.com/estate-backoffice/internal/pkg/errors"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// translateConstraint maps Postgres constraint violations onto the user-facing
// taxonomy: unique collisions become DUPLICATE_KEY, restricted foreign keys
// become HAS_DEPENDENTS. Anything else stays a generic database error.
// Both the pgx and lib/pq drivers are recognized; the test suites connect
// through lib/pq.
func translateConstraint(err error) *errors.AppError {
	switch constraintCode(err) {
	case pgUniqueViolation:
		return errors.ErrDuplicateKey
	case pgForeignKeyViolation:
		return errors.ErrHasDependents
	}
	return errors.ErrDatabaseError
}

func constraintCode(err error) string {
	var pgxErr *pgconn.PgError
	if stderrors.As(err, &pgxErr) {
		return pgxErr.Code
	}
	var pqErr *pq.Error
	if stderrors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}
