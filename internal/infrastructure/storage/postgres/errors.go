package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"boxfactory/internal/core/apperror"
	"boxfactory/internal/infrastructure/storage"
)

// Postgres SQLSTATE codes mapped to application errors.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// MapWriteError converts constraint violations into AppErrors and wraps
// anything else with op.
func MapWriteError(table, entityName, op string, err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			field := pgErr.ColumnName
			if key, ok := storage.UniqueKeyByConstraint(table, pgErr.ConstraintName); ok {
				field = key.Field
			}
			return apperror.NewDuplicate(entityName, field, pgErr.Detail).WithCause(err)
		case pgForeignKeyViolation:
			return apperror.NewConflict(fmt.Sprintf("%s is referenced by other records", entityName)).
				WithDetail("constraint", pgErr.ConstraintName).
				WithCause(err)
		}
	}
	return fmt.Errorf("%s %s: %w", op, table, err)
}
