package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/telecom-billing/internal/store"
)

// PostgreSQL error codes
const (
	// uniqueViolationCode is the PostgreSQL error code for unique constraint violations
	uniqueViolationCode = "23505"

	// foreignKeyViolationCode is the PostgreSQL error code for foreign key violations
	foreignKeyViolationCode = "23503"

	// checkViolationCode is the PostgreSQL error code for check constraint violations
	checkViolationCode = "23514"

	// notNullViolationCode is the PostgreSQL error code for not null violations
	notNullViolationCode = "23502"
)

// Entity names used in store errors and log attributes.
const (
	entitySubscriber = "subscriber"
	entityService    = "service"
	entityInvoice    = "invoice"
)

// MapError maps a database error to the matching store taxonomy sentinel,
// wrapping the original error to preserve context.
// Errors that are already classified are returned unchanged.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, store.ErrDataAccess) {
		return err
	}

	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %v", store.ErrEntryNotFound, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolationCode:
			return fmt.Errorf("%w: %v", store.ErrDuplicateEntry, err)
		case foreignKeyViolationCode:
			return fmt.Errorf(
				"%w: foreign key violation (%s): %v",
				store.ErrIntegrityViolation,
				pgErr.ConstraintName,
				err,
			)
		case checkViolationCode:
			return fmt.Errorf(
				"%w: check constraint violation (%s): %v",
				store.ErrIntegrityViolation,
				pgErr.ConstraintName,
				err,
			)
		case notNullViolationCode:
			return fmt.Errorf(
				"%w: not null violation (%s): %v",
				store.ErrIntegrityViolation,
				pgErr.ColumnName,
				err,
			)
		}
	}

	return fmt.Errorf("%w: %v", store.ErrDataAccess, err)
}

// kindOf returns the taxonomy sentinel MapError would assign to err.
func kindOf(err error) error {
	mapped := MapError(err)
	switch {
	case errors.Is(mapped, store.ErrDuplicateEntry):
		return store.ErrDuplicateEntry
	case errors.Is(mapped, store.ErrEntryNotFound):
		return store.ErrEntryNotFound
	case errors.Is(mapped, store.ErrIntegrityViolation):
		return store.ErrIntegrityViolation
	default:
		return store.ErrDataAccess
	}
}

// newStoreError wraps err into a *store.StoreError carrying the user-facing
// message. An err that already carries a StoreError is returned as is, so
// errors produced inside a transaction keep their own classification.
func newStoreError(entity, operation, message string, err error) error {
	var se *store.StoreError
	if errors.As(err, &se) {
		return err
	}
	return store.NewStoreError(entity, operation, kindOf(err), message, err)
}

// IsUniqueViolation checks if the given error is a PostgreSQL unique constraint violation.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

// IsForeignKeyViolation checks if the given error is a PostgreSQL foreign key constraint violation.
func IsForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolationCode
}

// CheckRowsAffected examines the number of rows affected by a database operation.
// If no rows were affected, it returns a StoreError of kind store.ErrEntryNotFound
// with the given user-facing message.
func CheckRowsAffected(result sql.Result, entity, operation, message string) error {
	if result == nil {
		return fmt.Errorf("nil result provided to CheckRowsAffected")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return store.NewStoreError(entity, operation, store.ErrEntryNotFound, message, nil)
	}

	return nil
}
