package store

import (
	"errors"
	"fmt"
)

// Data-access error taxonomy. Every classified error wraps ErrDataAccess,
// so callers may match either the specific kind or the root.
var (
	// ErrDataAccess is the root of all storage failures. On its own it marks a
	// failure that could not be classified further (connectivity, transaction
	// failure, unexpected driver error).
	ErrDataAccess = errors.New("data access failure")

	// ErrDuplicateEntry is returned when an operation would violate a
	// uniqueness constraint: phone number, service name or a
	// subscriber-service pair.
	ErrDuplicateEntry = fmt.Errorf("%w: duplicate entry", ErrDataAccess)

	// ErrEntryNotFound is returned when an operation that targets a record by
	// ID requires it to exist and it does not.
	ErrEntryNotFound = fmt.Errorf("%w: entry not found", ErrDataAccess)

	// ErrIntegrityViolation is returned for foreign key, not null and check
	// constraint violations that the operation does not classify more precisely.
	ErrIntegrityViolation = fmt.Errorf("%w: integrity violation", ErrDataAccess)
)

// Kind labels used in logs and metrics.
const (
	KindOK           = "ok"
	KindDuplicate    = "duplicate"
	KindNotFound     = "not_found"
	KindIntegrity    = "integrity"
	KindDataAccess   = "data_access"
	KindInvalid      = "invalid"
	KindUnclassified = "unclassified"
)

// IsNotFoundError reports whether err is an ErrEntryNotFound.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrEntryNotFound)
}

// IsDuplicateError reports whether err is an ErrDuplicateEntry.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicateEntry)
}

// KindOf classifies err into one of the Kind labels. Validation errors from
// the domain package are reported by the caller as KindInvalid; KindOf only
// knows about storage errors.
func KindOf(err error) string {
	switch {
	case err == nil:
		return KindOK
	case errors.Is(err, ErrDuplicateEntry):
		return KindDuplicate
	case errors.Is(err, ErrEntryNotFound):
		return KindNotFound
	case errors.Is(err, ErrIntegrityViolation):
		return KindIntegrity
	case errors.Is(err, ErrDataAccess):
		return KindDataAccess
	default:
		return KindUnclassified
	}
}

// StoreError is a classified storage failure. Message is a user-facing,
// localized text; Err preserves the underlying driver error for diagnostics.
type StoreError struct {
	Entity    string // The entity type (e.g., "subscriber", "invoice")
	Operation string // The operation that failed (e.g., "add", "pay")
	Message   string // User-facing message
	Kind      error  // One of the taxonomy sentinels
	Err       error  // Original error, may be nil
}

// Error implements the error interface for StoreError.
func (e *StoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s operation on %s failed: %s: %v", e.Operation, e.Entity, e.Message, e.Err)
	}
	return fmt.Sprintf("%s operation on %s failed: %s", e.Operation, e.Entity, e.Message)
}

// Unwrap exposes both the kind and the cause, so errors.Is matches the
// taxonomy sentinel and errors.As reaches the driver error.
func (e *StoreError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// NewStoreError creates a StoreError. A nil kind defaults to ErrDataAccess.
func NewStoreError(entity, operation string, kind error, message string, err error) *StoreError {
	if kind == nil {
		kind = ErrDataAccess
	}
	return &StoreError{
		Entity:    entity,
		Operation: operation,
		Message:   message,
		Kind:      kind,
		Err:       err,
	}
}

// UserMessage returns the localized message of a StoreError in err's chain,
// or an empty string if there is none.
func UserMessage(err error) string {
	var se *StoreError
	if errors.As(err, &se) {
		return se.Message
	}
	return ""
}
