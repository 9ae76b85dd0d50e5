package sactorium

import "errors"

// Sentinel errors returned by the stores and the calculator. Callers
// match them with errors.Is; messages carry the specific context.
var (
	// ErrNotFound reports a lookup for an absent NCM code, product or sale.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateCode reports an attempt to register an NCM code twice.
	ErrDuplicateCode = errors.New("ncm code already registered")

	// ErrInvalidRecord reports a record that fails validation before any
	// mutation is applied.
	ErrInvalidRecord = errors.New("invalid record")

	// ErrInvalidInput reports a cost input bundle the calculator refuses
	// to compute from (negative rate, non-positive weight or cost).
	ErrInvalidInput = errors.New("invalid input")

	// ErrDivideByZero reports a non-positive quantity, caught before the
	// unit-cost division.
	ErrDivideByZero = errors.New("quantity must be positive")

	// ErrPersistence reports a failed durable write. The store's
	// in-memory state is rolled back so it keeps matching the file.
	ErrPersistence = errors.New("persistence failure")
)
