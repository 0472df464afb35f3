// backend-go/internal/domain/errors.go
package domain

import "errors"

var (
	// ErrNotFound is returned when a record id does not exist in its collection.
	ErrNotFound = errors.New("record not found")

	// ErrValidation is returned when required form fields are missing or malformed.
	// Rejected before any write is attempted.
	ErrValidation = errors.New("validation failed")

	// ErrDuplicateProduct is returned when a product save matches an existing
	// record on every field (name/sku/batch/notes case-insensitively, category
	// exactly). The check is a read-then-write scan, not an atomic constraint.
	ErrDuplicateProduct = errors.New("duplicate product")
)
