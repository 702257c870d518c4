package inventory

import (
	"errors"
	"fmt"

	inventoryRepo "inventory.GO/model/repository/inventory"
)

var (
	ErrNotFound              = inventoryRepo.ErrNotFound
	ErrDuplicateSubcomponent = inventoryRepo.ErrDuplicateSubcomponent
	// ErrInsufficientStock: a mix item's stock increase needs more of a subcomponent than is on hand.
	ErrInsufficientStock = errors.New("insufficient subcomponent stock")
)

// ValidationError rejects malformed operator input before the ledger is touched.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalid(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}
