package model

import "errors"

// Sentinel errors shared by the store, ledger and API layers.
var (
	ErrNotFound          = errors.New("not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrLoanNotOpen       = errors.New("loan is not open")
	ErrReturnMismatch    = errors.New("return does not match loan")
	ErrDuplicateSKU      = errors.New("sku already exists")
	ErrStaleItem         = errors.New("item changed since it was read")
)

// FieldError reports a single invalid input field.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return e.Message
}
