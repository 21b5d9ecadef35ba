package service

import "errors"

// Not found.
var (
	ErrAccountNotFound     = errors.New("account not found")
	ErrSupplierNotFound    = errors.New("supplier not found")
	ErrSupermarketNotFound = errors.New("supermarket not found")
	ErrTieUpNotFound       = errors.New("tie-up not found")
	ErrProductNotFound     = errors.New("product not found")
	ErrOrderNotFound       = errors.New("order not found")
	ErrInventoryNotFound   = errors.New("inventory record not found")
	ErrNoOrders            = errors.New("no orders found for this supermarket")
	ErrNoEligibility       = errors.New("no accepted tie-ups found for this supermarket")
)

// Rejected input or caller.
var (
	ErrValidation       = errors.New("validation failed")
	ErrForbidden        = errors.New("forbidden")
	ErrTieUpNotAccepted = errors.New("supermarket has no accepted tie-up with this supplier")
)

// Conflicts and credentials.
var (
	ErrUserAlreadyExists  = errors.New("username or email already registered")
	ErrProfileExists      = errors.New("profile already exists for this account")
	ErrProductExists      = errors.New("a product with this sku already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// validationError wraps ErrValidation with the offending field so handlers
// can echo a useful message while still matching with errors.Is.
type validationError struct{ msg string }

func (e *validationError) Error() string { return e.msg }
func (e *validationError) Unwrap() error { return ErrValidation }

func invalid(msg string) error { return &validationError{msg: msg} }
