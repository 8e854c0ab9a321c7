package domain

import "errors"

// Ledger errors, split along the lines callers care about: validation errors
// mean "fix your input", ErrInsufficientStock means "this request is refused",
// and the projection errors mean "this product needs repair before further
// writes".
var (
	// Validation errors: rejected before any state change
	ErrInvalidQuantity  = errors.New("movement quantity must be positive")
	ErrInvalidDirection = errors.New("movement direction must be IN or OUT")
	ErrUnknownProduct   = errors.New("movement references unknown product")

	// Business-rule rejection: terminal for this request, never retried
	ErrInsufficientStock = errors.New("insufficient stock for outbound movement")

	// Integrity errors: the projection is corrupt and needs a repair pass
	ErrNegativeStockDetected = errors.New("replay produced negative stock: ledger corrupt")
	ErrProjectionQuarantined = errors.New("projection quarantined pending repair")
	ErrProjectionDrift       = errors.New("cached snapshot disagrees with full replay")

	ErrMovementNotFound = errors.New("movement not found")
)
