package domain

import (
	"time"
)

// Direction says whether a movement adds to or removes from stock
type Direction string

const (
	DirectionIn  Direction = "IN"
	DirectionOut Direction = "OUT"
)

// Valid reports whether d is a known direction
func (d Direction) Valid() bool {
	return d == DirectionIn || d == DirectionOut
}

// Sign returns the movement's effect on stock: +1 for IN, -1 for OUT
func (d Direction) Sign() int {
	if d == DirectionIn {
		return 1
	}
	return -1
}

// Common movement reasons. Reason is free text; these are the values the
// surrounding modules use.
const (
	ReasonPurchaseOrder    = "Purchase Order"
	ReasonSalesTransaction = "Sales Transaction"
	ReasonDamageReturn     = "Damage/Return"
	ReasonStockCount       = "Stock Count Adjustment"
)

// Movement is one append-only ledger entry. Once appended it is never edited
// or deleted; corrections are new compensating movements. The auto-assigned
// ID is the authoritative ledger order.
type Movement struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	ProductID  uint      `json:"product_id" gorm:"not null;index"`
	Direction  Direction `json:"direction" gorm:"type:varchar(3);not null"`
	Quantity   int       `json:"quantity" gorm:"not null"`
	Reason     string    `json:"reason"`
	Reference  string    `json:"reference,omitempty"`
	OccurredAt time.Time `json:"occurred_at" gorm:"index"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName specifies the table name
func (Movement) TableName() string {
	return "stock_movements"
}

// Delta is the signed stock effect of the movement
func (m *Movement) Delta() int {
	return m.Direction.Sign() * m.Quantity
}

// Validate checks the per-movement invariants. Product existence is checked
// separately against the catalog.
func (m *Movement) Validate() error {
	if m.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	if !m.Direction.Valid() {
		return ErrInvalidDirection
	}
	return nil
}

// MovementRepository defines the contract for ledger data access.
// Append is the only write; there is deliberately no update or delete.
type MovementRepository interface {
	Append(movement *Movement) error
	FindByID(id uint) (*Movement, error)
	FindByProduct(productID uint) ([]Movement, error)
	FindByProductUpTo(productID, maxID uint) ([]Movement, error)
	FindAll(limit, offset int) ([]Movement, error)
	LastID() (uint, error)
}
