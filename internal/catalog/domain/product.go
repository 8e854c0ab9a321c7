package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Catalog errors
var (
	ErrProductNotFound   = errors.New("product not found")
	ErrDuplicateSKU      = errors.New("product sku already exists")
	ErrNegativeCost      = errors.New("unit cost cannot be negative")
	ErrNegativeThreshold = errors.New("reorder level cannot be negative")
)

// Product represents a catalog entry. The stock engine treats products as
// read-only reference data; only catalog management mutates them.
type Product struct {
	ID           uint            `json:"id" gorm:"primaryKey"`
	SKU          string          `json:"sku" gorm:"uniqueIndex"`
	Name         string          `json:"name" gorm:"not null"`
	Category     string          `json:"category" gorm:"index"`
	Supplier     string          `json:"supplier"`
	UnitCost     decimal.Decimal `json:"unit_cost" gorm:"type:numeric(14,4);not null"`
	ReorderLevel int             `json:"reorder_level" gorm:"not null;default:0"`
	LeadTimeDays int             `json:"lead_time_days" gorm:"not null;default:0"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
	DeletedAt    gorm.DeletedAt  `json:"-" gorm:"index"`
}

// TableName specifies the table name
func (Product) TableName() string {
	return "products"
}

// Validate checks the catalog invariants before a create or update
func (p *Product) Validate() error {
	if p.UnitCost.IsNegative() {
		return ErrNegativeCost
	}
	if p.ReorderLevel < 0 {
		return ErrNegativeThreshold
	}
	return nil
}

// ListFilter narrows catalog listings
type ListFilter struct {
	Text     string // case-insensitive substring over name/category/supplier
	Category string // exact match
	Limit    int
	Offset   int
}

// ProductRepository defines the contract for catalog data access
type ProductRepository interface {
	Create(product *Product) error
	FindByID(id uint) (*Product, error)
	FindBySKU(sku string) (*Product, error)
	FindAll(filter ListFilter) ([]Product, error)
	Update(product *Product) error
	Delete(id uint) error
	Count() (int64, error)
}
