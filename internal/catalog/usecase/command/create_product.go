package command

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ironvale/stockledger/internal/catalog/domain"
)

// CreateProductCommand represents the command to register a catalog product
type CreateProductCommand struct {
	SKU          string
	Name         string
	Category     string
	Supplier     string
	UnitCost     decimal.Decimal
	ReorderLevel int
	LeadTimeDays int
}

// CreateProductHandler handles product creation
type CreateProductHandler struct {
	repo domain.ProductRepository
}

// NewCreateProductHandler creates a new create product handler
func NewCreateProductHandler(repo domain.ProductRepository) *CreateProductHandler {
	return &CreateProductHandler{repo: repo}
}

// Handle executes the create product command
func (h *CreateProductHandler) Handle(cmd CreateProductCommand) (*domain.Product, error) {
	if cmd.Name == "" {
		return nil, fmt.Errorf("product name is required")
	}
	if cmd.LeadTimeDays < 0 {
		return nil, fmt.Errorf("lead time cannot be negative")
	}

	product := &domain.Product{
		SKU:          cmd.SKU,
		Name:         cmd.Name,
		Category:     cmd.Category,
		Supplier:     cmd.Supplier,
		UnitCost:     cmd.UnitCost,
		ReorderLevel: cmd.ReorderLevel,
		LeadTimeDays: cmd.LeadTimeDays,
	}

	if err := product.Validate(); err != nil {
		return nil, err
	}

	if err := h.repo.Create(product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return product, nil
}
