package command

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ironvale/stockledger/internal/catalog/domain"
)

// UpdateProductCommand represents the command to update catalog attributes.
// Nil pointer fields are left unchanged.
type UpdateProductCommand struct {
	ProductID    uint
	Name         *string
	Category     *string
	Supplier     *string
	UnitCost     *decimal.Decimal
	ReorderLevel *int
	LeadTimeDays *int
}

// UpdateProductHandler handles product updates
type UpdateProductHandler struct {
	repo domain.ProductRepository
}

// NewUpdateProductHandler creates a new update product handler
func NewUpdateProductHandler(repo domain.ProductRepository) *UpdateProductHandler {
	return &UpdateProductHandler{repo: repo}
}

// Handle executes the update product command
func (h *UpdateProductHandler) Handle(cmd UpdateProductCommand) (*domain.Product, error) {
	if cmd.ProductID == 0 {
		return nil, fmt.Errorf("product id is required")
	}

	product, err := h.repo.FindByID(cmd.ProductID)
	if err != nil {
		return nil, err
	}

	if cmd.Name != nil {
		product.Name = *cmd.Name
	}
	if cmd.Category != nil {
		product.Category = *cmd.Category
	}
	if cmd.Supplier != nil {
		product.Supplier = *cmd.Supplier
	}
	if cmd.UnitCost != nil {
		product.UnitCost = *cmd.UnitCost
	}
	if cmd.ReorderLevel != nil {
		product.ReorderLevel = *cmd.ReorderLevel
	}
	if cmd.LeadTimeDays != nil {
		if *cmd.LeadTimeDays < 0 {
			return nil, fmt.Errorf("lead time cannot be negative")
		}
		product.LeadTimeDays = *cmd.LeadTimeDays
	}

	if err := product.Validate(); err != nil {
		return nil, err
	}

	if err := h.repo.Update(product); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	return product, nil
}
