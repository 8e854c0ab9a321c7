package command

import (
	"fmt"

	"github.com/ironvale/stockledger/internal/catalog/domain"
)

// DeleteProductCommand represents the command to remove a product
type DeleteProductCommand struct {
	ProductID uint
}

// DeleteProductHandler handles product deletion
type DeleteProductHandler struct {
	repo domain.ProductRepository
}

// NewDeleteProductHandler creates a new delete product handler
func NewDeleteProductHandler(repo domain.ProductRepository) *DeleteProductHandler {
	return &DeleteProductHandler{repo: repo}
}

// Handle executes the delete product command
func (h *DeleteProductHandler) Handle(cmd DeleteProductCommand) error {
	if cmd.ProductID == 0 {
		return fmt.Errorf("product id is required")
	}

	if _, err := h.repo.FindByID(cmd.ProductID); err != nil {
		return err
	}

	if err := h.repo.Delete(cmd.ProductID); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	return nil
}
