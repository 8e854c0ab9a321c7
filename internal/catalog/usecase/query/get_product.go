package query

import (
	"fmt"

	"github.com/ironvale/stockledger/internal/catalog/domain"
)

// GetProductQuery represents the query to fetch a single product
type GetProductQuery struct {
	ProductID uint
}

// GetProductHandler handles get product query
type GetProductHandler struct {
	repo domain.ProductRepository
}

// NewGetProductHandler creates a new get product handler
func NewGetProductHandler(repo domain.ProductRepository) *GetProductHandler {
	return &GetProductHandler{repo: repo}
}

// Handle executes the get product query
func (h *GetProductHandler) Handle(query GetProductQuery) (*domain.Product, error) {
	if query.ProductID == 0 {
		return nil, fmt.Errorf("product id is required")
	}
	return h.repo.FindByID(query.ProductID)
}
