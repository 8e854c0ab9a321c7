package query

import (
	"fmt"

	"github.com/ironvale/stockledger/internal/ledger/domain"
)

// ListMovementsQuery represents the query to list ledger entries
type ListMovementsQuery struct {
	ProductID uint // 0 lists across all products, newest first
	Limit     int
	Offset    int
}

// ListMovementsHandler handles list movements query
type ListMovementsHandler struct {
	movements domain.MovementRepository
}

// NewListMovementsHandler creates a new list movements handler
func NewListMovementsHandler(movements domain.MovementRepository) *ListMovementsHandler {
	return &ListMovementsHandler{movements: movements}
}

// Handle executes the list movements query
func (h *ListMovementsHandler) Handle(query ListMovementsQuery) ([]domain.Movement, error) {
	if query.ProductID != 0 {
		movements, err := h.movements.FindByProduct(query.ProductID)
		if err != nil {
			return nil, fmt.Errorf("failed to list movements: %w", err)
		}
		return movements, nil
	}

	if query.Limit == 0 {
		query.Limit = 50
	}
	if query.Limit > 500 {
		query.Limit = 500
	}

	movements, err := h.movements.FindAll(query.Limit, query.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list movements: %w", err)
	}
	return movements, nil
}
