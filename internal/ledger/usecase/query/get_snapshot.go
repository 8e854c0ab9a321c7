package query

import (
	"fmt"

	"github.com/ironvale/stockledger/internal/ledger/domain"
	"github.com/ironvale/stockledger/internal/ledger/projector"
)

// GetSnapshotQuery represents the query for a product's stock snapshot
type GetSnapshotQuery struct {
	ProductID uint
}

// GetSnapshotHandler handles get snapshot query
type GetSnapshotHandler struct {
	projector *projector.Projector
}

// NewGetSnapshotHandler creates a new get snapshot handler
func NewGetSnapshotHandler(proj *projector.Projector) *GetSnapshotHandler {
	return &GetSnapshotHandler{projector: proj}
}

// Handle executes the get snapshot query
func (h *GetSnapshotHandler) Handle(query GetSnapshotQuery) (domain.StockSnapshot, error) {
	if query.ProductID == 0 {
		return domain.StockSnapshot{}, fmt.Errorf("product id is required")
	}
	return h.projector.Snapshot(query.ProductID)
}
