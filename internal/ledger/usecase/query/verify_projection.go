package query

import (
	"fmt"

	"github.com/ironvale/stockledger/internal/ledger/domain"
	"github.com/ironvale/stockledger/internal/ledger/projector"
)

// VerifyProjectionQuery represents the reconciliation check for one product
type VerifyProjectionQuery struct {
	ProductID uint
}

// VerifyProjectionResult reports the outcome of a reconciliation check
type VerifyProjectionResult struct {
	Snapshot    domain.StockSnapshot `json:"snapshot"`
	Consistent  bool                 `json:"consistent"`
	Quarantined bool                 `json:"quarantined"`
}

// VerifyProjectionHandler handles the verify projection query
type VerifyProjectionHandler struct {
	projector *projector.Projector
}

// NewVerifyProjectionHandler creates a new verify projection handler
func NewVerifyProjectionHandler(proj *projector.Projector) *VerifyProjectionHandler {
	return &VerifyProjectionHandler{projector: proj}
}

// Handle replays the product's ledger and compares it to the cached
// projection. A failed check quarantines the product; the caller is expected
// to follow up with a repair.
func (h *VerifyProjectionHandler) Handle(query VerifyProjectionQuery) (*VerifyProjectionResult, error) {
	if query.ProductID == 0 {
		return nil, fmt.Errorf("product id is required")
	}

	verifyErr := h.projector.Verify(query.ProductID)
	result := &VerifyProjectionResult{
		Consistent:  verifyErr == nil,
		Quarantined: h.projector.Quarantined(query.ProductID),
	}
	if verifyErr != nil {
		return result, verifyErr
	}

	snapshot, err := h.projector.Snapshot(query.ProductID)
	if err != nil {
		return result, err
	}
	result.Snapshot = snapshot
	return result, nil
}
