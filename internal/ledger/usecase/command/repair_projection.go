package command

import (
	"fmt"

	"github.com/ironvale/stockledger/internal/ledger/domain"
	"github.com/ironvale/stockledger/internal/ledger/projector"
)

// RepairProjectionCommand represents the command to rebuild a product's
// projection from a full ledger replay
type RepairProjectionCommand struct {
	ProductID uint
}

// RepairProjectionHandler handles the repair projection command
type RepairProjectionHandler struct {
	projector *projector.Projector
}

// NewRepairProjectionHandler creates a new repair projection handler
func NewRepairProjectionHandler(proj *projector.Projector) *RepairProjectionHandler {
	return &RepairProjectionHandler{projector: proj}
}

// Handle executes the repair projection command. If the replay itself is
// inconsistent the product stays quarantined and the error says why.
func (h *RepairProjectionHandler) Handle(cmd RepairProjectionCommand) (domain.StockSnapshot, error) {
	if cmd.ProductID == 0 {
		return domain.StockSnapshot{}, fmt.Errorf("product id is required")
	}
	return h.projector.Repair(cmd.ProductID)
}
