package ledger

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/ironvale/stockledger/internal/ledger/delivery/http"
	"github.com/ironvale/stockledger/internal/ledger/domain"
	"github.com/ironvale/stockledger/internal/ledger/projector"
	"github.com/ironvale/stockledger/internal/ledger/repository"
)

// Components bundles the ledger pieces the service shares across contexts.
// The projector must be the same instance everywhere so quarantine state
// and snapshots stay coherent.
type Components struct {
	Handler   *http.LedgerHandler
	Projector *projector.Projector
	Movements domain.MovementRepository
}

// ProvideMovementRepository provides the movement repository
func ProvideMovementRepository(db *gorm.DB) domain.MovementRepository {
	return repository.NewGormMovementRepositoryWithTracing(db)
}

// ProvideProjector provides the stock projector backed by the ledger
func ProvideProjector(movements domain.MovementRepository) *projector.Projector {
	return projector.New(movements)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideMovementRepository,
	ProvideProjector,
)
