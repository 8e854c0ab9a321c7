//go:build wireinject
// +build wireinject

package ledger

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	catalogdomain "github.com/ironvale/stockledger/internal/catalog/domain"
	"github.com/ironvale/stockledger/internal/ledger/delivery/http"
	"github.com/ironvale/stockledger/kafka"
)

// InitializeComponents initializes the ledger context with all dependencies
func InitializeComponents(
	db *gorm.DB,
	catalog catalogdomain.ProductRepository,
	publisher *kafka.Publisher,
) (*Components, error) {
	wire.Build(
		RepositorySet,
		http.NewLedgerHandler,
		wire.Struct(new(Components), "*"),
	)
	return nil, nil
}
