package catalog

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/ironvale/stockledger/internal/catalog/domain"
	"github.com/ironvale/stockledger/internal/catalog/repository"
)

// ProvideProductRepository provides the product repository
func ProvideProductRepository(db *gorm.DB) domain.ProductRepository {
	return repository.NewGormProductRepositoryWithTracing(db)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideProductRepository,
)
