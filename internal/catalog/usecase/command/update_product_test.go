package command

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/ironvale/stockledger/internal/catalog/domain"
	"github.com/ironvale/stockledger/internal/catalog/repository"
)

func seedProduct(t *testing.T, repo *repository.InMemoryProductRepository) *domain.Product {
	t.Helper()

	product, err := NewCreateProductHandler(repo).Handle(CreateProductCommand{
		SKU:          "KB-100",
		Name:         "Mechanical Keyboard",
		Category:     "Accessories",
		Supplier:     "Acme Supply",
		UnitCost:     decimal.NewFromFloat(79.50),
		ReorderLevel: 15,
		LeadTimeDays: 7,
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	return product
}

func TestUpdateProductPartial(t *testing.T) {
	repo := repository.NewInMemoryProductRepository()
	seeded := seedProduct(t, repo)
	handler := NewUpdateProductHandler(repo)

	newName := "Mechanical Keyboard v2"
	newLevel := 25

	updated, err := handler.Handle(UpdateProductCommand{
		ProductID:    seeded.ID,
		Name:         &newName,
		ReorderLevel: &newLevel,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if updated.Name != newName {
		t.Fatalf("name = %q", updated.Name)
	}
	if updated.ReorderLevel != newLevel {
		t.Fatalf("reorder level = %d", updated.ReorderLevel)
	}
	// untouched fields survive
	if updated.Category != "Accessories" {
		t.Fatalf("category = %q", updated.Category)
	}
	if !updated.UnitCost.Equal(decimal.NewFromFloat(79.50)) {
		t.Fatalf("unit cost = %s", updated.UnitCost)
	}
	if updated.SKU != "KB-100" {
		t.Fatalf("sku = %q", updated.SKU)
	}
}

func TestUpdateProductValidation(t *testing.T) {
	repo := repository.NewInMemoryProductRepository()
	seeded := seedProduct(t, repo)
	handler := NewUpdateProductHandler(repo)

	negCost := decimal.NewFromInt(-5)
	if _, err := handler.Handle(UpdateProductCommand{ProductID: seeded.ID, UnitCost: &negCost}); !errors.Is(err, domain.ErrNegativeCost) {
		t.Fatalf("got %v, want ErrNegativeCost", err)
	}

	negLevel := -1
	if _, err := handler.Handle(UpdateProductCommand{ProductID: seeded.ID, ReorderLevel: &negLevel}); !errors.Is(err, domain.ErrNegativeThreshold) {
		t.Fatalf("got %v, want ErrNegativeThreshold", err)
	}

	// rejected updates leave the stored product alone
	stored, err := repo.FindByID(seeded.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if stored.ReorderLevel != 15 || !stored.UnitCost.Equal(decimal.NewFromFloat(79.50)) {
		t.Fatalf("stored product mutated: level=%d cost=%s", stored.ReorderLevel, stored.UnitCost)
	}
}

func TestUpdateProductNotFound(t *testing.T) {
	repo := repository.NewInMemoryProductRepository()
	handler := NewUpdateProductHandler(repo)

	name := "Ghost"
	if _, err := handler.Handle(UpdateProductCommand{ProductID: 42, Name: &name}); !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("got %v, want ErrProductNotFound", err)
	}
}

func TestDeleteProduct(t *testing.T) {
	repo := repository.NewInMemoryProductRepository()
	seeded := seedProduct(t, repo)
	handler := NewDeleteProductHandler(repo)

	if err := handler.Handle(DeleteProductCommand{ProductID: seeded.ID}); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if _, err := repo.FindByID(seeded.ID); !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("got %v, want ErrProductNotFound after delete", err)
	}

	if err := handler.Handle(DeleteProductCommand{ProductID: seeded.ID}); !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("got %v, want ErrProductNotFound on double delete", err)
	}
}
