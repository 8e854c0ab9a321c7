package command

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/ironvale/stockledger/internal/catalog/domain"
	"github.com/ironvale/stockledger/internal/catalog/repository"
)

func TestCreateProduct(t *testing.T) {
	repo := repository.NewInMemoryProductRepository()
	handler := NewCreateProductHandler(repo)

	product, err := handler.Handle(CreateProductCommand{
		SKU:          "ACC-001",
		Name:         "Wireless Mouse",
		Category:     "Accessories",
		Supplier:     "Acme Supply",
		UnitCost:     decimal.NewFromFloat(19.99),
		ReorderLevel: 10,
		LeadTimeDays: 5,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if product.ID == 0 {
		t.Fatal("expected an assigned id")
	}

	found, err := repo.FindBySKU("ACC-001")
	if err != nil {
		t.Fatalf("find by sku: %v", err)
	}
	if found.Name != "Wireless Mouse" {
		t.Fatalf("name = %q", found.Name)
	}

	// duplicate SKU is refused
	_, err = handler.Handle(CreateProductCommand{SKU: "ACC-001", Name: "Other"})
	if !errors.Is(err, domain.ErrDuplicateSKU) {
		t.Fatalf("got %v, want ErrDuplicateSKU", err)
	}
}

func TestCreateProductValidation(t *testing.T) {
	repo := repository.NewInMemoryProductRepository()
	handler := NewCreateProductHandler(repo)

	if _, err := handler.Handle(CreateProductCommand{Name: ""}); err == nil {
		t.Fatal("expected error for empty name")
	}

	_, err := handler.Handle(CreateProductCommand{
		Name:     "Bad Cost",
		UnitCost: decimal.NewFromInt(-1),
	})
	if !errors.Is(err, domain.ErrNegativeCost) {
		t.Fatalf("got %v, want ErrNegativeCost", err)
	}

	_, err = handler.Handle(CreateProductCommand{
		Name:         "Bad Threshold",
		ReorderLevel: -3,
	})
	if !errors.Is(err, domain.ErrNegativeThreshold) {
		t.Fatalf("got %v, want ErrNegativeThreshold", err)
	}
}
