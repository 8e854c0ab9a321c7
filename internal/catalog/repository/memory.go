package repository

import (
	"sort"
	"strings"
	"sync"

	"github.com/ironvale/stockledger/internal/catalog/domain"
)

// InMemoryProductRepository is a map-backed catalog used by tests and by the
// embedded (no database) deployment mode.
type InMemoryProductRepository struct {
	mu       sync.RWMutex
	products map[uint]domain.Product
	nextID   uint
}

func NewInMemoryProductRepository() *InMemoryProductRepository {
	return &InMemoryProductRepository{
		products: make(map[uint]domain.Product),
		nextID:   1,
	}
}

func (r *InMemoryProductRepository) Create(product *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if product.SKU != "" {
		for _, existing := range r.products {
			if existing.SKU == product.SKU {
				return domain.ErrDuplicateSKU
			}
		}
	}

	if product.ID == 0 {
		product.ID = r.nextID
	}
	if product.ID >= r.nextID {
		r.nextID = product.ID + 1
	}
	r.products[product.ID] = *product
	return nil
}

func (r *InMemoryProductRepository) FindByID(id uint) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return &product, nil
}

func (r *InMemoryProductRepository) FindBySKU(sku string) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, product := range r.products {
		if product.SKU == sku {
			p := product
			return &p, nil
		}
	}
	return nil, domain.ErrProductNotFound
}

func (r *InMemoryProductRepository) FindAll(filter domain.ListFilter) ([]domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var products []domain.Product
	for _, product := range r.products {
		if matches(product, filter) {
			products = append(products, product)
		}
	}

	// Stable order regardless of map iteration
	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })

	if filter.Offset > 0 {
		if filter.Offset >= len(products) {
			return nil, nil
		}
		products = products[filter.Offset:]
	}
	if filter.Limit > 0 && len(products) > filter.Limit {
		products = products[:filter.Limit]
	}
	return products, nil
}

func matches(product domain.Product, filter domain.ListFilter) bool {
	if filter.Category != "" && product.Category != filter.Category {
		return false
	}
	if filter.Text != "" {
		needle := strings.ToLower(filter.Text)
		if !strings.Contains(strings.ToLower(product.Name), needle) &&
			!strings.Contains(strings.ToLower(product.Category), needle) &&
			!strings.Contains(strings.ToLower(product.Supplier), needle) {
			return false
		}
	}
	return true
}

func (r *InMemoryProductRepository) Update(product *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[product.ID]; !ok {
		return domain.ErrProductNotFound
	}
	r.products[product.ID] = *product
	return nil
}

func (r *InMemoryProductRepository) Delete(id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return domain.ErrProductNotFound
	}
	delete(r.products, id)
	return nil
}

func (r *InMemoryProductRepository) Count() (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.products)), nil
}
