package repository

import (
	"sync"
	"time"

	"github.com/ironvale/stockledger/internal/ledger/domain"
)

// InMemoryMovementRepository is a slice-backed ledger used by tests and by
// the embedded deployment mode. Append-only like its SQL counterpart.
type InMemoryMovementRepository struct {
	mu        sync.RWMutex
	movements []domain.Movement
	byProduct map[uint][]int // indexes into movements, in append order
	nextID    uint
}

func NewInMemoryMovementRepository() *InMemoryMovementRepository {
	return &InMemoryMovementRepository{
		byProduct: make(map[uint][]int),
		nextID:    1,
	}
}

func (r *InMemoryMovementRepository) Append(movement *domain.Movement) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	movement.ID = r.nextID
	r.nextID++
	if movement.CreatedAt.IsZero() {
		movement.CreatedAt = time.Now()
	}

	r.movements = append(r.movements, *movement)
	r.byProduct[movement.ProductID] = append(r.byProduct[movement.ProductID], len(r.movements)-1)
	return nil
}

func (r *InMemoryMovementRepository) FindByID(id uint) (*domain.Movement, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	// ids are assigned 1..n in slice order
	if id == 0 || int(id) > len(r.movements) {
		return nil, domain.ErrMovementNotFound
	}
	movement := r.movements[id-1]
	return &movement, nil
}

func (r *InMemoryMovementRepository) FindByProduct(productID uint) ([]domain.Movement, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	indexes := r.byProduct[productID]
	movements := make([]domain.Movement, 0, len(indexes))
	for _, i := range indexes {
		movements = append(movements, r.movements[i])
	}
	return movements, nil
}

func (r *InMemoryMovementRepository) FindByProductUpTo(productID, maxID uint) ([]domain.Movement, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var movements []domain.Movement
	for _, i := range r.byProduct[productID] {
		if r.movements[i].ID > maxID {
			break
		}
		movements = append(movements, r.movements[i])
	}
	return movements, nil
}

func (r *InMemoryMovementRepository) FindAll(limit, offset int) ([]domain.Movement, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	// newest first, matching the SQL repository
	var movements []domain.Movement
	for i := len(r.movements) - 1 - offset; i >= 0; i-- {
		movements = append(movements, r.movements[i])
		if limit > 0 && len(movements) == limit {
			break
		}
	}
	return movements, nil
}

func (r *InMemoryMovementRepository) LastID() (uint, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.nextID - 1, nil
}
