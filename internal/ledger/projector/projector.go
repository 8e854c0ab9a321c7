// Package projector folds the movement ledger into per-product stock
// snapshots. The projector is the only component that caches derived stock
// state; everything it holds can be rebuilt from the ledger at any time.
package projector

import (
	"errors"
	"fmt"
	"sync"

	"github.com/ironvale/stockledger/internal/ledger/domain"
	"github.com/ironvale/stockledger/pkg/logger"
)

// productState is one product's cached projection plus its write lock.
// The per-product mutex serializes appends for that product while leaving
// appends for other products fully parallel.
type productState struct {
	mu          sync.RWMutex
	loaded      bool
	snapshot    domain.StockSnapshot
	quarantined bool
}

// Projector maintains current-stock snapshots over a movement ledger.
type Projector struct {
	movements domain.MovementRepository

	// baseline quantities counted before the first ledger entry,
	// keyed by product id; absent means zero
	baselines map[uint]int

	mu     sync.Mutex
	states map[uint]*productState
}

// Option configures a Projector
type Option func(*Projector)

// WithBaselines seeds pre-ledger stock quantities per product
func WithBaselines(baselines map[uint]int) Option {
	return func(p *Projector) {
		for id, qty := range baselines {
			p.baselines[id] = qty
		}
	}
}

// New creates a projector over the given ledger
func New(movements domain.MovementRepository, opts ...Option) *Projector {
	p := &Projector{
		movements: movements,
		baselines: make(map[uint]int),
		states:    make(map[uint]*productState),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Projector) state(productID uint) *productState {
	p.mu.Lock()
	defer p.mu.Unlock()

	st, ok := p.states[productID]
	if !ok {
		st = &productState{}
		p.states[productID] = st
	}
	return st
}

// load populates the state from a full replay. Caller holds st.mu.
// Integrity errors quarantine the product; transient read errors do not.
func (p *Projector) load(productID uint, st *productState) error {
	snapshot, err := p.replay(productID, 0)
	if err != nil {
		if errors.Is(err, domain.ErrNegativeStockDetected) {
			st.quarantined = true
			logger.WithComponent("projector").Error().
				Err(err).
				Uint("product_id", productID).
				Msg("Ledger replay inconsistent, product quarantined")
		}
		return err
	}
	st.snapshot = snapshot
	st.loaded = true
	return nil
}

// replay folds the ledger for one product from the baseline. maxID of 0
// replays the whole ledger. Fails the moment any prefix goes negative.
func (p *Projector) replay(productID, maxID uint) (domain.StockSnapshot, error) {
	var movements []domain.Movement
	var err error
	if maxID == 0 {
		movements, err = p.movements.FindByProduct(productID)
	} else {
		movements, err = p.movements.FindByProductUpTo(productID, maxID)
	}
	if err != nil {
		return domain.StockSnapshot{}, fmt.Errorf("failed to read ledger: %w", err)
	}

	snapshot := domain.StockSnapshot{
		ProductID:    productID,
		CurrentStock: p.baselines[productID],
	}
	for _, movement := range movements {
		snapshot.CurrentStock += movement.Delta()
		snapshot.AsOfMovementID = movement.ID
		if snapshot.CurrentStock < 0 {
			return domain.StockSnapshot{}, fmt.Errorf(
				"%w: product %d at movement %d reaches %d",
				domain.ErrNegativeStockDetected, productID, movement.ID, snapshot.CurrentStock,
			)
		}
	}
	return snapshot, nil
}

// CurrentStock returns the product's projected quantity on hand
func (p *Projector) CurrentStock(productID uint) (int, error) {
	snapshot, err := p.Snapshot(productID)
	if err != nil {
		return 0, err
	}
	return snapshot.CurrentStock, nil
}

// Snapshot returns the cached projection, loading it from the ledger on
// first access. Readers never observe a half-applied append.
func (p *Projector) Snapshot(productID uint) (domain.StockSnapshot, error) {
	st := p.state(productID)

	st.mu.RLock()
	if st.loaded && !st.quarantined {
		snapshot := st.snapshot
		st.mu.RUnlock()
		return snapshot, nil
	}
	quarantined := st.quarantined
	st.mu.RUnlock()

	if quarantined {
		return domain.StockSnapshot{}, fmt.Errorf("%w: product %d", domain.ErrProjectionQuarantined, productID)
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	if st.quarantined {
		return domain.StockSnapshot{}, fmt.Errorf("%w: product %d", domain.ErrProjectionQuarantined, productID)
	}
	if !st.loaded {
		if err := p.load(productID, st); err != nil {
			return domain.StockSnapshot{}, err
		}
	}
	return st.snapshot, nil
}

// ApplyAppend runs the serialized check-append-project sequence for one
// product. The callback receives the current stock, validates the request
// against it and appends the movement to the ledger; the projector then
// folds the appended movement into the snapshot before releasing the
// product lock. Appends for different products proceed in parallel.
func (p *Projector) ApplyAppend(productID uint, fn func(currentStock int) (*domain.Movement, error)) (domain.StockSnapshot, error) {
	st := p.state(productID)

	st.mu.Lock()
	defer st.mu.Unlock()

	if st.quarantined {
		return domain.StockSnapshot{}, fmt.Errorf("%w: product %d", domain.ErrProjectionQuarantined, productID)
	}
	if !st.loaded {
		if err := p.load(productID, st); err != nil {
			return domain.StockSnapshot{}, err
		}
	}

	movement, err := fn(st.snapshot.CurrentStock)
	if err != nil {
		return domain.StockSnapshot{}, err
	}

	newStock := st.snapshot.CurrentStock + movement.Delta()
	if newStock < 0 {
		// The callback is expected to refuse these before appending; if one
		// slipped through, the ledger now disagrees with the non-negativity
		// invariant and the projection must not advance past it.
		st.quarantined = true
		logger.WithComponent("projector").Error().
			Uint("product_id", productID).
			Uint("movement_id", movement.ID).
			Int("projected_stock", newStock).
			Msg("Appended movement drives stock negative, product quarantined")
		return domain.StockSnapshot{}, fmt.Errorf(
			"%w: product %d at movement %d reaches %d",
			domain.ErrNegativeStockDetected, productID, movement.ID, newStock,
		)
	}

	st.snapshot.CurrentStock = newStock
	st.snapshot.AsOfMovementID = movement.ID
	return st.snapshot, nil
}

// Reconstruct replays the full ledger for one product without touching the
// cache. Used for verification and repair.
func (p *Projector) Reconstruct(productID uint) (domain.StockSnapshot, error) {
	return p.replay(productID, 0)
}

// ReconstructUpTo replays the ledger prefix ending at maxID
func (p *Projector) ReconstructUpTo(productID, maxID uint) (domain.StockSnapshot, error) {
	return p.replay(productID, maxID)
}

// Verify checks that the cached snapshot matches a full replay. On any
// disagreement the product is quarantined until repaired.
func (p *Projector) Verify(productID uint) error {
	st := p.state(productID)

	st.mu.Lock()
	defer st.mu.Unlock()

	replayed, err := p.replay(productID, 0)
	if err != nil {
		if errors.Is(err, domain.ErrNegativeStockDetected) {
			st.quarantined = true
			logger.WithComponent("projector").Error().
				Err(err).
				Uint("product_id", productID).
				Msg("Ledger replay inconsistent, product quarantined")
		}
		return err
	}

	if !st.loaded {
		st.snapshot = replayed
		st.loaded = true
		return nil
	}

	if st.snapshot != replayed {
		st.quarantined = true
		logger.WithComponent("projector").Error().
			Uint("product_id", productID).
			Int("cached_stock", st.snapshot.CurrentStock).
			Int("replayed_stock", replayed.CurrentStock).
			Uint("cached_as_of", st.snapshot.AsOfMovementID).
			Uint("replayed_as_of", replayed.AsOfMovementID).
			Msg("Snapshot drift detected, product quarantined")
		return fmt.Errorf("%w: product %d cached %d@%d replayed %d@%d",
			domain.ErrProjectionDrift, productID,
			st.snapshot.CurrentStock, st.snapshot.AsOfMovementID,
			replayed.CurrentStock, replayed.AsOfMovementID)
	}

	return nil
}

// Repair rebuilds the projection from a full replay and lifts the
// quarantine if the replay is clean.
func (p *Projector) Repair(productID uint) (domain.StockSnapshot, error) {
	st := p.state(productID)

	st.mu.Lock()
	defer st.mu.Unlock()

	replayed, err := p.replay(productID, 0)
	if err != nil {
		if errors.Is(err, domain.ErrNegativeStockDetected) {
			st.quarantined = true
		}
		return domain.StockSnapshot{}, err
	}

	st.snapshot = replayed
	st.loaded = true
	st.quarantined = false

	logger.WithComponent("projector").Info().
		Uint("product_id", productID).
		Int("current_stock", replayed.CurrentStock).
		Uint("as_of_movement_id", replayed.AsOfMovementID).
		Msg("Projection repaired")

	return replayed, nil
}

// Quarantined reports whether the product's projection is refusing writes
func (p *Projector) Quarantined(productID uint) bool {
	st := p.state(productID)
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.quarantined
}

// QuarantinedCount returns how many products are currently quarantined.
// Exposed as a gauge on the metrics endpoint.
func (p *Projector) QuarantinedCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	count := 0
	for _, st := range p.states {
		st.mu.RLock()
		if st.quarantined {
			count++
		}
		st.mu.RUnlock()
	}
	return count
}
