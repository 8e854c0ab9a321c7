package projector

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"testing"

	"github.com/ironvale/stockledger/internal/ledger/domain"
	"github.com/ironvale/stockledger/internal/ledger/repository"
)

func appendMovement(t *testing.T, repo domain.MovementRepository, productID uint, dir domain.Direction, qty int) domain.Movement {
	t.Helper()
	movement := &domain.Movement{ProductID: productID, Direction: dir, Quantity: qty}
	if err := repo.Append(movement); err != nil {
		t.Fatalf("append failed: %v", err)
	}
	return *movement
}

func TestSnapshotFoldsLedger(t *testing.T) {
	repo := repository.NewInMemoryMovementRepository()
	proj := New(repo)

	appendMovement(t, repo, 1, domain.DirectionIn, 25)
	appendMovement(t, repo, 1, domain.DirectionOut, 22)
	appendMovement(t, repo, 2, domain.DirectionIn, 7)

	snapshot, err := proj.Snapshot(1)
	if err != nil {
		t.Fatalf("snapshot failed: %v", err)
	}
	if snapshot.CurrentStock != 3 {
		t.Fatalf("current stock = %d, want 3", snapshot.CurrentStock)
	}
	if snapshot.AsOfMovementID != 2 {
		t.Fatalf("as-of movement = %d, want 2", snapshot.AsOfMovementID)
	}

	stock, err := proj.CurrentStock(2)
	if err != nil {
		t.Fatalf("current stock failed: %v", err)
	}
	if stock != 7 {
		t.Fatalf("product 2 stock = %d, want 7", stock)
	}
}

func TestSnapshotUsesBaseline(t *testing.T) {
	repo := repository.NewInMemoryMovementRepository()
	proj := New(repo, WithBaselines(map[uint]int{1: 10}))

	appendMovement(t, repo, 1, domain.DirectionOut, 4)

	stock, err := proj.CurrentStock(1)
	if err != nil {
		t.Fatalf("current stock failed: %v", err)
	}
	if stock != 6 {
		t.Fatalf("stock = %d, want baseline 10 - 4 = 6", stock)
	}
}

// Incremental application must agree with a full replay after every single
// append, for every product. This is the projection's core invariant.
func TestIncrementalMatchesReplayForAllPrefixes(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for run := 0; run < 20; run++ {
		repo := repository.NewInMemoryMovementRepository()
		proj := New(repo)
		stock := map[uint]int{}

		for i := 0; i < 200; i++ {
			productID := uint(rng.Intn(5) + 1)
			qty := rng.Intn(20) + 1
			dir := domain.DirectionIn
			if rng.Intn(2) == 0 && stock[productID]-qty >= 0 {
				dir = domain.DirectionOut
			}

			snapshot, err := proj.ApplyAppend(productID, func(current int) (*domain.Movement, error) {
				if current != stock[productID] {
					return nil, fmt.Errorf("lock handed stale stock %d, want %d", current, stock[productID])
				}
				movement := &domain.Movement{ProductID: productID, Direction: dir, Quantity: qty}
				if err := repo.Append(movement); err != nil {
					return nil, err
				}
				return movement, nil
			})
			if err != nil {
				t.Fatalf("run %d append %d: %v", run, i, err)
			}
			stock[productID] += dir.Sign() * qty

			if snapshot.CurrentStock != stock[productID] {
				t.Fatalf("run %d append %d: incremental stock %d, want %d",
					run, i, snapshot.CurrentStock, stock[productID])
			}

			// replay of the same prefix must agree with the incremental state
			replayed, err := proj.Reconstruct(productID)
			if err != nil {
				t.Fatalf("run %d append %d: reconstruct: %v", run, i, err)
			}
			if replayed != snapshot {
				t.Fatalf("run %d append %d: replay %+v disagrees with incremental %+v",
					run, i, replayed, snapshot)
			}
		}
	}
}

func TestReconstructUpToPrefixes(t *testing.T) {
	repo := repository.NewInMemoryMovementRepository()
	proj := New(repo)

	moves := []struct {
		dir domain.Direction
		qty int
	}{
		{domain.DirectionIn, 10}, {domain.DirectionOut, 3},
		{domain.DirectionIn, 5}, {domain.DirectionOut, 12},
	}
	wantAfter := []int{10, 7, 12, 0}

	for _, m := range moves {
		appendMovement(t, repo, 1, m.dir, m.qty)
	}

	for i, want := range wantAfter {
		snapshot, err := proj.ReconstructUpTo(1, uint(i+1))
		if err != nil {
			t.Fatalf("prefix %d: %v", i+1, err)
		}
		if snapshot.CurrentStock != want {
			t.Fatalf("prefix %d: stock %d, want %d", i+1, snapshot.CurrentStock, want)
		}
	}
}

func TestCorruptLedgerQuarantinesProduct(t *testing.T) {
	repo := repository.NewInMemoryMovementRepository()
	proj := New(repo)

	// Bypass the append path to write a ledger that goes negative
	appendMovement(t, repo, 1, domain.DirectionIn, 5)
	appendMovement(t, repo, 1, domain.DirectionOut, 9)

	_, err := proj.Snapshot(1)
	if !errors.Is(err, domain.ErrNegativeStockDetected) {
		t.Fatalf("expected ErrNegativeStockDetected, got %v", err)
	}
	if !proj.Quarantined(1) {
		t.Fatal("product should be quarantined after corrupt replay")
	}

	// further writes are refused until repaired
	_, err = proj.ApplyAppend(1, func(int) (*domain.Movement, error) {
		t.Fatal("callback must not run while quarantined")
		return nil, nil
	})
	if !errors.Is(err, domain.ErrProjectionQuarantined) {
		t.Fatalf("expected ErrProjectionQuarantined, got %v", err)
	}

	// a compensating entry makes the replay clean again; repair lifts the freeze
	appendMovement(t, repo, 1, domain.DirectionIn, 4)
	_, err = proj.Repair(1)
	if !errors.Is(err, domain.ErrNegativeStockDetected) {
		t.Fatalf("replay still dips negative mid-ledger, want ErrNegativeStockDetected, got %v", err)
	}
}

func TestVerifyDetectsDrift(t *testing.T) {
	repo := repository.NewInMemoryMovementRepository()
	proj := New(repo)

	appendMovement(t, repo, 1, domain.DirectionIn, 10)
	if err := proj.Verify(1); err != nil {
		t.Fatalf("verify on clean state: %v", err)
	}

	// An append that bypasses the projector leaves the cache stale
	appendMovement(t, repo, 1, domain.DirectionIn, 5)
	err := proj.Verify(1)
	if !errors.Is(err, domain.ErrProjectionDrift) {
		t.Fatalf("expected ErrProjectionDrift, got %v", err)
	}
	if !proj.Quarantined(1) {
		t.Fatal("drift must quarantine the product")
	}

	snapshot, err := proj.Repair(1)
	if err != nil {
		t.Fatalf("repair: %v", err)
	}
	if snapshot.CurrentStock != 15 {
		t.Fatalf("repaired stock = %d, want 15", snapshot.CurrentStock)
	}
	if proj.Quarantined(1) {
		t.Fatal("repair must lift the quarantine")
	}
	if err := proj.Verify(1); err != nil {
		t.Fatalf("verify after repair: %v", err)
	}
}

func TestConcurrentAppendsStaySerializedPerProduct(t *testing.T) {
	repo := repository.NewInMemoryMovementRepository()
	proj := New(repo)

	const products = 4
	const perProduct = 50

	var wg sync.WaitGroup
	for productID := uint(1); productID <= products; productID++ {
		for i := 0; i < perProduct; i++ {
			wg.Add(1)
			go func(productID uint) {
				defer wg.Done()
				_, err := proj.ApplyAppend(productID, func(current int) (*domain.Movement, error) {
					movement := &domain.Movement{ProductID: productID, Direction: domain.DirectionIn, Quantity: 1}
					if err := repo.Append(movement); err != nil {
						return nil, err
					}
					return movement, nil
				})
				if err != nil {
					t.Errorf("append: %v", err)
				}
			}(productID)
		}
	}
	wg.Wait()

	for productID := uint(1); productID <= products; productID++ {
		stock, err := proj.CurrentStock(productID)
		if err != nil {
			t.Fatalf("product %d: %v", productID, err)
		}
		if stock != perProduct {
			t.Fatalf("product %d: stock %d, want %d", productID, stock, perProduct)
		}
		if err := proj.Verify(productID); err != nil {
			t.Fatalf("product %d failed reconciliation: %v", productID, err)
		}
	}
}
