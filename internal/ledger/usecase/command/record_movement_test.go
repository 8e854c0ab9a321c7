package command

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"

	catalogdomain "github.com/ironvale/stockledger/internal/catalog/domain"
	catalogrepo "github.com/ironvale/stockledger/internal/catalog/repository"
	"github.com/ironvale/stockledger/internal/decision"
	"github.com/ironvale/stockledger/internal/ledger/domain"
	"github.com/ironvale/stockledger/internal/ledger/projector"
	"github.com/ironvale/stockledger/internal/ledger/repository"
	"github.com/ironvale/stockledger/kafka"
)

func setupHandler(t *testing.T) (*RecordMovementHandler, *repository.InMemoryMovementRepository, *projector.Projector) {
	t.Helper()

	catalog := catalogrepo.NewInMemoryProductRepository()
	seed := []catalogdomain.Product{
		{ID: 1, Name: "Wireless Mouse", Category: "Accessories", Supplier: "Acme Supply",
			UnitCost: decimal.NewFromInt(100), ReorderLevel: 10, LeadTimeDays: 5},
		{ID: 2, Name: "USB-C Dock", Category: "Accessories", Supplier: "Acme Supply",
			UnitCost: decimal.NewFromInt(250), ReorderLevel: 4, LeadTimeDays: 14},
	}
	for i := range seed {
		if err := catalog.Create(&seed[i]); err != nil {
			t.Fatalf("seed catalog: %v", err)
		}
	}

	movements := repository.NewInMemoryMovementRepository()
	proj := projector.New(movements)
	return NewRecordMovementHandler(catalog, movements, proj, nil), movements, proj
}

// capturingPublisher records emitted events in place of a broker
type capturingPublisher struct {
	mu     sync.Mutex
	events []kafka.StockMovementRecordedEvent
}

func (p *capturingPublisher) PublishMovementRecorded(_ context.Context, event kafka.StockMovementRecordedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

// Every successful append emits an event, whether the command came from the
// HTTP API or the sales consumer; rejected commands emit nothing.
func TestRecordMovementPublishesEvent(t *testing.T) {
	catalog := catalogrepo.NewInMemoryProductRepository()
	product := catalogdomain.Product{ID: 1, Name: "Wireless Mouse", Category: "Accessories",
		Supplier: "Acme Supply", UnitCost: decimal.NewFromInt(100), ReorderLevel: 10, LeadTimeDays: 5}
	if err := catalog.Create(&product); err != nil {
		t.Fatalf("seed catalog: %v", err)
	}

	movements := repository.NewInMemoryMovementRepository()
	proj := projector.New(movements)
	published := &capturingPublisher{}
	handler := NewRecordMovementHandler(catalog, movements, proj, published)

	if _, err := handler.Handle(context.Background(), RecordMovementCommand{
		ProductID: 1, Direction: domain.DirectionIn, Quantity: 20,
		Reason: domain.ReasonPurchaseOrder, Reference: "PO-2001",
	}); err != nil {
		t.Fatalf("record in: %v", err)
	}

	if _, err := handler.Handle(context.Background(), RecordMovementCommand{
		ProductID: 1, Direction: domain.DirectionOut, Quantity: 12,
		Reason: domain.ReasonSalesTransaction, Reference: "SALE-77",
	}); err != nil {
		t.Fatalf("record out: %v", err)
	}

	if len(published.events) != 2 {
		t.Fatalf("published %d events, want 2", len(published.events))
	}

	event := published.events[1]
	if event.MovementID != 2 || event.ProductID != 1 {
		t.Fatalf("event ids = movement %d product %d", event.MovementID, event.ProductID)
	}
	if event.Direction != string(domain.DirectionOut) || event.Quantity != 12 {
		t.Fatalf("event = %s/%d, want OUT/12", event.Direction, event.Quantity)
	}
	if event.Reference != "SALE-77" {
		t.Fatalf("event reference = %q", event.Reference)
	}
	if event.CurrentStock != 8 {
		t.Fatalf("event stock = %d, want 8", event.CurrentStock)
	}
	// 8 on hand against a reorder level of 10 is a shortage of 2
	if event.Tier != string(decision.TierLow) {
		t.Fatalf("event tier = %q, want %q", event.Tier, decision.TierLow)
	}

	// a rejected movement publishes nothing
	if _, err := handler.Handle(context.Background(), RecordMovementCommand{
		ProductID: 1, Direction: domain.DirectionOut, Quantity: 50,
	}); !errors.Is(err, domain.ErrInsufficientStock) {
		t.Fatalf("got %v, want ErrInsufficientStock", err)
	}
	if len(published.events) != 2 {
		t.Fatalf("rejection published an event, have %d", len(published.events))
	}
}

func TestRecordMovementAppendsAndProjects(t *testing.T) {
	handler, movements, proj := setupHandler(t)

	result, err := handler.Handle(context.Background(), RecordMovementCommand{
		ProductID: 1,
		Direction: domain.DirectionIn,
		Quantity:  25,
		Reason:    domain.ReasonPurchaseOrder,
		Reference: "PO-1001",
	})
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if result.Movement.ID != 1 {
		t.Fatalf("assigned id = %d, want 1", result.Movement.ID)
	}
	if result.Snapshot.CurrentStock != 25 {
		t.Fatalf("snapshot stock = %d, want 25", result.Snapshot.CurrentStock)
	}

	result, err = handler.Handle(context.Background(), RecordMovementCommand{
		ProductID: 1,
		Direction: domain.DirectionOut,
		Quantity:  22,
		Reason:    domain.ReasonSalesTransaction,
	})
	if err != nil {
		t.Fatalf("record out: %v", err)
	}
	if result.Snapshot.CurrentStock != 3 {
		t.Fatalf("snapshot stock = %d, want 3", result.Snapshot.CurrentStock)
	}

	stock, err := proj.CurrentStock(1)
	if err != nil {
		t.Fatalf("current stock: %v", err)
	}
	if stock != 3 {
		t.Fatalf("projected stock = %d, want 3", stock)
	}

	last, _ := movements.LastID()
	if last != 2 {
		t.Fatalf("ledger length = %d, want 2", last)
	}
}

func TestRecordMovementValidation(t *testing.T) {
	handler, movements, _ := setupHandler(t)

	cases := []struct {
		name string
		cmd  RecordMovementCommand
		want error
	}{
		{"zero quantity", RecordMovementCommand{ProductID: 1, Direction: domain.DirectionIn, Quantity: 0}, domain.ErrInvalidQuantity},
		{"negative quantity", RecordMovementCommand{ProductID: 1, Direction: domain.DirectionOut, Quantity: -5}, domain.ErrInvalidQuantity},
		{"bad direction", RecordMovementCommand{ProductID: 1, Direction: "SIDEWAYS", Quantity: 5}, domain.ErrInvalidDirection},
		{"unknown product", RecordMovementCommand{ProductID: 99, Direction: domain.DirectionIn, Quantity: 5}, domain.ErrUnknownProduct},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := handler.Handle(context.Background(), tc.cmd)
			if !errors.Is(err, tc.want) {
				t.Fatalf("got %v, want %v", err, tc.want)
			}
		})
	}

	last, _ := movements.LastID()
	if last != 0 {
		t.Fatalf("rejected commands must not touch the ledger, got %d entries", last)
	}
}

func TestRecordMovementInsufficientStock(t *testing.T) {
	handler, movements, proj := setupHandler(t)

	if _, err := handler.Handle(context.Background(), RecordMovementCommand{
		ProductID: 1, Direction: domain.DirectionIn, Quantity: 3,
	}); err != nil {
		t.Fatalf("seed stock: %v", err)
	}

	_, err := handler.Handle(context.Background(), RecordMovementCommand{
		ProductID: 1, Direction: domain.DirectionOut, Quantity: 5,
	})
	if !errors.Is(err, domain.ErrInsufficientStock) {
		t.Fatalf("got %v, want ErrInsufficientStock", err)
	}

	// ledger and projection unchanged by the rejection
	last, _ := movements.LastID()
	if last != 1 {
		t.Fatalf("ledger length = %d, want 1", last)
	}
	stock, err := proj.CurrentStock(1)
	if err != nil {
		t.Fatalf("current stock: %v", err)
	}
	if stock != 3 {
		t.Fatalf("stock = %d, want 3", stock)
	}

	// draining to exactly zero is allowed
	result, err := handler.Handle(context.Background(), RecordMovementCommand{
		ProductID: 1, Direction: domain.DirectionOut, Quantity: 3,
	})
	if err != nil {
		t.Fatalf("drain to zero: %v", err)
	}
	if result.Snapshot.CurrentStock != 0 {
		t.Fatalf("stock = %d, want 0", result.Snapshot.CurrentStock)
	}

	// and nothing further can leave
	_, err = handler.Handle(context.Background(), RecordMovementCommand{
		ProductID: 1, Direction: domain.DirectionOut, Quantity: 1,
	})
	if !errors.Is(err, domain.ErrInsufficientStock) {
		t.Fatalf("got %v, want ErrInsufficientStock", err)
	}
}

// Concurrent outbound movements against the same product must never
// oversell: with 50 units on hand and 100 attempts to take 1, exactly 50
// succeed.
func TestRecordMovementConcurrentOutbound(t *testing.T) {
	handler, _, proj := setupHandler(t)

	if _, err := handler.Handle(context.Background(), RecordMovementCommand{
		ProductID: 1, Direction: domain.DirectionIn, Quantity: 50,
	}); err != nil {
		t.Fatalf("seed stock: %v", err)
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	accepted, rejected := 0, 0

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := handler.Handle(context.Background(), RecordMovementCommand{
				ProductID: 1, Direction: domain.DirectionOut, Quantity: 1,
			})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				accepted++
			case errors.Is(err, domain.ErrInsufficientStock):
				rejected++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if accepted != 50 || rejected != 50 {
		t.Fatalf("accepted=%d rejected=%d, want 50/50", accepted, rejected)
	}

	stock, err := proj.CurrentStock(1)
	if err != nil {
		t.Fatalf("current stock: %v", err)
	}
	if stock != 0 {
		t.Fatalf("final stock = %d, want 0", stock)
	}
	if err := proj.Verify(1); err != nil {
		t.Fatalf("reconciliation after concurrent appends: %v", err)
	}
}
