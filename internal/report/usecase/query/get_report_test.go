package query

import (
	"errors"
	"reflect"
	"testing"

	"github.com/shopspring/decimal"

	catalogdomain "github.com/ironvale/stockledger/internal/catalog/domain"
	catalogrepo "github.com/ironvale/stockledger/internal/catalog/repository"
	"github.com/ironvale/stockledger/internal/decision"
	ledgerdomain "github.com/ironvale/stockledger/internal/ledger/domain"
	"github.com/ironvale/stockledger/internal/ledger/projector"
	ledgerrepo "github.com/ironvale/stockledger/internal/ledger/repository"
	"github.com/ironvale/stockledger/internal/report/domain"
)

// Fixture:
//
//	id  name            category     stock  reorder  cost   tier
//	1   Wireless Mouse  Accessories      0       10    100  critical
//	2   USB-C Dock      Accessories      2       10    250  medium  (shortage 8)
//	3   Laptop Stand    Accessories      8       10     40  low     (shortage 2)
//	4   Office Chair    Furniture        1       15     90  high    (shortage 14)
//	5   Desk Lamp       Lighting        40       10     25  good, overstocked
//	6   Monitor Arm     Accessories     12       10     60  good
func setupReport(t *testing.T) *GetReportHandler {
	t.Helper()

	catalog := catalogrepo.NewInMemoryProductRepository()
	products := []catalogdomain.Product{
		{ID: 1, Name: "Wireless Mouse", Category: "Accessories", Supplier: "Acme Supply", UnitCost: decimal.NewFromInt(100), ReorderLevel: 10},
		{ID: 2, Name: "USB-C Dock", Category: "Accessories", Supplier: "Acme Supply", UnitCost: decimal.NewFromInt(250), ReorderLevel: 10},
		{ID: 3, Name: "Laptop Stand", Category: "Accessories", Supplier: "Deskware", UnitCost: decimal.NewFromInt(40), ReorderLevel: 10},
		{ID: 4, Name: "Office Chair", Category: "Furniture", Supplier: "Deskware", UnitCost: decimal.NewFromInt(90), ReorderLevel: 15},
		{ID: 5, Name: "Desk Lamp", Category: "Lighting", Supplier: "Brightco", UnitCost: decimal.NewFromInt(25), ReorderLevel: 10},
		{ID: 6, Name: "Monitor Arm", Category: "Accessories", Supplier: "Deskware", UnitCost: decimal.NewFromInt(60), ReorderLevel: 10},
	}
	for i := range products {
		if err := catalog.Create(&products[i]); err != nil {
			t.Fatalf("seed catalog: %v", err)
		}
	}

	movements := ledgerrepo.NewInMemoryMovementRepository()
	stock := map[uint]int{1: 0, 2: 2, 3: 8, 4: 1, 5: 40, 6: 12}
	for id := uint(1); id <= 6; id++ {
		if qty := stock[id]; qty > 0 {
			if err := movements.Append(&ledgerdomain.Movement{
				ProductID: id, Direction: ledgerdomain.DirectionIn, Quantity: qty,
			}); err != nil {
				t.Fatalf("seed ledger: %v", err)
			}
		}
	}

	return NewGetReportHandler(catalog, projector.New(movements), decision.DefaultPolicy())
}

func rowIDs(rows []domain.Row) []uint {
	ids := make([]uint, len(rows))
	for i, row := range rows {
		ids[i] = row.Product.ID
	}
	return ids
}

func TestReportAllItemsOrderedByProductID(t *testing.T) {
	handler := setupReport(t)

	result, err := handler.Handle(GetReportQuery{Kind: domain.ReportAllItems})
	if err != nil {
		t.Fatalf("report: %v", err)
	}

	want := []uint{1, 2, 3, 4, 5, 6}
	if got := rowIDs(result.Rows); !reflect.DeepEqual(got, want) {
		t.Fatalf("row order = %v, want %v", got, want)
	}

	s := result.Summary
	if s.TotalItems != 6 || s.LowStockCount != 4 || s.OutOfStockCount != 1 || s.CriticalCount != 1 {
		t.Fatalf("summary = %+v", s)
	}
	// mouse 10*100 + dock 8*250 + stand 5*40 + chair 14*90 = 1000+2000+200+1260
	if !s.TotalReorderValue.Equal(decimal.NewFromInt(4460)) {
		t.Fatalf("total reorder value = %s, want 4460", s.TotalReorderValue)
	}
}

// Low-stock rows come back most urgent first, ties broken by estimated cost.
func TestReportLowStockOrderedByUrgency(t *testing.T) {
	handler := setupReport(t)

	result, err := handler.Handle(GetReportQuery{Kind: domain.ReportLowStock})
	if err != nil {
		t.Fatalf("report: %v", err)
	}

	// critical mouse (1000), high chair (1260), medium dock (2000), low stand (200)
	want := []uint{1, 4, 2, 3}
	if got := rowIDs(result.Rows); !reflect.DeepEqual(got, want) {
		t.Fatalf("row order = %v, want %v", got, want)
	}

	for _, row := range result.Rows {
		if row.Recommendation == nil {
			t.Fatalf("product %d in low-stock view without recommendation", row.Product.ID)
		}
	}
}

func TestReportOutOfStock(t *testing.T) {
	handler := setupReport(t)

	result, err := handler.Handle(GetReportQuery{Kind: domain.ReportOutOfStock})
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if got := rowIDs(result.Rows); !reflect.DeepEqual(got, []uint{1}) {
		t.Fatalf("rows = %v, want [1]", got)
	}
	if result.Rows[0].Tier != decision.TierCritical {
		t.Fatalf("tier = %s, want critical", result.Rows[0].Tier)
	}
}

// An overstocked product keeps its good urgency tier; the two labels coexist.
func TestReportOverstocked(t *testing.T) {
	handler := setupReport(t)

	result, err := handler.Handle(GetReportQuery{Kind: domain.ReportOverstocked})
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if got := rowIDs(result.Rows); !reflect.DeepEqual(got, []uint{5}) {
		t.Fatalf("rows = %v, want [5]", got)
	}
	row := result.Rows[0]
	if !row.Overstocked {
		t.Fatal("row must be flagged overstocked")
	}
	if row.Tier != decision.TierGood {
		t.Fatalf("tier = %s, want good", row.Tier)
	}
	if row.Recommendation != nil {
		t.Fatal("overstocked good-tier product must not get a recommendation")
	}
}

func TestReportFilters(t *testing.T) {
	handler := setupReport(t)

	// category narrows the low-stock view to Accessories
	result, err := handler.Handle(GetReportQuery{
		Kind:    domain.ReportLowStock,
		Filters: domain.Filters{Category: "Accessories"},
	})
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if got := rowIDs(result.Rows); !reflect.DeepEqual(got, []uint{1, 2, 3}) {
		t.Fatalf("rows = %v, want [1 2 3]", got)
	}

	// free text matches supplier, case-insensitively
	result, err = handler.Handle(GetReportQuery{
		Kind:    domain.ReportAllItems,
		Filters: domain.Filters{Text: "deskware"},
	})
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if got := rowIDs(result.Rows); !reflect.DeepEqual(got, []uint{3, 4, 6}) {
		t.Fatalf("rows = %v, want [3 4 6]", got)
	}

	// tier filter
	result, err = handler.Handle(GetReportQuery{
		Kind:    domain.ReportLowStock,
		Filters: domain.Filters{Tier: decision.TierMedium},
	})
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if got := rowIDs(result.Rows); !reflect.DeepEqual(got, []uint{2}) {
		t.Fatalf("rows = %v, want [2]", got)
	}
}

// Same state, same filters, same answer.
func TestReportDeterministic(t *testing.T) {
	handler := setupReport(t)

	query := GetReportQuery{Kind: domain.ReportLowStock, Filters: domain.Filters{Category: "Accessories"}}
	first, err := handler.Handle(query)
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := handler.Handle(query)
		if err != nil {
			t.Fatalf("report: %v", err)
		}
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("report changed between identical calls:\nfirst: %+v\nagain: %+v", first, again)
		}
	}
}

// A product whose ledger replays negative is quarantined: it disappears from
// the rows and is counted in the summary so the caller knows the report is
// incomplete.
func TestReportExcludesQuarantinedProjection(t *testing.T) {
	catalog := catalogrepo.NewInMemoryProductRepository()
	products := []catalogdomain.Product{
		{ID: 1, Name: "Wireless Mouse", Category: "Accessories", Supplier: "Acme Supply", UnitCost: decimal.NewFromInt(100), ReorderLevel: 10},
		{ID: 2, Name: "USB-C Dock", Category: "Accessories", Supplier: "Acme Supply", UnitCost: decimal.NewFromInt(250), ReorderLevel: 10},
	}
	for i := range products {
		if err := catalog.Create(&products[i]); err != nil {
			t.Fatalf("seed catalog: %v", err)
		}
	}

	movements := ledgerrepo.NewInMemoryMovementRepository()
	if err := movements.Append(&ledgerdomain.Movement{
		ProductID: 1, Direction: ledgerdomain.DirectionIn, Quantity: 5,
	}); err != nil {
		t.Fatalf("seed ledger: %v", err)
	}
	// a raw OUT with nothing on hand, the kind of entry the command layer
	// refuses; replaying it drives product 2 negative
	if err := movements.Append(&ledgerdomain.Movement{
		ProductID: 2, Direction: ledgerdomain.DirectionOut, Quantity: 3,
	}); err != nil {
		t.Fatalf("seed ledger: %v", err)
	}

	proj := projector.New(movements)
	handler := NewGetReportHandler(catalog, proj, decision.DefaultPolicy())

	result, err := handler.Handle(GetReportQuery{Kind: domain.ReportAllItems})
	if err != nil {
		t.Fatalf("report: %v", err)
	}

	if got := rowIDs(result.Rows); !reflect.DeepEqual(got, []uint{1}) {
		t.Fatalf("rows = %v, want [1]", got)
	}
	if result.Summary.QuarantinedCount != 1 {
		t.Fatalf("quarantined count = %d, want 1", result.Summary.QuarantinedCount)
	}
	if result.Summary.TotalItems != 1 {
		t.Fatalf("total items = %d, want 1", result.Summary.TotalItems)
	}
	if !proj.Quarantined(2) {
		t.Fatal("product 2 must be quarantined after the failed replay")
	}

	// the report stays incomplete, never errors, on repeat reads
	again, err := handler.Handle(GetReportQuery{Kind: domain.ReportAllItems})
	if err != nil {
		t.Fatalf("report again: %v", err)
	}
	if again.Summary.QuarantinedCount != 1 {
		t.Fatalf("quarantined count on reread = %d, want 1", again.Summary.QuarantinedCount)
	}
}

func TestReportRejectsUnknownKind(t *testing.T) {
	handler := setupReport(t)

	_, err := handler.Handle(GetReportQuery{Kind: "everything"})
	if !errors.Is(err, domain.ErrUnknownReportKind) {
		t.Fatalf("got %v, want ErrUnknownReportKind", err)
	}
}
