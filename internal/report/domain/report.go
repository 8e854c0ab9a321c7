package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	catalogdomain "github.com/ironvale/stockledger/internal/catalog/domain"
	"github.com/ironvale/stockledger/internal/decision"
	ledgerdomain "github.com/ironvale/stockledger/internal/ledger/domain"
)

var ErrUnknownReportKind = errors.New("unknown report kind")

// ReportKind selects the base predicate for a stock report
type ReportKind string

const (
	ReportAllItems    ReportKind = "all-items"
	ReportLowStock    ReportKind = "low-stock"
	ReportOutOfStock  ReportKind = "out-of-stock"
	ReportOverstocked ReportKind = "overstocked"
)

// ParseKind validates a report kind coming off the wire
func ParseKind(s string) (ReportKind, error) {
	switch ReportKind(s) {
	case ReportAllItems, ReportLowStock, ReportOutOfStock, ReportOverstocked:
		return ReportKind(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownReportKind, s)
}

// Filters narrow a report beyond its base predicate
type Filters struct {
	// Text matches case-insensitively against name, category and supplier
	Text string
	// Category is an exact match
	Category string
	// Tier keeps only rows classified at exactly this urgency
	Tier decision.Tier
}

// Row is one product's line in a report
type Row struct {
	Product        catalogdomain.Product      `json:"product"`
	Snapshot       ledgerdomain.StockSnapshot `json:"snapshot"`
	Tier           decision.Tier              `json:"tier"`
	Overstocked    bool                       `json:"overstocked"`
	Recommendation *decision.Recommendation   `json:"recommendation,omitempty"`
}

// Summary aggregates the rows currently in view
type Summary struct {
	TotalItems        int             `json:"total_items"`
	LowStockCount     int             `json:"low_stock_count"`
	OutOfStockCount   int             `json:"out_of_stock_count"`
	CriticalCount     int             `json:"critical_count"`
	QuarantinedCount  int             `json:"quarantined_count"`
	TotalReorderValue decimal.Decimal `json:"total_reorder_value"`
}

// Result is a complete report: rows in presentation order plus the summary
type Result struct {
	Kind    ReportKind `json:"kind"`
	Rows    []Row      `json:"rows"`
	Summary Summary    `json:"summary"`
}
