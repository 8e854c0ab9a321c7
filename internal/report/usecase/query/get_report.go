package query

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	catalogdomain "github.com/ironvale/stockledger/internal/catalog/domain"
	"github.com/ironvale/stockledger/internal/decision"
	"github.com/ironvale/stockledger/internal/ledger/projector"
	"github.com/ironvale/stockledger/internal/report/domain"
	"github.com/ironvale/stockledger/pkg/logger"
)

// GetReportQuery represents a stock report request
type GetReportQuery struct {
	Kind    domain.ReportKind
	Filters domain.Filters
}

// GetReportHandler composes catalog, projector and decisioning into stock
// reports. Reports are pure reads: the same catalog and ledger state with
// the same filters always produces the same rows in the same order.
type GetReportHandler struct {
	catalog   catalogdomain.ProductRepository
	projector *projector.Projector
	policy    decision.Policy
}

// NewGetReportHandler creates a new get report handler
func NewGetReportHandler(
	catalog catalogdomain.ProductRepository,
	proj *projector.Projector,
	policy decision.Policy,
) *GetReportHandler {
	return &GetReportHandler{
		catalog:   catalog,
		projector: proj,
		policy:    policy,
	}
}

// Handle executes the report query
func (h *GetReportHandler) Handle(query GetReportQuery) (*domain.Result, error) {
	if _, err := domain.ParseKind(string(query.Kind)); err != nil {
		return nil, err
	}

	products, err := h.catalog.FindAll(catalogdomain.ListFilter{
		Text:     query.Filters.Text,
		Category: query.Filters.Category,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	result := &domain.Result{
		Kind:    query.Kind,
		Summary: domain.Summary{TotalReorderValue: decimal.Zero},
	}

	for _, product := range products {
		snapshot, err := h.projector.Snapshot(product.ID)
		if err != nil {
			// Quarantined or unreadable projections are excluded from the
			// rows but surfaced in the summary so the caller knows the
			// report is incomplete.
			result.Summary.QuarantinedCount++
			logger.WithComponent("report").Warn().
				Err(err).
				Uint("product_id", product.ID).
				Msg("Product excluded from report")
			continue
		}

		tier := decision.Classify(snapshot.CurrentStock, product.ReorderLevel)
		if !h.matchesKind(query.Kind, snapshot.CurrentStock, product.ReorderLevel) {
			continue
		}
		if query.Filters.Tier != "" && tier != query.Filters.Tier {
			continue
		}

		row := domain.Row{
			Product:     product,
			Snapshot:    snapshot,
			Tier:        tier,
			Overstocked: h.policy.Overstocked(snapshot.CurrentStock, product.ReorderLevel),
			Recommendation: h.policy.Recommend(
				product.ID, snapshot.CurrentStock, product.ReorderLevel, product.UnitCost,
			),
		}
		result.Rows = append(result.Rows, row)

		result.Summary.TotalItems++
		if snapshot.CurrentStock <= product.ReorderLevel {
			result.Summary.LowStockCount++
			if row.Recommendation != nil {
				result.Summary.TotalReorderValue =
					result.Summary.TotalReorderValue.Add(row.Recommendation.EstimatedCost)
			}
		}
		if snapshot.CurrentStock == 0 {
			result.Summary.OutOfStockCount++
		}
		if tier == decision.TierCritical {
			result.Summary.CriticalCount++
		}
	}

	h.sortRows(query.Kind, result.Rows)
	return result, nil
}

// matchesKind applies the report's base predicate
func (h *GetReportHandler) matchesKind(kind domain.ReportKind, currentStock, reorderLevel int) bool {
	switch kind {
	case domain.ReportLowStock:
		return currentStock <= reorderLevel
	case domain.ReportOutOfStock:
		return currentStock == 0
	case domain.ReportOverstocked:
		return h.policy.Overstocked(currentStock, reorderLevel)
	default:
		return true
	}
}

// sortRows orders replenishment-oriented views by urgency and everything
// else by product id
func (h *GetReportHandler) sortRows(kind domain.ReportKind, rows []domain.Row) {
	if kind != domain.ReportLowStock && kind != domain.ReportOutOfStock {
		sort.Slice(rows, func(i, j int) bool {
			return rows[i].Product.ID < rows[j].Product.ID
		})
		return
	}

	cost := func(row domain.Row) decimal.Decimal {
		if row.Recommendation == nil {
			return decimal.Zero
		}
		return row.Recommendation.EstimatedCost
	}

	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Tier.Severity() != b.Tier.Severity() {
			return a.Tier.Severity() > b.Tier.Severity()
		}
		if cmp := cost(a).Cmp(cost(b)); cmp != 0 {
			return cmp > 0
		}
		return a.Product.ID < b.Product.ID
	})
}
