package decision

import (
	"math"
	"sort"

	"github.com/shopspring/decimal"
)

// Recommendation is a suggested replenishment order for a single product.
// It is always derived from the current snapshot and catalog entry, never
// stored, so it cannot go stale.
type Recommendation struct {
	ProductID           uint            `json:"product_id"`
	Tier                Tier            `json:"tier"`
	Shortage            int             `json:"shortage"`
	RecommendedQuantity int             `json:"recommended_quantity"`
	EstimatedCost       decimal.Decimal `json:"estimated_cost"`
}

// Recommend computes the reorder recommendation for a product, or nil when
// the stock level needs no action.
//
// The recommended quantity is at least the shortage, and at least
// RestockFactor of the reorder level, so a product hovering just below its
// threshold is restocked in one meaningful order instead of many small ones.
func (p Policy) Recommend(productID uint, currentStock, reorderLevel int, unitCost decimal.Decimal) *Recommendation {
	tier := Classify(currentStock, reorderLevel)
	if tier == TierGood {
		return nil
	}

	shortage := Shortage(currentStock, reorderLevel)

	minRestock := int(math.Ceil(float64(reorderLevel) * p.RestockFactor))
	quantity := shortage
	if minRestock > quantity {
		quantity = minRestock
	}

	return &Recommendation{
		ProductID:           productID,
		Tier:                tier,
		Shortage:            shortage,
		RecommendedQuantity: quantity,
		EstimatedCost:       unitCost.Mul(decimal.NewFromInt(int64(quantity))),
	}
}

// SortByUrgency orders recommendations for presentation: most severe tier
// first, ties broken by descending estimated cost, then ascending product id
// so the order is stable across identical inputs.
func SortByUrgency(recs []Recommendation) {
	sort.Slice(recs, func(i, j int) bool {
		a, b := recs[i], recs[j]
		if a.Tier.Severity() != b.Tier.Severity() {
			return a.Tier.Severity() > b.Tier.Severity()
		}
		if cmp := a.EstimatedCost.Cmp(b.EstimatedCost); cmp != 0 {
			return cmp > 0
		}
		return a.ProductID < b.ProductID
	})
}
