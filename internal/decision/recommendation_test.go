package decision

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
)

func TestRecommendNilWhenStockIsHealthy(t *testing.T) {
	policy := DefaultPolicy()

	if rec := policy.Recommend(1, 25, 10, decimal.NewFromInt(100)); rec != nil {
		t.Fatalf("expected no recommendation for healthy stock, got %+v", rec)
	}
	if rec := policy.Recommend(1, 10, 10, decimal.NewFromInt(100)); rec != nil {
		t.Fatalf("expected no recommendation at the reorder level, got %+v", rec)
	}
}

// reorderLevel=10, unitCost=100, stock=3: shortage 7, minimum restock
// ceil(10*0.5)=5, so the raw shortage wins and cost is 700.
func TestRecommendShortageDominates(t *testing.T) {
	policy := DefaultPolicy()

	rec := policy.Recommend(7, 3, 10, decimal.NewFromInt(100))
	if rec == nil {
		t.Fatal("expected a recommendation")
	}
	if rec.Tier != TierMedium {
		t.Fatalf("tier = %s, want medium", rec.Tier)
	}
	if rec.Shortage != 7 {
		t.Fatalf("shortage = %d, want 7", rec.Shortage)
	}
	if rec.RecommendedQuantity != 7 {
		t.Fatalf("recommended quantity = %d, want 7", rec.RecommendedQuantity)
	}
	if !rec.EstimatedCost.Equal(decimal.NewFromInt(700)) {
		t.Fatalf("estimated cost = %s, want 700", rec.EstimatedCost)
	}
}

func TestRecommendMinimumRestockDominates(t *testing.T) {
	policy := DefaultPolicy()

	// shortage is only 1, but the policy floors the order at ceil(10*0.5)=5
	rec := policy.Recommend(2, 9, 10, decimal.NewFromInt(40))
	if rec == nil {
		t.Fatal("expected a recommendation")
	}
	if rec.RecommendedQuantity != 5 {
		t.Fatalf("recommended quantity = %d, want 5", rec.RecommendedQuantity)
	}
	if !rec.EstimatedCost.Equal(decimal.NewFromInt(200)) {
		t.Fatalf("estimated cost = %s, want 200", rec.EstimatedCost)
	}
}

// recommendedQuantity >= shortage and >= ceil(reorderLevel*factor) must hold
// across the whole input range.
func TestRecommendMonotonicity(t *testing.T) {
	policy := DefaultPolicy()
	cost := decimal.NewFromFloat(12.5)

	for level := 0; level <= 50; level++ {
		minRestock := int(math.Ceil(float64(level) * policy.RestockFactor))
		for stock := 0; stock <= 50; stock++ {
			rec := policy.Recommend(1, stock, level, cost)
			if rec == nil {
				continue
			}
			if rec.RecommendedQuantity < rec.Shortage {
				t.Fatalf("stock=%d level=%d: quantity %d below shortage %d",
					stock, level, rec.RecommendedQuantity, rec.Shortage)
			}
			if rec.RecommendedQuantity < minRestock {
				t.Fatalf("stock=%d level=%d: quantity %d below minimum restock %d",
					stock, level, rec.RecommendedQuantity, minRestock)
			}
			want := cost.Mul(decimal.NewFromInt(int64(rec.RecommendedQuantity)))
			if !rec.EstimatedCost.Equal(want) {
				t.Fatalf("stock=%d level=%d: cost %s, want %s", stock, level, rec.EstimatedCost, want)
			}
		}
	}
}

func TestSortByUrgency(t *testing.T) {
	recs := []Recommendation{
		{ProductID: 1, Tier: TierLow, EstimatedCost: decimal.NewFromInt(900)},
		{ProductID: 2, Tier: TierCritical, EstimatedCost: decimal.NewFromInt(50)},
		{ProductID: 3, Tier: TierHigh, EstimatedCost: decimal.NewFromInt(100)},
		{ProductID: 4, Tier: TierHigh, EstimatedCost: decimal.NewFromInt(400)},
		{ProductID: 5, Tier: TierCritical, EstimatedCost: decimal.NewFromInt(50)},
	}

	SortByUrgency(recs)

	wantOrder := []uint{2, 5, 4, 3, 1}
	for i, want := range wantOrder {
		if recs[i].ProductID != want {
			t.Fatalf("position %d: got product %d, want %d", i, recs[i].ProductID, want)
		}
	}
}
