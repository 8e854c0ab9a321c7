package decision

import "testing"

func TestClassifyTiers(t *testing.T) {
	cases := []struct {
		name         string
		currentStock int
		reorderLevel int
		want         Tier
	}{
		{"zero stock is critical", 0, 10, TierCritical},
		{"zero stock critical even with zero reorder level", 0, 0, TierCritical},
		{"shortage above high threshold", 4, 15, TierHigh},
		{"shortage just above medium threshold", 4, 10, TierMedium},
		{"small shortage", 8, 10, TierLow},
		{"at reorder level", 10, 10, TierGood},
		{"above reorder level", 25, 10, TierGood},
		{"stock one, huge reorder level", 1, 100, TierHigh},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Classify(tc.currentStock, tc.reorderLevel)
			if got != tc.want {
				t.Fatalf("Classify(%d, %d) = %s, want %s", tc.currentStock, tc.reorderLevel, got, tc.want)
			}
		})
	}
}

// Every non-negative input pair must map to exactly one known tier.
func TestClassifyTotalOverInputSpace(t *testing.T) {
	for stock := 0; stock <= 60; stock++ {
		for level := 0; level <= 60; level++ {
			tier := Classify(stock, level)
			if !tier.Valid() {
				t.Fatalf("Classify(%d, %d) returned unknown tier %q", stock, level, tier)
			}
			if stock == 0 && tier != TierCritical {
				t.Fatalf("Classify(0, %d) = %s, want critical", level, tier)
			}
			if stock > 0 && Shortage(stock, level) == 0 && tier != TierGood {
				t.Fatalf("Classify(%d, %d) with no shortage = %s, want good", stock, level, tier)
			}
		}
	}
}

func TestShortageNeverNegative(t *testing.T) {
	if got := Shortage(25, 10); got != 0 {
		t.Fatalf("Shortage(25, 10) = %d, want 0", got)
	}
	if got := Shortage(3, 10); got != 7 {
		t.Fatalf("Shortage(3, 10) = %d, want 7", got)
	}
}

func TestSeverityOrdering(t *testing.T) {
	ordered := []Tier{TierGood, TierLow, TierMedium, TierHigh, TierCritical}
	for i := 1; i < len(ordered); i++ {
		if ordered[i].Severity() <= ordered[i-1].Severity() {
			t.Fatalf("severity of %s (%d) not above %s (%d)",
				ordered[i], ordered[i].Severity(), ordered[i-1], ordered[i-1].Severity())
		}
	}
}

func TestOverstockedFlagIsOrthogonal(t *testing.T) {
	policy := DefaultPolicy()

	// currentStock=40, reorderLevel=10: overstocked, but still a good tier
	if !policy.Overstocked(40, 10) {
		t.Fatal("expected 40 > 3*10 to be overstocked")
	}
	if tier := Classify(40, 10); tier != TierGood {
		t.Fatalf("Classify(40, 10) = %s, want good", tier)
	}

	// boundary: exactly 3x is not overstocked
	if policy.Overstocked(30, 10) {
		t.Fatal("30 == 3*10 must not be overstocked")
	}
}
