// Package decision holds the pure stock decisioning rules: urgency
// classification and reorder recommendations. Everything here is a function
// of its inputs; no state, no I/O.
package decision

// Tier is the urgency classification of a product's stock level
type Tier string

const (
	TierGood     Tier = "good"
	TierLow      Tier = "low"
	TierMedium   Tier = "medium"
	TierHigh     Tier = "high"
	TierCritical Tier = "critical"
)

// Shortage thresholds between tiers. Evaluated top-down, first match wins.
const (
	highShortageAbove   = 10
	mediumShortageAbove = 5
)

// Severity ranks tiers for ordering; higher is more urgent
func (t Tier) Severity() int {
	switch t {
	case TierCritical:
		return 4
	case TierHigh:
		return 3
	case TierMedium:
		return 2
	case TierLow:
		return 1
	default:
		return 0
	}
}

// Valid reports whether t is one of the known tiers
func (t Tier) Valid() bool {
	switch t {
	case TierGood, TierLow, TierMedium, TierHigh, TierCritical:
		return true
	}
	return false
}

// Shortage returns how far current stock sits below the reorder level,
// never negative
func Shortage(currentStock, reorderLevel int) int {
	if shortage := reorderLevel - currentStock; shortage > 0 {
		return shortage
	}
	return 0
}

// Classify maps (currentStock, reorderLevel) to an urgency tier.
// Zero stock is always critical, regardless of the reorder level.
func Classify(currentStock, reorderLevel int) Tier {
	if currentStock == 0 {
		return TierCritical
	}

	shortage := Shortage(currentStock, reorderLevel)
	switch {
	case shortage > highShortageAbove:
		return TierHigh
	case shortage > mediumShortageAbove:
		return TierMedium
	case shortage > 0:
		return TierLow
	default:
		return TierGood
	}
}
