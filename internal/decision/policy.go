package decision

// Policy holds the tunable decisioning constants. The defaults mirror the
// values the purchasing team has been running with; nobody has produced a
// business case for different ones, so they are configuration, not law.
type Policy struct {
	// OverstockMultiplier flags a product as overstocked when
	// currentStock > OverstockMultiplier * reorderLevel
	OverstockMultiplier int

	// RestockFactor sets the minimum restock size as a fraction of the
	// reorder level, so small shortages don't trigger tiny purchase orders
	RestockFactor float64
}

// DefaultPolicy returns the standard decisioning constants
func DefaultPolicy() Policy {
	return Policy{
		OverstockMultiplier: 3,
		RestockFactor:       0.5,
	}
}

// Overstocked reports whether a product holds more stock than the policy
// considers healthy. This is a reporting flag orthogonal to the urgency
// tier; a product can be TierGood and overstocked at the same time.
func (p Policy) Overstocked(currentStock, reorderLevel int) bool {
	return currentStock > p.OverstockMultiplier*reorderLevel
}
