package report

import (
	"github.com/google/wire"

	"github.com/ironvale/stockledger/internal/decision"
)

// ProvidePolicy provides the reorder policy
func ProvidePolicy() decision.Policy {
	return decision.DefaultPolicy()
}

// Wire sets
var PolicySet = wire.NewSet(
	ProvidePolicy,
)
