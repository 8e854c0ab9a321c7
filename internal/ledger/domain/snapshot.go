package domain

// StockSnapshot is the current quantity-on-hand for one product, derived by
// folding the ledger up to AsOfMovementID. It is a cacheable projection and
// never hand-edited; all writes go through the ledger.
type StockSnapshot struct {
	ProductID      uint `json:"product_id"`
	CurrentStock   int  `json:"current_stock"`
	AsOfMovementID uint `json:"as_of_movement_id"`
}
