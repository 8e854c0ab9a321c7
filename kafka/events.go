package kafka

import "time"

// StockMovementRecordedEvent is emitted after every successful ledger append
type StockMovementRecordedEvent struct {
	EventID      string    `json:"event_id"`
	EventType    string    `json:"event_type"`
	MovementID   uint      `json:"movement_id"`
	ProductID    uint      `json:"product_id"`
	Direction    string    `json:"direction"`
	Quantity     int       `json:"quantity"`
	Reason       string    `json:"reason"`
	Reference    string    `json:"reference,omitempty"`
	CurrentStock int       `json:"current_stock"`
	Tier         string    `json:"tier"`
	Timestamp    time.Time `json:"timestamp"`
}

// ProductSoldEvent is consumed from the sales module; each one becomes an
// OUT movement in the ledger
type ProductSoldEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	SaleID    string    `json:"sale_id"`
	ProductID uint      `json:"product_id"`
	Quantity  int       `json:"quantity"`
	Timestamp time.Time `json:"timestamp"`
}

// Event types
const (
	EventTypeMovementRecorded = "stock.movement.recorded"
	EventTypeProductSold      = "product.sold"
)

// Kafka topics
const (
	TopicMovementRecorded = "stock-movement-recorded"
	TopicProductSold      = "product-sold"
)
