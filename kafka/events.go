package kafka

import "time"

// StockAdjustedEvent is emitted once per recorded stock transaction
type StockAdjustedEvent struct {
	EventID         string    `json:"event_id"`
	EventType       string    `json:"event_type"`
	TransactionID   string    `json:"transaction_id"`
	ProductID       string    `json:"product_id"`
	SubVariantID    string    `json:"sub_variant_id"`
	TransactionType string    `json:"transaction_type"`
	Quantity        float64   `json:"quantity"`
	Notes           string    `json:"notes,omitempty"`
	Timestamp       time.Time `json:"timestamp"`
}

// Event types
const (
	EventTypeStockAdjusted = "stock.adjusted"
)

// Kafka topics
const (
	TopicStockAdjusted = "stock-adjusted"
)
