package mq

import "time"

// StockAvailablePayload is published when a product's stock transitions
// from zero to a positive value. Routing key: product.stock_available.
type StockAvailablePayload struct {
	ProductID  int64     `json:"product_id"`
	PrevStock  int       `json:"prev_stock"`
	NewStock   int       `json:"new_stock"`
	OccurredAt time.Time `json:"occurred_at"`
}
