package model

import "time"

// StockNotification is a back-in-stock subscription. At most one row exists
// per (product, email); the unique index on the pair enforces it.
type StockNotification struct {
	ID         int64      `json:"id"`
	ProductID  int64      `json:"product"`
	Email      string     `json:"email"`
	Notified   bool       `json:"notified"`
	CreatedAt  time.Time  `json:"createdAt"`
	NotifiedAt *time.Time `json:"notifiedAt"`
}
