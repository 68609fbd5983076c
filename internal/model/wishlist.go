package model

import "time"

type WishlistItem struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	ProductID int64     `json:"productId"`
	CreatedAt time.Time `json:"createdAt"`
}
