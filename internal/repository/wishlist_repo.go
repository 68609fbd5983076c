package repository

import (
	"context"

	"ecotrade/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
)

type WishlistRepository struct {
	db *pgxpool.Pool
}

func NewWishlistRepository(db *pgxpool.Pool) *WishlistRepository {
	return &WishlistRepository{db: db}
}

func (r *WishlistRepository) ListByUser(ctx context.Context, userID int64) ([]model.WishlistItem, error) {
	query := `
        SELECT id, user_id, product_id, created_at
        FROM wishlist_items
        WHERE user_id = $1
        ORDER BY created_at DESC
    `

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	items := []model.WishlistItem{}
	for rows.Next() {
		var it model.WishlistItem
		if err := rows.Scan(&it.ID, &it.UserID, &it.ProductID, &it.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, it)
	}

	return items, rows.Err()
}

func (r *WishlistRepository) Add(ctx context.Context, userID, productID int64) (*model.WishlistItem, error) {
	query := `
        INSERT INTO wishlist_items (user_id, product_id, created_at)
        VALUES ($1, $2, NOW())
        RETURNING id, user_id, product_id, created_at
    `

	var it model.WishlistItem
	err := r.db.QueryRow(ctx, query, userID, productID).Scan(&it.ID, &it.UserID, &it.ProductID, &it.CreatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return &it, nil
}

// Remove deletes the item and reports whether a row actually existed.
func (r *WishlistRepository) Remove(ctx context.Context, userID, productID int64) (bool, error) {
	query := `
        DELETE FROM wishlist_items
        WHERE user_id = $1 AND product_id = $2
    `

	tag, err := r.db.Exec(ctx, query, userID, productID)
	if err != nil {
		return false, mapError(err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *WishlistRepository) Exists(ctx context.Context, userID, productID int64) (bool, error) {
	query := `
        SELECT EXISTS (
            SELECT 1 FROM wishlist_items WHERE user_id = $1 AND product_id = $2
        )
    `

	var exists bool
	err := r.db.QueryRow(ctx, query, userID, productID).Scan(&exists)
	if err != nil {
		return false, mapError(err)
	}
	return exists, nil
}
