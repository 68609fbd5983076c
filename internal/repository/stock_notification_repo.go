package repository

import (
	"context"
	"time"

	"ecotrade/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
)

type StockNotificationRepository struct {
	db *pgxpool.Pool
}

func NewStockNotificationRepository(db *pgxpool.Pool) *StockNotificationRepository {
	return &StockNotificationRepository{db: db}
}

// FindPending returns every unnotified subscription for a product.
func (r *StockNotificationRepository) FindPending(ctx context.Context, productID int64) ([]model.StockNotification, error) {
	query := `
        SELECT id, product_id, email, notified, created_at, notified_at
        FROM stock_notifications
        WHERE product_id = $1 AND notified = FALSE
        ORDER BY created_at ASC
    `

	rows, err := r.db.Query(ctx, query, productID)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	subs := []model.StockNotification{}
	for rows.Next() {
		var n model.StockNotification
		if err := rows.Scan(&n.ID, &n.ProductID, &n.Email, &n.Notified, &n.CreatedAt, &n.NotifiedAt); err != nil {
			return nil, err
		}
		subs = append(subs, n)
	}

	return subs, rows.Err()
}

// FindOne returns the subscription for (product, email) regardless of its
// notified state. ErrNotFound when no row exists.
func (r *StockNotificationRepository) FindOne(ctx context.Context, productID int64, email string) (*model.StockNotification, error) {
	query := `
        SELECT id, product_id, email, notified, created_at, notified_at
        FROM stock_notifications
        WHERE product_id = $1 AND email = $2
    `

	var n model.StockNotification
	err := r.db.QueryRow(ctx, query, productID, email).Scan(
		&n.ID,
		&n.ProductID,
		&n.Email,
		&n.Notified,
		&n.CreatedAt,
		&n.NotifiedAt,
	)
	if err != nil {
		return nil, mapError(err)
	}
	return &n, nil
}

// Create inserts a fresh unnotified subscription. ErrDuplicate when a row
// for (product, email) already exists.
func (r *StockNotificationRepository) Create(ctx context.Context, productID int64, email string) (*model.StockNotification, error) {
	query := `
        INSERT INTO stock_notifications (product_id, email, notified, created_at)
        VALUES ($1, $2, FALSE, NOW())
        RETURNING id, product_id, email, notified, created_at, notified_at
    `

	var n model.StockNotification
	err := r.db.QueryRow(ctx, query, productID, email).Scan(
		&n.ID,
		&n.ProductID,
		&n.Email,
		&n.Notified,
		&n.CreatedAt,
		&n.NotifiedAt,
	)
	if err != nil {
		return nil, mapError(err)
	}
	return &n, nil
}

// Reactivate resets an already-notified subscription in place so the
// subscriber is notified again on the next restock. Keeping the row avoids
// a second insert tripping the unique (product, email) index.
func (r *StockNotificationRepository) Reactivate(ctx context.Context, id int64) (*model.StockNotification, error) {
	query := `
        UPDATE stock_notifications
        SET notified = FALSE, notified_at = NULL, created_at = NOW()
        WHERE id = $1
        RETURNING id, product_id, email, notified, created_at, notified_at
    `

	var n model.StockNotification
	err := r.db.QueryRow(ctx, query, id).Scan(
		&n.ID,
		&n.ProductID,
		&n.Email,
		&n.Notified,
		&n.CreatedAt,
		&n.NotifiedAt,
	)
	if err != nil {
		return nil, mapError(err)
	}
	return &n, nil
}

// MarkNotified flips the notified flag and stamps notified_at. The guard on
// notified keeps the flag monotonic even under a concurrent batch.
func (r *StockNotificationRepository) MarkNotified(ctx context.Context, id int64, at time.Time) error {
	query := `
        UPDATE stock_notifications
        SET notified = TRUE, notified_at = $2
        WHERE id = $1 AND notified = FALSE
    `

	_, err := r.db.Exec(ctx, query, id, at)
	return mapError(err)
}
