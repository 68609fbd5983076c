package repository

import (
	"context"

	"ecotrade/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ProductRepository struct {
	db *pgxpool.Pool
}

func NewProductRepository(db *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) FindByID(ctx context.Context, id int64) (*model.Product, error) {
	query := `
        SELECT id, name, brand, price, stock, created_at
        FROM products
        WHERE id = $1
    `

	var p model.Product
	err := r.db.QueryRow(ctx, query, id).Scan(
		&p.ID,
		&p.Name,
		&p.Brand,
		&p.Price,
		&p.Stock,
		&p.CreatedAt,
	)
	if err != nil {
		return nil, mapError(err)
	}
	return &p, nil
}

// FindByIDForUpdate locks the product row inside tx so a stock update and
// its outbox event see a consistent before-value.
func (r *ProductRepository) FindByIDForUpdate(ctx context.Context, tx pgx.Tx, id int64) (*model.Product, error) {
	query := `
        SELECT id, name, brand, price, stock, created_at
        FROM products
        WHERE id = $1
        FOR UPDATE
    `

	var p model.Product
	err := tx.QueryRow(ctx, query, id).Scan(
		&p.ID,
		&p.Name,
		&p.Brand,
		&p.Price,
		&p.Stock,
		&p.CreatedAt,
	)
	if err != nil {
		return nil, mapError(err)
	}
	return &p, nil
}

func (r *ProductRepository) UpdateStockInTx(ctx context.Context, tx pgx.Tx, id int64, stock int) error {
	query := `
        UPDATE products
        SET stock = $2
        WHERE id = $1
    `

	_, err := tx.Exec(ctx, query, id, stock)
	return mapError(err)
}
