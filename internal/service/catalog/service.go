package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	mqcontracts "ecotrade/contracts/mq"
	"ecotrade/internal/model"
	"ecotrade/internal/repository"
	"ecotrade/pkg/outbox"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var (
	ErrNotFound     = errors.New("product not found")
	ErrInvalidStock = errors.New("stock must not be negative")
)

// Service owns product reads and the admin stock update. A stock update
// that takes a product from zero to available emits product.stock_available
// through the outbox, in the same transaction as the stock write.
type Service struct {
	db         *pgxpool.Pool
	products   *repository.ProductRepository
	outboxRepo *outbox.Repository
	logger     *zap.Logger
}

func NewService(db *pgxpool.Pool, products *repository.ProductRepository, logger *zap.Logger) *Service {
	return &Service{
		db:         db,
		products:   products,
		outboxRepo: outbox.NewRepository(db),
		logger:     logger,
	}
}

func (s *Service) GetProduct(ctx context.Context, id int64) (*model.Product, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return product, nil
}

// UpdateStock sets the product's stock level. The row is locked for the
// duration of the transaction so the zero-to-positive transition check and
// the event insert cannot race another update.
func (s *Service) UpdateStock(ctx context.Context, id int64, stock int) (*model.Product, error) {
	if stock < 0 {
		return nil, ErrInvalidStock
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	product, err := s.products.FindByIDForUpdate(ctx, tx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := s.products.UpdateStockInTx(ctx, tx, id, stock); err != nil {
		return nil, err
	}

	if product.Stock == 0 && stock > 0 {
		payload := mqcontracts.StockAvailablePayload{
			ProductID:  id,
			PrevStock:  product.Stock,
			NewStock:   stock,
			OccurredAt: time.Now(),
		}
		if err := outbox.InsertEventInTx(ctx, tx, s.outboxRepo, "product", &id, "product.stock_available", payload); err != nil {
			s.logger.Error("Failed to insert stock_available to outbox",
				zap.Int64("product_id", id),
				zap.Error(err),
			)
			return nil, err
		}
		s.logger.Info("Product back in stock, event queued",
			zap.Int64("product_id", id),
			zap.Int("new_stock", stock),
		)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	product.Stock = stock
	return product, nil
}
