package mqhandler

import (
	"context"
	"encoding/json"

	mqcontracts "ecotrade/contracts/mq"
	"ecotrade/internal/service/stocknotify"

	"go.uber.org/zap"
)

type Notifier interface {
	NotifyStockAvailable(ctx context.Context, productID int64) (stocknotify.Outcome, error)
}

// StockAvailableHandler reacts to product.stock_available events by running
// the back-in-stock notification batch for the product.
type StockAvailableHandler struct {
	notifier Notifier
	logger   *zap.Logger
}

func NewStockAvailableHandler(notifier Notifier, logger *zap.Logger) *StockAvailableHandler {
	return &StockAvailableHandler{
		notifier: notifier,
		logger:   logger,
	}
}

func (h *StockAvailableHandler) Handle(ctx context.Context, raw json.RawMessage) error {
	var p mqcontracts.StockAvailablePayload
	if err := json.Unmarshal(raw, &p); err != nil {
		// Malformed payloads never become valid; drop instead of requeueing.
		h.logger.Error("Failed to unmarshal StockAvailablePayload", zap.Error(err))
		return nil
	}

	h.logger.Info("Handling product.stock_available event",
		zap.Int64("product_id", p.ProductID),
		zap.Int("new_stock", p.NewStock),
	)

	outcome, err := h.notifier.NotifyStockAvailable(ctx, p.ProductID)
	if err != nil {
		// Failed records stay pending and are picked up by the next restock
		// event, so the message is not requeued.
		h.logger.Error("Stock notification batch failed",
			zap.Int64("product_id", p.ProductID),
			zap.Error(err),
		)
		return nil
	}

	h.logger.Info("Stock notification batch done",
		zap.Int64("product_id", p.ProductID),
		zap.Int("notified", outcome.NotifiedCount),
		zap.Int("failed", outcome.FailedCount),
		zap.Int("total", outcome.TotalRequests),
	)
	return nil
}
