package mqhandler

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"ecotrade/internal/service/stocknotify"

	"go.uber.org/zap"
)

type mockNotifier struct {
	outcome stocknotify.Outcome
	err     error

	calls        int
	gotProductID int64
}

func (m *mockNotifier) NotifyStockAvailable(ctx context.Context, productID int64) (stocknotify.Outcome, error) {
	m.calls++
	m.gotProductID = productID
	return m.outcome, m.err
}

func TestHandleRunsBatch(t *testing.T) {
	notifier := &mockNotifier{
		outcome: stocknotify.Outcome{Success: true, NotifiedCount: 2, TotalRequests: 2},
	}
	handler := NewStockAvailableHandler(notifier, zap.NewNop())

	payload := json.RawMessage(`{"product_id": 42, "prev_stock": 0, "new_stock": 5}`)
	if err := handler.Handle(context.Background(), payload); err != nil {
		t.Fatalf("handle failed: %v", err)
	}
	if notifier.gotProductID != 42 {
		t.Errorf("expected product 42, got %d", notifier.gotProductID)
	}
}

func TestHandleDropsMalformedPayload(t *testing.T) {
	notifier := &mockNotifier{}
	handler := NewStockAvailableHandler(notifier, zap.NewNop())

	if err := handler.Handle(context.Background(), json.RawMessage(`{not json`)); err != nil {
		t.Errorf("malformed payload must be dropped, not requeued, got: %v", err)
	}
	if notifier.calls != 0 {
		t.Error("malformed payload must not trigger a batch")
	}
}

func TestHandleDoesNotRequeueOnBatchFailure(t *testing.T) {
	notifier := &mockNotifier{err: errors.New("db unavailable")}
	handler := NewStockAvailableHandler(notifier, zap.NewNop())

	payload := json.RawMessage(`{"product_id": 42, "prev_stock": 0, "new_stock": 5}`)
	if err := handler.Handle(context.Background(), payload); err != nil {
		t.Errorf("batch failures leave records pending, the message is not requeued, got: %v", err)
	}
}
