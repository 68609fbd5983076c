package stocknotify

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sync"
	"sync/atomic"
	"time"

	"ecotrade/internal/model"
	"ecotrade/internal/repository"
	"ecotrade/pkg/metrics"

	"go.uber.org/zap"
)

var (
	ErrValidation      = errors.New("invalid request")
	ErrProductNotFound = errors.New("product not found")
	ErrInStock         = errors.New("product is currently in stock")
)

var emailPattern = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,3})+$`)

// SubscriptionStore is the persistence surface for back-in-stock
// subscriptions. Uniqueness of (product, email) is the store's job.
type SubscriptionStore interface {
	FindPending(ctx context.Context, productID int64) ([]model.StockNotification, error)
	FindOne(ctx context.Context, productID int64, email string) (*model.StockNotification, error)
	Create(ctx context.Context, productID int64, email string) (*model.StockNotification, error)
	Reactivate(ctx context.Context, id int64) (*model.StockNotification, error)
	MarkNotified(ctx context.Context, id int64, at time.Time) error
}

type ProductFinder interface {
	FindByID(ctx context.Context, id int64) (*model.Product, error)
}

type Sender interface {
	SendStockNotification(ctx context.Context, email, productName string, productID int64) error
}

// Outcome summarizes one batch run. For a batch that ran to completion,
// NotifiedCount + FailedCount == TotalRequests.
type Outcome struct {
	Success       bool `json:"success"`
	NotifiedCount int  `json:"notifiedCount"`
	FailedCount   int  `json:"failedCount"`
	TotalRequests int  `json:"totalRequests"`
}

type Service struct {
	store       SubscriptionStore
	products    ProductFinder
	sender      Sender
	concurrency int
	logger      *zap.Logger
}

func NewService(store SubscriptionStore, products ProductFinder, sender Sender, concurrency int, logger *zap.Logger) *Service {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Service{
		store:       store,
		products:    products,
		sender:      sender,
		concurrency: concurrency,
		logger:      logger,
	}
}

// RequestNotification subscribes email to a restock notice for productID.
// Returns the record and whether the caller was already subscribed.
// A subscription only makes sense for an out-of-stock product; otherwise
// ErrInStock. A previously-notified row is reset in place rather than
// duplicated, so the unique (product, email) index always holds.
func (s *Service) RequestNotification(ctx context.Context, productID int64, email string) (*model.StockNotification, bool, error) {
	if productID <= 0 {
		return nil, false, fmt.Errorf("%w: product ID is required", ErrValidation)
	}
	if !emailPattern.MatchString(email) {
		return nil, false, fmt.Errorf("%w: a valid email is required", ErrValidation)
	}

	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, false, ErrProductNotFound
		}
		return nil, false, err
	}

	if product.Stock > 0 {
		return nil, false, ErrInStock
	}

	existing, err := s.store.FindOne(ctx, productID, email)
	switch {
	case err == nil:
		if !existing.Notified {
			return existing, true, nil
		}
		reactivated, err := s.store.Reactivate(ctx, existing.ID)
		if err != nil {
			return nil, false, err
		}
		return reactivated, false, nil
	case errors.Is(err, repository.ErrNotFound):
		// fall through to create
	default:
		return nil, false, err
	}

	created, err := s.store.Create(ctx, productID, email)
	if err != nil {
		// A concurrent request for the same pair won the insert race;
		// treat the loser as already subscribed.
		if errors.Is(err, repository.ErrDuplicate) {
			existing, findErr := s.store.FindOne(ctx, productID, email)
			if findErr != nil {
				return nil, false, findErr
			}
			return existing, true, nil
		}
		return nil, false, err
	}

	return created, false, nil
}

// NotifyStockAvailable fans one restock out to every pending subscriber.
// Each record is handled independently: a successful send flips the record
// to notified, a failed send leaves it pending for the next restock cycle,
// and no failure stops the rest of the batch. Sends run on a bounded pool;
// completion order is not significant.
func (s *Service) NotifyStockAvailable(ctx context.Context, productID int64) (Outcome, error) {
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return Outcome{Success: false}, ErrProductNotFound
		}
		return Outcome{Success: false}, err
	}

	pending, err := s.store.FindPending(ctx, productID)
	if err != nil {
		return Outcome{Success: false}, err
	}

	s.logger.Info("Starting stock notification batch",
		zap.Int64("product_id", productID),
		zap.String("product_name", product.Name),
		zap.Int("pending", len(pending)),
	)

	var notified, failed atomic.Int64
	var wg sync.WaitGroup
	sem := make(chan struct{}, s.concurrency)

	for _, sub := range pending {
		// Cancellation stops issuing new sends; in-flight sends finish
		// and commit. Unissued records simply stay pending.
		if ctx.Err() != nil {
			break
		}

		sem <- struct{}{}
		wg.Add(1)
		go func(sub model.StockNotification) {
			defer wg.Done()
			defer func() { <-sem }()

			if err := s.sender.SendStockNotification(ctx, sub.Email, product.Name, product.ID); err != nil {
				failed.Add(1)
				s.logger.Warn("Stock notification send failed",
					zap.Int64("subscription_id", sub.ID),
					zap.String("email", sub.Email),
					zap.Error(err),
				)
				return
			}

			if err := s.store.MarkNotified(ctx, sub.ID, time.Now()); err != nil {
				// The email went out but the flag did not stick; the record
				// stays pending and the subscriber may get a second email
				// next run. Logged apart from send failures.
				failed.Add(1)
				s.logger.Error("Failed to mark subscription notified",
					zap.Int64("subscription_id", sub.ID),
					zap.String("email", sub.Email),
					zap.Error(err),
				)
				return
			}

			notified.Add(1)
			s.logger.Info("Stock notification sent",
				zap.Int64("subscription_id", sub.ID),
				zap.String("email", sub.Email),
			)
		}(sub)
	}

	wg.Wait()

	outcome := Outcome{
		Success:       true,
		NotifiedCount: int(notified.Load()),
		FailedCount:   int(failed.Load()),
		TotalRequests: len(pending),
	}

	metrics.RecordBatchOutcome("notified", outcome.NotifiedCount)
	metrics.RecordBatchOutcome("failed", outcome.FailedCount)

	s.logger.Info("Stock notification batch finished",
		zap.Int64("product_id", productID),
		zap.Int("notified", outcome.NotifiedCount),
		zap.Int("failed", outcome.FailedCount),
		zap.Int("total", outcome.TotalRequests),
	)

	return outcome, nil
}
