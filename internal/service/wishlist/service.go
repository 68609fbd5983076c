package wishlist

import (
	"context"
	"errors"

	"ecotrade/internal/model"
	"ecotrade/internal/repository"

	"go.uber.org/zap"
)

var ErrProductNotFound = errors.New("product not found")

type Store interface {
	ListByUser(ctx context.Context, userID int64) ([]model.WishlistItem, error)
	Add(ctx context.Context, userID, productID int64) (*model.WishlistItem, error)
	Remove(ctx context.Context, userID, productID int64) (bool, error)
	Exists(ctx context.Context, userID, productID int64) (bool, error)
}

type ProductFinder interface {
	FindByID(ctx context.Context, id int64) (*model.Product, error)
}

type Service struct {
	store    Store
	products ProductFinder
	logger   *zap.Logger
}

func NewService(store Store, products ProductFinder, logger *zap.Logger) *Service {
	return &Service{store: store, products: products, logger: logger}
}

func (s *Service) List(ctx context.Context, userID int64) ([]model.WishlistItem, error) {
	return s.store.ListByUser(ctx, userID)
}

// Add puts a product on the user's wishlist. Adding twice is a no-op.
func (s *Service) Add(ctx context.Context, userID, productID int64) error {
	if _, err := s.products.FindByID(ctx, productID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrProductNotFound
		}
		return err
	}

	_, err := s.store.Add(ctx, userID, productID)
	if errors.Is(err, repository.ErrDuplicate) {
		return nil
	}
	return err
}

// Toggle flips wishlist membership and reports whether the product ended up
// on the list.
func (s *Service) Toggle(ctx context.Context, userID, productID int64) (bool, error) {
	if _, err := s.products.FindByID(ctx, productID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, ErrProductNotFound
		}
		return false, err
	}

	removed, err := s.store.Remove(ctx, userID, productID)
	if err != nil {
		return false, err
	}
	if removed {
		return false, nil
	}

	_, err = s.store.Add(ctx, userID, productID)
	if err != nil && !errors.Is(err, repository.ErrDuplicate) {
		return false, err
	}
	return true, nil
}

func (s *Service) Remove(ctx context.Context, userID, productID int64) error {
	_, err := s.store.Remove(ctx, userID, productID)
	return err
}
