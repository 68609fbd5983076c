package wishlist

import (
	"context"
	"errors"
	"testing"
	"time"

	"ecotrade/internal/model"
	"ecotrade/internal/repository"

	"go.uber.org/zap"
)

type key struct{ userID, productID int64 }

type mockStore struct {
	items  map[key]*model.WishlistItem
	nextID int64
}

func newMockStore() *mockStore {
	return &mockStore{items: make(map[key]*model.WishlistItem)}
}

func (m *mockStore) ListByUser(ctx context.Context, userID int64) ([]model.WishlistItem, error) {
	var out []model.WishlistItem
	for k, item := range m.items {
		if k.userID == userID {
			out = append(out, *item)
		}
	}
	return out, nil
}

func (m *mockStore) Add(ctx context.Context, userID, productID int64) (*model.WishlistItem, error) {
	k := key{userID, productID}
	if _, ok := m.items[k]; ok {
		return nil, repository.ErrDuplicate
	}
	m.nextID++
	item := &model.WishlistItem{ID: m.nextID, UserID: userID, ProductID: productID, CreatedAt: time.Now()}
	m.items[k] = item
	return item, nil
}

func (m *mockStore) Remove(ctx context.Context, userID, productID int64) (bool, error) {
	k := key{userID, productID}
	if _, ok := m.items[k]; !ok {
		return false, nil
	}
	delete(m.items, k)
	return true, nil
}

func (m *mockStore) Exists(ctx context.Context, userID, productID int64) (bool, error) {
	_, ok := m.items[key{userID, productID}]
	return ok, nil
}

type mockProducts struct {
	products map[int64]*model.Product
}

func (m *mockProducts) FindByID(ctx context.Context, id int64) (*model.Product, error) {
	p, ok := m.products[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return p, nil
}

func testProducts() *mockProducts {
	return &mockProducts{products: map[int64]*model.Product{
		1: {ID: 1, Name: "Refurbished Laptop", Stock: 2},
	}}
}

func TestAddIdempotent(t *testing.T) {
	store := newMockStore()
	svc := NewService(store, testProducts(), zap.NewNop())

	if err := svc.Add(context.Background(), 7, 1); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := svc.Add(context.Background(), 7, 1); err != nil {
		t.Fatalf("repeat add must be a no-op, got: %v", err)
	}

	items, _ := svc.List(context.Background(), 7)
	if len(items) != 1 {
		t.Errorf("expected 1 item, got %d", len(items))
	}
}

func TestAddUnknownProduct(t *testing.T) {
	svc := NewService(newMockStore(), testProducts(), zap.NewNop())

	err := svc.Add(context.Background(), 7, 99)
	if !errors.Is(err, ErrProductNotFound) {
		t.Errorf("expected ErrProductNotFound, got: %v", err)
	}
}

func TestToggle(t *testing.T) {
	store := newMockStore()
	svc := NewService(store, testProducts(), zap.NewNop())

	on, err := svc.Toggle(context.Background(), 7, 1)
	if err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if !on {
		t.Error("first toggle must add the product")
	}

	on, err = svc.Toggle(context.Background(), 7, 1)
	if err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if on {
		t.Error("second toggle must remove the product")
	}

	items, _ := svc.List(context.Background(), 7)
	if len(items) != 0 {
		t.Errorf("expected empty wishlist, got %d items", len(items))
	}
}

func TestRemoveMissingIsNoop(t *testing.T) {
	svc := NewService(newMockStore(), testProducts(), zap.NewNop())

	if err := svc.Remove(context.Background(), 7, 1); err != nil {
		t.Errorf("removing an absent item must not error, got: %v", err)
	}
}
