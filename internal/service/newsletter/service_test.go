package newsletter

import (
	"context"
	"errors"
	"testing"
	"time"

	"ecotrade/internal/model"
	"ecotrade/internal/repository"

	"go.uber.org/zap"
)

type mockStore struct {
	subs   map[string]*model.NewsletterSubscriber
	nextID int64
}

func newMockStore() *mockStore {
	return &mockStore{subs: make(map[string]*model.NewsletterSubscriber)}
}

func (m *mockStore) Create(ctx context.Context, email string) (*model.NewsletterSubscriber, error) {
	if _, ok := m.subs[email]; ok {
		return nil, repository.ErrDuplicate
	}
	m.nextID++
	sub := &model.NewsletterSubscriber{ID: m.nextID, Email: email, CreatedAt: time.Now()}
	m.subs[email] = sub
	return sub, nil
}

func (m *mockStore) FindByEmail(ctx context.Context, email string) (*model.NewsletterSubscriber, error) {
	sub, ok := m.subs[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return sub, nil
}

type mockWelcomeSender struct {
	sent []string
	err  error
}

func (m *mockWelcomeSender) SendNewsletterWelcome(ctx context.Context, email string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, email)
	return nil
}

func TestSubscribe(t *testing.T) {
	store := newMockStore()
	sender := &mockWelcomeSender{}
	svc := NewService(store, sender, zap.NewNop())

	sub, already, err := svc.Subscribe(context.Background(), "a@x.com")
	if err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}
	if already {
		t.Error("expected a fresh subscription")
	}
	if sub.Email != "a@x.com" {
		t.Errorf("unexpected email: %s", sub.Email)
	}
	if len(sender.sent) != 1 {
		t.Errorf("expected one welcome email, got %d", len(sender.sent))
	}
}

func TestSubscribeIdempotent(t *testing.T) {
	store := newMockStore()
	sender := &mockWelcomeSender{}
	svc := NewService(store, sender, zap.NewNop())

	first, _, err := svc.Subscribe(context.Background(), "a@x.com")
	if err != nil {
		t.Fatalf("first subscribe failed: %v", err)
	}

	second, already, err := svc.Subscribe(context.Background(), "a@x.com")
	if err != nil {
		t.Fatalf("second subscribe failed: %v", err)
	}
	if !already {
		t.Error("expected already-subscribed on repeat")
	}
	if second.ID != first.ID {
		t.Errorf("expected subscriber %d, got %d", first.ID, second.ID)
	}
	if len(sender.sent) != 1 {
		t.Errorf("repeat subscribe must not resend the welcome email, got %d sends", len(sender.sent))
	}
}

func TestSubscribeInvalidEmail(t *testing.T) {
	svc := NewService(newMockStore(), &mockWelcomeSender{}, zap.NewNop())

	for _, email := range []string{"", "nope", "a@b"} {
		_, _, err := svc.Subscribe(context.Background(), email)
		if !errors.Is(err, ErrValidation) {
			t.Errorf("email %q: expected ErrValidation, got: %v", email, err)
		}
	}
}

func TestSubscribeWelcomeFailureTolerated(t *testing.T) {
	store := newMockStore()
	sender := &mockWelcomeSender{err: errors.New("smtp down")}
	svc := NewService(store, sender, zap.NewNop())

	_, _, err := svc.Subscribe(context.Background(), "a@x.com")
	if err != nil {
		t.Fatalf("subscription must survive a welcome-email failure, got: %v", err)
	}
	if _, err := store.FindByEmail(context.Background(), "a@x.com"); err != nil {
		t.Error("subscriber row must be committed despite the send failure")
	}
}
