package otp

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
)

// In-memory Store with real expiry tracking.
type fakeStore struct {
	mu     sync.Mutex
	values map[string]string
	expiry map[string]time.Time
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		values: make(map[string]string),
		expiry: make(map[string]time.Time),
	}
}

func (f *fakeStore) expired(key string) bool {
	exp, ok := f.expiry[key]
	return ok && time.Now().After(exp)
}

func (f *fakeStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[key] = value
	f.expiry[key] = time.Now().Add(ttl)
	return nil
}

func (f *fakeStore) Get(ctx context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.values[key]
	if !ok || f.expired(key) {
		return "", ErrCodeExpired
	}
	return v, nil
}

func (f *fakeStore) Del(ctx context.Context, keys ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, k := range keys {
		delete(f.values, k)
		delete(f.expiry, k)
	}
	return nil
}

func (f *fakeStore) SetNX(ctx context.Context, key, value string, ttl time.Duration) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.values[key]; ok && !f.expired(key) {
		return false, nil
	}
	f.values[key] = value
	f.expiry[key] = time.Now().Add(ttl)
	return true, nil
}

func (f *fakeStore) Incr(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	if v, ok := f.values[key]; ok && !f.expired(key) {
		n, _ = strconv.ParseInt(v, 10, 64)
	}
	n++
	f.values[key] = strconv.FormatInt(n, 10)
	if n == 1 {
		f.expiry[key] = time.Now().Add(ttl)
	}
	return n, nil
}

// Captures the last code issued.
type fakeCodeSender struct {
	mu    sync.Mutex
	codes map[string]string
	err   error
}

func newFakeCodeSender() *fakeCodeSender {
	return &fakeCodeSender{codes: make(map[string]string)}
}

func (f *fakeCodeSender) SendCode(ctx context.Context, phone, code string) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.codes[phone] = code
	return nil
}

func (f *fakeCodeSender) lastCode(phone string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.codes[phone]
}

const testPhone = "+358401234567"

func newTestService(store *fakeStore, sender *fakeCodeSender) *Service {
	return NewService(store, sender, 5*time.Minute, time.Minute, 3, zap.NewNop())
}

func TestSendAndVerify(t *testing.T) {
	store := newFakeStore()
	sender := newFakeCodeSender()
	svc := newTestService(store, sender)

	if err := svc.Send(context.Background(), testPhone); err != nil {
		t.Fatalf("send failed: %v", err)
	}

	code := sender.lastCode(testPhone)
	if len(code) != 6 {
		t.Fatalf("expected a 6-digit code, got %q", code)
	}

	if err := svc.Verify(context.Background(), testPhone, code); err != nil {
		t.Fatalf("verify failed: %v", err)
	}

	// The code is consumed on success.
	err := svc.Verify(context.Background(), testPhone, code)
	if !errors.Is(err, ErrCodeExpired) {
		t.Errorf("expected ErrCodeExpired on reuse, got: %v", err)
	}
}

func TestSendCooldown(t *testing.T) {
	store := newFakeStore()
	sender := newFakeCodeSender()
	svc := newTestService(store, sender)

	if err := svc.Send(context.Background(), testPhone); err != nil {
		t.Fatalf("send failed: %v", err)
	}
	err := svc.Send(context.Background(), testPhone)
	if !errors.Is(err, ErrCooldown) {
		t.Errorf("expected ErrCooldown, got: %v", err)
	}
}

func TestVerifyWrongCode(t *testing.T) {
	store := newFakeStore()
	sender := newFakeCodeSender()
	svc := newTestService(store, sender)

	if err := svc.Send(context.Background(), testPhone); err != nil {
		t.Fatalf("send failed: %v", err)
	}

	err := svc.Verify(context.Background(), testPhone, "000000")
	if sender.lastCode(testPhone) == "000000" {
		t.Skip("generated code collided with the guess")
	}
	if !errors.Is(err, ErrCodeMismatch) {
		t.Errorf("expected ErrCodeMismatch, got: %v", err)
	}

	// The right code still works within the attempt budget.
	if err := svc.Verify(context.Background(), testPhone, sender.lastCode(testPhone)); err != nil {
		t.Errorf("verify after one miss failed: %v", err)
	}
}

func TestVerifyTooManyAttempts(t *testing.T) {
	store := newFakeStore()
	sender := newFakeCodeSender()
	svc := newTestService(store, sender)

	if err := svc.Send(context.Background(), testPhone); err != nil {
		t.Fatalf("send failed: %v", err)
	}
	code := sender.lastCode(testPhone)
	if code == "000000" {
		t.Skip("generated code collided with the guess")
	}

	for i := 0; i < 3; i++ {
		if err := svc.Verify(context.Background(), testPhone, "000000"); !errors.Is(err, ErrCodeMismatch) {
			t.Fatalf("attempt %d: expected ErrCodeMismatch, got: %v", i+1, err)
		}
	}

	err := svc.Verify(context.Background(), testPhone, code)
	if !errors.Is(err, ErrTooManyAttempts) {
		t.Errorf("expected ErrTooManyAttempts, got: %v", err)
	}

	// The code was consumed; even the right code is now gone.
	err = svc.Verify(context.Background(), testPhone, code)
	if !errors.Is(err, ErrCodeExpired) {
		t.Errorf("expected ErrCodeExpired after lockout, got: %v", err)
	}
}

func TestValidation(t *testing.T) {
	svc := newTestService(newFakeStore(), newFakeCodeSender())

	for _, phone := range []string{"", "abc", "123", "+123456789012345678"} {
		if err := svc.Send(context.Background(), phone); !errors.Is(err, ErrValidation) {
			t.Errorf("phone %q: expected ErrValidation, got: %v", phone, err)
		}
	}
	if err := svc.Verify(context.Background(), testPhone, ""); !errors.Is(err, ErrValidation) {
		t.Errorf("empty code: expected ErrValidation, got: %v", err)
	}
}

func TestResendAfterCooldownResetsAttempts(t *testing.T) {
	store := newFakeStore()
	sender := newFakeCodeSender()
	svc := newTestService(store, sender)

	if err := svc.Send(context.Background(), testPhone); err != nil {
		t.Fatalf("send failed: %v", err)
	}
	if err := svc.Verify(context.Background(), testPhone, "000000"); err == nil {
		t.Skip("generated code collided with the guess")
	}

	// Simulate cooldown expiry and resend.
	store.Del(context.Background(), cooldownKey(testPhone))
	if err := svc.Send(context.Background(), testPhone); err != nil {
		t.Fatalf("resend failed: %v", err)
	}

	if v, _ := store.Get(context.Background(), attemptsKey(testPhone)); v != "" {
		t.Errorf("resend must reset the attempt counter, got %q", v)
	}
}
