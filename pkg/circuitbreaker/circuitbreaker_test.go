package circuitbreaker

import (
	"errors"
	"testing"
	"time"
)

var errBoom = errors.New("boom")

func testConfig() Config {
	return Config{
		FailureThreshold:    3,
		SuccessThreshold:    2,
		Timeout:             50 * time.Millisecond,
		HalfOpenMaxRequests: 2,
	}
}

func fail() error { return errBoom }
func ok() error   { return nil }

func trip(t *testing.T, cb *CircuitBreaker, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		if err := cb.Execute(fail); !errors.Is(err, errBoom) {
			t.Fatalf("failure %d: expected errBoom, got: %v", i+1, err)
		}
	}
}

func TestOpensAfterThreshold(t *testing.T) {
	cb := NewCircuitBreaker(testConfig())

	trip(t, cb, 3)

	err := cb.Execute(ok)
	if !errors.Is(err, ErrCircuitBreakerOpen) {
		t.Errorf("expected breaker open, got: %v", err)
	}
	if cb.GetState() != StateOpen {
		t.Errorf("expected StateOpen, got %v", cb.GetState())
	}
}

func TestSuccessResetsFailureCount(t *testing.T) {
	cb := NewCircuitBreaker(testConfig())

	trip(t, cb, 2)
	if err := cb.Execute(ok); err != nil {
		t.Fatalf("expected success, got: %v", err)
	}
	trip(t, cb, 2)

	// Never reached three consecutive failures.
	if cb.GetState() == StateOpen {
		t.Error("breaker must not open on non-consecutive failures")
	}
}

func TestHalfOpenRecovery(t *testing.T) {
	cb := NewCircuitBreaker(testConfig())

	trip(t, cb, 3)
	time.Sleep(60 * time.Millisecond)

	// Probe requests succeed, breaker closes again.
	for i := 0; i < 2; i++ {
		if err := cb.Execute(ok); err != nil {
			t.Fatalf("probe %d: expected success, got: %v", i+1, err)
		}
	}
	if err := cb.Execute(ok); err != nil {
		t.Errorf("expected closed breaker to pass requests, got: %v", err)
	}
	if cb.GetState() != StateClosed {
		t.Errorf("expected StateClosed, got %v", cb.GetState())
	}
}

func TestHalfOpenFailureReopens(t *testing.T) {
	cb := NewCircuitBreaker(testConfig())

	trip(t, cb, 3)
	time.Sleep(60 * time.Millisecond)

	if err := cb.Execute(fail); !errors.Is(err, errBoom) {
		t.Fatalf("expected probe to run, got: %v", err)
	}
	if cb.GetState() != StateOpen {
		t.Errorf("a half-open failure must reopen the breaker, got %v", cb.GetState())
	}
}

func TestReset(t *testing.T) {
	cb := NewCircuitBreaker(testConfig())

	trip(t, cb, 3)
	cb.Reset()

	if cb.GetState() != StateClosed {
		t.Errorf("expected StateClosed after reset, got %v", cb.GetState())
	}
	if err := cb.Execute(ok); err != nil {
		t.Errorf("expected success after reset, got: %v", err)
	}
}
