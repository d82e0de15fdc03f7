package circuitbreaker

import (
	"errors"
	"testing"
	"time"

	"github.com/sony/gobreaker"
)

func TestNew(t *testing.T) {
	cfg := Config{
		Name:             "test-circuit",
		MaxRequests:      3,
		Interval:         10 * time.Second,
		Timeout:          20 * time.Second,
		FailureThreshold: 0.6,
		MinRequests:      5,
	}

	cb := New(cfg)
	if cb == nil {
		t.Fatal("New() returned nil")
	}
	if cb.Name() != "test-circuit" {
		t.Errorf("Name() = %q, want %q", cb.Name(), "test-circuit")
	}
	if cb.State() != gobreaker.StateClosed {
		t.Errorf("initial state = %v, want closed", cb.State())
	}
}

func TestExecute_Success(t *testing.T) {
	cb := New(DefaultConfig("test"))

	result, err := cb.Execute(func() (interface{}, error) {
		return "ok", nil
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if result != "ok" {
		t.Errorf("Execute() result = %v, want ok", result)
	}
}

func TestExecute_TripsAfterFailures(t *testing.T) {
	cfg := Config{
		Name:             "trip-test",
		MaxRequests:      1,
		Interval:         time.Minute,
		Timeout:          time.Minute,
		FailureThreshold: 0.5,
		MinRequests:      4,
	}
	cb := New(cfg)

	boom := errors.New("boom")
	for i := 0; i < 4; i++ {
		_, _ = cb.Execute(func() (interface{}, error) {
			return nil, boom
		})
	}

	if cb.State() != gobreaker.StateOpen {
		t.Fatalf("state after failures = %v, want open", cb.State())
	}

	_, err := cb.Execute(func() (interface{}, error) {
		return "should not run", nil
	})
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Errorf("Execute() on open circuit error = %v, want ErrOpenState", err)
	}
}

func TestExecute_StaysClosedBelowMinRequests(t *testing.T) {
	cfg := DefaultConfig("min-requests")
	cfg.MinRequests = 10
	cb := New(cfg)

	for i := 0; i < 5; i++ {
		_, _ = cb.Execute(func() (interface{}, error) {
			return nil, errors.New("boom")
		})
	}

	if cb.State() != gobreaker.StateClosed {
		t.Errorf("state = %v, want closed below MinRequests", cb.State())
	}
}
