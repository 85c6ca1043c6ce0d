package monitoring

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

type stubChecker struct {
	healthy bool
	calls   atomic.Int32
}

func (c *stubChecker) HealthCheck(ctx context.Context) bool {
	c.calls.Add(1)
	return c.healthy
}

func TestCheckStoresResult(t *testing.T) {
	healthy := &atomic.Bool{}
	healthy.Store(true)

	check(context.Background(), &stubChecker{healthy: false}, healthy)
	if healthy.Load() {
		t.Fatal("expected unhealthy after failed probe")
	}

	check(context.Background(), &stubChecker{healthy: true}, healthy)
	if !healthy.Load() {
		t.Fatal("expected healthy after successful probe")
	}
}

func TestMonitorClassifierHealthProbesUntilCancelled(t *testing.T) {
	checker := &stubChecker{healthy: true}
	healthy := &atomic.Bool{}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		MonitorClassifierHealth(ctx, checker, 5*time.Millisecond, healthy)
		close(done)
	}()

	deadline := time.After(2 * time.Second)
	for checker.calls.Load() < 3 {
		select {
		case <-deadline:
			t.Fatalf("expected repeated probes, got %d", checker.calls.Load())
		case <-time.After(time.Millisecond):
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("monitor did not stop on cancel")
	}
	if !healthy.Load() {
		t.Fatal("expected healthy flag")
	}
}

func TestMonitorClassifierHealthZeroIntervalUsesDefault(t *testing.T) {
	checker := &stubChecker{healthy: false}
	healthy := &atomic.Bool{}
	healthy.Store(true)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		MonitorClassifierHealth(ctx, checker, 0, healthy)
	}()

	deadline := time.After(2 * time.Second)
	for checker.calls.Load() < 1 {
		select {
		case <-deadline:
			t.Fatal("expected the initial probe to run")
		case <-time.After(time.Millisecond):
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("monitor did not stop on cancel")
	}
	if healthy.Load() {
		t.Fatal("expected unhealthy flag from the initial probe")
	}
}
