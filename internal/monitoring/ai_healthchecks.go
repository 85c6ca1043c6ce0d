package monitoring

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/spacesedan/emotiondetection/internal/emotion"
)

const (
	HEALTHCHECK_TIMEOUT  = 5 * time.Second
	HEALTHCHECK_INTERVAL = 15 * time.Second
)

// MonitorClassifierHealth probes the classifier once immediately and then
// every interval until ctx is done. A non-positive interval falls back to
// HEALTHCHECK_INTERVAL.
func MonitorClassifierHealth(ctx context.Context, checker emotion.HealthChecker, interval time.Duration, healthy *atomic.Bool) {
	if interval <= 0 {
		slog.Warn("[HealthCheck] Invalid interval, using default",
			slog.Duration("interval", interval),
			slog.Duration("default", HEALTHCHECK_INTERVAL))
		interval = HEALTHCHECK_INTERVAL
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	check(ctx, checker, healthy)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			check(ctx, checker, healthy)
		}
	}
}

func check(ctx context.Context, checker emotion.HealthChecker, healthy *atomic.Bool) {
	probeCtx, cancel := context.WithTimeout(ctx, HEALTHCHECK_TIMEOUT)
	defer cancel()

	isHealthy := checker.HealthCheck(probeCtx)
	if previous := healthy.Swap(isHealthy); previous != isHealthy {
		slog.Info("[HealthCheck] Classifier health changed",
			slog.Bool("healthy", isHealthy))
	}
	if !isHealthy {
		slog.Warn("[HealthCheck] Classifier is unhealthy")
	}
}
