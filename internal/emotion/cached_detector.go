package emotion

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"time"

	"github.com/spacesedan/emotiondetection/internal/models"
)

// ScoreCache stores classifier output by key. A miss is (nil, false, nil).
type ScoreCache interface {
	GetScores(ctx context.Context, key string) (models.EmotionScores, bool, error)
	SetScores(ctx context.Context, key string, scores models.EmotionScores, ttl time.Duration) error
}

// CachedDetector memoizes complete classifier results. Cache failures are
// logged and never surface to the caller.
type CachedDetector struct {
	next      Detector
	cache     ScoreCache
	namespace string
	ttl       time.Duration
}

func NewCachedDetector(next Detector, cache ScoreCache, namespace string, ttl time.Duration) *CachedDetector {
	return &CachedDetector{
		next:      next,
		cache:     cache,
		namespace: namespace,
		ttl:       ttl,
	}
}

func (d *CachedDetector) Detect(ctx context.Context, text string) (models.EmotionScores, error) {
	key := CacheKey(d.namespace, text)

	scores, found, err := d.cache.GetScores(ctx, key)
	if err != nil {
		slog.Warn("[CachedDetector] Cache lookup failed",
			slog.String("key", key),
			slog.String("error", err.Error()))
	} else if found {
		slog.Debug("[CachedDetector] Cache hit", slog.String("key", key))
		return scores, nil
	}

	scores, err = d.next.Detect(ctx, text)
	if err != nil {
		return nil, err
	}

	if scores.Complete() {
		if err := d.cache.SetScores(ctx, key, scores, d.ttl); err != nil {
			slog.Warn("[CachedDetector] Cache store failed",
				slog.String("key", key),
				slog.String("error", err.Error()))
		}
	}

	return scores, nil
}

func (d *CachedDetector) HealthCheck(ctx context.Context) bool {
	if hc, ok := d.next.(HealthChecker); ok {
		return hc.HealthCheck(ctx)
	}
	return true
}

// CacheNamespace keys cached scores by backend and by whether the text was
// normalized before classification.
func CacheNamespace(backend string, normalized bool) string {
	if normalized {
		return backend + "+markdown"
	}
	return backend
}

// CacheKey is also used as the message key for published results.
func CacheKey(backend, text string) string {
	sum := sha256.Sum256([]byte(text))
	return "emotion:" + backend + ":" + hex.EncodeToString(sum[:])
}
