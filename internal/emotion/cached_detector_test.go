package emotion

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/spacesedan/emotiondetection/internal/models"
)

type fakeScoreCache struct {
	entries map[string]models.EmotionScores
	getErr  error
	setErr  error
	sets    int
	lastTTL time.Duration
}

func newFakeScoreCache() *fakeScoreCache {
	return &fakeScoreCache{entries: map[string]models.EmotionScores{}}
}

func (c *fakeScoreCache) GetScores(ctx context.Context, key string) (models.EmotionScores, bool, error) {
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	scores, ok := c.entries[key]
	return scores, ok, nil
}

func (c *fakeScoreCache) SetScores(ctx context.Context, key string, scores models.EmotionScores, ttl time.Duration) error {
	c.sets++
	c.lastTTL = ttl
	if c.setErr != nil {
		return c.setErr
	}
	c.entries[key] = scores
	return nil
}

type countingDetector struct {
	calls  int
	scores models.EmotionScores
	err    error
}

func (d *countingDetector) Detect(ctx context.Context, text string) (models.EmotionScores, error) {
	d.calls++
	return d.scores, d.err
}

var joyfulScores = models.EmotionScores{
	"anger":   0.01,
	"disgust": 0.01,
	"fear":    0.01,
	"joy":     0.9,
	"sadness": 0.07,
}

func TestCachedDetectorServesRepeatFromCache(t *testing.T) {
	next := &countingDetector{scores: joyfulScores}
	cache := newFakeScoreCache()
	detector := NewCachedDetector(next, cache, "watson", time.Hour)

	for i := 0; i < 3; i++ {
		scores, err := detector.Detect(context.Background(), "I am so happy today")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if scores["joy"] != 0.9 {
			t.Fatalf("unexpected scores: %#v", scores)
		}
	}

	if next.calls != 1 {
		t.Fatalf("expected 1 classifier call, got %d", next.calls)
	}
	if cache.lastTTL != time.Hour {
		t.Fatalf("expected ttl to be passed through, got %s", cache.lastTTL)
	}
}

func TestCachedDetectorSkipsInvalidResults(t *testing.T) {
	next := &countingDetector{scores: models.EmotionScores{}}
	cache := newFakeScoreCache()
	detector := NewCachedDetector(next, cache, "watson", time.Hour)

	detector.Detect(context.Background(), "")
	detector.Detect(context.Background(), "")

	if cache.sets != 0 {
		t.Fatalf("expected nothing cached, got %d sets", cache.sets)
	}
	if next.calls != 2 {
		t.Fatalf("expected 2 classifier calls, got %d", next.calls)
	}
}

func TestCachedDetectorFallsThroughOnCacheErrors(t *testing.T) {
	next := &countingDetector{scores: joyfulScores}
	cache := newFakeScoreCache()
	cache.getErr = errors.New("connection refused")
	cache.setErr = errors.New("connection refused")
	detector := NewCachedDetector(next, cache, "watson", time.Hour)

	scores, err := detector.Detect(context.Background(), "I am so happy today")
	if err != nil {
		t.Fatalf("expected cache errors to be swallowed, got %v", err)
	}
	if !scores.Complete() {
		t.Fatalf("expected classifier scores, got %#v", scores)
	}
}

func TestCachedDetectorPropagatesClassifierError(t *testing.T) {
	next := &countingDetector{err: errors.New("service unavailable")}
	detector := NewCachedDetector(next, newFakeScoreCache(), "watson", time.Hour)

	if _, err := detector.Detect(context.Background(), "hello"); err == nil {
		t.Fatal("expected classifier error")
	}
}

func TestCacheKeySeparatesBackends(t *testing.T) {
	if CacheKey("watson", "hi") == CacheKey("hugot", "hi") {
		t.Fatal("expected backend to be part of the key")
	}
	if CacheKey("watson", "hi") != CacheKey("watson", "hi") {
		t.Fatal("expected stable keys")
	}
}

func TestCachedDetectorNormalizationModesDoNotShareEntries(t *testing.T) {
	cache := newFakeScoreCache()
	raw := &countingDetector{scores: joyfulScores}
	normalized := &countingDetector{scores: joyfulScores}

	NewCachedDetector(raw, cache, CacheNamespace("watson", false), time.Hour).Detect(context.Background(), "**happy**")
	NewCachedDetector(normalized, cache, CacheNamespace("watson", true), time.Hour).Detect(context.Background(), "**happy**")

	if raw.calls != 1 || normalized.calls != 1 {
		t.Fatalf("expected each mode to reach its classifier, got raw=%d normalized=%d", raw.calls, normalized.calls)
	}
	if len(cache.entries) != 2 {
		t.Fatalf("expected separate cache entries, got %d", len(cache.entries))
	}
}
