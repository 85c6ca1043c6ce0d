// Package emotion holds the contracts between the HTTP layer and the
// external classifier, plus the small pieces of logic that sit between them.
package emotion

import (
	"context"

	"github.com/spacesedan/emotiondetection/internal/models"
)

// Detector sends raw text to an emotion classifier. Invalid or empty text
// yields empty scores and a nil error; an error means the classifier itself
// could not be reached or answered badly.
type Detector interface {
	Detect(ctx context.Context, text string) (models.EmotionScores, error)
}

type DetectorFunc func(ctx context.Context, text string) (models.EmotionScores, error)

func (f DetectorFunc) Detect(ctx context.Context, text string) (models.EmotionScores, error) {
	return f(ctx, text)
}

// HealthChecker is implemented by detectors that can report reachability.
type HealthChecker interface {
	HealthCheck(ctx context.Context) bool
}
