package emotion

import (
	"testing"

	"github.com/spacesedan/emotiondetection/internal/models"
)

func TestPredictPicksHighestScore(t *testing.T) {
	scores := models.EmotionScores{
		"anger":   0.0061,
		"disgust": 0.0017,
		"fear":    0.0094,
		"joy":     0.9682,
		"sadness": 0.0497,
	}

	result := Predict(scores)

	if !result.Valid() || *result.DominantEmotion != models.EMOTION_JOY {
		t.Fatalf("expected joy, got %#v", result.DominantEmotion)
	}
	if result.Anger != 0.0061 || result.Sadness != 0.0497 {
		t.Fatalf("scores not carried over: %#v", result)
	}
}

func TestPredictEmptyScoresIsInvalid(t *testing.T) {
	for name, scores := range map[string]models.EmotionScores{
		"nil":     nil,
		"empty":   {},
		"partial": {"anger": 0.9, "joy": 0.1},
	} {
		result := Predict(scores)
		if result.Valid() {
			t.Fatalf("%s: expected nil dominant emotion, got %s", name, *result.DominantEmotion)
		}
		if result != (models.FormattedResult{}) {
			t.Fatalf("%s: expected zero result, got %#v", name, result)
		}
	}
}

func TestPredictTieKeepsFirstLabel(t *testing.T) {
	scores := models.EmotionScores{
		"anger":   0.1,
		"disgust": 0.4,
		"fear":    0.1,
		"joy":     0.4,
		"sadness": 0.0,
	}

	result := Predict(scores)

	if *result.DominantEmotion != models.EMOTION_DISGUST {
		t.Fatalf("expected disgust on tie, got %s", *result.DominantEmotion)
	}
}

func TestPredictIgnoresExtraLabels(t *testing.T) {
	scores := models.EmotionScores{
		"anger":    0.2,
		"disgust":  0.1,
		"fear":     0.05,
		"joy":      0.05,
		"sadness":  0.3,
		"surprise": 0.9,
	}

	result := Predict(scores)

	if *result.DominantEmotion != models.EMOTION_SADNESS {
		t.Fatalf("expected sadness, got %s", *result.DominantEmotion)
	}
}
