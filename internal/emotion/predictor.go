package emotion

import "github.com/spacesedan/emotiondetection/internal/models"

// Predict picks the dominant emotion out of the classifier scores. Scores
// missing any of the five labels produce a result with a nil dominant emotion
// and zeroed scores.
func Predict(scores models.EmotionScores) models.FormattedResult {
	if len(scores) == 0 || !scores.Complete() {
		return models.FormattedResult{}
	}

	dominant := models.EmotionLabels[0]
	for _, label := range models.EmotionLabels[1:] {
		// strict comparison keeps the earliest label on ties
		if scores[label] > scores[dominant] {
			dominant = label
		}
	}

	return models.FormattedResult{
		Anger:           scores[models.EMOTION_ANGER],
		Disgust:         scores[models.EMOTION_DISGUST],
		Fear:            scores[models.EMOTION_FEAR],
		Joy:             scores[models.EMOTION_JOY],
		Sadness:         scores[models.EMOTION_SADNESS],
		DominantEmotion: &dominant,
	}
}
