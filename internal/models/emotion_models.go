package models

const (
	EMOTION_ANGER   = "anger"
	EMOTION_DISGUST = "disgust"
	EMOTION_FEAR    = "fear"
	EMOTION_JOY     = "joy"
	EMOTION_SADNESS = "sadness"
)

// EmotionLabels is the fixed label set, in the order used for tie breaks.
var EmotionLabels = []string{
	EMOTION_ANGER,
	EMOTION_DISGUST,
	EMOTION_FEAR,
	EMOTION_JOY,
	EMOTION_SADNESS,
}

// EmotionScores maps an emotion label to its score. An empty mapping is the
// classifier's way of saying the text could not be analyzed.
type EmotionScores map[string]float64

// Complete reports whether every label in EmotionLabels has a score.
func (s EmotionScores) Complete() bool {
	for _, label := range EmotionLabels {
		if _, ok := s[label]; !ok {
			return false
		}
	}
	return true
}

type FormattedResult struct {
	Anger           float64 `json:"anger"`
	Disgust         float64 `json:"disgust"`
	Fear            float64 `json:"fear"`
	Joy             float64 `json:"joy"`
	Sadness         float64 `json:"sadness"`
	DominantEmotion *string `json:"dominant_emotion"`
}

func (r FormattedResult) Valid() bool {
	return r.DominantEmotion != nil
}
