package models

import "time"

type EmotionEvent struct {
	Text       string          `json:"text"`
	Backend    string          `json:"backend"`
	Result     FormattedResult `json:"result"`
	DetectedAt time.Time       `json:"detected_at"`
}
