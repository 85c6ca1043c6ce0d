package models

type WatsonEmotionRequest struct {
	RawDocument WatsonRawDocument `json:"raw_document"`
}

type WatsonRawDocument struct {
	Text string `json:"text"`
}

type WatsonEmotionResponse struct {
	EmotionPredictions []WatsonEmotionPrediction `json:"emotionPredictions"`
	ProducerID         *WatsonProducerID         `json:"producerId,omitempty"`
}

type WatsonEmotionPrediction struct {
	Emotion         map[string]float64     `json:"emotion"`
	Target          string                 `json:"target"`
	EmotionMentions []WatsonEmotionMention `json:"emotionMentions"`
}

type WatsonEmotionMention struct {
	Span    WatsonSpan         `json:"span"`
	Emotion map[string]float64 `json:"emotion"`
}

type WatsonSpan struct {
	Begin int    `json:"begin"`
	End   int    `json:"end"`
	Text  string `json:"text"`
}

type WatsonProducerID struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

type IAMTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
	Expiration   int64  `json:"expiration"`
}
