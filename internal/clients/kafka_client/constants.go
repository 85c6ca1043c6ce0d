package kafka_client

import "time"

const (
	KAFKA_TOPIC_EMOTION_RESULTS = "emotion-results" // one message per successful detection
)

const (
	MAX_RETRIES    = 3
	RETRY_DELAY    = 250 * time.Millisecond
	FLUSH_TIMEOUT  = 5000 // ms
	TRANSACTION_ID = "emotiondetection-producer-1"
)
