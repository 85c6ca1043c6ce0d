package kafka_client

type KafkaConfig struct {
	Broker          string
	Topic           string
	TransactionalID string
}

func NewKafkaConfig(broker, topic string) KafkaConfig {
	if topic == "" {
		topic = KAFKA_TOPIC_EMOTION_RESULTS
	}
	return KafkaConfig{
		Broker:          broker,
		Topic:           topic,
		TransactionalID: TRANSACTION_ID,
	}
}
