package kafka_client

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/confluentinc/confluent-kafka-go/kafka"
	"github.com/spacesedan/emotiondetection/internal/models"
)

// Producer publishes emotion results transactionally. Transactions on a
// single kafka.Producer cannot overlap, so publishes are serialized.
type Producer struct {
	producer *kafka.Producer
	topic    string
	mu       sync.Mutex
	drained  chan struct{}
}

func NewProducer(ctx context.Context, cfg KafkaConfig) (*Producer, error) {
	slog.Info("[KafkaClient] Initializing Kafka Producer...",
		slog.String("broker", cfg.Broker),
		slog.String("topic", cfg.Topic))

	p, err := kafka.NewProducer(&kafka.ConfigMap{
		"bootstrap.servers":                     cfg.Broker,
		"security.protocol":                     "PLAINTEXT",
		"api.version.request":                   "true",
		"enable.idempotence":                    true,
		"acks":                                  "all",
		"max.in.flight.requests.per.connection": 1,
		"transactional.id":                      cfg.TransactionalID,
	})
	if err != nil {
		return nil, fmt.Errorf("[KafkaClient] Failed to create producer: %w", err)
	}

	if err := p.InitTransactions(ctx); err != nil {
		p.Close()
		return nil, fmt.Errorf("[KafkaClient] Failed to init transactions: %w", err)
	}

	producer := &Producer{producer: p, topic: cfg.Topic, drained: make(chan struct{})}
	go drainEvents(p.Events(), producer.drained)

	slog.Info("[KafkaClient] Kafka Producer initialized successfully")
	return producer, nil
}

// drainEvents consumes delivery reports until the producer closes its
// events channel. Unread reports would otherwise accumulate in the
// producer's buffer for the life of the process.
func drainEvents(events <-chan kafka.Event, drained chan<- struct{}) {
	defer close(drained)
	for ev := range events {
		if err := deliveryError(ev); err != nil {
			slog.Warn("[KafkaClient] Delivery failed",
				slog.String("error", err.Error()))
		}
	}
}

// deliveryError extracts the failure carried by a producer event, if any.
func deliveryError(ev kafka.Event) error {
	switch e := ev.(type) {
	case *kafka.Message:
		if e.TopicPartition.Error != nil {
			return fmt.Errorf("message to %s not delivered: %w", e.TopicPartition, e.TopicPartition.Error)
		}
	case kafka.Error:
		return e
	}
	return nil
}

func (p *Producer) Close() {
	slog.Info("[KafkaClient] Flushing Kafka producer before shutdown...")
	if remaining := p.producer.Flush(FLUSH_TIMEOUT); remaining > 0 {
		slog.Warn("[KafkaClient] Not all messages were delivered before shutdown",
			slog.Int("remaining", remaining))
	}
	p.producer.Close()
	<-p.drained
	slog.Info("[KafkaClient] Kafka producer shut down")
}

// PublishEmotionEvent writes one event inside its own transaction.
func (p *Producer) PublishEmotionEvent(ctx context.Context, key string, event models.EmotionEvent) error {
	msg, err := buildMessage(p.topic, key, event)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.producer.BeginTransaction(); err != nil {
		return fmt.Errorf("[KafkaClient] failed to begin transaction: %w", err)
	}

	for i := 0; i < MAX_RETRIES; i++ {
		err = p.producer.Produce(msg, nil)
		if err == nil {
			break
		}
		slog.Warn("[KafkaClient] Failed to produce message, retrying...",
			slog.Int("attempt", i+1),
			slog.String("error", err.Error()))
		time.Sleep(RETRY_DELAY)
	}
	if err != nil {
		if abortErr := p.producer.AbortTransaction(ctx); abortErr != nil {
			return fmt.Errorf("[KafkaClient] failed to abort transaction after produce error: %w", abortErr)
		}
		return err
	}

	var commitErr error
	for i := 0; i < MAX_RETRIES; i++ {
		commitErr = p.producer.CommitTransaction(ctx)
		if commitErr == nil {
			break
		}
		slog.Warn("[KafkaClient] Failed to commit transaction, retrying...",
			slog.Int("attempt", i+1),
			slog.String("error", commitErr.Error()))
	}
	if commitErr != nil {
		if abortErr := p.producer.AbortTransaction(ctx); abortErr != nil {
			slog.Error("[KafkaClient] Failed to abort transaction after commit error",
				slog.String("error", abortErr.Error()))
		}
		return fmt.Errorf("[KafkaClient] failed to commit transaction after %d retries: %w", MAX_RETRIES, commitErr)
	}

	slog.Debug("[KafkaClient] Published emotion event",
		slog.String("topic", p.topic),
		slog.String("key", key))

	return nil
}

func buildMessage(topic, key string, event models.EmotionEvent) (*kafka.Message, error) {
	jsonData, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("[KafkaClient] failed to marshal event: %w", err)
	}

	return &kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &topic, Partition: kafka.PartitionAny},
		Key:            []byte(key),
		Value:          jsonData,
		Headers: []kafka.Header{
			{Key: "content-type", Value: []byte("application/json")},
			{Key: "backend", Value: []byte(event.Backend)},
		},
	}, nil
}
