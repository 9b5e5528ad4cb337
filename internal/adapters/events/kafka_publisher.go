package events

import (
	"context"
	"errors"
	"time"

	"github.com/segmentio/kafka-go"
)

// KafkaPublisher delivers drained outbox rows to Kafka. Each event type maps
// to its own topic; the partition key keeps all events for one user on one
// partition so consumers see them in order.
type KafkaPublisher struct {
	writer *kafka.Writer
	topics map[string]string
}

func NewKafkaPublisher(brokers []string, topics map[string]string) (*KafkaPublisher, error) {
	if len(brokers) == 0 {
		return nil, errors.New("at least one kafka broker is required")
	}
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
			BatchTimeout: 50 * time.Millisecond,
		},
		topics: topics,
	}, nil
}

func (p *KafkaPublisher) Publish(ctx context.Context, eventType string, payload []byte, partitionKey string) error {
	return p.writer.WriteMessages(ctx, kafka.Message{
		Topic: p.topicFor(eventType),
		Key:   []byte(partitionKey),
		Value: payload,
		Time:  time.Now().UTC(),
	})
}

// topicFor falls back to the event type itself when no mapping is configured.
func (p *KafkaPublisher) topicFor(eventType string) string {
	if topic, ok := p.topics[eventType]; ok && topic != "" {
		return topic
	}
	return eventType
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
