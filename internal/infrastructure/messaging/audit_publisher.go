package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/deva-prakash-j/lurniq-api/domain"
)

// KafkaAuditPublisher implements domain.AuditPublisher by writing audit
// events to a Kafka topic, keyed by email so events for one account stay
// ordered within a partition.
type KafkaAuditPublisher struct {
	writer *kafka.Writer
}

// NewKafkaAuditPublisher creates a publisher for the given brokers and topic.
// With no brokers configured it degrades to a log-only publisher.
func NewKafkaAuditPublisher(brokers []string, topic string) domain.AuditPublisher {
	if len(brokers) == 0 {
		return &logAuditPublisher{}
	}

	return &KafkaAuditPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.LeastBytes{},
			BatchTimeout: 50 * time.Millisecond,
			RequiredAcks: kafka.RequireOne,
		},
	}
}

// Publish implements domain.AuditPublisher
func (p *KafkaAuditPublisher) Publish(ctx context.Context, event *domain.AuditEvent) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("audit: marshal failed: %w", err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.Email),
		Value: data,
	})
	if err != nil {
		return fmt.Errorf("audit: write failed: %w", err)
	}
	return nil
}

// Close implements domain.AuditPublisher
func (p *KafkaAuditPublisher) Close() error {
	return p.writer.Close()
}

// logAuditPublisher logs events instead of publishing them
type logAuditPublisher struct{}

func (p *logAuditPublisher) Publish(_ context.Context, event *domain.AuditEvent) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	log.Printf("[AUDIT] %s user_id=%d email=%s success=%t", event.EventType, event.UserID, event.Email, event.Success)
	return nil
}

func (p *logAuditPublisher) Close() error { return nil }
