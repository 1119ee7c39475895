package kafka

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/segmentio/kafka-go"
)

// Producer wraps a kafka-go writer bound to one topic.
type Producer struct {
	w *kafka.Writer
}

// Config holds Kafka connection details.
type Config struct {
	Brokers []string
	Topic   string
}

// NewProducer creates an asynchronous producer. Hash balancing keeps messages
// with the same key on one partition, and RequireAll waits for every in-sync
// replica. Each message is its own batch, so nothing waits on BatchTimeout.
func NewProducer(cfg Config) *Producer {
	p := &Producer{}
	p.w = &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		MaxAttempts:  3,
		WriteTimeout: 5 * time.Second,
		ReadTimeout:  5 * time.Second,
		BatchSize:    1,
		Async:        true,
		Completion:   p.completed,
	}
	return p
}

// Publish enqueues one message and returns without waiting for the broker.
// Delivery failures are reported by the completion callback.
func (p *Producer) Publish(ctx context.Context, key, value []byte) error {
	if err := p.w.WriteMessages(ctx, kafka.Message{Key: key, Value: value}); err != nil {
		return fmt.Errorf("failed to enqueue kafka message: %w", err)
	}
	return nil
}

func (p *Producer) completed(messages []kafka.Message, err error) {
	if err == nil {
		return
	}
	for _, m := range messages {
		log.Printf("Failed to deliver kafka message to %s (key %s): %v", p.w.Topic, m.Key, err)
	}
}

// Close flushes pending messages and releases the writer.
func (p *Producer) Close() error { return p.w.Close() }
