// Package events publishes product change notifications to a message broker.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"productsapi/internal/dto"
	"productsapi/pkg/kafka"
	"productsapi/pkg/rabbitmq"

	"github.com/google/uuid"
)

// EventType names a product lifecycle transition.
type EventType string

const (
	ProductCreated EventType = "product.created"
	ProductUpdated EventType = "product.updated"
	ProductDeleted EventType = "product.deleted"
)

// ProductEvent is the message body sent to the broker. Product is nil for
// deletions.
type ProductEvent struct {
	ID         string               `json:"id"`
	Type       EventType            `json:"type"`
	ProductID  uint                 `json:"productId"`
	Product    *dto.ProductResponse `json:"product,omitempty"`
	OccurredAt time.Time            `json:"occurredAt"`
}

// NewProductEvent stamps a new event with a random id and the current time.
func NewProductEvent(t EventType, productID uint, product *dto.ProductResponse) ProductEvent {
	return ProductEvent{
		ID:         uuid.New().String(),
		Type:       t,
		ProductID:  productID,
		Product:    product,
		OccurredAt: time.Now().UTC(),
	}
}

// Publisher delivers product events.
type Publisher interface {
	Publish(ctx context.Context, event ProductEvent) error
	Close() error
}

// NopPublisher drops every event. It is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, ProductEvent) error { return nil }
func (NopPublisher) Close() error                                 { return nil }

// RabbitMQPublisher routes each event by its type on the configured exchange.
type RabbitMQPublisher struct {
	client *rabbitmq.Client
}

// NewRabbitMQPublisher creates a publisher backed by a RabbitMQ client.
func NewRabbitMQPublisher(client *rabbitmq.Client) *RabbitMQPublisher {
	return &RabbitMQPublisher{client: client}
}

func (p *RabbitMQPublisher) Publish(_ context.Context, event ProductEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal product event: %w", err)
	}
	return p.client.Publish(string(event.Type), body)
}

func (p *RabbitMQPublisher) Close() error { return p.client.Close() }

// KafkaPublisher writes events keyed by product id so that all events for one
// product land on the same partition.
type KafkaPublisher struct {
	producer *kafka.Producer
}

// NewKafkaPublisher creates a publisher backed by a Kafka producer.
func NewKafkaPublisher(producer *kafka.Producer) *KafkaPublisher {
	return &KafkaPublisher{producer: producer}
}

func (p *KafkaPublisher) Publish(ctx context.Context, event ProductEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal product event: %w", err)
	}
	return p.producer.Publish(ctx, []byte(strconv.FormatUint(uint64(event.ProductID), 10)), body)
}

func (p *KafkaPublisher) Close() error { return p.producer.Close() }
