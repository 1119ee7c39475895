package rabbitmq

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	amqp "github.com/streadway/amqp"
)

// Client holds the RabbitMQ connection and channel.
type Client struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
	// amqp.Channel is not safe for concurrent publishing.
	mu sync.Mutex
}

// Config holds RabbitMQ connection details.
type Config struct {
	URL      string
	Exchange string
}

// NewClient connects to RabbitMQ, opens a channel and declares a durable
// topic exchange for product events.
func NewClient(cfg Config) (*Client, error) {
	if cfg.Exchange == "" {
		return nil, errors.New("rabbitmq exchange name is required")
	}

	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	err = ch.ExchangeDeclare(
		cfg.Exchange, // name
		"topic",      // kind
		true,         // durable
		false,        // auto-deleted
		false,        // internal
		false,        // no-wait
		nil,          // arguments
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange %s: %w", cfg.Exchange, err)
	}

	log.Printf("RabbitMQ client connected and exchange %s declared.", cfg.Exchange)

	return &Client{
		conn:     conn,
		channel:  ch,
		exchange: cfg.Exchange,
	}, nil
}

// Close closes the RabbitMQ channel and connection.
func (c *Client) Close() error {
	var errs []error
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close channel: %w", err))
		}
	}
	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close connection: %w", err))
		}
	}
	return errors.Join(errs...)
}

// Publish sends a persistent JSON message to the exchange with the given
// routing key.
func (c *Client) Publish(routingKey string, body []byte) error {
	if c.channel == nil {
		return errors.New("RabbitMQ channel is not available")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	err := c.channel.Publish(
		c.exchange, // exchange
		routingKey, // routing key
		false,      // mandatory
		false,      // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
		})
	if err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}
	return nil
}
