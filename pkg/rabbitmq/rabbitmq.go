package rabbitmq

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"etalase/internal/apperrors"

	amqp "github.com/streadway/amqp"
)

// fulfilledQueue receives one message per fulfilled order line; consumers
// use it to bump product sales counters.
const fulfilledQueue = "order_fulfilled_queue"

// OrderFulfilledEvent is the payload published when an order line ships.
type OrderFulfilledEvent struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// Client holds the RabbitMQ connection and channel.
type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
}

// Config holds RabbitMQ connection details.
type Config struct {
	URL string
}

// NewClient connects to RabbitMQ, opens a channel, and declares the
// order-fulfilled queue.
func NewClient(cfg Config) (*Client, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	_, err = ch.QueueDeclare(
		fulfilledQueue,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare %s: %w", fulfilledQueue, err)
	}

	log.Printf("RabbitMQ client connected and %s declared", fulfilledQueue)

	return &Client{
		conn:    conn,
		channel: ch,
	}, nil
}

// Close closes the RabbitMQ connection and channel.
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
	if len(errs) > 0 {
		return fmt.Errorf("multiple errors occurred during RabbitMQ client close: %v", errs)
	}
	return nil
}

// PublishOrderFulfilled publishes a fulfillment event for a product.
func (c *Client) PublishOrderFulfilled(event OrderFulfilledEvent) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available")
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal fulfillment event: %w", err)
	}

	err = c.channel.Publish(
		"",             // exchange: default
		fulfilledQueue, // routing key: the queue name
		false,          // mandatory
		false,          // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
		})
	if err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}

	log.Printf(" [x] Sent fulfillment event: %s", body)
	return nil
}

// ConsumeOrderFulfilled starts a goroutine that feeds fulfillment events to
// the handler. A handler error nacks the message back onto the queue;
// success acks it.
func (c *Client) ConsumeOrderFulfilled(handler func(event OrderFulfilledEvent) error) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available for consumption")
	}

	msgs, err := c.channel.Consume(
		fulfilledQueue,
		"",    // consumer tag
		false, // auto-ack: manual acknowledgement
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	go func() {
		for msg := range msgs {
			var event OrderFulfilledEvent
			if err := json.Unmarshal(msg.Body, &event); err != nil {
				log.Printf("Dropping malformed fulfillment message %d: %v", msg.DeliveryTag, err)
				// Malformed payloads would loop forever if requeued.
				if nackErr := msg.Nack(false, false); nackErr != nil {
					log.Printf("Error nacking message %d: %v", msg.DeliveryTag, nackErr)
				}
				continue
			}

			if err := handler(event); err != nil {
				log.Printf("Error processing fulfillment %d: %v", msg.DeliveryTag, err)
				// Domain rejections will fail the same way on every
				// redelivery, so only infrastructure errors requeue.
				if requeueErr := msg.Nack(false, retryable(err)); requeueErr != nil {
					log.Printf("Error nacking message %d: %v", msg.DeliveryTag, requeueErr)
				}
			} else {
				if ackErr := msg.Ack(false); ackErr != nil {
					log.Printf("Error acking message %d: %v", msg.DeliveryTag, ackErr)
				}
			}
		}
	}()

	return nil
}

// retryable reports whether a handler error is worth redelivering. Unknown
// products, bad quantities, and exhausted stock are permanent for a given
// message and would loop forever if requeued.
func retryable(err error) bool {
	switch {
	case errors.Is(err, apperrors.ErrProductNotFound),
		errors.Is(err, apperrors.ErrValidation),
		errors.Is(err, apperrors.ErrInsufficientStock):
		return false
	default:
		return true
	}
}
