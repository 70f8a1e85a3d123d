// Package rabbitmq publishes delivery request events to a topic exchange.
// Routing keys are "delivery.<event type>", e.g. "delivery.delivery_accepted".
package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/request"

	amqp "github.com/rabbitmq/amqp091-go"
)

// DefaultExchange is declared durable on startup.
const DefaultExchange = "delivery_topic"

const publishTimeout = 3 * time.Second

type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// EventPublisher implements ports.EventPublisher over AMQP.
type EventPublisher struct {
	conn     *amqp.Connection
	ch       channel
	exchange string
}

// Dial connects, opens a channel and declares the exchange.
func Dial(url, exchange string) (*EventPublisher, error) {
	if exchange == "" {
		exchange = DefaultExchange
	}

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("rabbit connect: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("rabbit channel: %w", err)
	}

	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	return &EventPublisher{conn: conn, ch: ch, exchange: exchange}, nil
}

// NewEventPublisherWithChannel wraps an already prepared channel.
func NewEventPublisherWithChannel(ch channel, exchange string) *EventPublisher {
	if exchange == "" {
		exchange = DefaultExchange
	}
	return &EventPublisher{ch: ch, exchange: exchange}
}

// RoutingKey returns the routing key for an event type.
func RoutingKey(kind request.EventKind) string {
	return "delivery." + string(kind)
}

// Publish sends the event as a persistent JSON message.
func (p *EventPublisher) Publish(ctx context.Context, event request.Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}

	pubctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	return p.ch.PublishWithContext(pubctx, p.exchange, RoutingKey(event.Kind), false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    event.RequestID.String(),
		Timestamp:    event.OccurredAt,
		Type:         string(event.Kind),
		Body:         body,
	})
}

// Close releases the channel and the connection.
func (p *EventPublisher) Close() error {
	err := p.ch.Close()
	if p.conn != nil {
		if closeErr := p.conn.Close(); err == nil {
			err = closeErr
		}
	}
	return err
}
