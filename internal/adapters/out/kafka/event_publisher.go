// Package kafka publishes delivery request events to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"marketplace/internal/core/domain/model/request"

	kafkago "github.com/segmentio/kafka-go"
)

// DefaultTopic carries every delivery request event.
const DefaultTopic = "delivery.events"

const (
	queueSize           = 1024
	writeTimeout        = 10 * time.Second
	publishBatchTimeout = 10 * time.Millisecond
)

var (
	// ErrQueueFull is returned when the broker falls behind and the outbound
	// queue has no room left.
	ErrQueueFull = errors.New("kafka publish queue is full")
	// ErrPublisherClosed is returned by Publish after Close.
	ErrPublisherClosed = errors.New("kafka publisher is closed")
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// EventPublisher writes JSON events keyed by request id, so all events of one
// request land on the same partition in order. Publish only enqueues; a single
// background loop hands messages to the writer.
type EventPublisher struct {
	writer messageWriter
	logger *slog.Logger

	mu     sync.RWMutex
	closed bool
	queue  chan kafkago.Message
	done   chan struct{}
}

// NewEventPublisher creates a publisher backed by a long-lived writer.
func NewEventPublisher(brokers []string, topic string, logger *slog.Logger) *EventPublisher {
	return NewEventPublisherWithWriter(NewWriter(brokers, topic), logger)
}

// NewWriter builds the writer used by NewEventPublisher. Each write carries a
// single message, so batches are flushed after publishBatchTimeout.
func NewWriter(brokers []string, topic string) *kafkago.Writer {
	if topic == "" {
		topic = DefaultTopic
	}

	return &kafkago.Writer{
		Addr:                   kafkago.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafkago.Hash{},
		AllowAutoTopicCreation: true,
		BatchTimeout:           publishBatchTimeout,
	}
}

// NewEventPublisherWithWriter wraps an existing writer and starts the send loop.
func NewEventPublisherWithWriter(writer messageWriter, logger *slog.Logger) *EventPublisher {
	p := &EventPublisher{
		writer: writer,
		logger: logger.With("component", "kafka_publisher"),
		queue:  make(chan kafkago.Message, queueSize),
		done:   make(chan struct{}),
	}
	go p.run()
	return p
}

// Publish implements ports.EventPublisher.
func (p *EventPublisher) Publish(_ context.Context, event request.Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", event.Kind, err)
	}

	msg := kafkago.Message{
		Key:   []byte(event.RequestID.String()),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "type", Value: []byte(event.Kind)},
		},
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return ErrPublisherClosed
	}

	select {
	case p.queue <- msg:
		return nil
	default:
		return fmt.Errorf("%s event for %s: %w", event.Kind, event.RequestID, ErrQueueFull)
	}
}

func (p *EventPublisher) run() {
	defer close(p.done)

	for msg := range p.queue {
		// the request that produced the event may already be gone
		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		err := p.writer.WriteMessages(ctx, msg)
		cancel()

		if err != nil {
			p.logger.Error("failed to deliver event",
				"request_id", string(msg.Key),
				"error", err,
			)
		}
	}
}

// Close drains queued events and closes the writer.
func (p *EventPublisher) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.queue)
	p.mu.Unlock()

	<-p.done
	return p.writer.Close()
}
