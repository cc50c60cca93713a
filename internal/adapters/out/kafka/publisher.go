// Package kafka publishes committed order status changes to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"fulfillment/internal/core/domain/model/order"

	"github.com/segmentio/kafka-go"
)

const eventType = "fulfillment.order.status_changed"

// OrderStatusChangedMessage is the JSON value of every published message.
type OrderStatusChangedMessage struct {
	OrderID     string    `json:"orderId"`
	OrderNumber string    `json:"orderNumber"`
	From        string    `json:"from"`
	To          string    `json:"to"`
	At          time.Time `json:"at"`
}

// messageWriter is the part of *kafka.Writer the publisher uses.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher implements ports.EventPublisher. Failures are logged and dropped.
type Publisher struct {
	writer messageWriter
	logger *slog.Logger
}

// NewPublisher writes synchronously to topic on brokers, keyed by order id so
// that the changes of one order stay ordered within a partition.
func NewPublisher(brokers []string, topic string, logger *slog.Logger) *Publisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
		Async:        false,
	}
	return newPublisher(writer, logger)
}

// newPublisher is used by tests to inject a writer.
func newPublisher(writer messageWriter, logger *slog.Logger) *Publisher {
	return &Publisher{writer: writer, logger: logger.With("component", "kafka-publisher")}
}

// Publish writes one message per event, keyed by order id so that a
// partition sees an order's transitions in order. Encoding and write
// failures are logged and dropped.
func (p *Publisher) Publish(ctx context.Context, events ...order.StatusChanged) {
	if len(events) == 0 {
		return
	}

	msgs := make([]kafka.Message, 0, len(events))
	for _, e := range events {
		msg, err := toMessage(e)
		if err != nil {
			p.logger.Error("failed to encode order status change", "orderId", e.OrderID.String(), "error", err)
			continue
		}
		msgs = append(msgs, msg)
	}

	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		p.logger.Error("failed to publish order status changes", "count", len(msgs), "error", err)
	}
}

// Close flushes and closes the writer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}

// toMessage keys the message by order id so one order keeps its order within a partition.
func toMessage(e order.StatusChanged) (kafka.Message, error) {
	value, err := json.Marshal(OrderStatusChangedMessage{
		OrderID:     e.OrderID.String(),
		OrderNumber: e.OrderNumber,
		From:        e.From.String(),
		To:          e.To.String(),
		At:          e.OccurredAt.UTC(),
	})
	if err != nil {
		return kafka.Message{}, fmt.Errorf("marshal order status change: %w", err)
	}

	return kafka.Message{
		Key:   []byte(e.OrderID.String()),
		Value: value,
		Headers: []kafka.Header{
			{Key: "ce-type", Value: []byte(eventType)},
			{Key: "content-type", Value: []byte("application/json")},
		},
		Time: e.OccurredAt,
	}, nil
}

// NopPublisher drops every event.
type NopPublisher struct{}

// NewNopPublisher is used when no broker is configured.
func NewNopPublisher() NopPublisher {
	return NopPublisher{}
}

// Publish discards events.
func (NopPublisher) Publish(context.Context, ...order.StatusChanged) {}
