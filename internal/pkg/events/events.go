// Package events carries order lifecycle events from the ledger to the
// catalog over Kafka.
package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"
)

// OrderCreated is published once per order persisted by the ledger.
type OrderCreated struct {
	OrderID int64         `json:"order_id"`
	Items   []OrderedItem `json:"items"`
}

type OrderedItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// Publisher emits ledger events.
type Publisher interface {
	PublishOrderCreated(ctx context.Context, ev OrderCreated) error
	Close() error
}

// NoopPublisher is used when no brokers are configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishOrderCreated(context.Context, OrderCreated) error { return nil }
func (NoopPublisher) Close() error                                            { return nil }

// messageWriter is the subset of *kafka.Writer the publisher needs.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaPublisher struct {
	writer messageWriter
}

func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return &KafkaPublisher{writer: &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
		BatchTimeout:           10 * time.Millisecond,
	}}
}

// PublishOrderCreated keys messages by order id so events for one order stay
// on one partition.
func (p *KafkaPublisher) PublishOrderCreated(ctx context.Context, ev OrderCreated) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("events: marshal order_created %d: %w", ev.OrderID, err)
	}
	msg := kafka.Message{
		Key:   []byte(strconv.FormatInt(ev.OrderID, 10)),
		Value: payload,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("events: publish order_created %d: %w", ev.OrderID, err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error { return p.writer.Close() }

// messageReader is the subset of *kafka.Reader the consumer needs.
type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// OrderCreatedHandler reacts to a decoded event.
type OrderCreatedHandler func(ctx context.Context, ev OrderCreated) error

type Consumer struct {
	reader  messageReader
	handler OrderCreatedHandler
}

func NewKafkaConsumer(brokers []string, topic, groupID string, handler OrderCreatedHandler) *Consumer {
	return &Consumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers: brokers,
			Topic:   topic,
			GroupID: groupID,
		}),
		handler: handler,
	}
}

// Run consumes until ctx is cancelled. Undecodable messages are logged and
// committed so they do not block the partition; handler failures are logged
// and also committed, stock adjustments being best-effort.
func (c *Consumer) Run(ctx context.Context) error {
	defer c.reader.Close()
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(ctx.Err(), context.Canceled) {
				return nil
			}
			return fmt.Errorf("events: fetch: %w", err)
		}

		var ev OrderCreated
		if err := json.Unmarshal(msg.Value, &ev); err != nil {
			slog.ErrorContext(ctx, "dropping undecodable order_created message",
				"offset", msg.Offset, "partition", msg.Partition, "error", err)
		} else if err := c.handler(ctx, ev); err != nil {
			slog.ErrorContext(ctx, "order_created handler failed", "order_id", ev.OrderID, "error", err)
		}

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			return fmt.Errorf("events: commit offset %d: %w", msg.Offset, err)
		}
	}
}
