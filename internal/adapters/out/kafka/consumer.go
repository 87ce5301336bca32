package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"brewride/internal/core/domain/model/order"

	"github.com/segmentio/kafka-go"
)

// OrderChangedConsumer reads change notifications from the topic and hands
// them to a callback, typically the tracking hub. Undecodable messages are
// logged and committed anyway; replaying them would never succeed.
type OrderChangedConsumer struct {
	reader *kafka.Reader
	logger *slog.Logger
}

// NewOrderChangedConsumer creates a consumer bound to a consumer group.
// Instances in the same group share partitions; give each API instance its
// own group so every instance sees every change.
func NewOrderChangedConsumer(brokers []string, topic, groupID string, logger *slog.Logger) *OrderChangedConsumer {
	if logger == nil {
		logger = slog.Default()
	}

	return &OrderChangedConsumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:     brokers,
			Topic:       topic,
			GroupID:     groupID,
			StartOffset: kafka.LastOffset,
		}),
		logger: logger.With("component", "kafka_consumer"),
	}
}

// Consume fetches messages until the context is canceled, invoking handle
// for each decoded event. Returns nil on context cancellation.
func (c *OrderChangedConsumer) Consume(ctx context.Context, handle func(ctx context.Context, event order.ChangedEvent)) error {
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}

		var event order.ChangedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			c.logger.WarnContext(ctx, "discarding undecodable change notification",
				"topic", msg.Topic,
				"offset", msg.Offset,
				"error", err)
		} else {
			handle(ctx, event)
		}

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			return err
		}
	}
}

// Close releases the reader.
func (c *OrderChangedConsumer) Close() error {
	return c.reader.Close()
}
