// Package kafka publishes and consumes order change notifications. The
// broker fans changes out to every API instance so a tracking subscriber
// connected to one instance still sees changes committed through another.
package kafka

import (
	"context"
	"encoding/json"
	"time"

	"brewride/internal/core/domain/model/order"

	"github.com/segmentio/kafka-go"
)

// OrderChangedPublisher implements OrderEventPublisher on a Kafka topic.
// Messages are keyed by order ID so changes to one order stay ordered
// within a partition.
type OrderChangedPublisher struct {
	writer *kafka.Writer
}

// NewOrderChangedPublisher creates a publisher for the given brokers and topic.
func NewOrderChangedPublisher(brokers []string, topic string) *OrderChangedPublisher {
	return &OrderChangedPublisher{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.LeastBytes{},
			AllowAutoTopicCreation: true,
			BatchTimeout:           100 * time.Millisecond,
		},
	}
}

// PublishOrderChanged serializes the event and writes it to the topic.
func (p *OrderChangedPublisher) PublishOrderChanged(ctx context.Context, event order.ChangedEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.OrderID),
		Value: data,
	})
}

// Close flushes pending messages and releases the writer.
func (p *OrderChangedPublisher) Close() error {
	return p.writer.Close()
}
