package stream

import (
	"context"
	"encoding/json"
	"log/slog"

	"starburger/internal/domain/service"

	"github.com/pkg/errors"
	"github.com/segmentio/kafka-go"
)

// kafkaPublisher implements OrderEventPublisher on top of a kafka-go writer.
type kafkaPublisher struct {
	writer *kafka.Writer
	logger *slog.Logger
}

// NewKafkaPublisher creates a Kafka-backed order event publisher.
func NewKafkaPublisher(brokers []string, topic string, logger *slog.Logger) service.OrderEventPublisher {
	writer := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	}

	return &kafkaPublisher{
		writer: writer,
		logger: logger,
	}
}

// PublishOrderCreated writes the event keyed by order ID so events for
// one order stay on one partition.
func (p *kafkaPublisher) PublishOrderCreated(ctx context.Context, event *service.OrderEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return errors.WithStack(err)
	}

	if err := p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.OrderID.String()),
		Value: payload,
	}); err != nil {
		return errors.Wrap(err, "write order event")
	}

	p.logger.Debug("[KafkaStream] Order event published",
		slog.String("order_id", event.OrderID.String()),
	)

	return nil
}

// Close flushes and closes the underlying writer.
func (p *kafkaPublisher) Close() error {
	return errors.WithStack(p.writer.Close())
}
