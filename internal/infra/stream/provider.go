// Package stream implements the order event publisher.
package stream

import (
	"context"
	"log/slog"

	"starburger/config"
	"starburger/internal/domain/service"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const providerKafka = "kafka"

// noopPublisher is a no-op implementation when event publishing is disabled
type noopPublisher struct {
	logger *slog.Logger
}

func (p *noopPublisher) PublishOrderCreated(_ context.Context, event *service.OrderEvent) error {
	p.logger.Debug("[NoopStream] Event publishing disabled, skipping",
		slog.String("order_id", event.OrderID.String()),
	)

	return nil
}

func (p *noopPublisher) Close() error {
	return nil
}

// PublisherParams holds dependencies for OrderEventPublisher, injected by Fx
type PublisherParams struct {
	fx.In

	Lc     fx.Lifecycle
	Config *config.Config
	Logger *slog.Logger
}

// NewOrderEventPublisher creates an OrderEventPublisher based on configuration
func NewOrderEventPublisher(params PublisherParams) (service.OrderEventPublisher, error) {
	cfg := params.Config.Events
	logger := params.Logger

	// If events are not configured, return a no-op publisher
	if cfg == nil || cfg.Provider == "" {
		logger.Info("Event publishing not configured, using no-op publisher")

		return &noopPublisher{logger: logger}, nil
	}

	var publisher service.OrderEventPublisher

	switch cfg.Provider {
	case providerKafka:
		if len(cfg.Brokers) == 0 {
			return nil, errors.New("brokers are required for kafka provider")
		}
		if cfg.Topic == "" {
			return nil, errors.New("topic is required for kafka provider")
		}
		logger.Info("Using Kafka publisher for order events",
			slog.Any("brokers", cfg.Brokers),
			slog.String("topic", cfg.Topic),
		)

		publisher = NewKafkaPublisher(cfg.Brokers, cfg.Topic, logger)

	default:
		return nil, errors.Errorf("unknown events provider: %s", cfg.Provider)
	}

	// Register lifecycle hook to close publisher on shutdown
	params.Lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			logger.Info("Closing OrderEventPublisher")

			return publisher.Close()
		},
	})

	return publisher, nil
}
