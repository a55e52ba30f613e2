package service

import (
	"context"

	"github.com/google/uuid"
)

// OrderEvent is published after an order is successfully registered.
type OrderEvent struct {
	OrderID     uuid.UUID `json:"order_id"`
	Phonenumber string    `json:"phonenumber"`
	Address     string    `json:"address"`
	Total       string    `json:"total"` // Decimal string, two fractional digits.
	CreatedAt   string    `json:"created_at"`
}

// OrderEventPublisher pushes order events to downstream consumers
// (operator tooling, notifications). Publishing is best-effort: a
// failure is logged by the caller and never fails the order itself.
type OrderEventPublisher interface {
	PublishOrderCreated(ctx context.Context, event *OrderEvent) error
	Close() error
}
