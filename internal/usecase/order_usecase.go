// Package usecase defines the application-level interfaces consumed by the delivery layer.
package usecase

import (
	"context"

	"starburger/internal/domain/entity"

	"github.com/google/uuid"
)

// OrderItemInput is one product reference within an order submission.
type OrderItemInput struct {
	Product  uuid.UUID `json:"product"`
	Quantity int       `json:"quantity"`
}

// RegisterOrderInput represents a raw order submission.
type RegisterOrderInput struct {
	Address       string           `json:"address"`
	Firstname     string           `json:"firstname"`
	Lastname      string           `json:"lastname"`
	Phonenumber   string           `json:"phonenumber"`
	Comment       string           `json:"comment"`
	PaymentMethod string           `json:"payment_method"`
	Products      []OrderItemInput `json:"products"`
}

// OrderUsecase defines the order intake and operator-facing operations.
type OrderUsecase interface {
	// RegisterOrder validates the submission, snapshots unit prices and
	// persists the order with its line items atomically.
	RegisterOrder(ctx context.Context, input *RegisterOrderInput) (*entity.Order, error)

	// GetOrder retrieves one order with its items.
	GetOrder(ctx context.Context, id uuid.UUID) (*entity.Order, error)

	// ListOrders retrieves all orders, newest first.
	ListOrders(ctx context.Context) ([]*entity.Order, error)

	// AvailableRestaurants computes the restaurants able to fulfill every
	// line item of the order. An order without items yields an empty set.
	AvailableRestaurants(ctx context.Context, orderID uuid.UUID) ([]*entity.Restaurant, error)
}
