package repository

import (
	"context"

	"starburger/internal/domain/entity"
	"starburger/internal/errors"

	"github.com/google/uuid"
)

// ErrOrderNotFound is returned when an order is not found.
var ErrOrderNotFound = errors.New("order not found")

// OrderRepository persists orders and their line items.
type OrderRepository interface {
	// CreateOrder inserts the order row and all of its line-item rows.
	// Callers that need atomicity run it through TransactionManager so
	// either every row becomes visible or none do.
	CreateOrder(ctx context.Context, order *entity.Order) error

	// FindOrderByID retrieves a single order with its items.
	FindOrderByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)

	// ListOrders retrieves all orders with items, newest first.
	ListOrders(ctx context.Context) ([]*entity.Order, error)

	// UpdateStatus moves an order to a new lifecycle status.
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.OrderStatus) error
}
