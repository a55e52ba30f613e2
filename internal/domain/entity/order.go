package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus is the order processing lifecycle:
// IN_PROGRESS -> IN_RESTAURANT -> IN_WAY -> DONE.
type OrderStatus string

const (
	OrderStatusInProgress   OrderStatus = "IN_PROGRESS"   // Accepted, not yet handed to a restaurant.
	OrderStatusInRestaurant OrderStatus = "IN_RESTAURANT" // Being prepared by the assigned restaurant.
	OrderStatusInWay        OrderStatus = "IN_WAY"        // Handed to a courier.
	OrderStatusDone         OrderStatus = "DONE"          // Delivered.
)

// PaymentMethod is how the customer intends to pay.
type PaymentMethod string

const (
	PaymentMethodCash        PaymentMethod = "CASH"
	PaymentMethodElectronic  PaymentMethod = "ELECTRONIC"
	PaymentMethodUnspecified PaymentMethod = "UNSPECIFIED"
)

// Order is a customer order together with its line items. An order and
// its items are created atomically and are never partially persisted.
type Order struct {
	ID            uuid.UUID     `json:"id"`
	Address       string        `json:"address"`             // Delivery address.
	Firstname     string        `json:"firstname"`           // Optional.
	Lastname      string        `json:"lastname"`            // Required.
	Comment       string        `json:"comment"`             // Free-text note for the courier.
	Phonenumber   string        `json:"phonenumber"`         // Normalized, validated phone number.
	Status        OrderStatus   `json:"status"`
	PaymentMethod PaymentMethod `json:"payment_method"`
	RestaurantID  *uuid.UUID    `json:"restaurant_id,omitempty"` // Assigned restaurant, if any.
	CalledAt      *time.Time    `json:"called_at,omitempty"`
	DeliveredAt   *time.Time    `json:"delivered_at,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	Items         []*OrderItem  `json:"items"`
}

// Total computes the order price as the sum of stored unit-price
// snapshots times quantities. It is a pure aggregate recomputed on each
// read; later catalog price changes never affect it.
func (o *Order) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.LineTotal())
	}

	return total
}

// OrderItem is one (product, quantity) line within an order. UnitPrice
// is the product price captured at order creation and is immutable.
type OrderItem struct {
	ID        uuid.UUID       `json:"id"`
	OrderID   uuid.UUID       `json:"order_id"`
	ProductID uuid.UUID       `json:"product_id"`
	Quantity  int             `json:"quantity"` // Always >= 1.
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// LineTotal returns UnitPrice * Quantity.
func (i *OrderItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
