package entity

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestOrder_Total(t *testing.T) {
	order := &Order{
		Items: []*OrderItem{
			{Quantity: 2, UnitPrice: decimal.RequireFromString("249.99")},
			{Quantity: 1, UnitPrice: decimal.RequireFromString("0.02")},
		},
	}

	assert.Equal(t, "500.00", order.Total().StringFixed(2))
}

func TestOrder_Total_EmptyOrder(t *testing.T) {
	order := &Order{}

	assert.True(t, order.Total().IsZero())
}

func TestOrderItem_LineTotal(t *testing.T) {
	item := &OrderItem{Quantity: 3, UnitPrice: decimal.RequireFromString("90.50")}

	assert.Equal(t, "271.50", item.LineTotal().StringFixed(2))
}
