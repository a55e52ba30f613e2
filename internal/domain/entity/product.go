package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductCategory groups products on the storefront. A product may have
// no category at all.
type ProductCategory struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// Product is a sellable catalog item. Price is a non-negative decimal
// with two fractional digits; money never travels as a float.
type Product struct {
	ID            uuid.UUID        `json:"id"`
	Name          string           `json:"name"`
	CategoryID    *uuid.UUID       `json:"category_id,omitempty"`
	Category      *ProductCategory `json:"category,omitempty"`
	Price         decimal.Decimal  `json:"price"`
	Image         string           `json:"image"` // Reference to the product picture.
	SpecialStatus bool             `json:"special_status"`
	Description   string           `json:"description"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}
