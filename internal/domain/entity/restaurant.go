// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Restaurant is a physical restaurant that fulfills orders.
type Restaurant struct {
	ID           uuid.UUID `json:"id"`            // The unique identifier for the restaurant.
	Name         string    `json:"name"`          // Display name.
	Address      string    `json:"address"`       // Street address, geocoded on demand.
	ContactPhone string    `json:"contact_phone"` // Contact phone number.
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// MenuItem links a product to a restaurant that sells it.
// The (restaurant, product) pair is unique.
type MenuItem struct {
	ID           uuid.UUID `json:"id"`
	RestaurantID uuid.UUID `json:"restaurant_id"`
	ProductID    uuid.UUID `json:"product_id"`
	Availability bool      `json:"availability"` // Whether the restaurant currently sells the product.
}
