// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"

	"starburger/internal/domain/entity"
	"starburger/internal/errors"

	"github.com/google/uuid"
)

// Domain-specific errors for catalog persistence.
var (
	// ErrProductNotFound is returned when a product is not found.
	ErrProductNotFound = errors.New("product not found")
	// ErrRestaurantNotFound is returned when a restaurant is not found.
	ErrRestaurantNotFound = errors.New("restaurant not found")
	// ErrProductInUse is returned when a product deletion is blocked by
	// order line items that still reference it.
	ErrProductInUse = errors.New("product is referenced by order items")
)

// CatalogRepository is the read-mostly view over restaurants, products,
// categories and per-restaurant availability.
type CatalogRepository interface {
	// FindAvailableProducts retrieves products that at least one restaurant
	// menu entry marks as available, with their categories preloaded.
	FindAvailableProducts(ctx context.Context) ([]*entity.Product, error)

	// FindProductsByIDs retrieves the products matching the given IDs.
	// Missing IDs are simply absent from the result; callers decide
	// whether that is an error.
	FindProductsByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Product, error)

	// FindMenuItemsByProducts retrieves all available menu items for the
	// given products in a single query.
	FindMenuItemsByProducts(ctx context.Context, productIDs []uuid.UUID) ([]*entity.MenuItem, error)

	// FindRestaurantsByIDs retrieves the restaurants matching the given IDs.
	FindRestaurantsByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Restaurant, error)

	// ListRestaurants retrieves all restaurants.
	ListRestaurants(ctx context.Context) ([]*entity.Restaurant, error)

	// DeleteProduct removes a product. Returns ErrProductInUse while any
	// order line item references the product.
	DeleteProduct(ctx context.Context, id uuid.UUID) error
}
