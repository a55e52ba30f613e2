package usecase

import (
	"context"

	"starburger/internal/domain/entity"

	"github.com/google/uuid"
)

// CatalogUsecase exposes the storefront catalog operations.
type CatalogUsecase interface {
	// AvailableProducts lists products available at one restaurant or
	// more, with categories attached.
	AvailableProducts(ctx context.Context) ([]*entity.Product, error)

	// RemoveProduct deletes a product from the catalog. Deletion is
	// refused while order line items still reference the product.
	RemoveProduct(ctx context.Context, id uuid.UUID) error
}
