package impl

import (
	"context"
	"fmt"

	"starburger/internal/domain/entity"
	domainerrors "starburger/internal/domain/errors"
	"starburger/internal/domain/repository"
	"starburger/internal/errors"
	"starburger/internal/usecase"

	"github.com/google/uuid"
)

type catalogService struct {
	catalogRepo repository.CatalogRepository
}

// NewCatalogService creates a new catalog service instance
func NewCatalogService(catalogRepo repository.CatalogRepository) usecase.CatalogUsecase {
	return &catalogService{
		catalogRepo: catalogRepo,
	}
}

// AvailableProducts lists products marked available on at least one
// restaurant menu.
func (s *catalogService) AvailableProducts(ctx context.Context) ([]*entity.Product, error) {
	products, err := s.catalogRepo.FindAvailableProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to find available products: %w", err)
	}

	return products, nil
}

// RemoveProduct deletes a product. Deletion is refused while order line
// items reference the product; that is reported, never forced.
func (s *catalogService) RemoveProduct(ctx context.Context, id uuid.UUID) error {
	if err := s.catalogRepo.DeleteProduct(ctx, id); err != nil {
		if errors.Is(err, repository.ErrProductInUse) {
			return domainerrors.ErrProductInUse
		}
		if errors.Is(err, repository.ErrProductNotFound) {
			return domainerrors.ErrProductNotFound
		}

		return fmt.Errorf("failed to delete product: %w", err)
	}

	return nil
}
