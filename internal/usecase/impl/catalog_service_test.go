package impl

import (
	"context"
	"testing"

	"starburger/internal/domain/entity"
	domainerrors "starburger/internal/domain/errors"
	"starburger/internal/domain/repository"
	mockRepo "starburger/internal/mocks/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogService_AvailableProducts(t *testing.T) {
	mockCatalog := mockRepo.NewMockCatalogRepository(t)
	service := NewCatalogService(mockCatalog)

	ctx := context.Background()
	products := []*entity.Product{
		{ID: uuid.New(), Name: "Burger", Price: decimal.RequireFromString("250.00")},
		{ID: uuid.New(), Name: "Cola", Price: decimal.RequireFromString("90.50")},
	}

	mockCatalog.EXPECT().
		FindAvailableProducts(ctx).
		Return(products, nil)

	got, err := service.AvailableProducts(ctx)
	require.NoError(t, err)
	assert.Equal(t, products, got)
}

func TestCatalogService_AvailableProducts_RepositoryError(t *testing.T) {
	mockCatalog := mockRepo.NewMockCatalogRepository(t)
	service := NewCatalogService(mockCatalog)

	ctx := context.Background()

	mockCatalog.EXPECT().
		FindAvailableProducts(ctx).
		Return(nil, errors.New("connection reset"))

	got, err := service.AvailableProducts(ctx)
	require.Error(t, err)
	assert.Nil(t, got)
}

func TestCatalogService_RemoveProduct_Success(t *testing.T) {
	mockCatalog := mockRepo.NewMockCatalogRepository(t)
	service := NewCatalogService(mockCatalog)

	ctx := context.Background()
	productID := uuid.New()

	mockCatalog.EXPECT().
		DeleteProduct(ctx, productID).
		Return(nil)

	require.NoError(t, service.RemoveProduct(ctx, productID))
}

func TestCatalogService_RemoveProduct_InUse(t *testing.T) {
	mockCatalog := mockRepo.NewMockCatalogRepository(t)
	service := NewCatalogService(mockCatalog)

	ctx := context.Background()
	productID := uuid.New()

	mockCatalog.EXPECT().
		DeleteProduct(ctx, productID).
		Return(repository.ErrProductInUse)

	err := service.RemoveProduct(ctx, productID)
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrProductInUse)
}

func TestCatalogService_RemoveProduct_NotFound(t *testing.T) {
	mockCatalog := mockRepo.NewMockCatalogRepository(t)
	service := NewCatalogService(mockCatalog)

	ctx := context.Background()
	productID := uuid.New()

	mockCatalog.EXPECT().
		DeleteProduct(ctx, productID).
		Return(repository.ErrProductNotFound)

	err := service.RemoveProduct(ctx, productID)
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrProductNotFound)
}
