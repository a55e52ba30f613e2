// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"

	"starburger/internal/domain/entity"
	domainerrors "starburger/internal/domain/errors"
	"starburger/internal/domain/repository"
	"starburger/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// catalogRepository implements the repository.CatalogRepository interface.
type catalogRepository struct {
	db *gorm.DB
}

// NewCatalogRepository is the constructor for catalogRepository.
func NewCatalogRepository(db *gorm.DB) repository.CatalogRepository {
	return &catalogRepository{
		db: db,
	}
}

// FindAvailableProducts retrieves products marked available on at least
// one restaurant menu, with categories preloaded. Mirrors the storefront
// definition of availability: no menu entry, no listing.
func (repo *catalogRepository) FindAvailableProducts(ctx context.Context) ([]*entity.Product, error) {
	availableProductIDs := repo.db.WithContext(ctx).
		Model(&model.MenuItemModel{}).
		Select("product_id").
		Where("availability = ?", true)

	var productModels []*model.ProductModel
	if err := repo.db.WithContext(ctx).
		Preload("Category").
		Where("id IN (?)", availableProductIDs).
		Order("name ASC").
		Find(&productModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find available products")
	}

	products := make([]*entity.Product, 0, len(productModels))
	for _, productM := range productModels {
		products = append(products, toProductDomain(productM))
	}

	return products, nil
}

// FindProductsByIDs retrieves the products matching the given IDs.
func (repo *catalogRepository) FindProductsByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var productModels []*model.ProductModel
	if err := repo.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&productModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find products by ids")
	}

	products := make([]*entity.Product, 0, len(productModels))
	for _, productM := range productModels {
		products = append(products, toProductDomain(productM))
	}

	return products, nil
}

// FindMenuItemsByProducts retrieves all available menu items for the given
// products in one query, so availability resolution never degenerates
// into a per-product scan.
func (repo *catalogRepository) FindMenuItemsByProducts(ctx context.Context, productIDs []uuid.UUID) ([]*entity.MenuItem, error) {
	if len(productIDs) == 0 {
		return nil, nil
	}

	var menuItemModels []*model.MenuItemModel
	if err := repo.db.WithContext(ctx).
		Where("product_id IN ? AND availability = ?", productIDs, true).
		Find(&menuItemModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find menu items by products")
	}

	menuItems := make([]*entity.MenuItem, 0, len(menuItemModels))
	for _, menuItemM := range menuItemModels {
		menuItems = append(menuItems, toMenuItemDomain(menuItemM))
	}

	return menuItems, nil
}

// FindRestaurantsByIDs retrieves the restaurants matching the given IDs.
func (repo *catalogRepository) FindRestaurantsByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Restaurant, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var restaurantModels []*model.RestaurantModel
	if err := repo.db.WithContext(ctx).
		Where("id IN ?", ids).
		Order("name ASC").
		Find(&restaurantModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find restaurants by ids")
	}

	restaurants := make([]*entity.Restaurant, 0, len(restaurantModels))
	for _, restaurantM := range restaurantModels {
		restaurants = append(restaurants, toRestaurantDomain(restaurantM))
	}

	return restaurants, nil
}

// ListRestaurants retrieves all restaurants.
func (repo *catalogRepository) ListRestaurants(ctx context.Context) ([]*entity.Restaurant, error) {
	var restaurantModels []*model.RestaurantModel
	if err := repo.db.WithContext(ctx).
		Order("name ASC").
		Find(&restaurantModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list restaurants")
	}

	restaurants := make([]*entity.Restaurant, 0, len(restaurantModels))
	for _, restaurantM := range restaurantModels {
		restaurants = append(restaurants, toRestaurantDomain(restaurantM))
	}

	return restaurants, nil
}

// DeleteProduct removes a product. The order_items foreign key is
// RESTRICT, so the database blocks deletion while line items reference
// the product; that surfaces as ErrProductInUse.
func (repo *catalogRepository) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.ProductModel{})

	if err := result.Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrProductInUse
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to delete product")
	}

	if result.RowsAffected == 0 {
		return repository.ErrProductNotFound
	}

	return nil
}

// --- Mapper Functions ---

// toProductDomain converts a GORM ProductModel to a domain Product entity.
func toProductDomain(data *model.ProductModel) *entity.Product {
	if data == nil {
		return nil
	}

	return &entity.Product{
		ID:            data.ID,
		Name:          data.Name,
		CategoryID:    data.CategoryID,
		Category:      toCategoryDomain(data.Category),
		Price:         data.Price,
		Image:         data.Image,
		SpecialStatus: data.SpecialStatus,
		Description:   data.Description,
		CreatedAt:     data.CreatedAt,
		UpdatedAt:     data.UpdatedAt,
	}
}

// toCategoryDomain converts a GORM ProductCategoryModel to a domain ProductCategory entity.
func toCategoryDomain(data *model.ProductCategoryModel) *entity.ProductCategory {
	if data == nil {
		return nil
	}

	return &entity.ProductCategory{
		ID:   data.ID,
		Name: data.Name,
	}
}

// toRestaurantDomain converts a GORM RestaurantModel to a domain Restaurant entity.
func toRestaurantDomain(data *model.RestaurantModel) *entity.Restaurant {
	if data == nil {
		return nil
	}

	return &entity.Restaurant{
		ID:           data.ID,
		Name:         data.Name,
		Address:      data.Address,
		ContactPhone: data.ContactPhone,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}

// toMenuItemDomain converts a GORM MenuItemModel to a domain MenuItem entity.
func toMenuItemDomain(data *model.MenuItemModel) *entity.MenuItem {
	if data == nil {
		return nil
	}

	return &entity.MenuItem{
		ID:           data.ID,
		RestaurantID: data.RestaurantID,
		ProductID:    data.ProductID,
		Availability: data.Availability,
	}
}
