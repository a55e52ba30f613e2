// Package model holds the GORM-specific persistence structs.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RestaurantModel is the GORM-specific struct for the 'restaurants' table.
type RestaurantModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Name         string    `gorm:"type:varchar(50);not null"`
	Address      string    `gorm:"type:varchar(100);not null;default:''"`
	ContactPhone string    `gorm:"type:varchar(50);not null;default:''"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (RestaurantModel) TableName() string {
	return "restaurants"
}

// ProductCategoryModel is the GORM-specific struct for the 'product_categories' table.
type ProductCategoryModel struct {
	ID   uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Name string    `gorm:"type:varchar(50);not null"`
}

// TableName explicitly sets the table name for GORM.
func (ProductCategoryModel) TableName() string {
	return "product_categories"
}

// ProductModel is the GORM-specific struct for the 'products' table.
// Deleting a category detaches its products rather than removing them.
type ProductModel struct {
	ID            uuid.UUID             `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Name          string                `gorm:"type:varchar(50);not null"`
	CategoryID    *uuid.UUID            `gorm:"type:uuid;index"`
	Category      *ProductCategoryModel `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL"`
	Price         decimal.Decimal       `gorm:"type:numeric(8,2);not null;check:price >= 0"`
	Image         string                `gorm:"type:text;not null;default:''"`
	SpecialStatus bool                  `gorm:"not null;default:false;index"`
	Description   string                `gorm:"type:varchar(200);not null;default:''"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName explicitly sets the table name for GORM.
func (ProductModel) TableName() string {
	return "products"
}

// MenuItemModel is the GORM-specific struct for the 'menu_items' table.
// One row per (restaurant, product) pair; the pair is unique.
type MenuItemModel struct {
	ID           uuid.UUID        `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	RestaurantID uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_menu_items_restaurant_product"`
	Restaurant   *RestaurantModel `gorm:"foreignKey:RestaurantID;constraint:OnDelete:CASCADE"`
	ProductID    uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_menu_items_restaurant_product"`
	Product      *ProductModel    `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Availability bool             `gorm:"not null;default:true;index"`
}

// TableName explicitly sets the table name for GORM.
func (MenuItemModel) TableName() string {
	return "menu_items"
}
