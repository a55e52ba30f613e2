package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderModel is the GORM-specific struct for the 'orders' table.
type OrderModel struct {
	ID            uuid.UUID        `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Address       string           `gorm:"type:varchar(100);not null"`
	Firstname     string           `gorm:"type:varchar(20);not null;default:''"`
	Lastname      string           `gorm:"type:varchar(20);not null"`
	Comment       string           `gorm:"type:text;not null;default:''"`
	Phonenumber   string           `gorm:"type:varchar(32);not null;index"`
	Status        string           `gorm:"type:varchar(20);not null;default:'IN_PROGRESS';index"`
	PaymentMethod string           `gorm:"type:varchar(20);not null;default:'UNSPECIFIED'"`
	RestaurantID  *uuid.UUID       `gorm:"type:uuid;index"`
	Restaurant    *RestaurantModel `gorm:"foreignKey:RestaurantID;constraint:OnDelete:SET NULL"`
	CalledAt      *time.Time
	DeliveredAt   *time.Time
	CreatedAt     time.Time         `gorm:"index"`
	Items         []*OrderItemModel `gorm:"foreignKey:OrderID"`
}

// TableName explicitly sets the table name for GORM.
func (OrderModel) TableName() string {
	return "orders"
}

// OrderItemModel is the GORM-specific struct for the 'order_items' table.
// Items are removed together with their order, while a referenced product
// cannot be deleted for as long as any item points at it.
type OrderItemModel struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Order     *OrderModel     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Product   *ProductModel   `gorm:"foreignKey:ProductID;constraint:OnDelete:RESTRICT"`
	Quantity  int             `gorm:"not null;check:quantity >= 1"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(8,2);not null;check:unit_price >= 0"`
}

// TableName explicitly sets the table name for GORM.
func (OrderItemModel) TableName() string {
	return "order_items"
}
