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

// orderRepository implements the repository.OrderRepository interface.
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository is the constructor for orderRepository.
func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepository{
		db: db,
	}
}

// CreateOrder inserts the order row and every line-item row. GORM writes
// the items as associations of the order, so when the call runs inside
// TransactionManager.Execute the whole set commits or rolls back as one.
func (repo *orderRepository) CreateOrder(ctx context.Context, order *entity.Order) error {
	orderM := fromOrderDomain(order)

	if err := repo.db.WithContext(ctx).Create(orderM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrProductNotFound
		}
		if isCheckConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("order violates a data constraint")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("order is missing a required field")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create order")
	}

	// Update the entity with generated values
	order.ID = orderM.ID
	order.CreatedAt = orderM.CreatedAt
	for idx, itemM := range orderM.Items {
		order.Items[idx].ID = itemM.ID
		order.Items[idx].OrderID = itemM.OrderID
	}

	return nil
}

// FindOrderByID retrieves a single order with its items.
func (repo *orderRepository) FindOrderByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	var orderM model.OrderModel

	if err := repo.db.WithContext(ctx).
		Preload("Items").
		Where("id = ?", id).
		First(&orderM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find order by ID")
	}

	return toOrderDomain(&orderM), nil
}

// ListOrders retrieves all orders with their items, newest first.
func (repo *orderRepository) ListOrders(ctx context.Context) ([]*entity.Order, error) {
	var orderModels []*model.OrderModel

	if err := repo.db.WithContext(ctx).
		Preload("Items").
		Order("created_at DESC").
		Find(&orderModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list orders")
	}

	orders := make([]*entity.Order, 0, len(orderModels))
	for _, orderM := range orderModels {
		orders = append(orders, toOrderDomain(orderM))
	}

	return orders, nil
}

// UpdateStatus moves an order to a new lifecycle status.
func (repo *orderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.OrderStatus) error {
	result := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Where("id = ?", id).
		Update("status", string(status))

	if err := result.Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to update order status")
	}

	if result.RowsAffected == 0 {
		return repository.ErrOrderNotFound
	}

	return nil
}

// --- Mapper Functions ---

// toOrderDomain converts a GORM OrderModel to a domain Order entity.
func toOrderDomain(data *model.OrderModel) *entity.Order {
	if data == nil {
		return nil
	}

	items := make([]*entity.OrderItem, 0, len(data.Items))
	for _, itemM := range data.Items {
		items = append(items, toOrderItemDomain(itemM))
	}

	return &entity.Order{
		ID:            data.ID,
		Address:       data.Address,
		Firstname:     data.Firstname,
		Lastname:      data.Lastname,
		Comment:       data.Comment,
		Phonenumber:   data.Phonenumber,
		Status:        entity.OrderStatus(data.Status),
		PaymentMethod: entity.PaymentMethod(data.PaymentMethod),
		RestaurantID:  data.RestaurantID,
		CalledAt:      data.CalledAt,
		DeliveredAt:   data.DeliveredAt,
		CreatedAt:     data.CreatedAt,
		Items:         items,
	}
}

// toOrderItemDomain converts a GORM OrderItemModel to a domain OrderItem entity.
func toOrderItemDomain(data *model.OrderItemModel) *entity.OrderItem {
	if data == nil {
		return nil
	}

	return &entity.OrderItem{
		ID:        data.ID,
		OrderID:   data.OrderID,
		ProductID: data.ProductID,
		Quantity:  data.Quantity,
		UnitPrice: data.UnitPrice,
	}
}

// fromOrderDomain converts a domain Order entity to a GORM OrderModel.
func fromOrderDomain(data *entity.Order) *model.OrderModel {
	if data == nil {
		return nil
	}

	items := make([]*model.OrderItemModel, 0, len(data.Items))
	for _, item := range data.Items {
		items = append(items, &model.OrderItemModel{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	return &model.OrderModel{
		ID:            data.ID,
		Address:       data.Address,
		Firstname:     data.Firstname,
		Lastname:      data.Lastname,
		Comment:       data.Comment,
		Phonenumber:   data.Phonenumber,
		Status:        string(data.Status),
		PaymentMethod: string(data.PaymentMethod),
		RestaurantID:  data.RestaurantID,
		CalledAt:      data.CalledAt,
		DeliveredAt:   data.DeliveredAt,
		Items:         items,
	}
}
