// Package impl contains the concrete usecase implementations.
package impl

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"starburger/internal/domain/entity"
	domainerrors "starburger/internal/domain/errors"
	"starburger/internal/domain/repository"
	"starburger/internal/domain/service"
	"starburger/internal/errors"
	"starburger/internal/usecase"

	"github.com/google/uuid"
	"github.com/nyaruka/phonenumbers"
)

// defaultPhoneRegion is assumed when the submitted phone number carries
// no international prefix.
const defaultPhoneRegion = "RU"

type orderService struct {
	txManager   repository.TransactionManager
	catalogRepo repository.CatalogRepository
	orderRepo   repository.OrderRepository
	publisher   service.OrderEventPublisher
	logger      *slog.Logger
}

// NewOrderService creates a new order service instance
func NewOrderService(
	txManager repository.TransactionManager,
	catalogRepo repository.CatalogRepository,
	orderRepo repository.OrderRepository,
	publisher service.OrderEventPublisher,
	logger *slog.Logger,
) usecase.OrderUsecase {
	return &orderService{
		txManager:   txManager,
		catalogRepo: catalogRepo,
		orderRepo:   orderRepo,
		publisher:   publisher,
		logger:      logger,
	}
}

// RegisterOrder validates the submission, snapshots unit prices and
// persists the order with every line item in one transaction. Unit
// prices are captured here and never re-read from the catalog, so later
// price changes cannot alter an already placed order.
func (s *orderService) RegisterOrder(ctx context.Context, input *usecase.RegisterOrderInput) (*entity.Order, error) {
	fieldErrs, phonenumber := s.validateContact(input)

	if len(input.Products) == 0 {
		fieldErrs = append(fieldErrs, domainerrors.FieldError{Field: "products", Message: "order must contain at least one product"})
	}
	for idx, item := range input.Products {
		if item.Quantity < 1 {
			fieldErrs = append(fieldErrs, domainerrors.FieldError{
				Field:   fmt.Sprintf("products[%d].quantity", idx),
				Message: "quantity must be a positive integer",
			})
		}
	}

	paymentMethod, paymentErr := parsePaymentMethod(input.PaymentMethod)
	if paymentErr != nil {
		fieldErrs = append(fieldErrs, *paymentErr)
	}

	if len(fieldErrs) > 0 {
		return nil, domainerrors.NewValidationError(fieldErrs...)
	}

	// One batch lookup resolves every product reference. An unknown ID is
	// a validation failure, never an unhandled lookup fault.
	productsByID, err := s.resolveProducts(ctx, input.Products)
	if err != nil {
		return nil, err
	}
	for idx, item := range input.Products {
		if _, ok := productsByID[item.Product]; !ok {
			fieldErrs = append(fieldErrs, domainerrors.FieldError{
				Field:   fmt.Sprintf("products[%d].product", idx),
				Message: "unknown product " + item.Product.String(),
			})
		}
	}
	if len(fieldErrs) > 0 {
		return nil, domainerrors.NewValidationError(fieldErrs...)
	}

	items := make([]*entity.OrderItem, 0, len(input.Products))
	for _, item := range input.Products {
		product := productsByID[item.Product]
		items = append(items, &entity.OrderItem{
			ProductID: product.ID,
			Quantity:  item.Quantity,
			UnitPrice: product.Price, // price snapshot, immutable from here on
		})
	}

	order := &entity.Order{
		Address:       input.Address,
		Firstname:     input.Firstname,
		Lastname:      input.Lastname,
		Comment:       input.Comment,
		Phonenumber:   phonenumber,
		Status:        entity.OrderStatusInProgress,
		PaymentMethod: paymentMethod,
		Items:         items,
	}

	if err := s.txManager.Execute(ctx, func(txRepoFactory repository.RepositoryFactory) error {
		return txRepoFactory.NewOrderRepository().CreateOrder(ctx, order)
	}); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	s.publishOrderCreated(ctx, order)

	return order, nil
}

// GetOrder retrieves one order with its items.
func (s *orderService) GetOrder(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	order, err := s.orderRepo.FindOrderByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, domainerrors.ErrOrderNotFound
		}

		return nil, fmt.Errorf("failed to find order by ID: %w", err)
	}

	return order, nil
}

// ListOrders retrieves all orders, newest first.
func (s *orderService) ListOrders(ctx context.Context) ([]*entity.Order, error) {
	orders, err := s.orderRepo.ListOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	return orders, nil
}

// AvailableRestaurants computes the set of restaurants that can fulfill
// every line item of the order. All menu rows for the involved products
// are prefetched in one query and grouped into a product -> restaurants
// index before intersecting, so the resolution never scans the menu once
// per line item.
func (s *orderService) AvailableRestaurants(ctx context.Context, orderID uuid.UUID) ([]*entity.Restaurant, error) {
	order, err := s.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	// An order without items can be fulfilled by nobody; intersecting
	// zero sets is undefined, so this is answered directly.
	if len(order.Items) == 0 {
		return []*entity.Restaurant{}, nil
	}

	productIDs := distinctProductIDs(order.Items)

	menuItems, err := s.catalogRepo.FindMenuItemsByProducts(ctx, productIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to find menu items by products: %w", err)
	}

	restaurantsByProduct := make(map[uuid.UUID]map[uuid.UUID]struct{}, len(productIDs))
	for _, menuItem := range menuItems {
		if !menuItem.Availability {
			continue
		}
		if restaurantsByProduct[menuItem.ProductID] == nil {
			restaurantsByProduct[menuItem.ProductID] = make(map[uuid.UUID]struct{})
		}
		restaurantsByProduct[menuItem.ProductID][menuItem.RestaurantID] = struct{}{}
	}

	capable := intersectRestaurantSets(productIDs, restaurantsByProduct)
	if len(capable) == 0 {
		return []*entity.Restaurant{}, nil
	}

	restaurantIDs := make([]uuid.UUID, 0, len(capable))
	for id := range capable {
		restaurantIDs = append(restaurantIDs, id)
	}

	restaurants, err := s.catalogRepo.FindRestaurantsByIDs(ctx, restaurantIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to find restaurants by ids: %w", err)
	}

	return restaurants, nil
}

// validateContact checks the contact fields and returns the normalized
// E.164 phone number when it is valid.
func (s *orderService) validateContact(input *usecase.RegisterOrderInput) ([]domainerrors.FieldError, string) {
	var fieldErrs []domainerrors.FieldError

	if input.Address == "" {
		fieldErrs = append(fieldErrs, domainerrors.FieldError{Field: "address", Message: "address is required"})
	}
	if input.Lastname == "" {
		fieldErrs = append(fieldErrs, domainerrors.FieldError{Field: "lastname", Message: "lastname is required"})
	}

	if input.Phonenumber == "" {
		fieldErrs = append(fieldErrs, domainerrors.FieldError{Field: "phonenumber", Message: "phonenumber is required"})

		return fieldErrs, ""
	}

	parsed, err := phonenumbers.Parse(input.Phonenumber, defaultPhoneRegion)
	if err != nil || !phonenumbers.IsValidNumber(parsed) {
		fieldErrs = append(fieldErrs, domainerrors.FieldError{Field: "phonenumber", Message: "phonenumber is not a valid phone number"})

		return fieldErrs, ""
	}

	return fieldErrs, phonenumbers.Format(parsed, phonenumbers.E164)
}

// resolveProducts fetches every distinct referenced product in one query.
func (s *orderService) resolveProducts(ctx context.Context, items []usecase.OrderItemInput) (map[uuid.UUID]*entity.Product, error) {
	seen := make(map[uuid.UUID]struct{}, len(items))
	ids := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item.Product]; ok {
			continue
		}
		seen[item.Product] = struct{}{}
		ids = append(ids, item.Product)
	}

	products, err := s.catalogRepo.FindProductsByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to find products by ids: %w", err)
	}

	productsByID := make(map[uuid.UUID]*entity.Product, len(products))
	for _, product := range products {
		productsByID[product.ID] = product
	}

	return productsByID, nil
}

// publishOrderCreated emits the order event. Publishing is best-effort:
// the order is already committed, so a broker failure is only logged.
func (s *orderService) publishOrderCreated(ctx context.Context, order *entity.Order) {
	event := &service.OrderEvent{
		OrderID:     order.ID,
		Phonenumber: order.Phonenumber,
		Address:     order.Address,
		Total:       order.Total().StringFixed(2),
		CreatedAt:   order.CreatedAt.UTC().Format(time.RFC3339),
	}

	if err := s.publisher.PublishOrderCreated(ctx, event); err != nil {
		s.logger.Warn("failed to publish order event",
			slog.String("order_id", order.ID.String()),
			slog.Any("error", err),
		)
	}
}

func parsePaymentMethod(raw string) (entity.PaymentMethod, *domainerrors.FieldError) {
	switch entity.PaymentMethod(raw) {
	case entity.PaymentMethodCash, entity.PaymentMethodElectronic, entity.PaymentMethodUnspecified:
		return entity.PaymentMethod(raw), nil
	case "":
		return entity.PaymentMethodUnspecified, nil
	default:
		return "", &domainerrors.FieldError{Field: "payment_method", Message: "unknown payment method " + raw}
	}
}

func distinctProductIDs(items []*entity.OrderItem) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(items))
	ids := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item.ProductID]; ok {
			continue
		}
		seen[item.ProductID] = struct{}{}
		ids = append(ids, item.ProductID)
	}

	return ids
}

func intersectRestaurantSets(productIDs []uuid.UUID, restaurantsByProduct map[uuid.UUID]map[uuid.UUID]struct{}) map[uuid.UUID]struct{} {
	capable := make(map[uuid.UUID]struct{})
	for restaurantID := range restaurantsByProduct[productIDs[0]] {
		capable[restaurantID] = struct{}{}
	}

	for _, productID := range productIDs[1:] {
		serving := restaurantsByProduct[productID]
		for restaurantID := range capable {
			if _, ok := serving[restaurantID]; !ok {
				delete(capable, restaurantID)
			}
		}
	}

	return capable
}
