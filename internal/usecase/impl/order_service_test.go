package impl

import (
	"context"
	"testing"
	"time"

	"starburger/internal/domain/entity"
	domainerrors "starburger/internal/domain/errors"
	"starburger/internal/domain/repository"
	mockRepo "starburger/internal/mocks/repository"
	mockSvc "starburger/internal/mocks/service"
	"starburger/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newOrderServiceWithMocks(t *testing.T) (
	usecase.OrderUsecase,
	*mockRepo.MockTransactionManager,
	*mockRepo.MockCatalogRepository,
	*mockRepo.MockOrderRepository,
	*mockSvc.MockOrderEventPublisher,
) {
	mockTx := mockRepo.NewMockTransactionManager(t)
	mockCatalog := mockRepo.NewMockCatalogRepository(t)
	mockOrders := mockRepo.NewMockOrderRepository(t)
	mockPublisher := mockSvc.NewMockOrderEventPublisher(t)
	service := NewOrderService(mockTx, mockCatalog, mockOrders, mockPublisher, newDiscardLogger())

	return service, mockTx, mockCatalog, mockOrders, mockPublisher
}

func validOrderInput(products ...usecase.OrderItemInput) *usecase.RegisterOrderInput {
	return &usecase.RegisterOrderInput{
		Address:     "Moscow, Lva Tolstogo 16",
		Firstname:   "Ivan",
		Lastname:    "Petrov",
		Phonenumber: "+79161234567",
		Products:    products,
	}
}

func TestOrderService_RegisterOrder_Success(t *testing.T) {
	service, mockTx, mockCatalog, _, mockPublisher := newOrderServiceWithMocks(t)

	ctx := context.Background()
	burgerID := uuid.New()
	colaID := uuid.New()

	catalog := []*entity.Product{
		{ID: burgerID, Name: "Burger", Price: decimal.RequireFromString("250.00")},
		{ID: colaID, Name: "Cola", Price: decimal.RequireFromString("90.50")},
	}

	mockCatalog.EXPECT().
		FindProductsByIDs(ctx, mock.AnythingOfType("[]uuid.UUID")).
		Return(catalog, nil)

	txFactory := mockRepo.NewMockRepositoryFactory(t)
	txOrderRepo := mockRepo.NewMockOrderRepository(t)
	txFactory.EXPECT().NewOrderRepository().Return(txOrderRepo)
	txOrderRepo.EXPECT().
		CreateOrder(ctx, mock.AnythingOfType("*entity.Order")).
		RunAndReturn(func(_ context.Context, order *entity.Order) error {
			order.ID = uuid.New()
			order.CreatedAt = time.Now()
			return nil
		})

	mockTx.EXPECT().
		Execute(ctx, mock.Anything).
		RunAndReturn(func(_ context.Context, fn func(repository.RepositoryFactory) error) error {
			return fn(txFactory)
		})

	mockPublisher.EXPECT().
		PublishOrderCreated(ctx, mock.AnythingOfType("*service.OrderEvent")).
		Return(nil)

	order, err := service.RegisterOrder(ctx, validOrderInput(
		usecase.OrderItemInput{Product: burgerID, Quantity: 2},
		usecase.OrderItemInput{Product: colaID, Quantity: 1},
	))
	require.NoError(t, err)
	require.NotNil(t, order)
	assert.Equal(t, entity.OrderStatusInProgress, order.Status)
	assert.Equal(t, entity.PaymentMethodUnspecified, order.PaymentMethod)
	assert.Equal(t, "+79161234567", order.Phonenumber)
	require.Len(t, order.Items, 2)
	assert.True(t, order.Items[0].UnitPrice.Equal(decimal.RequireFromString("250.00")))
	assert.True(t, order.Items[1].UnitPrice.Equal(decimal.RequireFromString("90.50")))
	assert.Equal(t, "590.50", order.Total().StringFixed(2))
}

func TestOrderService_RegisterOrder_TotalUnaffectedByLaterPriceChange(t *testing.T) {
	service, mockTx, mockCatalog, _, mockPublisher := newOrderServiceWithMocks(t)

	ctx := context.Background()
	productID := uuid.New()
	product := &entity.Product{ID: productID, Name: "Burger", Price: decimal.RequireFromString("250.00")}

	mockCatalog.EXPECT().
		FindProductsByIDs(ctx, mock.AnythingOfType("[]uuid.UUID")).
		Return([]*entity.Product{product}, nil)

	txFactory := mockRepo.NewMockRepositoryFactory(t)
	txOrderRepo := mockRepo.NewMockOrderRepository(t)
	txFactory.EXPECT().NewOrderRepository().Return(txOrderRepo)
	txOrderRepo.EXPECT().
		CreateOrder(ctx, mock.AnythingOfType("*entity.Order")).
		Return(nil)
	mockTx.EXPECT().
		Execute(ctx, mock.Anything).
		RunAndReturn(func(_ context.Context, fn func(repository.RepositoryFactory) error) error {
			return fn(txFactory)
		})
	mockPublisher.EXPECT().
		PublishOrderCreated(ctx, mock.AnythingOfType("*service.OrderEvent")).
		Return(nil)

	order, err := service.RegisterOrder(ctx, validOrderInput(
		usecase.OrderItemInput{Product: productID, Quantity: 2},
	))
	require.NoError(t, err)
	require.Equal(t, "500.00", order.Total().StringFixed(2))

	// A later catalog price change must not leak into the placed order:
	// the line items carry their own unit-price snapshots.
	product.Price = decimal.RequireFromString("999.99")

	assert.Equal(t, "500.00", order.Total().StringFixed(2))
	assert.True(t, order.Items[0].UnitPrice.Equal(decimal.RequireFromString("250.00")))
}

func TestOrderService_RegisterOrder_NormalizesLocalPhonenumber(t *testing.T) {
	service, mockTx, mockCatalog, _, mockPublisher := newOrderServiceWithMocks(t)

	ctx := context.Background()
	productID := uuid.New()

	mockCatalog.EXPECT().
		FindProductsByIDs(ctx, mock.AnythingOfType("[]uuid.UUID")).
		Return([]*entity.Product{{ID: productID, Price: decimal.RequireFromString("100.00")}}, nil)

	txFactory := mockRepo.NewMockRepositoryFactory(t)
	txOrderRepo := mockRepo.NewMockOrderRepository(t)
	txFactory.EXPECT().NewOrderRepository().Return(txOrderRepo)
	txOrderRepo.EXPECT().
		CreateOrder(ctx, mock.AnythingOfType("*entity.Order")).
		Return(nil)
	mockTx.EXPECT().
		Execute(ctx, mock.Anything).
		RunAndReturn(func(_ context.Context, fn func(repository.RepositoryFactory) error) error {
			return fn(txFactory)
		})
	mockPublisher.EXPECT().
		PublishOrderCreated(ctx, mock.AnythingOfType("*service.OrderEvent")).
		Return(nil)

	input := validOrderInput(usecase.OrderItemInput{Product: productID, Quantity: 1})
	input.Phonenumber = "8 916 123-45-67"

	order, err := service.RegisterOrder(ctx, input)
	require.NoError(t, err)
	assert.Equal(t, "+79161234567", order.Phonenumber)
}

func TestOrderService_RegisterOrder_EmptyProducts(t *testing.T) {
	service, _, _, _, _ := newOrderServiceWithMocks(t)

	order, err := service.RegisterOrder(context.Background(), validOrderInput())
	require.Error(t, err)
	assert.Nil(t, order)

	var validationErr *domainerrors.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Details(), "products")
}

func TestOrderService_RegisterOrder_NonPositiveQuantity(t *testing.T) {
	service, _, _, _, _ := newOrderServiceWithMocks(t)

	order, err := service.RegisterOrder(context.Background(), validOrderInput(
		usecase.OrderItemInput{Product: uuid.New(), Quantity: 0},
	))
	require.Error(t, err)
	assert.Nil(t, order)

	var validationErr *domainerrors.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Details(), "quantity")
}

func TestOrderService_RegisterOrder_InvalidPhonenumber(t *testing.T) {
	service, _, _, _, _ := newOrderServiceWithMocks(t)

	input := validOrderInput(usecase.OrderItemInput{Product: uuid.New(), Quantity: 1})
	input.Phonenumber = "not-a-phone"

	order, err := service.RegisterOrder(context.Background(), input)
	require.Error(t, err)
	assert.Nil(t, order)

	var validationErr *domainerrors.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Details(), "phonenumber")
}

func TestOrderService_RegisterOrder_MissingContactFields(t *testing.T) {
	service, _, _, _, _ := newOrderServiceWithMocks(t)

	input := &usecase.RegisterOrderInput{
		Products: []usecase.OrderItemInput{{Product: uuid.New(), Quantity: 1}},
	}

	order, err := service.RegisterOrder(context.Background(), input)
	require.Error(t, err)
	assert.Nil(t, order)

	var validationErr *domainerrors.ValidationError
	require.ErrorAs(t, err, &validationErr)
	details := validationErr.Details()
	assert.Contains(t, details, "address")
	assert.Contains(t, details, "lastname")
	assert.Contains(t, details, "phonenumber")
}

func TestOrderService_RegisterOrder_UnknownPaymentMethod(t *testing.T) {
	service, _, _, _, _ := newOrderServiceWithMocks(t)

	input := validOrderInput(usecase.OrderItemInput{Product: uuid.New(), Quantity: 1})
	input.PaymentMethod = "BARTER"

	order, err := service.RegisterOrder(context.Background(), input)
	require.Error(t, err)
	assert.Nil(t, order)

	var validationErr *domainerrors.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Details(), "payment_method")
}

func TestOrderService_RegisterOrder_UnknownProduct(t *testing.T) {
	service, _, mockCatalog, _, _ := newOrderServiceWithMocks(t)

	ctx := context.Background()
	knownID := uuid.New()
	unknownID := uuid.New()

	// Only one of the two referenced products exists.
	mockCatalog.EXPECT().
		FindProductsByIDs(ctx, mock.AnythingOfType("[]uuid.UUID")).
		Return([]*entity.Product{{ID: knownID, Price: decimal.RequireFromString("100.00")}}, nil)

	order, err := service.RegisterOrder(ctx, validOrderInput(
		usecase.OrderItemInput{Product: knownID, Quantity: 1},
		usecase.OrderItemInput{Product: unknownID, Quantity: 1},
	))
	require.Error(t, err)
	assert.Nil(t, order)

	var validationErr *domainerrors.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Details(), unknownID.String())
}

func TestOrderService_RegisterOrder_TransactionFailure(t *testing.T) {
	service, mockTx, mockCatalog, _, _ := newOrderServiceWithMocks(t)

	ctx := context.Background()
	productID := uuid.New()

	mockCatalog.EXPECT().
		FindProductsByIDs(ctx, mock.AnythingOfType("[]uuid.UUID")).
		Return([]*entity.Product{{ID: productID, Price: decimal.RequireFromString("100.00")}}, nil)

	mockTx.EXPECT().
		Execute(ctx, mock.Anything).
		Return(errors.New("connection reset"))

	order, err := service.RegisterOrder(ctx, validOrderInput(
		usecase.OrderItemInput{Product: productID, Quantity: 1},
	))
	require.Error(t, err)
	assert.Nil(t, order)
	assert.Contains(t, err.Error(), "failed to create order")
}

func TestOrderService_RegisterOrder_PublisherFailureDoesNotFailOrder(t *testing.T) {
	service, mockTx, mockCatalog, _, mockPublisher := newOrderServiceWithMocks(t)

	ctx := context.Background()
	productID := uuid.New()

	mockCatalog.EXPECT().
		FindProductsByIDs(ctx, mock.AnythingOfType("[]uuid.UUID")).
		Return([]*entity.Product{{ID: productID, Price: decimal.RequireFromString("100.00")}}, nil)

	txFactory := mockRepo.NewMockRepositoryFactory(t)
	txOrderRepo := mockRepo.NewMockOrderRepository(t)
	txFactory.EXPECT().NewOrderRepository().Return(txOrderRepo)
	txOrderRepo.EXPECT().
		CreateOrder(ctx, mock.AnythingOfType("*entity.Order")).
		Return(nil)
	mockTx.EXPECT().
		Execute(ctx, mock.Anything).
		RunAndReturn(func(_ context.Context, fn func(repository.RepositoryFactory) error) error {
			return fn(txFactory)
		})

	mockPublisher.EXPECT().
		PublishOrderCreated(ctx, mock.AnythingOfType("*service.OrderEvent")).
		Return(errors.New("broker down"))

	order, err := service.RegisterOrder(ctx, validOrderInput(
		usecase.OrderItemInput{Product: productID, Quantity: 1},
	))
	require.NoError(t, err)
	assert.NotNil(t, order)
}

func TestOrderService_GetOrder_NotFound(t *testing.T) {
	service, _, _, mockOrders, _ := newOrderServiceWithMocks(t)

	ctx := context.Background()
	orderID := uuid.New()

	mockOrders.EXPECT().
		FindOrderByID(ctx, orderID).
		Return(nil, repository.ErrOrderNotFound)

	order, err := service.GetOrder(ctx, orderID)
	require.Error(t, err)
	assert.Nil(t, order)
	assert.ErrorIs(t, err, domainerrors.ErrOrderNotFound)
}

func TestOrderService_AvailableRestaurants_Intersection(t *testing.T) {
	service, _, mockCatalog, mockOrders, _ := newOrderServiceWithMocks(t)

	ctx := context.Background()
	orderID := uuid.New()
	productA := uuid.New()
	productB := uuid.New()
	restaurantOne := uuid.New()
	restaurantTwo := uuid.New()

	order := &entity.Order{
		ID: orderID,
		Items: []*entity.OrderItem{
			{ProductID: productA, Quantity: 1},
			{ProductID: productB, Quantity: 1},
		},
	}

	mockOrders.EXPECT().
		FindOrderByID(ctx, orderID).
		Return(order, nil)

	// Restaurant one serves both products, restaurant two only product B.
	mockCatalog.EXPECT().
		FindMenuItemsByProducts(ctx, mock.AnythingOfType("[]uuid.UUID")).
		Return([]*entity.MenuItem{
			{RestaurantID: restaurantOne, ProductID: productA, Availability: true},
			{RestaurantID: restaurantOne, ProductID: productB, Availability: true},
			{RestaurantID: restaurantTwo, ProductID: productB, Availability: true},
		}, nil)

	mockCatalog.EXPECT().
		FindRestaurantsByIDs(ctx, []uuid.UUID{restaurantOne}).
		Return([]*entity.Restaurant{{ID: restaurantOne, Name: "Burger Palace"}}, nil)

	restaurants, err := service.AvailableRestaurants(ctx, orderID)
	require.NoError(t, err)
	require.Len(t, restaurants, 1)
	assert.Equal(t, restaurantOne, restaurants[0].ID)
}

func TestOrderService_AvailableRestaurants_UnavailableMenuItemsIgnored(t *testing.T) {
	service, _, mockCatalog, mockOrders, _ := newOrderServiceWithMocks(t)

	ctx := context.Background()
	orderID := uuid.New()
	productA := uuid.New()
	restaurantOne := uuid.New()

	order := &entity.Order{
		ID:    orderID,
		Items: []*entity.OrderItem{{ProductID: productA, Quantity: 1}},
	}

	mockOrders.EXPECT().
		FindOrderByID(ctx, orderID).
		Return(order, nil)

	mockCatalog.EXPECT().
		FindMenuItemsByProducts(ctx, mock.AnythingOfType("[]uuid.UUID")).
		Return([]*entity.MenuItem{
			{RestaurantID: restaurantOne, ProductID: productA, Availability: false},
		}, nil)

	restaurants, err := service.AvailableRestaurants(ctx, orderID)
	require.NoError(t, err)
	assert.Empty(t, restaurants)
}

func TestOrderService_AvailableRestaurants_EmptyOrder(t *testing.T) {
	service, _, _, mockOrders, _ := newOrderServiceWithMocks(t)

	ctx := context.Background()
	orderID := uuid.New()

	mockOrders.EXPECT().
		FindOrderByID(ctx, orderID).
		Return(&entity.Order{ID: orderID}, nil)

	restaurants, err := service.AvailableRestaurants(ctx, orderID)
	require.NoError(t, err)
	assert.Empty(t, restaurants)
}
