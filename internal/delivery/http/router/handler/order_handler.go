// Package handler contains the HTTP request handlers.
package handler

import (
	"log/slog"
	"net/http"

	"starburger/internal/delivery/http/response"
	"starburger/internal/domain/entity"
	domainerrors "starburger/internal/domain/errors"
	"starburger/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// OrderHandlerParams holds dependencies for OrderHandler, injected by Fx.
type OrderHandlerParams struct {
	fx.In

	OrderUC usecase.OrderUsecase
	Logger  *slog.Logger
}

// OrderHandler holds dependencies for order-related handlers
type OrderHandler struct {
	orderUC usecase.OrderUsecase
	logger  *slog.Logger
}

// NewOrderHandler is the constructor for OrderHandler
func NewOrderHandler(params OrderHandlerParams) *OrderHandler {
	return &OrderHandler{
		orderUC: params.OrderUC,
		logger:  params.Logger,
	}
}

// RegisterOrderItemRequest is one product reference in an order submission.
type RegisterOrderItemRequest struct {
	Product  uuid.UUID `json:"product"`
	Quantity int       `json:"quantity"`
}

// RegisterOrderRequest represents the request body for submitting an order.
// Field-level business validation happens in the usecase; the handler only
// rejects bodies it cannot bind.
type RegisterOrderRequest struct {
	Address       string                     `json:"address"`
	Firstname     string                     `json:"firstname"`
	Lastname      string                     `json:"lastname"`
	Phonenumber   string                     `json:"phonenumber"`
	Comment       string                     `json:"comment"`
	PaymentMethod string                     `json:"payment_method"`
	Products      []RegisterOrderItemRequest `json:"products"`
}

// OrderResponse is an order with its computed total attached.
type OrderResponse struct {
	*entity.Order
	Total string `json:"total"`
}

func newOrderResponse(order *entity.Order) *OrderResponse {
	return &OrderResponse{
		Order: order,
		Total: order.Total().StringFixed(2),
	}
}

// RegisterOrder handles order submission
func (h *OrderHandler) RegisterOrder(c echo.Context) error {
	var req RegisterOrderRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid order payload")
	}

	products := make([]usecase.OrderItemInput, 0, len(req.Products))
	for _, item := range req.Products {
		products = append(products, usecase.OrderItemInput{
			Product:  item.Product,
			Quantity: item.Quantity,
		})
	}

	input := &usecase.RegisterOrderInput{
		Address:       req.Address,
		Firstname:     req.Firstname,
		Lastname:      req.Lastname,
		Phonenumber:   req.Phonenumber,
		Comment:       req.Comment,
		PaymentMethod: req.PaymentMethod,
		Products:      products,
	}

	order, err := h.orderUC.RegisterOrder(c.Request().Context(), input)
	if err != nil {
		return h.handleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, newOrderResponse(order), "Order registered successfully")
}

// ListOrders handles the operator-facing order listing
func (h *OrderHandler) ListOrders(c echo.Context) error {
	orders, err := h.orderUC.ListOrders(c.Request().Context())
	if err != nil {
		return h.handleAppError(c, err)
	}

	dumped := make([]*OrderResponse, 0, len(orders))
	for _, order := range orders {
		dumped = append(dumped, newOrderResponse(order))
	}

	return response.Success(c, http.StatusOK, dumped, "Orders retrieved successfully")
}

// GetOrder handles retrieving one order
func (h *OrderHandler) GetOrder(c echo.Context) error {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid order ID")
	}

	order, err := h.orderUC.GetOrder(c.Request().Context(), orderID)
	if err != nil {
		return h.handleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newOrderResponse(order), "Order retrieved successfully")
}

// AvailableRestaurants handles computing which restaurants can fulfill
// the whole order
func (h *OrderHandler) AvailableRestaurants(c echo.Context) error {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid order ID")
	}

	restaurants, err := h.orderUC.AvailableRestaurants(c.Request().Context(), orderID)
	if err != nil {
		return h.handleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, restaurants, "Available restaurants retrieved successfully")
}

// handleAppError handles application errors
func (h *OrderHandler) handleAppError(c echo.Context, err error) error {
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		return response.Error(c, appErr.HTTPCode(), appErr.ErrorCode(), appErr.Message(), appErr.Details())
	}

	return errors.WithStack(err)
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "Service is healthy")
}
