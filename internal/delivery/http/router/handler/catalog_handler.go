package handler

import (
	"log/slog"
	"net/http"

	"starburger/internal/delivery/http/response"
	domainerrors "starburger/internal/domain/errors"
	"starburger/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

// CatalogHandlerParams holds dependencies for CatalogHandler, injected by Fx.
type CatalogHandlerParams struct {
	fx.In

	CatalogUC usecase.CatalogUsecase
	Logger    *slog.Logger
}

// CatalogHandler holds dependencies for catalog-related handlers
type CatalogHandler struct {
	catalogUC usecase.CatalogUsecase
	logger    *slog.Logger
}

// NewCatalogHandler is the constructor for CatalogHandler
func NewCatalogHandler(params CatalogHandlerParams) *CatalogHandler {
	return &CatalogHandler{
		catalogUC: params.CatalogUC,
		logger:    params.Logger,
	}
}

// ProductResponse is the public shape of one orderable product.
type ProductResponse struct {
	ID            uuid.UUID       `json:"id"`
	Name          string          `json:"name"`
	Price         decimal.Decimal `json:"price"`
	SpecialStatus bool            `json:"special_status"`
	Description   string          `json:"description"`
	Category      *string         `json:"category"`
	Image         string          `json:"image"`
}

// ListProducts handles the storefront product listing. Only products
// present on at least one available menu item are returned.
func (h *CatalogHandler) ListProducts(c echo.Context) error {
	products, err := h.catalogUC.AvailableProducts(c.Request().Context())
	if err != nil {
		return h.handleAppError(c, err)
	}

	dumped := make([]*ProductResponse, 0, len(products))
	for _, product := range products {
		item := &ProductResponse{
			ID:            product.ID,
			Name:          product.Name,
			Price:         product.Price,
			SpecialStatus: product.SpecialStatus,
			Description:   product.Description,
			Image:         product.Image,
		}
		if product.Category != nil {
			item.Category = &product.Category.Name
		}
		dumped = append(dumped, item)
	}

	return response.Success(c, http.StatusOK, dumped, "Products retrieved successfully")
}

// DeleteProduct handles removing a product from the catalog
func (h *CatalogHandler) DeleteProduct(c echo.Context) error {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid product ID")
	}

	if err := h.catalogUC.RemoveProduct(c.Request().Context(), productID); err != nil {
		return h.handleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, nil, "Product deleted successfully")
}

// handleAppError handles application errors
func (h *CatalogHandler) handleAppError(c echo.Context, err error) error {
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		return response.Error(c, appErr.HTTPCode(), appErr.ErrorCode(), appErr.Message(), appErr.Details())
	}

	return errors.WithStack(err)
}
