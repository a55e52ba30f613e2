package handler

import (
	"log/slog"
	"net/http"

	"starburger/internal/delivery/http/response"
	domainerrors "starburger/internal/domain/errors"
	"starburger/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// GeocodeHandlerParams holds dependencies for GeocodeHandler, injected by Fx.
type GeocodeHandlerParams struct {
	fx.In

	GeocodeUC usecase.GeocodeUsecase
	Logger    *slog.Logger
}

// GeocodeHandler holds dependencies for geocoding handlers
type GeocodeHandler struct {
	geocodeUC usecase.GeocodeUsecase
	logger    *slog.Logger
}

// NewGeocodeHandler is the constructor for GeocodeHandler
func NewGeocodeHandler(params GeocodeHandlerParams) *GeocodeHandler {
	return &GeocodeHandler{
		geocodeUC: params.GeocodeUC,
		logger:    params.Logger,
	}
}

// ResolveRequest represents the request body for batch address resolution.
type ResolveRequest struct {
	Addresses []string `json:"addresses" validate:"required,min=1,dive,required"`
}

// ResolveAddresses handles batch address-to-coordinate resolution.
// Resolved addresses map to their coordinates, addresses the provider
// confirmed as unknown map to null. Provider failures fail the request.
func (h *GeocodeHandler) ResolveAddresses(c echo.Context) error {
	var req ResolveRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid geocode payload")
	}
	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "At least one address is required")
	}

	resolved, err := h.geocodeUC.Resolve(c.Request().Context(), req.Addresses)
	if err != nil {
		h.logger.Warn("Address resolution failed",
			slog.Int("addresses", len(req.Addresses)),
			slog.String("error", err.Error()),
		)

		// Addresses resolved before the failure are still returned so the
		// caller only has to retry the ones missing from the map.
		appErr := domainerrors.ErrGeocodeProviderUnavailable.WithDetails(err.Error())

		return response.ErrorWithData(c, appErr.HTTPCode(), appErr.ErrorCode(), appErr.Message(), appErr.Details(), resolved)
	}

	return response.Success(c, http.StatusOK, resolved, "Addresses resolved successfully")
}
