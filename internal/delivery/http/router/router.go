// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"starburger/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	OrderHandler   *handler.OrderHandler
	CatalogHandler *handler.CatalogHandler
	GeocodeHandler *handler.GeocodeHandler
}

// router holds all the handlers that need to be registered.
type router struct {
	orderHandler   *handler.OrderHandler
	catalogHandler *handler.CatalogHandler
	geocodeHandler *handler.GeocodeHandler
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		orderHandler:   params.OrderHandler,
		catalogHandler: params.CatalogHandler,
		geocodeHandler: params.GeocodeHandler,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	apiGroup := e.Group("/api")
	{
		// Storefront routes
		apiGroup.POST("/order", r.orderHandler.RegisterOrder)
		apiGroup.GET("/products", r.catalogHandler.ListProducts)
		apiGroup.DELETE("/products/:id", r.catalogHandler.DeleteProduct)

		// Operator routes
		apiGroup.GET("/orders", r.orderHandler.ListOrders)
		apiGroup.GET("/orders/:id", r.orderHandler.GetOrder)
		apiGroup.GET("/orders/:id/restaurants", r.orderHandler.AvailableRestaurants)

		// Geocoding routes
		apiGroup.POST("/geocode", r.geocodeHandler.ResolveAddresses)
	}
}
