package main

import (
	"context"
	"log/slog"
	"os"

	"starburger/config"
	"starburger/internal/delivery"
	"starburger/internal/delivery/http"
	"starburger/internal/delivery/http/middleware"
	"starburger/internal/delivery/http/router/handler"
	"starburger/internal/domain/service"
	"starburger/internal/infra/geocode"
	logs "starburger/internal/infra/log"
	"starburger/internal/infra/persistence/postgres"
	"starburger/internal/infra/stream"
	"starburger/internal/usecase/impl"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		postgres.New,
		newGeocoder,
		stream.NewOrderEventPublisher,
	)
}

// newGeocoder creates the geocoding provider client with dependency injection
func newGeocoder(cfg *config.Config, logger *slog.Logger) (service.Geocoder, error) {
	if cfg.Geocoder == nil {
		return nil, errors.New("geocoder configuration is required")
	}

	return geocode.NewClient(cfg.Geocoder, logger), nil
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewCatalogRepository,
			postgres.NewOrderRepository,
			postgres.NewLocationRepository,
			postgres.NewTransactionManager,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewOrderService,
			impl.NewCatalogService,
			impl.NewGeocodeService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewErrorMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewOrderHandler,
			handler.NewCatalogHandler,
			handler.NewGeocodeHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
