package impl

import (
	"context"
	"fmt"
	"log/slog"

	"starburger/internal/domain/entity"
	"starburger/internal/domain/repository"
	"starburger/internal/domain/service"
	"starburger/internal/errors"
	"starburger/internal/usecase"
)

type geocodeService struct {
	locationRepo repository.LocationRepository
	geocoder     service.Geocoder
	logger       *slog.Logger
}

// NewGeocodeService creates a new geocode service instance
func NewGeocodeService(
	locationRepo repository.LocationRepository,
	geocoder service.Geocoder,
	logger *slog.Logger,
) usecase.GeocodeUsecase {
	return &geocodeService{
		locationRepo: locationRepo,
		geocoder:     geocoder,
		logger:       logger,
	}
}

// Resolve maps each address to coordinates through the persistent cache.
// Cached addresses, including provider-confirmed no-matches, are answered
// without touching the provider. Novel addresses go to the provider one
// by one; both successes and confirmed no-matches are persisted before
// returning. A provider failure is surfaced for that address and leaves
// no cache entry behind, so a retry will ask the provider again.
func (s *geocodeService) Resolve(ctx context.Context, addresses []string) (map[string]*usecase.Coordinates, error) {
	distinct := distinctAddresses(addresses)

	cached, err := s.locationRepo.FindByAddresses(ctx, distinct)
	if err != nil {
		return nil, fmt.Errorf("failed to find locations by addresses: %w", err)
	}

	results := make(map[string]*usecase.Coordinates, len(distinct))
	for _, location := range cached {
		results[location.Address] = coordinatesOf(location)
	}

	var resolveErrs []error
	for _, address := range distinct {
		if _, ok := results[address]; ok {
			continue
		}

		location, err := s.resolveNovel(ctx, address)
		if err != nil {
			resolveErrs = append(resolveErrs, err)

			continue
		}

		results[address] = coordinatesOf(location)
	}

	return results, errors.Join(resolveErrs...)
}

// resolveNovel asks the provider for an address missing from the cache
// and persists the outcome, negative answers included.
func (s *geocodeService) resolveNovel(ctx context.Context, address string) (*entity.Location, error) {
	point, err := s.geocoder.Fetch(ctx, address)
	if err != nil {
		// Provider unreachable. The address stays uncached so the next
		// attempt asks again; "unreachable" must never turn into a
		// persisted "not found".
		return nil, fmt.Errorf("failed to geocode %q: %w", address, err)
	}

	location := &entity.Location{Address: address}
	if point != nil {
		lat := point.Lat()
		lng := point.Lon()
		location.Latitude = &lat
		location.Longitude = &lng
	} else {
		s.logger.Info("caching negative geocode result", slog.String("address", address))
	}

	if err := s.locationRepo.Upsert(ctx, location); err != nil {
		return nil, fmt.Errorf("failed to cache location for %q: %w", address, err)
	}

	return location, nil
}

func coordinatesOf(location *entity.Location) *usecase.Coordinates {
	if !location.Resolved() {
		return nil
	}

	return &usecase.Coordinates{
		Latitude:  *location.Latitude,
		Longitude: *location.Longitude,
	}
}

func distinctAddresses(addresses []string) []string {
	seen := make(map[string]struct{}, len(addresses))
	distinct := make([]string, 0, len(addresses))
	for _, address := range addresses {
		if _, ok := seen[address]; ok {
			continue
		}
		seen[address] = struct{}{}
		distinct = append(distinct, address)
	}

	return distinct
}
