package impl

import (
	"context"
	"testing"

	"starburger/internal/domain/entity"
	domainservice "starburger/internal/domain/service"
	mockRepo "starburger/internal/mocks/repository"
	mockSvc "starburger/internal/mocks/service"
	"starburger/internal/usecase"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newGeocodeServiceWithMocks(t *testing.T) (
	usecase.GeocodeUsecase,
	*mockRepo.MockLocationRepository,
	*mockSvc.MockGeocoder,
) {
	mockLocations := mockRepo.NewMockLocationRepository(t)
	mockGeocoder := mockSvc.NewMockGeocoder(t)
	service := NewGeocodeService(mockLocations, mockGeocoder, newDiscardLogger())

	return service, mockLocations, mockGeocoder
}

func cachedLocation(address string, lat, lng float64) *entity.Location {
	return &entity.Location{
		Address:   address,
		Latitude:  &lat,
		Longitude: &lng,
	}
}

func TestGeocodeService_Resolve_CacheHitSkipsProvider(t *testing.T) {
	service, mockLocations, _ := newGeocodeServiceWithMocks(t)

	ctx := context.Background()
	address := "Moscow, Red Square 1"

	// No Fetch expectation: a cached address must never reach the provider.
	mockLocations.EXPECT().
		FindByAddresses(ctx, []string{address}).
		Return([]*entity.Location{cachedLocation(address, 55.753930, 37.620795)}, nil)

	resolved, err := service.Resolve(ctx, []string{address})
	require.NoError(t, err)
	require.Contains(t, resolved, address)
	require.NotNil(t, resolved[address])
	assert.InDelta(t, 55.753930, resolved[address].Latitude, 1e-9)
	assert.InDelta(t, 37.620795, resolved[address].Longitude, 1e-9)
}

func TestGeocodeService_Resolve_NegativeCacheHitSkipsProvider(t *testing.T) {
	service, mockLocations, _ := newGeocodeServiceWithMocks(t)

	ctx := context.Background()
	address := "nowhere at all"

	// A cached no-match carries no coordinates but still counts as cached.
	mockLocations.EXPECT().
		FindByAddresses(ctx, []string{address}).
		Return([]*entity.Location{{Address: address}}, nil)

	resolved, err := service.Resolve(ctx, []string{address})
	require.NoError(t, err)
	require.Contains(t, resolved, address)
	assert.Nil(t, resolved[address])
}

func TestGeocodeService_Resolve_NovelAddressIsFetchedAndCached(t *testing.T) {
	service, mockLocations, mockGeocoder := newGeocodeServiceWithMocks(t)

	ctx := context.Background()
	address := "Moscow, Arbat 12"

	mockLocations.EXPECT().
		FindByAddresses(ctx, []string{address}).
		Return([]*entity.Location{}, nil)

	// Provider answers lng-first; the service must swap into lat/lng.
	point := orb.Point{37.591514, 55.749792}
	mockGeocoder.EXPECT().
		Fetch(ctx, address).
		Return(&point, nil)

	mockLocations.EXPECT().
		Upsert(ctx, mock.AnythingOfType("*entity.Location")).
		RunAndReturn(func(_ context.Context, location *entity.Location) error {
			require.True(t, location.Resolved())
			assert.Equal(t, address, location.Address)
			assert.InDelta(t, 55.749792, *location.Latitude, 1e-9)
			assert.InDelta(t, 37.591514, *location.Longitude, 1e-9)
			return nil
		})

	resolved, err := service.Resolve(ctx, []string{address})
	require.NoError(t, err)
	require.NotNil(t, resolved[address])
	assert.InDelta(t, 55.749792, resolved[address].Latitude, 1e-9)
	assert.InDelta(t, 37.591514, resolved[address].Longitude, 1e-9)
}

func TestGeocodeService_Resolve_ConfirmedNoMatchIsCached(t *testing.T) {
	service, mockLocations, mockGeocoder := newGeocodeServiceWithMocks(t)

	ctx := context.Background()
	address := "gibberish qwerty"

	mockLocations.EXPECT().
		FindByAddresses(ctx, []string{address}).
		Return([]*entity.Location{}, nil)

	mockGeocoder.EXPECT().
		Fetch(ctx, address).
		Return(nil, nil)

	mockLocations.EXPECT().
		Upsert(ctx, mock.AnythingOfType("*entity.Location")).
		RunAndReturn(func(_ context.Context, location *entity.Location) error {
			assert.False(t, location.Resolved())
			return nil
		})

	resolved, err := service.Resolve(ctx, []string{address})
	require.NoError(t, err)
	require.Contains(t, resolved, address)
	assert.Nil(t, resolved[address])
}

func TestGeocodeService_Resolve_ProviderFailureIsNotCached(t *testing.T) {
	service, mockLocations, mockGeocoder := newGeocodeServiceWithMocks(t)

	ctx := context.Background()
	address := "Moscow, Tverskaya 7"

	mockLocations.EXPECT().
		FindByAddresses(ctx, []string{address}).
		Return([]*entity.Location{}, nil)

	// No Upsert expectation: an outage must never become a cached no-match.
	mockGeocoder.EXPECT().
		Fetch(ctx, address).
		Return(nil, errors.Wrap(domainservice.ErrProviderUnavailable, "timeout"))

	resolved, err := service.Resolve(ctx, []string{address})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainservice.ErrProviderUnavailable)
	assert.NotContains(t, resolved, address)
}

func TestGeocodeService_Resolve_PartialFailureKeepsCachedResults(t *testing.T) {
	service, mockLocations, mockGeocoder := newGeocodeServiceWithMocks(t)

	ctx := context.Background()
	cachedAddress := "Moscow, Red Square 1"
	failingAddress := "Moscow, Tverskaya 7"

	mockLocations.EXPECT().
		FindByAddresses(ctx, []string{cachedAddress, failingAddress}).
		Return([]*entity.Location{cachedLocation(cachedAddress, 55.753930, 37.620795)}, nil)

	mockGeocoder.EXPECT().
		Fetch(ctx, failingAddress).
		Return(nil, errors.Wrap(domainservice.ErrProviderUnavailable, "timeout"))

	resolved, err := service.Resolve(ctx, []string{cachedAddress, failingAddress})
	require.Error(t, err)
	require.Contains(t, resolved, cachedAddress)
	require.NotNil(t, resolved[cachedAddress])
	assert.NotContains(t, resolved, failingAddress)
}

func TestGeocodeService_Resolve_DeduplicatesAddresses(t *testing.T) {
	service, mockLocations, _ := newGeocodeServiceWithMocks(t)

	ctx := context.Background()
	address := "Moscow, Red Square 1"

	mockLocations.EXPECT().
		FindByAddresses(ctx, []string{address}).
		Return([]*entity.Location{cachedLocation(address, 55.753930, 37.620795)}, nil)

	resolved, err := service.Resolve(ctx, []string{address, address, address})
	require.NoError(t, err)
	assert.Len(t, resolved, 1)
}
