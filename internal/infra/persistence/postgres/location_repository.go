// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"
	"time"

	"starburger/internal/domain/entity"
	domainerrors "starburger/internal/domain/errors"
	"starburger/internal/domain/repository"
	"starburger/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// locationRepository implements the repository.LocationRepository interface.
type locationRepository struct {
	db *gorm.DB
}

// NewLocationRepository is the constructor for locationRepository.
func NewLocationRepository(db *gorm.DB) repository.LocationRepository {
	return &locationRepository{
		db: db,
	}
}

// FindByAddresses retrieves cache entries for the given addresses in one
// batch query, keyed by exact address string equality.
func (repo *locationRepository) FindByAddresses(ctx context.Context, addresses []string) ([]*entity.Location, error) {
	if len(addresses) == 0 {
		return nil, nil
	}

	var locationModels []*model.LocationModel
	if err := repo.db.WithContext(ctx).
		Where("address IN ?", addresses).
		Find(&locationModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find locations by addresses")
	}

	locations := make([]*entity.Location, 0, len(locationModels))
	for _, locationM := range locationModels {
		locations = append(locations, toLocationDomain(locationM))
	}

	return locations, nil
}

// Upsert writes a cache entry. Two callers racing on the same novel
// address both land here; ON CONFLICT on the address column turns the
// loser's insert into an update, so the race ends last-write-wins on the
// refresh timestamp instead of a duplicate-key failure.
func (repo *locationRepository) Upsert(ctx context.Context, location *entity.Location) error {
	locationM := fromLocationDomain(location)
	if locationM.RefreshedAt.IsZero() {
		locationM.RefreshedAt = time.Now().UTC()
	}

	if err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "address"}},
			DoUpdates: clause.AssignmentColumns([]string{"latitude", "longitude", "refreshed_at"}),
		}).
		Create(locationM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			// A concurrent resolver committed this address between our
			// cache miss and this insert; its entry stands.
			return nil
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to upsert location")
	}

	// Update the entity with generated values
	location.ID = locationM.ID
	location.RefreshedAt = locationM.RefreshedAt

	return nil
}

// --- Mapper Functions ---

// toLocationDomain converts a GORM LocationModel to a domain Location entity.
func toLocationDomain(data *model.LocationModel) *entity.Location {
	if data == nil {
		return nil
	}

	return &entity.Location{
		ID:          data.ID,
		Address:     data.Address,
		Latitude:    data.Latitude,
		Longitude:   data.Longitude,
		RefreshedAt: data.RefreshedAt,
	}
}

// fromLocationDomain converts a domain Location entity to a GORM LocationModel.
func fromLocationDomain(data *entity.Location) *model.LocationModel {
	if data == nil {
		return nil
	}

	return &model.LocationModel{
		ID:          data.ID,
		Address:     data.Address,
		Latitude:    data.Latitude,
		Longitude:   data.Longitude,
		RefreshedAt: data.RefreshedAt,
	}
}
