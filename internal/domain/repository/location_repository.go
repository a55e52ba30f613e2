package repository

import (
	"context"

	"starburger/internal/domain/entity"
)

// LocationRepository is the persistent geocode cache.
type LocationRepository interface {
	// FindByAddresses retrieves cache entries for the given addresses in
	// one batch query. Addresses without an entry are simply absent from
	// the result.
	FindByAddresses(ctx context.Context, addresses []string) ([]*entity.Location, error)

	// Upsert writes a cache entry keyed by the exact address string.
	// A concurrent insert of the same address resolves last-write-wins
	// on the refresh timestamp, never as a duplicate-key failure.
	Upsert(ctx context.Context, location *entity.Location) error
}
