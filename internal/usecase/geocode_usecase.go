package usecase

import "context"

// Coordinates is a resolved latitude/longitude pair.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// GeocodeUsecase resolves delivery and restaurant addresses to
// coordinates through the persistent cache.
type GeocodeUsecase interface {
	// Resolve maps each address to its coordinates, or to nil when the
	// provider definitively found nothing. Addresses the provider failed
	// on are absent from the result and reported through the returned
	// error; they are never cached as "not found".
	Resolve(ctx context.Context, addresses []string) (map[string]*Coordinates, error)
}
