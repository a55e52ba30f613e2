// Package service defines domain-owned ports implemented by the infra layer.
package service

import (
	"context"

	"starburger/internal/errors"

	"github.com/paulmach/orb"
)

// ErrProviderUnavailable is returned when the geocoding provider cannot
// be reached or answers with a non-success status or a malformed body.
// It must never be confused with "provider confirmed no match".
var ErrProviderUnavailable = errors.New("geocoding provider unavailable")

// Geocoder resolves a free-form address to a geographic point.
type Geocoder interface {
	// Fetch asks the provider for the most relevant candidate for the
	// address. A (nil, nil) return means the provider answered and found
	// nothing. Transport or protocol failures wrap ErrProviderUnavailable.
	Fetch(ctx context.Context, address string) (*orb.Point, error)
}
