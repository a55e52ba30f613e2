// Package delivery defines the contract every transport server fulfills.
package delivery

import "context"

// Delivery is a serving transport (HTTP today) managed by the fx app.
type Delivery interface {
	// Serve blocks until the server stops or fails.
	Serve(ctx context.Context) error
}
