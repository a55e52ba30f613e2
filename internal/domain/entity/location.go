package entity

import (
	"time"

	"github.com/google/uuid"
)

// Location is a geocode cache entry keyed by the exact address string.
// Nil coordinates mean the provider was asked and definitively found
// nothing (a negative entry); that is different from "never attempted",
// which has no row at all.
type Location struct {
	ID          uuid.UUID `json:"id"`
	Address     string    `json:"address"`
	Latitude    *float64  `json:"latitude,omitempty"`
	Longitude   *float64  `json:"longitude,omitempty"`
	RefreshedAt time.Time `json:"refreshed_at"` // Updated on write, not on cache hit.
}

// Resolved reports whether the entry carries coordinates.
func (l *Location) Resolved() bool {
	return l.Latitude != nil && l.Longitude != nil
}
