package model

import (
	"time"

	"github.com/google/uuid"
)

// LocationModel is the GORM-specific struct for the 'locations' table.
// Rows are created lazily on first lookup of a novel address and kept
// forever; NULL coordinates record a provider-confirmed "no match".
type LocationModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Address     string    `gorm:"type:varchar(200);not null;uniqueIndex"`
	Latitude    *float64  `gorm:"type:decimal(10,8)"`
	Longitude   *float64  `gorm:"type:decimal(11,8)"`
	RefreshedAt time.Time `gorm:"not null;index"`
}

// TableName explicitly sets the table name for GORM.
func (LocationModel) TableName() string {
	return "locations"
}
