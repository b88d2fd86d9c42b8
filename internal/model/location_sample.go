package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type LocationAction string

const (
	ActionCheckIn        LocationAction = "check_in"
	ActionCheckOut       LocationAction = "check_out"
	ActionLocationUpdate LocationAction = "location_update"
)

func (a LocationAction) Valid() bool {
	switch a {
	case ActionCheckIn, ActionCheckOut, ActionLocationUpdate:
		return true
	}
	return false
}

// LocationSample is an append-only audit row of one location event and the
// geofence outcome computed for it.
type LocationSample struct {
	ID         uuid.UUID      `gorm:"type:char(36);primaryKey" json:"id"`
	EmployeeID uint           `gorm:"index;not null" json:"employee_id"`
	Latitude   float64        `json:"latitude"`
	Longitude  float64        `json:"longitude"`
	Action     LocationAction `gorm:"size:20;not null" json:"action"`
	RecordedAt time.Time      `gorm:"index;not null" json:"timestamp"`
	Notes      string         `json:"notes,omitempty"`

	// Filled in from the geofence resolution, never by the caller.
	GeofenceZoneID   *uint               `gorm:"index" json:"geofence_location_id"`
	IsWithinGeofence bool                `gorm:"not null;default:false" json:"is_within_geofence"`
	DistanceMeters   decimal.NullDecimal `gorm:"type:decimal(10,2)" json:"distance_from_geofence"`

	GeofenceZone *GeofenceZone `gorm:"foreignKey:GeofenceZoneID" json:"-"`
	CreatedAt    time.Time     `json:"created_at"`
}

func (s *LocationSample) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
