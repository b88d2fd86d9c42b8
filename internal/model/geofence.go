package model

import (
	"tracewing-backend/internal/geo"

	"gorm.io/gorm"
)

type ZoneType string

const (
	ZoneOffice ZoneType = "office"
	ZoneBranch ZoneType = "branch"
	ZoneSite   ZoneType = "site"
	ZoneClient ZoneType = "client"
)

const DefaultZoneRadius = 100

func (t ZoneType) Valid() bool {
	switch t {
	case ZoneOffice, ZoneBranch, ZoneSite, ZoneClient:
		return true
	}
	return false
}

// GeofenceZone is a circular work area. Zones are deactivated, never deleted,
// so location samples can keep pointing at them.
type GeofenceZone struct {
	gorm.Model
	Name      string   `json:"name" gorm:"size:100;not null"`
	Type      ZoneType `json:"location_type" gorm:"column:location_type;size:20;default:office"`
	Latitude  float64  `json:"latitude"`
	Longitude float64  `json:"longitude"`
	Radius    int      `json:"radius" gorm:"not null;default:100"` // meter
	Address   string   `json:"address"`
	IsActive  bool     `json:"is_active" gorm:"index;not null"` // no column default, false must persist
}

func (z *GeofenceZone) Center() geo.Point {
	return geo.Point{Latitude: z.Latitude, Longitude: z.Longitude}
}
