package geo

import (
	"fmt"
	"math"

	"tracewing-backend/internal/apperror"
)

// ErrMissingCoordinates is returned when a request omits latitude or longitude.
var ErrMissingCoordinates = apperror.Wrap(apperror.KindInvalidCoordinates, "latitude and longitude are required", nil)

// Point is a WGS-84 coordinate in decimal degrees.
type Point struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Validate reports InvalidCoordinates when the point is outside the valid
// latitude/longitude range or not a finite number.
func (p Point) Validate() error {
	if math.IsNaN(p.Latitude) || math.IsInf(p.Latitude, 0) || p.Latitude < -90 || p.Latitude > 90 {
		return apperror.Wrap(apperror.KindInvalidCoordinates, fmt.Sprintf("latitude %v out of range [-90, 90]", p.Latitude), nil)
	}
	if math.IsNaN(p.Longitude) || math.IsInf(p.Longitude, 0) || p.Longitude < -180 || p.Longitude > 180 {
		return apperror.Wrap(apperror.KindInvalidCoordinates, fmt.Sprintf("longitude %v out of range [-180, 180]", p.Longitude), nil)
	}
	return nil
}

func (p Point) String() string {
	return fmt.Sprintf("%f,%f", p.Latitude, p.Longitude)
}
