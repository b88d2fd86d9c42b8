package geo

import "math"

// EarthRadiusMeters is the mean Earth radius used by Distance.
const EarthRadiusMeters = 6371000

// Distance returns the great-circle distance between a and b in meters using
// the haversine formula. Inputs must already be validated.
func Distance(a, b Point) float64 {
	if a == b {
		return 0
	}

	dLat := toRadians(b.Latitude - a.Latitude)
	dLon := toRadians(b.Longitude - a.Longitude)

	lat1 := toRadians(a.Latitude)
	lat2 := toRadians(b.Latitude)

	// cos product grouped so swapping a and b gives the same bits
	cosProduct := math.Cos(lat1) * math.Cos(lat2)
	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)

	// rounding can leave h just outside [0, 1] near antipodes
	h := sinLat*sinLat + sinLon*sinLon*cosProduct
	h = math.Min(1, math.Max(0, h))
	c := 2 * math.Asin(math.Sqrt(h))

	return EarthRadiusMeters * c
}

func toRadians(deg float64) float64 {
	return deg * (math.Pi / 180.0)
}
