package geo

import "math"

// earthRadiusMeters is the mean Earth radius used for haversine distances.
const earthRadiusMeters = 6371000

// Point is a geographic coordinate (WGS 84).
type Point struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lng"`
}

// Geofence is a circular boundary around an office location.
type Geofence struct {
	Center       Point   `json:"center"`
	RadiusMeters float64 `json:"radius"`
}

// DistanceMeters computes the haversine great-circle distance between two
// points in meters. It is total: out-of-range coordinates still yield a
// finite result, which downstream fence checks simply treat as "far".
func DistanceMeters(a, b Point) float64 {
	dLat := (b.Latitude - a.Latitude) * (math.Pi / 180.0)
	dLon := (b.Longitude - a.Longitude) * (math.Pi / 180.0)

	latARad := a.Latitude * (math.Pi / 180.0)
	latBRad := b.Latitude * (math.Pi / 180.0)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(latARad)*math.Cos(latBRad)

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusMeters * c
}

// Contains reports whether p lies inside the fence. The boundary is
// inclusive: a point exactly RadiusMeters away is accepted.
func (f Geofence) Contains(p Point) bool {
	return DistanceMeters(p, f.Center) <= f.RadiusMeters
}
