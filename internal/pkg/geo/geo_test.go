package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceMeters_SamePointIsZero(t *testing.T) {
	t.Parallel()

	points := []Point{
		{Latitude: 0, Longitude: 0},
		{Latitude: -6.2088, Longitude: 106.8456},
		{Latitude: 89.9, Longitude: -179.9},
	}

	for _, p := range points {
		assert.Equal(t, 0.0, DistanceMeters(p, p))
	}
}

func TestDistanceMeters_KnownDistance(t *testing.T) {
	t.Parallel()

	// One degree of latitude along a meridian is ~111.19 km.
	a := Point{Latitude: 0, Longitude: 0}
	b := Point{Latitude: 1, Longitude: 0}

	d := DistanceMeters(a, b)
	assert.InDelta(t, 111195, d, 100)
}

func TestDistanceMeters_Symmetric(t *testing.T) {
	t.Parallel()

	a := Point{Latitude: -6.2088, Longitude: 106.8456}
	b := Point{Latitude: -6.1751, Longitude: 106.8650}

	assert.InDelta(t, DistanceMeters(a, b), DistanceMeters(b, a), 1e-9)
}

func TestDistanceMeters_OutOfRangeStillFinite(t *testing.T) {
	t.Parallel()

	// Garbage coordinates from upstream must not panic or produce NaN.
	a := Point{Latitude: 512, Longitude: -1000}
	b := Point{Latitude: 0, Longitude: 0}

	d := DistanceMeters(a, b)
	assert.False(t, d != d, "distance must not be NaN")
	assert.GreaterOrEqual(t, d, 0.0)
}

func TestGeofence_Contains_BoundaryInclusive(t *testing.T) {
	t.Parallel()

	center := Point{Latitude: 0, Longitude: 0}

	// A point 50 m north of the center along the meridian.
	const metersPerDegreeLat = 111195.0
	onBoundary := Point{Latitude: 50 / metersPerDegreeLat, Longitude: 0}

	d := DistanceMeters(center, onBoundary)

	fence := Geofence{Center: center, RadiusMeters: d}
	assert.True(t, fence.Contains(onBoundary), "point exactly on the radius is accepted")

	tight := Geofence{Center: center, RadiusMeters: d - 0.01}
	assert.False(t, tight.Contains(onBoundary), "point just past the radius is rejected")
}

func TestGeofence_Contains_CenterAlwaysInside(t *testing.T) {
	t.Parallel()

	fence := Geofence{Center: Point{Latitude: -6.2088, Longitude: 106.8456}, RadiusMeters: 0}
	assert.True(t, fence.Contains(fence.Center))
}
