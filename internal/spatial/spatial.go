// Package spatial provides the great-circle math behind the "ranges near a
// point" selection.
package spatial

import (
	"github.com/golang/geo/s2"
)

// EarthRadiusKm is the mean Earth radius in kilometers.
const EarthRadiusKm = 6371.0

// DistanceKm returns the great-circle distance between two points in
// kilometers.
func DistanceKm(lat1, long1, lat2, long2 float64) float64 {
	p1 := s2.LatLngFromDegrees(lat1, long1)
	p2 := s2.LatLngFromDegrees(lat2, long2)
	return p1.Distance(p2).Radians() * EarthRadiusKm
}

// WithinRadius reports whether (lat, long) lies within radiusKm of the
// origin point.
func WithinRadius(lat, long, originLat, originLong, radiusKm float64) bool {
	return DistanceKm(lat, long, originLat, originLong) <= radiusKm
}
