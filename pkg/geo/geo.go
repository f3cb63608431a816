// Package geo provides great-circle distance helpers for the candidate
// ranking and gym lookup paths.
package geo

import (
	"math"

	"github.com/swolemates/backend/domain"
)

// EarthRadiusKm is the mean earth radius used by the haversine formula.
const EarthRadiusKm = 6371.0

// DistanceKm returns the great-circle distance between two points in
// kilometers.
func DistanceKm(a, b domain.Point) float64 {
	latA := radians(a.Latitude)
	latB := radians(b.Latitude)
	dLat := radians(b.Latitude - a.Latitude)
	dLng := radians(b.Longitude - a.Longitude)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(latA)*math.Cos(latB)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * EarthRadiusKm * math.Asin(math.Min(1, math.Sqrt(h)))
}

// DistanceRoundedKm rounds the great-circle distance to the nearest
// kilometer, matching what clients display on candidate cards.
func DistanceRoundedKm(a, b domain.Point) int {
	return int(math.Round(DistanceKm(a, b)))
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
