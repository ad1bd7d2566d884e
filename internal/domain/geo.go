package domain

import "math"

// Planar distance approximation in miles, the same formula the gym radius
// query runs in SQL:
//
//	d ≈ sqrt((69.1·Δlat)² + (69.1·Δlong·cos(lat/57.3))²)
//
// This is not great-circle distance. The error is negligible for the radii
// partner search deals in (under ~100 miles) and keeps the filter cheap.
const (
	milesPerDegree = 69.1
	degreesPerRad  = 57.3

	// DefaultSearchRadiusMiles applies when coordinates are given without an
	// explicit radius.
	DefaultSearchRadiusMiles = 25
)

// DistanceMiles returns the approximate planar distance between two points.
func DistanceMiles(lat1, long1, lat2, long2 float64) float64 {
	dLat := milesPerDegree * (lat2 - lat1)
	dLong := milesPerDegree * (long2 - long1) * math.Cos(lat1/degreesPerRad)
	return math.Sqrt(dLat*dLat + dLong*dLong)
}

// WithinRadius reports whether the candidate point lies within radiusMiles
// of the query point. A candidate at the exact query point is inside any
// radius >= 0.
func WithinRadius(queryLat, queryLong, candLat, candLong, radiusMiles float64) bool {
	return DistanceMiles(queryLat, queryLong, candLat, candLong) <= radiusMiles
}

// ValidCoordinates reports whether lat/long are finite and in range.
func ValidCoordinates(lat, long float64) bool {
	if math.IsNaN(lat) || math.IsInf(lat, 0) || math.IsNaN(long) || math.IsInf(long, 0) {
		return false
	}
	return lat >= -90 && lat <= 90 && long >= -180 && long <= 180
}
