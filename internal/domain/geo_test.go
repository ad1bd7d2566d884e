package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDistanceMiles_SamePoint(t *testing.T) {
	require.Zero(t, DistanceMiles(40.7128, -74.0060, 40.7128, -74.0060))
}

func TestWithinRadius_ExactPointAlwaysIncluded(t *testing.T) {
	for _, radius := range []float64{0, 0.001, 1, 25, 100} {
		require.True(t, WithinRadius(35.0, -90.0, 35.0, -90.0, radius), "radius %v", radius)
	}
}

// Two points 0.01 degrees apart are roughly 0.7 miles from each other on
// the planar approximation.
func TestWithinRadius_CloseNeighbors(t *testing.T) {
	lat, long := 40.0, -74.0

	require.True(t, WithinRadius(lat, long, lat+0.01, long, 1))
	require.False(t, WithinRadius(lat, long, lat+0.01, long, 0.1))

	require.True(t, WithinRadius(lat, long, lat, long+0.01, 1))
	require.False(t, WithinRadius(lat, long, lat, long+0.01, 0.1))
}

func TestDistanceMiles_LongitudeShrinksWithLatitude(t *testing.T) {
	// A degree of longitude is worth less ground distance near the poles
	// than at the equator.
	atEquator := DistanceMiles(0, 0, 0, 1)
	atSixty := DistanceMiles(60, 0, 60, 1)
	require.Greater(t, atEquator, atSixty)
	require.InDelta(t, 69.1, atEquator, 0.2)
}

func TestValidCoordinates(t *testing.T) {
	tests := []struct {
		name  string
		lat   float64
		long  float64
		valid bool
	}{
		{"origin", 0, 0, true},
		{"typical city", 40.7128, -74.0060, true},
		{"lat upper bound", 90, 0, true},
		{"lat out of range", 90.01, 0, false},
		{"long lower bound", 0, -180, true},
		{"long out of range", 0, 180.5, false},
		{"nan lat", math.NaN(), 0, false},
		{"inf long", 0, math.Inf(1), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.valid, ValidCoordinates(tc.lat, tc.long))
		})
	}
}
