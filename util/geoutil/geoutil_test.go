package geoutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistance(t *testing.T) {
	tests := []struct {
		name       string
		lat1, lon1 float64
		lat2, lon2 float64
		expectedKm float64
		toleranceKm float64
	}{
		{
			name: "same-point",
			lat1: 4.6097, lon1: -74.0817,
			lat2: 4.6097, lon2: -74.0817,
			expectedKm: 0, toleranceKm: 0,
		},
		{
			name: "bogota-to-medellin",
			lat1: 4.6097, lon1: -74.0817,
			lat2: 6.2442, lon2: -75.5812,
			expectedKm: 245, toleranceKm: 5,
		},
		{
			name: "equator-one-degree-longitude",
			lat1: 0, lon1: 0,
			lat2: 0, lon2: 1,
			expectedKm: 111.19, toleranceKm: 0.05,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Distance(tt.lat1, tt.lon1, tt.lat2, tt.lon2)
			assert.InDelta(t, tt.expectedKm, got, tt.toleranceKm)
		})
	}
}

func TestDistanceSymmetric(t *testing.T) {
	pairs := [][4]float64{
		{4.6097, -74.0817, 6.2442, -75.5812},
		{40.7128, -74.0060, 51.5074, -0.1278},
		{-33.8688, 151.2093, 35.6762, 139.6503},
	}
	for _, p := range pairs {
		ab := Distance(p[0], p[1], p[2], p[3])
		ba := Distance(p[2], p[3], p[0], p[1])
		assert.Equal(t, ab, ba)
		assert.True(t, ab >= 0)
	}
}

func TestValidCoordinates(t *testing.T) {
	tests := []struct {
		name     string
		lat, lon float64
		valid    bool
	}{
		{"bogota", 4.6097, -74.0817, true},
		{"origin", 0, 0, true},
		{"poles", 90, 180, true},
		{"lat-out-of-range", 90.1, 0, false},
		{"lon-out-of-range", 0, -180.5, false},
		{"nan-lat", math.NaN(), 0, false},
		{"inf-lon", 0, math.Inf(1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, ValidCoordinates(tt.lat, tt.lon))
		})
	}
}
