package geo_test

import (
	"testing"

	"github.com/reehan7086/EchoVibe-sub000/pkg/geo"

	"github.com/stretchr/testify/assert"
)

func TestHaversineKm(t *testing.T) {
	t.Run("ZeroDistanceSamePoint", func(t *testing.T) {
		assert.Equal(t, 0.0, geo.HaversineKm(12.5, 77.6, 12.5, 77.6))
	})

	t.Run("Symmetric", func(t *testing.T) {
		d1 := geo.HaversineKm(40.7128, -74.0060, 51.5074, -0.1278)
		d2 := geo.HaversineKm(51.5074, -0.1278, 40.7128, -74.0060)
		assert.InDelta(t, d1, d2, 1e-9)
	})

	t.Run("SmallEquatorialOffset", func(t *testing.T) {
		// 0.05 degrees of longitude at the equator is roughly 5.56 km.
		d := geo.HaversineKm(0, 0, 0, 0.05)
		assert.InDelta(t, 5.56, d, 0.05)
	})

	t.Run("HalfDegreeEquatorial", func(t *testing.T) {
		d := geo.HaversineKm(0, 0, 0, 0.5)
		assert.InDelta(t, 55.6, d, 0.5)
	})

	t.Run("KnownCityPair", func(t *testing.T) {
		// New York to London, great-circle roughly 5570 km.
		d := geo.HaversineKm(40.7128, -74.0060, 51.5074, -0.1278)
		assert.InDelta(t, 5570, d, 20)
	})
}

func TestDegreesForKm(t *testing.T) {
	assert.InDelta(t, 0.0901, geo.DegreesForKm(10), 0.0001)
	assert.InDelta(t, 0.9009, geo.DegreesForKm(100), 0.0001)
}
