package geo

import "math"

// EarthRadiusKm is the Earth radius in kilometers for Haversine.
const EarthRadiusKm = 6371.0

// HaversineKm returns the great-circle distance in km between two points
// (lat/lng in degrees). Inputs are not validated; out-of-range coordinates
// produce a mathematically defined but meaningless result.
func HaversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	const degToRad = math.Pi / 180
	sinLat := math.Sin((lat2 - lat1) * degToRad / 2)
	sinLng := math.Sin((lng2 - lng1) * degToRad / 2)
	a := sinLat*sinLat + math.Cos(lat1*degToRad)*math.Cos(lat2*degToRad)*sinLng*sinLng
	return 2 * EarthRadiusKm * math.Asin(math.Sqrt(a))
}

// DegreesForKm converts a distance in km to an approximate degree delta
// (~111km per degree at the equator). Used for bounding-box pre-filters.
func DegreesForKm(km float64) float64 {
	return km / 111.0
}
