package proximity

// Progress computes closeness as (1 - distance/maxRadius) * 100.
// 100 = co-located, 0 = at or beyond the search radius.
func Progress(distanceKm, maxRadiusKm float64) float64 {
	if maxRadiusKm <= 0 {
		return 0
	}
	if distanceKm >= maxRadiusKm {
		return 0
	}
	p := (1 - distanceKm/maxRadiusKm) * 100
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

// Label returns a coarse proximity label for map cards so the UI never has
// to show an exact distance.
func Label(progressPct float64) string {
	switch {
	case progressPct >= 75:
		return "Very close"
	case progressPct >= 50:
		return "Nearby"
	case progressPct >= 25:
		return "In your area"
	case progressPct > 0:
		return "Within range"
	default:
		return ""
	}
}
