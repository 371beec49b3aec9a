package domain

import "math"

// Mean Earth radius in kilometers, used by the haversine formula.
const earthRadiusKm = 6371.0

// Immutable geographic coordinates in decimal degrees (latitude, longitude).
type GeoPoint struct {
	Lat float64
	Lng float64
}

// Valid reports whether both components are finite and within
// coordinate bounds (lat in [-90, 90], lng in [-180, 180]).
func (p GeoPoint) Valid() bool {
	if math.IsNaN(p.Lat) || math.IsInf(p.Lat, 0) {
		return false
	}
	if math.IsNaN(p.Lng) || math.IsInf(p.Lng, 0) {
		return false
	}
	return p.Lat >= -90 && p.Lat <= 90 && p.Lng >= -180 && p.Lng <= 180
}

// Distance returns the great-circle distance between two points in
// kilometers using the haversine formula.
//
// The function is pure: it never errors and is safe for concurrent use.
// Callers are expected to validate coordinate ranges upstream.
func Distance(a, b GeoPoint) float64 {
	if a == b {
		return 0
	}

	latA := a.Lat * math.Pi / 180
	latB := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(latA)*math.Cos(latB)*math.Sin(dLng/2)*math.Sin(dLng/2)

	return 2 * earthRadiusKm * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}
