package domain

import (
	"math"
	"testing"
)

func TestDistanceIdenticalPointsIsZero(t *testing.T) {
	points := []GeoPoint{
		{Lat: 0, Lng: 0},
		{Lat: 5.6037, Lng: -0.1870},
		{Lat: -33.8688, Lng: 151.2093},
	}

	for _, p := range points {
		if d := Distance(p, p); d != 0 {
			t.Errorf("Distance(%v, %v) = %v, want 0", p, p, d)
		}
	}
}

func TestDistanceIsSymmetric(t *testing.T) {
	a := GeoPoint{Lat: 5.6037, Lng: -0.1870}
	b := GeoPoint{Lat: 5.5558, Lng: -0.1969}

	ab := Distance(a, b)
	ba := Distance(b, a)

	if ab != ba {
		t.Fatalf("Distance(a,b) = %v, Distance(b,a) = %v; want equal", ab, ba)
	}
	if ab <= 0 {
		t.Fatalf("Distance(a,b) = %v, want positive", ab)
	}
}

func TestDistanceKnownPair(t *testing.T) {
	// Accra city center to Tema, roughly 25 km apart.
	accra := GeoPoint{Lat: 5.6037, Lng: -0.1870}
	tema := GeoPoint{Lat: 5.6698, Lng: 0.0166}

	d := Distance(accra, tema)
	if d < 20 || d > 30 {
		t.Fatalf("Distance(accra, tema) = %v km, want roughly 25", d)
	}
}

func TestGeoPointValid(t *testing.T) {
	valid := []GeoPoint{
		{Lat: 0, Lng: 0},
		{Lat: 90, Lng: 180},
		{Lat: -90, Lng: -180},
		{Lat: 5.6037, Lng: -0.1870},
	}
	for _, p := range valid {
		if !p.Valid() {
			t.Errorf("%v.Valid() = false, want true", p)
		}
	}

	invalid := []GeoPoint{
		{Lat: 91, Lng: 0},
		{Lat: -91, Lng: 0},
		{Lat: 0, Lng: 181},
		{Lat: 0, Lng: -181},
		{Lat: math.NaN(), Lng: 0},
		{Lat: 0, Lng: math.Inf(1)},
	}
	for _, p := range invalid {
		if p.Valid() {
			t.Errorf("%v.Valid() = true, want false", p)
		}
	}
}
