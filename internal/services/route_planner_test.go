package services

import (
	"collector-route-service/internal/domain"
	"math"
	"testing"
)

var plannerStart = domain.GeoPoint{Lat: 5.6037, Lng: -0.1870}

func TestPlanRouteEmptyInput(t *testing.T) {
	route := PlanRoute(nil, plannerStart)
	if len(route) != 0 {
		t.Fatalf("expected empty route, got %d stops", len(route))
	}

	route = PlanRoute([]domain.Stop{}, plannerStart)
	if len(route) != 0 {
		t.Fatalf("expected empty route, got %d stops", len(route))
	}
}

func TestPlanRouteNearestFirst(t *testing.T) {
	// Stops roughly 0.5, 5 and 50 km north of the start.
	stops := []domain.Stop{
		{ID: "far", Latitude: plannerStart.Lat + 0.45, Longitude: plannerStart.Lng},
		{ID: "close", Latitude: plannerStart.Lat + 0.0045, Longitude: plannerStart.Lng},
		{ID: "medium", Latitude: plannerStart.Lat + 0.045, Longitude: plannerStart.Lng},
	}

	route := PlanRoute(stops, plannerStart)
	if len(route) != 3 {
		t.Fatalf("expected 3 stops, got %d", len(route))
	}
	if route[0].ID != "close" {
		t.Fatalf("expected first stop close, got %q", route[0].ID)
	}
	if route[1].ID != "medium" {
		t.Fatalf("expected second stop medium, got %q", route[1].ID)
	}
	if route[2].ID != "far" {
		t.Fatalf("expected third stop far, got %q", route[2].ID)
	}
}

func TestPlanRouteIsPermutationOfValidStops(t *testing.T) {
	stops := []domain.Stop{
		{ID: "a", Latitude: 5.61, Longitude: -0.19},
		{ID: "b", Latitude: 5.55, Longitude: -0.21},
		{ID: "c", Latitude: 5.67, Longitude: -0.15},
		{ID: "d", Latitude: 5.58, Longitude: -0.17},
	}

	route := PlanRoute(stops, plannerStart)
	if len(route) != len(stops) {
		t.Fatalf("expected %d stops, got %d", len(stops), len(route))
	}

	seen := make(map[string]int)
	for _, s := range route {
		seen[s.ID]++
	}
	for _, s := range stops {
		if seen[s.ID] != 1 {
			t.Errorf("stop %q appears %d times in route, want exactly once", s.ID, seen[s.ID])
		}
	}
}

func TestPlanRouteFiltersInvalidCoordinates(t *testing.T) {
	stops := []domain.Stop{
		{ID: "valid", Latitude: 5.61, Longitude: -0.19},
		{ID: "nan", Latitude: math.NaN(), Longitude: -0.19},
		{ID: "out-of-range", Latitude: 123.4, Longitude: -0.19},
		{ID: "also-valid", Latitude: 5.62, Longitude: -0.20},
	}

	route := PlanRoute(stops, plannerStart)
	if len(route) != 2 {
		t.Fatalf("expected 2 stops after filtering, got %d", len(route))
	}
	for _, s := range route {
		if s.ID == "nan" || s.ID == "out-of-range" {
			t.Fatalf("invalid stop %q made it into the route", s.ID)
		}
	}
}

func TestPlanRouteTieBreaksByInputOrder(t *testing.T) {
	// Exactly representable latitudes 0.25 degrees north and south of the
	// start on the same meridian, so both distances are bit-identical.
	start := domain.GeoPoint{Lat: 5.5, Lng: -0.25}
	stops := []domain.Stop{
		{ID: "south", Latitude: 5.25, Longitude: -0.25},
		{ID: "north", Latitude: 5.75, Longitude: -0.25},
	}

	route := PlanRoute(stops, start)
	if len(route) != 2 {
		t.Fatalf("expected 2 stops, got %d", len(route))
	}
	if route[0].ID != "south" {
		t.Fatalf("expected tie to resolve to first input stop, got %q", route[0].ID)
	}
}

func TestPlanRouteDeterministic(t *testing.T) {
	stops := []domain.Stop{
		{ID: "a", Latitude: 5.61, Longitude: -0.19},
		{ID: "b", Latitude: 5.55, Longitude: -0.21},
		{ID: "c", Latitude: 5.67, Longitude: -0.15},
	}

	first := PlanRoute(stops, plannerStart)
	for i := 0; i < 10; i++ {
		again := PlanRoute(stops, plannerStart)
		for j := range first {
			if first[j].ID != again[j].ID {
				t.Fatalf("run %d: position %d = %q, want %q", i, j, again[j].ID, first[j].ID)
			}
		}
	}
}
