package services

import (
	"collector-route-service/internal/domain"
	"math"
	"testing"
)

var metricsOpts = EstimateOptions{AverageSpeedKmh: 30, PerStopMinutes: 5}

func TestRouteDistanceEmptyRoute(t *testing.T) {
	if d := RouteDistance(nil, plannerStart); d != 0 {
		t.Fatalf("RouteDistance(empty) = %v, want 0", d)
	}
}

func TestRouteTimeEmptyRoute(t *testing.T) {
	if m := RouteTime(nil, plannerStart, metricsOpts); m != 0 {
		t.Fatalf("RouteTime(empty) = %v, want 0", m)
	}
}

func TestRouteDistanceSumsLegs(t *testing.T) {
	a := domain.Stop{ID: "a", Latitude: 5.61, Longitude: -0.19}
	b := domain.Stop{ID: "b", Latitude: 5.62, Longitude: -0.20}
	route := []domain.Stop{a, b}

	want := domain.Distance(plannerStart, a.Point()) + domain.Distance(a.Point(), b.Point())
	got := RouteDistance(route, plannerStart)

	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("RouteDistance = %v, want %v", got, want)
	}
}

func TestRouteTimeLinearInPerStopMinutes(t *testing.T) {
	route := []domain.Stop{{ID: "a", Latitude: 5.61, Longitude: -0.19}}

	at20 := RouteTime(route, plannerStart, EstimateOptions{AverageSpeedKmh: 30, PerStopMinutes: 20})
	at10 := RouteTime(route, plannerStart, EstimateOptions{AverageSpeedKmh: 30, PerStopMinutes: 10})

	if diff := at20 - at10; math.Abs(diff-10) > 1e-9 {
		t.Fatalf("perStop 20 vs 10 changed time by %v minutes, want 10", diff)
	}
}

func TestCheckPlausibility(t *testing.T) {
	ok := domain.RouteMetrics{TotalDistanceKm: 42, TotalTimeMinutes: 120}
	if err := CheckPlausibility(ok, 200); err != nil {
		t.Fatalf("unexpected error for sensible metrics: %v", err)
	}

	tooFar := domain.RouteMetrics{TotalDistanceKm: 450, TotalTimeMinutes: 900}
	if err := CheckPlausibility(tooFar, 200); err == nil {
		t.Fatal("expected error for route exceeding region limit")
	}

	notFinite := domain.RouteMetrics{TotalDistanceKm: math.NaN(), TotalTimeMinutes: 10}
	if err := CheckPlausibility(notFinite, 200); err == nil {
		t.Fatal("expected error for non-finite metrics")
	}

	// Zero limit disables the upper bound but still flags NaN.
	if err := CheckPlausibility(tooFar, 0); err != nil {
		t.Fatalf("unexpected error with disabled limit: %v", err)
	}
	if err := CheckPlausibility(notFinite, 0); err == nil {
		t.Fatal("expected error for non-finite metrics with disabled limit")
	}
}
