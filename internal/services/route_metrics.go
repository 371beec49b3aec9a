package services

import (
	"collector-route-service/internal/domain"
	"fmt"
	"math"
)

// Travel-speed and dwell-time assumptions for route time estimation.
// Both are configuration, injected at the composition root rather than
// hardcoded inside the estimator.
type EstimateOptions struct {
	// Assumed average travel speed; the travel-time divisor.
	AverageSpeedKmh float64
	// Service time added per visited stop.
	PerStopMinutes float64
}

// RouteDistance returns the total great-circle distance in kilometers of
// walking the route in order starting from start. An empty route is zero.
func RouteDistance(route []domain.Stop, start domain.GeoPoint) float64 {
	total := 0.0
	current := start
	for _, s := range route {
		total += domain.Distance(current, s.Point())
		current = s.Point()
	}
	return total
}

// RouteTime estimates total route time in minutes: travel time at the
// assumed average speed plus per-stop service time. An empty route is zero.
func RouteTime(route []domain.Stop, start domain.GeoPoint, opts EstimateOptions) float64 {
	if len(route) == 0 {
		return 0
	}
	travel := (RouteDistance(route, start) / opts.AverageSpeedKmh) * 60
	return travel + opts.PerStopMinutes*float64(len(route))
}

// Estimate computes both metrics for an ordered route.
func Estimate(route []domain.Stop, start domain.GeoPoint, opts EstimateOptions) domain.RouteMetrics {
	return domain.RouteMetrics{
		TotalDistanceKm:  RouteDistance(route, start),
		TotalTimeMinutes: RouteTime(route, start, opts),
	}
}

// CheckPlausibility reports whether estimated metrics are sensible for a
// daily collection route. It returns a descriptive error when the result
// is non-finite or the distance exceeds maxRouteKm, so callers can warn
// the user instead of silently presenting a nonsensical route. The route
// itself is still displayed; this is a sanity check, not a hard failure.
func CheckPlausibility(m domain.RouteMetrics, maxRouteKm float64) error {
	if math.IsNaN(m.TotalDistanceKm) || math.IsInf(m.TotalDistanceKm, 0) ||
		math.IsNaN(m.TotalTimeMinutes) || math.IsInf(m.TotalTimeMinutes, 0) {
		return fmt.Errorf("route metrics are not finite: distance=%v time=%v",
			m.TotalDistanceKm, m.TotalTimeMinutes)
	}
	if m.TotalDistanceKm < 0 || m.TotalTimeMinutes < 0 {
		return fmt.Errorf("route metrics are negative: distance=%v time=%v",
			m.TotalDistanceKm, m.TotalTimeMinutes)
	}
	if maxRouteKm > 0 && m.TotalDistanceKm > maxRouteKm {
		return fmt.Errorf("route distance %.1f km exceeds service region limit %.1f km",
			m.TotalDistanceKm, maxRouteKm)
	}
	return nil
}
