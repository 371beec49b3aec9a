package services

import (
	"collector-route-service/internal/domain"
	"log"
)

// Plan a pickup route using a greedy nearest-neighbor heuristic.
//
// Starting from the collector's current position, the planner repeatedly
// visits the closest unvisited stop by great-circle distance. It does not
// consider road networks, one-way constraints, or time windows; realistic
// shifts hold tens of stops, so the O(n²) scan is acceptable and a full
// TSP solver is deliberately out of scope.
//
// Stops with missing or malformed coordinates are dropped up front and
// never appear in the output. The returned route is a permutation of the
// remaining stops: none added, none dropped, none visited twice. Ties in
// distance resolve to the stop that appears first in the input, which
// keeps the ordering deterministic for a fixed input.
func PlanRoute(stops []domain.Stop, start domain.GeoPoint) []domain.Stop {
	valid := make([]domain.Stop, 0, len(stops))
	for _, s := range stops {
		if !s.HasValidCoordinates() {
			log.Printf("planner: dropping stop with invalid coordinates stop_id=%s lat=%v lng=%v",
				s.ID, s.Latitude, s.Longitude)
			continue
		}
		valid = append(valid, s)
	}

	if len(valid) == 0 {
		return []domain.Stop{}
	}

	route := make([]domain.Stop, 0, len(valid))
	visited := make([]bool, len(valid))
	current := start

	for len(route) < len(valid) {
		best := -1
		var bestDist float64

		// Strict less-than keeps the first equidistant stop, preserving
		// input order on ties.
		for i, s := range valid {
			if visited[i] {
				continue
			}
			d := domain.Distance(current, s.Point())
			if best == -1 || d < bestDist {
				best = i
				bestDist = d
			}
		}

		route = append(route, valid[best])
		visited[best] = true
		current = valid[best].Point()
	}

	return route
}
