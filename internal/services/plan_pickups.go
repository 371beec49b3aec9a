package services

import (
	"collector-route-service/internal/domain"
	"collector-route-service/internal/platform/obs"
	"collector-route-service/internal/ports"
	"context"
	"fmt"
	"log"
)

type PlanPickupsRequest struct {
	// Travel mode for the generated directions link.
	Mode string
	// Include pending pickup requests alongside accepted assignments.
	IncludeRequests bool
	// Sanity limit for a daily route; zero disables the upper bound
	// (non-finite metrics are always flagged).
	MaxRouteKm float64
}

// The complete planning result for a collector's shift. Warning carries
// the plausibility or fallback-location notice when one applies; the
// route is still returned so the UI can display it alongside the notice.
type PickupPlan struct {
	Start         ports.Position
	Stops         []domain.Stop
	Metrics       domain.RouteMetrics
	DirectionsURL string
	Warning       string
}

// PlanPickups orchestrates a full planning cycle: resolve the collector's
// position, load the stops to visit, sequence them with the nearest-neighbor
// planner, estimate metrics, and build the directions link.
//
// The location provider is consulted exactly once per cycle; providers are
// expected to apply their own timeout/fallback discipline and mark degraded
// results via Position.IsFallback.
func PlanPickups(
	ctx context.Context,
	req PlanPickupsRequest,
	repo ports.StopRepository,
	locator ports.LocationProvider,
	opts EstimateOptions,
) (_ *PickupPlan, err error) {
	defer obs.Time(ctx, "services.PlanPickups")(&err)

	pos, err := locator.Locate(ctx)
	if err != nil {
		return nil, fmt.Errorf("plan pickups: locate collector: %w", err)
	}

	stops, err := repo.ListAcceptedAssignments(ctx)
	if err != nil {
		return nil, fmt.Errorf("plan pickups: list accepted assignments: %w", err)
	}

	if req.IncludeRequests {
		requests, err := repo.ListPendingRequests(ctx)
		if err != nil {
			return nil, fmt.Errorf("plan pickups: list pending requests: %w", err)
		}
		stops = append(stops, requests...)
	}

	start := domain.GeoPoint{Lat: pos.Lat, Lng: pos.Lng}
	route := PlanRoute(stops, start)
	metrics := Estimate(route, start, opts)

	plan := &PickupPlan{
		Start:         pos,
		Stops:         route,
		Metrics:       metrics,
		DirectionsURL: DirectionsURL(route, start, req.Mode),
	}

	if perr := CheckPlausibility(metrics, req.MaxRouteKm); perr != nil {
		log.Printf("plan pickups: implausible route stops=%d err=%v", len(route), perr)
		plan.Warning = perr.Error()
	} else if pos.IsFallback {
		plan.Warning = "current location unavailable; route planned from fallback position"
	}

	return plan, nil
}
