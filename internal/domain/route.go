package domain

// Aggregate estimates for an ordered route. Metrics are derived data,
// recomputed on every planning invocation and never persisted; they are
// a view-level cache within the caller's lifetime.
type RouteMetrics struct {
	TotalDistanceKm  float64
	TotalTimeMinutes float64
}
