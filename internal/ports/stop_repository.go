package ports

import (
	"collector-route-service/internal/domain"
	"context"
)

// Port: a boundary for retrieving pickup Stop entities from a data source.
type StopRepository interface {
	// Retrieve assignments the collector has accepted for the current shift.
	ListAcceptedAssignments(ctx context.Context) ([]domain.Stop, error)
	// Retrieve pickup requests still awaiting a collector.
	ListPendingRequests(ctx context.Context) ([]domain.Stop, error)
}
