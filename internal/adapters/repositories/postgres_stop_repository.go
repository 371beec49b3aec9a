package repositories

import (
	"collector-route-service/internal/domain"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
)

// Postgres-backed implementation of the StopRepository port.
type PostgresStopRepository struct{ DB *sql.DB }

func NewPostgresStopRepository(db *sql.DB) *PostgresStopRepository {
	return &PostgresStopRepository{DB: db}
}

// Return assignments the collector has accepted, ordered by id.
func (r *PostgresStopRepository) ListAcceptedAssignments(ctx context.Context) ([]domain.Stop, error) {
	return r.listStops(ctx, domain.StopTypeAssignment, "accepted")
}

// Return pickup requests still awaiting a collector, ordered by id.
func (r *PostgresStopRepository) ListPendingRequests(ctx context.Context) ([]domain.Stop, error) {
	return r.listStops(ctx, domain.StopTypeRequest, "pending")
}

func (r *PostgresStopRepository) listStops(ctx context.Context, stopType, status string) ([]domain.Stop, error) {
	if r.DB == nil {
		return nil, errors.New("stop repository: DB is nil")
	}

	query := `
	SELECT
		stop_id,
		latitude,
		longitude,
		location,
		customer_name,
		waste_type,
		status
	FROM pickup_stops
	WHERE stop_type = $1
		AND status = $2
	ORDER BY stop_id;
	`
	rows, err := r.DB.QueryContext(ctx, query, stopType, status)
	if err != nil {
		return nil, fmt.Errorf("list stops type=%s: query pickup_stops table: %w", stopType, err)
	}
	defer rows.Close()

	stops := make([]domain.Stop, 0, 32)
	for rows.Next() {
		var (
			s         domain.Stop
			lat, lng  sql.NullFloat64
			wasteType sql.NullString
		)
		if err := rows.Scan(&s.ID, &lat, &lng, &s.Location, &s.CustomerName, &wasteType, &s.Status); err != nil {
			return nil, fmt.Errorf("list stops type=%s: scan row: %w", stopType, err)
		}

		// Rows imported without coordinates surface as NaN so the
		// planner filters them instead of routing to (0,0).
		s.Latitude = nullableCoord(lat)
		s.Longitude = nullableCoord(lng)
		s.WasteType = wasteType.String
		s.Type = stopType
		stops = append(stops, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list stops type=%s: row iteration: %w", stopType, err)
	}

	return stops, nil
}

func nullableCoord(v sql.NullFloat64) float64 {
	if !v.Valid {
		return math.NaN()
	}
	return v.Float64
}
