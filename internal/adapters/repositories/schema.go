package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Initialize the pickup stop schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createStopsQuery := `
	CREATE TABLE IF NOT EXISTS pickup_stops (
		stop_id TEXT PRIMARY KEY,
		stop_type TEXT NOT NULL,
		latitude DOUBLE PRECISION,
		longitude DOUBLE PRECISION,
		location TEXT NOT NULL,
		customer_name TEXT NOT NULL,
		waste_type TEXT,
		status TEXT NOT NULL
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_pickup_stops_type_status
	ON pickup_stops(stop_type, status);
	`

	statements := []string{
		createStopsQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type StopSeed struct {
	StopID       string   `json:"stop_id"`
	StopType     string   `json:"stop_type"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
	Location     string   `json:"location"`
	CustomerName string   `json:"customer_name"`
	WasteType    string   `json:"waste_type"`
	Status       string   `json:"status"`
}

// Populate the database with pickup stop data from a JSON file.
func SeedFromJSON(db *sql.DB, jsonPath string) error {
	raw, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed stops: read %q: %w", jsonPath, err)
	}

	var data []StopSeed
	if err := json.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("seed stops: parse json: %w", err)
	}

	for i, item := range data {
		if strings.TrimSpace(item.StopID) == "" {
			return fmt.Errorf("seed stops: empty stop_id at index %d", i+1)
		}
		if item.StopType != "assignment" && item.StopType != "request" {
			return fmt.Errorf("seed stops: invalid stop_type %q at index %d", item.StopType, i+1)
		}
		if strings.TrimSpace(item.Location) == "" {
			return fmt.Errorf("seed stops: item at index %d: location cannot be empty", i+1)
		}
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed stops: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
	INSERT INTO pickup_stops (
		stop_id,
		stop_type,
		latitude,
		longitude,
		location,
		customer_name,
		waste_type,
		status
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	ON CONFLICT (stop_id) DO UPDATE
	SET stop_type = EXCLUDED.stop_type,
		latitude = EXCLUDED.latitude,
		longitude = EXCLUDED.longitude,
		location = EXCLUDED.location,
		customer_name = EXCLUDED.customer_name,
		waste_type = EXCLUDED.waste_type,
		status = EXCLUDED.status;
	`
	stmt, err := tx.Prepare(query)
	if err != nil {
		return fmt.Errorf("seed stops: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, s := range data {
		if _, err := stmt.Exec(
			s.StopID, s.StopType, s.Latitude, s.Longitude,
			s.Location, s.CustomerName, s.WasteType, s.Status,
		); err != nil {
			return fmt.Errorf("seed stops: insert stop_id=%s: %w", s.StopID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed stops: commit tx: %w", err)
	}

	return nil
}
