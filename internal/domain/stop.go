package domain

// Stop classification. The type only affects display and filtering;
// the route planner treats assignments and requests identically.
const (
	StopTypeAssignment = "assignment"
	StopTypeRequest    = "request"
)

// Represents a single pickup location to be visited by a collector.
// A Stop is either an accepted assignment or a pending pickup request.
// Stops are created by the backing store and are read-only from the
// route planner's perspective; planning never mutates them.
type Stop struct {
	ID           string
	Latitude     float64
	Longitude    float64
	Location     string
	CustomerName string
	Type         string
	WasteType    string
	Status       string
}

// Point returns the stop's coordinates as a GeoPoint.
func (s Stop) Point() GeoPoint {
	return GeoPoint{Lat: s.Latitude, Lng: s.Longitude}
}

// HasValidCoordinates reports whether the stop can participate in
// route planning. Stops imported with missing or malformed coordinates
// are excluded up front rather than coerced to (0,0).
func (s Stop) HasValidCoordinates() bool {
	return s.Point().Valid()
}
