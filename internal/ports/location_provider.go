package ports

import (
	"context"
	"fmt"
)

// A resolved collector position. IsFallback is set when live location
// acquisition failed and the configured static fallback was substituted,
// so downstream callers can warn the user about degraded accuracy.
type Position struct {
	Lat            float64
	Lng            float64
	AccuracyMeters float64
	IsFallback     bool
}

// Locate failure classification, mirroring the error codes a device
// geolocation API reports.
type LocateErrorCode int

const (
	LocatePermissionDenied LocateErrorCode = iota + 1
	LocateUnavailable
	LocateTimeout
)

func (c LocateErrorCode) String() string {
	switch c {
	case LocatePermissionDenied:
		return "permission_denied"
	case LocateUnavailable:
		return "position_unavailable"
	case LocateTimeout:
		return "timeout"
	}
	return "unknown"
}

type LocateError struct {
	Code LocateErrorCode
	Err  error
}

func (e *LocateError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("locate: %s: %v", e.Code, e.Err)
	}
	return fmt.Sprintf("locate: %s", e.Code)
}

func (e *LocateError) Unwrap() error { return e.Err }

// Contract for resolving the collector's current position.
type LocationProvider interface {
	Locate(ctx context.Context) (Position, error)
}
