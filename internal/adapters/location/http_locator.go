package location

import (
	"collector-route-service/internal/ports"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

type positionResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Accuracy  float64 `json:"accuracy"`
}

// HTTPLocator implements LocationProvider against a device-position
// endpoint returning {latitude, longitude, accuracy} JSON. Failures are
// classified into the geolocation error codes so the fallback decorator
// and the UI can distinguish denial from unavailability from timeout.
type HTTPLocator struct {
	session  *http.Client
	endpoint string
}

func NewHTTPLocator(endpoint string) (*HTTPLocator, error) {
	if endpoint == "" {
		return nil, errors.New("http locator: endpoint is empty")
	}
	return &HTTPLocator{
		session:  &http.Client{Timeout: 10 * time.Second},
		endpoint: endpoint,
	}, nil
}

func (l *HTTPLocator) Locate(ctx context.Context) (ports.Position, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.endpoint, nil)
	if err != nil {
		return ports.Position{}, &ports.LocateError{Code: ports.LocateUnavailable, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.session.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return ports.Position{}, &ports.LocateError{Code: ports.LocateTimeout, Err: err}
		}
		return ports.Position{}, &ports.LocateError{Code: ports.LocateUnavailable, Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusUnauthorized:
		return ports.Position{}, &ports.LocateError{
			Code: ports.LocatePermissionDenied,
			Err:  fmt.Errorf("status %d", resp.StatusCode),
		}
	case resp.StatusCode != http.StatusOK:
		return ports.Position{}, &ports.LocateError{
			Code: ports.LocateUnavailable,
			Err:  fmt.Errorf("status %d", resp.StatusCode),
		}
	}

	var decoded positionResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return ports.Position{}, &ports.LocateError{Code: ports.LocateUnavailable, Err: err}
	}

	return ports.Position{
		Lat:            decoded.Latitude,
		Lng:            decoded.Longitude,
		AccuracyMeters: decoded.Accuracy,
	}, nil
}
