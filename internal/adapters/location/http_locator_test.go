package location

import (
	"collector-route-service/internal/ports"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHTTPLocatorDecodesPosition(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"latitude": 5.6037, "longitude": -0.187, "accuracy": 15.5}`))
	}))
	defer server.Close()

	locator, err := NewHTTPLocator(server.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	pos, err := locator.Locate(context.Background())
	if err != nil {
		t.Fatalf("locate: %v", err)
	}
	if pos.Lat != 5.6037 || pos.Lng != -0.187 || pos.AccuracyMeters != 15.5 {
		t.Fatalf("unexpected position: %+v", pos)
	}
	if pos.IsFallback {
		t.Fatal("live position must not be marked as fallback")
	}
}

func TestHTTPLocatorMapsPermissionDenied(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	locator, err := NewHTTPLocator(server.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = locator.Locate(context.Background())

	var le *ports.LocateError
	if !errors.As(err, &le) {
		t.Fatalf("expected LocateError, got %v", err)
	}
	if le.Code != ports.LocatePermissionDenied {
		t.Fatalf("code = %v, want permission_denied", le.Code)
	}
}

func TestHTTPLocatorMapsUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	locator, err := NewHTTPLocator(server.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = locator.Locate(context.Background())

	var le *ports.LocateError
	if !errors.As(err, &le) {
		t.Fatalf("expected LocateError, got %v", err)
	}
	if le.Code != ports.LocateUnavailable {
		t.Fatalf("code = %v, want position_unavailable", le.Code)
	}
}

func TestHTTPLocatorRequiresEndpoint(t *testing.T) {
	if _, err := NewHTTPLocator(""); err == nil {
		t.Fatal("expected error for empty endpoint")
	}
}
