package location

import (
	"collector-route-service/internal/domain"
	"collector-route-service/internal/ports"
	"context"
	"testing"
	"time"
)

var accra = domain.GeoPoint{Lat: 5.6037, Lng: -0.1870}

type erroringLocator struct {
	err error
}

func (e *erroringLocator) Locate(ctx context.Context) (ports.Position, error) {
	return ports.Position{}, e.err
}

type blockingLocator struct{}

func (b *blockingLocator) Locate(ctx context.Context) (ports.Position, error) {
	<-ctx.Done()
	return ports.Position{}, &ports.LocateError{Code: ports.LocateTimeout, Err: ctx.Err()}
}

func TestFallbackLocatorPassesThroughSuccess(t *testing.T) {
	inner := NewStaticLocator(ports.Position{Lat: 5.61, Lng: -0.19, AccuracyMeters: 12})
	locator := NewFallbackLocator(inner, time.Second, accra)

	pos, err := locator.Locate(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pos.IsFallback {
		t.Fatal("successful lookup must not be marked as fallback")
	}
	if pos.Lat != 5.61 || pos.Lng != -0.19 {
		t.Fatalf("got position %v, want inner position", pos)
	}
}

func TestFallbackLocatorSubstitutesOnError(t *testing.T) {
	inner := &erroringLocator{err: &ports.LocateError{Code: ports.LocatePermissionDenied}}
	locator := NewFallbackLocator(inner, time.Second, accra)

	pos, err := locator.Locate(context.Background())
	if err != nil {
		t.Fatalf("fallback locator must not return errors: %v", err)
	}
	if !pos.IsFallback {
		t.Fatal("substituted position must be marked as fallback")
	}
	if pos.Lat != accra.Lat || pos.Lng != accra.Lng {
		t.Fatalf("got position %v, want fallback %v", pos, accra)
	}
}

func TestFallbackLocatorSubstitutesOnTimeout(t *testing.T) {
	locator := NewFallbackLocator(&blockingLocator{}, 20*time.Millisecond, accra)

	start := time.Now()
	pos, err := locator.Locate(context.Background())
	if err != nil {
		t.Fatalf("fallback locator must not return errors: %v", err)
	}
	if !pos.IsFallback {
		t.Fatal("timed-out lookup must resolve to the fallback position")
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("lookup took %v, want the bounded timeout to apply", elapsed)
	}
}

func TestFallbackLocatorWithoutInnerProvider(t *testing.T) {
	locator := NewFallbackLocator(nil, time.Second, accra)

	pos, err := locator.Locate(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !pos.IsFallback || pos.Lat != accra.Lat {
		t.Fatalf("got %v, want marked fallback at %v", pos, accra)
	}
}
