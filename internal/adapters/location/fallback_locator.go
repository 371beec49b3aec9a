package location

import (
	"collector-route-service/internal/domain"
	"collector-route-service/internal/ports"
	"context"
	"log"
	"time"
)

// FallbackLocator wraps another LocationProvider with the timeout and
// fallback discipline a planning cycle needs: the inner lookup gets a
// bounded window, and on any failure the configured static position is
// substituted exactly once and marked IsFallback. Locate on this type
// never returns an error; degraded accuracy is signalled through the
// position itself.
type FallbackLocator struct {
	// Inner may be nil, in which case every lookup resolves to the fallback.
	Inner    ports.LocationProvider
	Timeout  time.Duration
	Fallback domain.GeoPoint
}

func NewFallbackLocator(inner ports.LocationProvider, timeout time.Duration, fallback domain.GeoPoint) *FallbackLocator {
	if timeout <= 0 {
		timeout = 8 * time.Second
	}
	return &FallbackLocator{Inner: inner, Timeout: timeout, Fallback: fallback}
}

func (f *FallbackLocator) Locate(ctx context.Context) (ports.Position, error) {
	if f.Inner != nil {
		ctx, cancel := context.WithTimeout(ctx, f.Timeout)
		defer cancel()

		pos, err := f.Inner.Locate(ctx)
		if err == nil {
			return pos, nil
		}
		log.Printf("locator: falling back to static position err=%v", err)
	}

	return ports.Position{
		Lat:        f.Fallback.Lat,
		Lng:        f.Fallback.Lng,
		IsFallback: true,
	}, nil
}
