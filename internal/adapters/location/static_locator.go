package location

import (
	"collector-route-service/internal/ports"
	"context"
)

// StaticLocator always reports a fixed position. Useful in tests and as
// a stand-in when no live position endpoint is configured.
type StaticLocator struct {
	Position ports.Position
}

func NewStaticLocator(pos ports.Position) *StaticLocator {
	return &StaticLocator{Position: pos}
}

func (s *StaticLocator) Locate(ctx context.Context) (ports.Position, error) {
	return s.Position, nil
}
