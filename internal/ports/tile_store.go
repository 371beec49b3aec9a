package ports

import (
	"context"
	"errors"
)

// Returned by TileStore.Get when no entry exists for the key.
var ErrTileNotFound = errors.New("tile not found")

// Port: a persistent key-value store for cached map tiles.
//
// Keys are opaque strings derived from z/x/y tile coordinates. A tile's
// content is a pure function of its key, so writes are idempotent and
// concurrent save batches racing on the same key are harmless.
type TileStore interface {
	Put(ctx context.Context, key string, data []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
	Has(ctx context.Context, key string) (bool, error)
	// Count returns the number of cached tile entries.
	Count(ctx context.Context) (int, error)
	// Clear removes all cached tile entries. Clearing an empty store succeeds.
	Clear(ctx context.Context) error
}
