package ports

import "context"

// Contract for fetching raster map tile images addressed by zoom and
// grid coordinates.
type TileSource interface {
	FetchTile(ctx context.Context, z, x, y int) ([]byte, error)
}
