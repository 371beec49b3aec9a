package services

import (
	"collector-route-service/internal/ports"
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
)

// Geographic bounds plus a zoom span describing the tile grid to cache,
// typically the current map viewport extended by one zoom level in each
// direction.
type TileRegion struct {
	MinLat  float64
	MinLng  float64
	MaxLat  float64
	MaxLng  float64
	MinZoom int
	MaxZoom int
}

func (r TileRegion) validate() error {
	if r.MinLat > r.MaxLat || r.MinLng > r.MaxLng {
		return errors.New("tile region: min bounds exceed max bounds")
	}
	if r.MinLat < -90 || r.MaxLat > 90 || r.MinLng < -180 || r.MaxLng > 180 {
		return errors.New("tile region: bounds out of coordinate range")
	}
	if r.MinZoom < 0 || r.MaxZoom > 22 || r.MinZoom > r.MaxZoom {
		return fmt.Errorf("tile region: invalid zoom span [%d, %d]", r.MinZoom, r.MaxZoom)
	}
	return nil
}

type SaveEventKind int

const (
	// Emitted after each tile is processed (fetched, already cached, or failed).
	SaveProgress SaveEventKind = iota + 1
	// Terminal: the batch finished. Failed may be non-zero; partial
	// success is acceptable and not treated as fatal.
	SaveCompleted
	// Terminal: the batch aborted on an unrecoverable failure, such as
	// the store rejecting writes. Err carries the cause.
	SaveFailed
)

// A single entry in the save-batch event stream. The stream replaces
// nested progress/success/error callbacks so callers can compose
// cancellation and teardown through the context and channel.
type SaveEvent struct {
	Kind   SaveEventKind
	Saved  int
	Failed int
	Total  int
	Err    error
}

type tileCoord struct {
	z, x, y int
}

// TileManager coordinates the offline map tile cache: bulk saves scoped
// to a viewport region, counting, and bulk deletion. Dependencies are
// injected at construction; the manager holds no mutable state of its
// own, so the offline-ready condition is always derived by querying the
// store rather than tracked in a flag that could desync from it.
type TileManager struct {
	store   ports.TileStore
	source  ports.TileSource
	workers int
}

func NewTileManager(store ports.TileStore, source ports.TileSource, workers int) *TileManager {
	if workers < 1 {
		workers = 4
	}
	return &TileManager{store: store, source: source, workers: workers}
}

// TileKey derives the store key for a tile from its zoom and grid coordinates.
func TileKey(z, x, y int) string {
	return fmt.Sprintf("%d/%d/%d", z, x, y)
}

// SaveTiles computes the tile grid covering the region across its zoom
// span and caches every tile not already present, fetching over the
// network with a bounded worker pool.
//
// The returned channel yields a SaveProgress event per processed tile and
// exactly one terminal event (SaveCompleted or SaveFailed) before closing.
// The channel is buffered for the whole batch, so in-flight writes finish
// even if the caller stops consuming; a tile's content is a pure function
// of its coordinates, so late idempotent writes are harmless. A fetch
// failure for one tile does not abort the batch; a store write failure
// (e.g. capacity exhausted) does.
func (m *TileManager) SaveTiles(ctx context.Context, region TileRegion) (<-chan SaveEvent, error) {
	if err := region.validate(); err != nil {
		return nil, fmt.Errorf("save tiles: %w", err)
	}

	tiles := enumerateTiles(region)
	events := make(chan SaveEvent, len(tiles)+1)

	go m.runSaveBatch(ctx, tiles, events)

	return events, nil
}

type saveResult struct {
	fetchErr error
	storeErr error
}

func (m *TileManager) runSaveBatch(ctx context.Context, tiles []tileCoord, events chan<- SaveEvent) {
	defer close(events)

	total := len(tiles)
	if total == 0 {
		events <- SaveEvent{Kind: SaveCompleted, Total: 0}
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	jobs := make(chan tileCoord)
	results := make(chan saveResult, m.workers)

	go func() {
		defer close(jobs)
		for _, t := range tiles {
			select {
			case jobs <- t:
			case <-ctx.Done():
				return
			}
		}
	}()

	var wg sync.WaitGroup
	for i := 0; i < m.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for t := range jobs {
				res := m.saveOne(ctx, t)
				select {
				case results <- res:
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	saved, failed, processed := 0, 0, 0
	for res := range results {
		if res.storeErr != nil {
			events <- SaveEvent{Kind: SaveFailed, Saved: saved, Failed: failed, Total: total, Err: res.storeErr}
			cancel()
			for range results {
				// Drain so workers are not blocked on send.
			}
			return
		}

		if res.fetchErr != nil {
			failed++
		} else {
			saved++
		}
		processed++
		events <- SaveEvent{Kind: SaveProgress, Saved: saved, Failed: failed, Total: total}

		if processed == total {
			break
		}
	}

	if err := ctx.Err(); err != nil {
		events <- SaveEvent{Kind: SaveFailed, Saved: saved, Failed: failed, Total: total, Err: err}
		return
	}

	events <- SaveEvent{Kind: SaveCompleted, Saved: saved, Failed: failed, Total: total}
}

// saveOne caches a single tile, skipping the fetch when already present.
func (m *TileManager) saveOne(ctx context.Context, t tileCoord) saveResult {
	key := TileKey(t.z, t.x, t.y)

	ok, err := m.store.Has(ctx, key)
	if err != nil {
		return saveResult{storeErr: fmt.Errorf("check tile %s: %w", key, err)}
	}
	if ok {
		return saveResult{}
	}

	data, err := m.source.FetchTile(ctx, t.z, t.x, t.y)
	if err != nil {
		return saveResult{fetchErr: fmt.Errorf("fetch tile %s: %w", key, err)}
	}

	if err := m.store.Put(ctx, key, data); err != nil {
		return saveResult{storeErr: fmt.Errorf("store tile %s: %w", key, err)}
	}

	return saveResult{}
}

// Tile returns the cached image for a single tile coordinate. The read
// never reaches the network; a tile that was never saved reports
// ports.ErrTileNotFound.
func (m *TileManager) Tile(ctx context.Context, z, x, y int) ([]byte, error) {
	key := TileKey(z, x, y)
	data, err := m.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, ports.ErrTileNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("read tile %s: %w", key, err)
	}
	return data, nil
}

// TileCount returns the number of tiles currently cached.
func (m *TileManager) TileCount(ctx context.Context) (int, error) {
	n, err := m.store.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("tile count: %w", err)
	}
	return n, nil
}

// DeleteTiles removes every cached tile. Deleting an empty cache succeeds.
func (m *TileManager) DeleteTiles(ctx context.Context) error {
	if err := m.store.Clear(ctx); err != nil {
		return fmt.Errorf("delete tiles: %w", err)
	}
	return nil
}

// OfflineReady reports whether any tiles are cached. The state is derived
// from the store on every call.
func (m *TileManager) OfflineReady(ctx context.Context) (bool, error) {
	n, err := m.TileCount(ctx)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// enumerateTiles lists every tile in the region's grid across its zoom span.
func enumerateTiles(r TileRegion) []tileCoord {
	var tiles []tileCoord
	for z := r.MinZoom; z <= r.MaxZoom; z++ {
		x0 := tileX(r.MinLng, z)
		x1 := tileX(r.MaxLng, z)
		// Tile rows grow southward, so the north edge has the smaller y.
		y0 := tileY(r.MaxLat, z)
		y1 := tileY(r.MinLat, z)
		for x := x0; x <= x1; x++ {
			for y := y0; y <= y1; y++ {
				tiles = append(tiles, tileCoord{z: z, x: x, y: y})
			}
		}
	}
	return tiles
}

// tileX maps a longitude to a slippy-map column at the given zoom.
func tileX(lng float64, z int) int {
	n := float64(int(1) << z)
	x := int(math.Floor((lng + 180) / 360 * n))
	return clampTile(x, z)
}

// maxMercatorLat is the latitude bound of the Web Mercator projection.
// Latitudes beyond it have no tile row, so they map to the edge rows.
const maxMercatorLat = 85.0511

// tileY maps a latitude to a slippy-map row at the given zoom using the
// Web Mercator projection.
func tileY(lat float64, z int) int {
	lat = math.Max(-maxMercatorLat, math.Min(maxMercatorLat, lat))
	n := float64(int(1) << z)
	rad := lat * math.Pi / 180
	y := int(math.Floor((1 - math.Log(math.Tan(rad)+1/math.Cos(rad))/math.Pi) / 2 * n))
	return clampTile(y, z)
}

func clampTile(v, z int) int {
	max := (1 << z) - 1
	if v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}
