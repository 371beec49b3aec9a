package tiles

import (
	"collector-route-service/internal/ports"
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const defaultKeyPrefix = "tile:"

// Redis-backed implementation of the TileStore port. Entries are raw
// image bytes under a shared key prefix with no TTL: tiles persist until
// an explicit bulk clear, matching the unbounded-growth cache policy.
// Redis serializes commands per connection, which is the only write
// discipline a tile cache needs since writes are idempotent per key.
type RedisTileStore struct {
	client *redis.Client
	prefix string
}

func NewRedisTileStore(client *redis.Client) *RedisTileStore {
	return &RedisTileStore{client: client, prefix: defaultKeyPrefix}
}

func (s *RedisTileStore) Put(ctx context.Context, key string, data []byte) error {
	if key == "" {
		return errors.New("tile store: key must not be empty")
	}
	if err := s.client.Set(ctx, s.prefix+key, data, 0).Err(); err != nil {
		return fmt.Errorf("tile store: set %q: %w", key, err)
	}
	return nil
}

func (s *RedisTileStore) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ports.ErrTileNotFound
		}
		return nil, fmt.Errorf("tile store: get %q: %w", key, err)
	}
	return data, nil
}

func (s *RedisTileStore) Has(ctx context.Context, key string) (bool, error) {
	n, err := s.client.Exists(ctx, s.prefix+key).Result()
	if err != nil {
		return false, fmt.Errorf("tile store: exists %q: %w", key, err)
	}
	return n > 0, nil
}

// Count scans the keyspace under the tile prefix. SCAN keeps the store
// responsive during large counts where KEYS would block.
func (s *RedisTileStore) Count(ctx context.Context) (int, error) {
	var (
		cursor uint64
		total  int
	)
	for {
		keys, next, err := s.client.Scan(ctx, cursor, s.prefix+"*", 500).Result()
		if err != nil {
			return 0, fmt.Errorf("tile store: scan keys: %w", err)
		}
		total += len(keys)
		cursor = next
		if cursor == 0 {
			return total, nil
		}
	}
}

// Clear deletes every cached tile in scan-sized batches. Clearing an
// empty store is a no-op.
func (s *RedisTileStore) Clear(ctx context.Context) error {
	var cursor uint64
	for {
		keys, next, err := s.client.Scan(ctx, cursor, s.prefix+"*", 500).Result()
		if err != nil {
			return fmt.Errorf("tile store: scan keys: %w", err)
		}

		if len(keys) > 0 {
			if err := s.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("tile store: delete batch: %w", err)
			}
		}

		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}
