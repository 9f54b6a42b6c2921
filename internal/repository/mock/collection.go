// Package mock implements the domain repositories on top of the JSON blob
// store so the service runs fully offline (demos, local dev, frontend work
// against seeded data). Each repository serializes its whole collection
// under one key and rewrites it on every mutation; the storage.Store doc
// spells out the concurrency contract that buys.
package mock

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"ims-service/internal/storage"
)

// collection wraps one blob key. The optional latency simulates a slow
// backing store so offline mode exercises the same loading states as a
// real deployment.
type collection[T any] struct {
	store   storage.Store
	key     string
	latency time.Duration
}

func newCollection[T any](store storage.Store, key string, latency time.Duration) *collection[T] {
	return &collection[T]{store: store, key: key, latency: latency}
}

func (c *collection[T]) delay(ctx context.Context) error {
	if c.latency <= 0 {
		return nil
	}
	select {
	case <-time.After(c.latency):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// load decodes the collection. A missing key reads as an empty collection.
func (c *collection[T]) load(ctx context.Context) ([]T, error) {
	if err := c.delay(ctx); err != nil {
		return nil, err
	}

	blob, err := c.store.Get(ctx, c.key)
	if errors.Is(err, storage.ErrKeyNotFound) {
		return []T{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", c.key, err)
	}

	var items []T
	if err := json.Unmarshal(blob, &items); err != nil {
		return nil, fmt.Errorf("decode %s: %w", c.key, err)
	}
	return items, nil
}

func (c *collection[T]) save(ctx context.Context, items []T) error {
	blob, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode %s: %w", c.key, err)
	}
	if err := c.store.Put(ctx, c.key, blob); err != nil {
		return fmt.Errorf("save %s: %w", c.key, err)
	}
	return nil
}

// nextID assigns max+1 so IDs grow strictly even after deletions.
func nextID[T any](items []T, id func(T) int64) int64 {
	var max int64
	for _, it := range items {
		if v := id(it); v > max {
			max = v
		}
	}
	return max + 1
}
