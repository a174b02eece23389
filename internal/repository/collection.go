package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
)

// errSkipSave aborts a Mutate without writing.
var errSkipSave = errors.New("skip save")

// Collection is a typed view over one named document in a RecordStore. All
// read-modify-write sequences run under the collection mutex, so two callers
// in the same process never interleave their updates.
type Collection[T any] struct {
	name  string
	store RecordStore
	idOf  func(*T) string
	mu    sync.Mutex
}

func NewCollection[T any](store RecordStore, name string, idOf func(*T) string) *Collection[T] {
	return &Collection[T]{name: name, store: store, idOf: idOf}
}

func (c *Collection[T]) Name() string {
	return c.name
}

func (c *Collection[T]) load(ctx context.Context) ([]T, error) {
	data, err := c.store.Load(ctx, c.name)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", c.name, err)
	}
	items := []T{}
	if len(data) == 0 {
		return items, nil
	}
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", c.name, err)
	}
	return items, nil
}

func (c *Collection[T]) save(ctx context.Context, items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", c.name, err)
	}
	if err := c.store.Save(ctx, c.name, data); err != nil {
		return fmt.Errorf("failed to save %s: %w", c.name, err)
	}
	return nil
}

func (c *Collection[T]) GetAll(ctx context.Context) ([]T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.load(ctx)
}

func (c *Collection[T]) SaveAll(ctx context.Context, items []T) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.save(ctx, items)
}

func (c *Collection[T]) Append(ctx context.Context, item T) error {
	return c.Mutate(ctx, func(items []T) ([]T, error) {
		return append(items, item), nil
	})
}

// Prepend inserts item at the head. Used for newest-first collections.
func (c *Collection[T]) Prepend(ctx context.Context, item T) error {
	return c.Mutate(ctx, func(items []T) ([]T, error) {
		return append([]T{item}, items...), nil
	})
}

// Find returns nil without error when no item has the id.
func (c *Collection[T]) Find(ctx context.Context, id string) (*T, error) {
	items, err := c.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if c.idOf(&items[i]) == id {
			item := items[i]
			return &item, nil
		}
	}
	return nil, nil
}

// FindWhere returns the first item accepted by match, or nil.
func (c *Collection[T]) FindWhere(ctx context.Context, match func(*T) bool) (*T, error) {
	items, err := c.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if match(&items[i]) {
			item := items[i]
			return &item, nil
		}
	}
	return nil, nil
}

// UpdateByID applies patch to the item with the given id and persists the
// collection. It reports false when no item matched.
func (c *Collection[T]) UpdateByID(ctx context.Context, id string, patch func(*T)) (bool, error) {
	updated, err := c.UpdateWhere(ctx,
		func(item *T) bool { return c.idOf(item) == id },
		func(item *T) error {
			patch(item)
			return nil
		})
	return updated != nil, err
}

// UpdateWhere runs fn on the first item accepted by match and persists the
// collection, returning a copy of the updated item. No match yields nil. An
// error from fn aborts the write and leaves the stored item untouched.
func (c *Collection[T]) UpdateWhere(ctx context.Context, match func(*T) bool, fn func(*T) error) (*T, error) {
	var updated *T
	err := c.Mutate(ctx, func(items []T) ([]T, error) {
		for i := range items {
			if !match(&items[i]) {
				continue
			}
			if err := fn(&items[i]); err != nil {
				return nil, err
			}
			item := items[i]
			updated = &item
			return items, nil
		}
		return nil, errSkipSave
	})
	if errors.Is(err, errSkipSave) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// RemoveWhere deletes every item accepted by match and returns how many went.
func (c *Collection[T]) RemoveWhere(ctx context.Context, match func(*T) bool) (int, error) {
	removed := 0
	err := c.Mutate(ctx, func(items []T) ([]T, error) {
		kept := items[:0]
		for i := range items {
			if match(&items[i]) {
				removed++
				continue
			}
			kept = append(kept, items[i])
		}
		if removed == 0 {
			return nil, errSkipSave
		}
		return kept, nil
	})
	if errors.Is(err, errSkipSave) {
		return 0, nil
	}
	return removed, err
}

// Mutate loads the collection, hands it to fn and saves the result. When fn
// returns an error nothing is written.
func (c *Collection[T]) Mutate(ctx context.Context, fn func([]T) ([]T, error)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	items, err := c.load(ctx)
	if err != nil {
		return err
	}
	items, err = fn(items)
	if err != nil {
		return err
	}
	return c.save(ctx, items)
}

// Clear removes the collection document entirely.
func (c *Collection[T]) Clear(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.store.Delete(ctx, c.name); err != nil {
		return fmt.Errorf("failed to clear %s: %w", c.name, err)
	}
	return nil
}

// IsEmpty reports whether the collection has never been written or holds no items.
func (c *Collection[T]) IsEmpty(ctx context.Context) (bool, error) {
	items, err := c.GetAll(ctx)
	if err != nil {
		return false, err
	}
	return len(items) == 0, nil
}
