// Package memstore is an in-memory store.Store. It reproduces the filter,
// ordering and upsert semantics of the PostgreSQL store closely enough for
// gateway and handler tests, and backs `hubctl demo --dry-run`.
package memstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/imec-intel/hub/pkg/record"
	"github.com/imec-intel/hub/pkg/store"
)

type collection[T any] struct {
	mu   sync.RWMutex
	rows map[string]*T

	id    func(*T) string
	match func(*T, record.Filter) bool
	less  func(a, b *T) bool
	// admit runs under the write lock before a row is stored. old is nil on
	// first insert. It may stamp server-maintained fields on rec; returning
	// false keeps old untouched.
	admit func(old, rec *T) bool
}

func (c *collection[T]) Upsert(_ context.Context, rec *T) error {
	if rec == nil {
		return fmt.Errorf("nil record")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	key := c.id(rec)
	old := c.rows[key]
	if c.admit != nil && !c.admit(old, rec) {
		return nil
	}

	cp, err := clone(rec)
	if err != nil {
		return err
	}
	c.rows[key] = cp
	return nil
}

func (c *collection[T]) Get(_ context.Context, id string) (*T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	rec, ok := c.rows[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return clone(rec)
}

func (c *collection[T]) List(_ context.Context, f record.Filter) ([]*T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]*T, 0, len(c.rows))
	for _, rec := range c.rows {
		if c.match(rec, f) {
			out = append(out, rec)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return c.less(out[i], out[j]) })
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}

	for i, rec := range out {
		cp, err := clone(rec)
		if err != nil {
			return nil, err
		}
		out[i] = cp
	}
	return out, nil
}

// Len reports how many rows the collection holds.
func (c *collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.rows)
}

// clone deep-copies through JSON so callers never share maps or slices with
// the stored row.
func clone[T any](rec *T) (*T, error) {
	b, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("failed to copy record: %w", err)
	}
	var out T
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("failed to copy record: %w", err)
	}
	return &out, nil
}
