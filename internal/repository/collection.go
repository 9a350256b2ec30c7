package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/percepta/journal/internal/blob"
	"github.com/percepta/journal/internal/datekey"
)

// #region retention

// DefaultRecent is the window returned by Recent when the caller passes n <= 0.
const DefaultRecent = 7

// ErrDecode marks a persisted collection that could not be decoded.
var ErrDecode = errors.New("decode collection")

// RetentionPolicy chooses which items are evicted once a collection exceeds its cap.
type RetentionPolicy string

const (
	// RetainByInsertion keeps the most recently appended items.
	RetainByInsertion RetentionPolicy = "insertion"
	// RetainByDateKey keeps the items with the newest date keys. Ties keep the later-appended item.
	RetainByDateKey RetentionPolicy = "date_key"
)

// ParseRetentionPolicy accepts "insertion" or "date_key".
func ParseRetentionPolicy(s string) (RetentionPolicy, error) {
	switch RetentionPolicy(s) {
	case RetainByInsertion, RetainByDateKey:
		return RetentionPolicy(s), nil
	}
	return "", fmt.Errorf("unknown retention policy %q", s)
}

// Retention bounds a collection.
type Retention struct {
	Max    int
	Policy RetentionPolicy
}

// apply trims items to the cap without mutating the input slice.
func apply[T datekey.Dated](items []T, r Retention) []T {
	if r.Max <= 0 || len(items) <= r.Max {
		return items
	}
	if r.Policy != RetainByDateKey {
		return append([]T(nil), items[len(items)-r.Max:]...)
	}

	// Rank by (dateKey, insertion index) and drop the lowest ranks,
	// then emit survivors in their original insertion order.
	idx := make([]int, len(items))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return items[idx[a]].Day() < items[idx[b]].Day()
	})
	drop := make(map[int]bool, len(items)-r.Max)
	for _, i := range idx[:len(items)-r.Max] {
		drop[i] = true
	}
	kept := make([]T, 0, r.Max)
	for i, item := range items {
		if !drop[i] {
			kept = append(kept, item)
		}
	}
	return kept
}

// #endregion retention

// #region collection

// Collection is a JSON list persisted under one blob key.
type Collection[T datekey.Dated] struct {
	store     blob.Store
	key       string
	retention Retention
	log       *zap.Logger
}

// NewCollection binds a collection to key in store.
func NewCollection[T datekey.Dated](store blob.Store, key string, retention Retention, log *zap.Logger) *Collection[T] {
	if log == nil {
		log = zap.NewNop()
	}
	return &Collection[T]{store: store, key: key, retention: retention, log: log}
}

// Load returns every stored item in insertion order. A missing blob is an empty
// collection. A blob that fails to decode yields an empty collection and an
// error wrapping ErrDecode so callers can tell the two apart.
func (c *Collection[T]) Load() ([]T, error) {
	data, err := c.store.Get(c.key)
	if errors.Is(err, blob.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", c.key, err)
	}
	if len(data) == 0 {
		return nil, nil
	}
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("%w %s: %v", ErrDecode, c.key, err)
	}
	return items, nil
}

// loadForWrite is Load for the write path: a corrupt blob is replaced rather
// than blocking every future save.
func (c *Collection[T]) loadForWrite() ([]T, error) {
	items, err := c.Load()
	if errors.Is(err, ErrDecode) {
		c.log.Warn("discarding undecodable collection", zap.String("key", c.key), zap.Error(err))
		return nil, nil
	}
	return items, err
}

// save trims to the retention cap and persists. Nothing is written if encoding fails.
func (c *Collection[T]) save(items []T) error {
	items = apply(items, c.retention)
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode %s: %w", c.key, err)
	}
	return c.store.Put(c.key, data)
}

// Upsert removes any item sharing item's date key, appends item, enforces the
// retention cap and persists.
func (c *Collection[T]) Upsert(item T) error {
	items, err := c.loadForWrite()
	if err != nil {
		return err
	}
	day := item.Day()
	kept := items[:0]
	for _, existing := range items {
		if existing.Day() != day {
			kept = append(kept, existing)
		}
	}
	return c.save(append(kept, item))
}

// Append adds item without same-day replacement, then enforces the cap.
func (c *Collection[T]) Append(item T) error {
	items, err := c.loadForWrite()
	if err != nil {
		return err
	}
	return c.save(append(items, item))
}

// Find returns the first item whose date key equals day.
func (c *Collection[T]) Find(day datekey.Key) (T, bool, error) {
	var zero T
	items, err := c.Load()
	if err != nil {
		return zero, false, err
	}
	for _, item := range items {
		if item.Day() == day {
			return item, true, nil
		}
	}
	return zero, false, nil
}

// Recent returns up to n items sorted by date key, newest first.
// n <= 0 means DefaultRecent.
func (c *Collection[T]) Recent(n int) ([]T, error) {
	items, err := c.Load()
	if err != nil {
		return nil, err
	}
	return newestFirst(items, n), nil
}

func newestFirst[T datekey.Dated](items []T, n int) []T {
	if n <= 0 {
		n = DefaultRecent
	}
	sorted := append([]T(nil), items...)
	sort.SliceStable(sorted, func(a, b int) bool {
		return sorted[a].Day() > sorted[b].Day()
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// #endregion collection
