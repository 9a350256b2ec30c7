package insight

import (
	"go.uber.org/zap"

	"github.com/percepta/journal/internal/blob"
	"github.com/percepta/journal/internal/datekey"
	"github.com/percepta/journal/internal/repository"
)

// #region store

// Store persists generated insights, at most one per day.
type Store struct {
	col *repository.Collection[Insight]
}

// NewStore binds the insight collection to blob.KeyInsights.
func NewStore(store blob.Store, retention repository.Retention, log *zap.Logger) *Store {
	return &Store{col: repository.NewCollection[Insight](store, blob.KeyInsights, retention, log)}
}

// Find returns the insight stored for day, if any.
func (s *Store) Find(day datekey.Key) (Insight, bool, error) {
	return s.col.Find(day)
}

// Save drops any insight for the same day, appends ins and enforces the cap.
func (s *Store) Save(ins Insight) error {
	return s.col.Upsert(ins)
}

// Recent returns up to n insights, newest day first.
func (s *Store) Recent(n int) ([]Insight, error) {
	return s.col.Recent(n)
}

// All returns every stored insight in insertion order.
func (s *Store) All() ([]Insight, error) {
	return s.col.Load()
}

// #endregion store
