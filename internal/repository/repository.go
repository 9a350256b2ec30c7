package repository

import (
	"go.uber.org/zap"

	"github.com/percepta/journal/internal/blob"
	"github.com/percepta/journal/internal/datekey"
	"github.com/percepta/journal/internal/journal"
)

// DefaultRetention is the cap shared by the entry repositories.
var DefaultRetention = Retention{Max: 30, Policy: RetainByInsertion}

// #region day-repository

// DayRepository holds at most one entry per calendar day.
type DayRepository[T datekey.Dated] struct {
	col *Collection[T]
	cal *datekey.Calendar
}

// NewDayRepository binds a repository to key in store.
func NewDayRepository[T datekey.Dated](store blob.Store, key string, cal *datekey.Calendar, retention Retention, log *zap.Logger) *DayRepository[T] {
	return &DayRepository[T]{
		col: NewCollection[T](store, key, retention, log),
		cal: cal,
	}
}

// GetToday returns the entry whose date key is today's, if any.
func (r *DayRepository[T]) GetToday() (T, bool, error) {
	return r.col.Find(r.cal.Today())
}

// GetDay returns the entry for day, if any.
func (r *DayRepository[T]) GetDay(day datekey.Key) (T, bool, error) {
	return r.col.Find(day)
}

// GetRecent returns up to n entries sorted by date key, newest first.
func (r *DayRepository[T]) GetRecent(n int) ([]T, error) {
	return r.col.Recent(n)
}

// SaveToday stores entry, replacing any entry with the same date key.
func (r *DayRepository[T]) SaveToday(entry T) error {
	return r.col.Upsert(entry)
}

// All returns every stored entry in insertion order.
func (r *DayRepository[T]) All() ([]T, error) {
	return r.col.Load()
}

// #endregion day-repository

// #region concrete

// Perceptions stores daily mood check-ins.
type Perceptions = DayRepository[journal.PerceptionEntry]

// Investments stores daily investment actions.
type Investments = DayRepository[journal.InvestmentEntry]

// Thinking stores daily macro thoughts.
type Thinking = DayRepository[journal.MacroThinking]

// NewPerceptions returns the perception repository.
func NewPerceptions(store blob.Store, cal *datekey.Calendar, retention Retention, log *zap.Logger) *Perceptions {
	return NewDayRepository[journal.PerceptionEntry](store, blob.KeyPerceptions, cal, retention, log)
}

// NewInvestments returns the investment repository.
func NewInvestments(store blob.Store, cal *datekey.Calendar, retention Retention, log *zap.Logger) *Investments {
	return NewDayRepository[journal.InvestmentEntry](store, blob.KeyInvestments, cal, retention, log)
}

// NewThinking returns the macro thinking repository.
func NewThinking(store blob.Store, cal *datekey.Calendar, retention Retention, log *zap.Logger) *Thinking {
	return NewDayRepository[journal.MacroThinking](store, blob.KeyMacroThinking, cal, retention, log)
}

// #endregion concrete
