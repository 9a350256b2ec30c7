package app

import (
	"go.uber.org/zap"

	"github.com/percepta/journal/internal/datekey"
	"github.com/percepta/journal/internal/insight"
	"github.com/percepta/journal/internal/journal"
	"github.com/percepta/journal/internal/userstate"
)

// #region snapshot

// Day is everything recorded for one calendar day.
type Day struct {
	DateKey    datekey.Key              `json:"dateKey"`
	Label      string                   `json:"label"`
	Perception *journal.PerceptionEntry `json:"perception,omitempty"`
	Investment *journal.InvestmentEntry `json:"investment,omitempty"`
	Thinking   *journal.MacroThinking   `json:"thinking,omitempty"`
	Insight    *insight.Insight         `json:"insight,omitempty"`
}

// Empty reports whether nothing was recorded for the day.
func (d Day) Empty() bool {
	return d.Perception == nil && d.Investment == nil && d.Thinking == nil && d.Insight == nil
}

// Snapshot is the home screen view of today.
type Snapshot struct {
	Day
	State   userstate.State `json:"state"`
	Daytime bool            `json:"daytime"`
}

// Today returns today's entries, stored insight and current state.
func (s *Service) Today() Snapshot {
	rows := s.Timeline(1)
	return Snapshot{
		Day:     rows[0],
		State:   s.State(),
		Daytime: s.cal.IsDaytimeSlot(),
	}
}

// #endregion snapshot

// #region timeline

// Timeline returns one row per day for the last days days, newest first.
// Days with nothing recorded are included as empty rows.
func (s *Service) Timeline(days int) []Day {
	if days < 1 {
		days = 1
	}

	perceptions, err := s.perceptions.All()
	if err != nil {
		s.log.Warn("read perceptions failed, treating as empty", zap.Error(err))
	}
	investments, err := s.investments.All()
	if err != nil {
		s.log.Warn("read investments failed, treating as empty", zap.Error(err))
	}
	thinking, err := s.thinking.All()
	if err != nil {
		s.log.Warn("read macro thinking failed, treating as empty", zap.Error(err))
	}
	insights, err := s.insights.All()
	if err != nil {
		s.log.Warn("read insights failed, treating as empty", zap.Error(err))
	}

	p := indexByDay(perceptions)
	inv := indexByDay(investments)
	th := indexByDay(thinking)
	ins := indexByDay(insights)

	keys := s.cal.LastDays(days)
	rows := make([]Day, len(keys))
	for i, k := range keys {
		rows[i] = Day{
			DateKey:    k,
			Label:      s.cal.Display(k),
			Perception: p[k],
			Investment: inv[k],
			Thinking:   th[k],
			Insight:    ins[k],
		}
	}
	return rows
}

// indexByDay keeps the last item stored for each day.
func indexByDay[T datekey.Dated](items []T) map[datekey.Key]*T {
	out := make(map[datekey.Key]*T, len(items))
	for i := range items {
		out[items[i].Day()] = &items[i]
	}
	return out
}

// #endregion timeline
