package replay

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/percepta/journal/internal/datekey"
	"github.com/percepta/journal/internal/insight"
	"github.com/percepta/journal/internal/journal"
)

// #region history

// History is a journal's stored collections, as read back from a store.
type History struct {
	Perceptions []journal.PerceptionEntry
	Investments []journal.InvestmentEntry
	Thinking    []journal.MacroThinking
	Insights    []insight.Insight
}

// replayHour is the local hour each exported step runs at.
const replayHour = 21

// FromHistory turns the last n recorded days of h into a fixture. Each step
// refreshes the insight, and days with a stored insight expect that type.
// Days with nothing recorded become gaps. n <= 0 exports every day.
func FromHistory(h History, timezone string, n int) (*Fixture, error) {
	loc, err := datekey.LoadZone(timezone)
	if err != nil {
		return nil, err
	}
	cal := datekey.NewCalendar(loc, datekey.SystemClock{})

	perceptions := byDay(h.Perceptions)
	investments := byDay(h.Investments)
	thinking := byDay(h.Thinking)
	insights := byDay(h.Insights)

	seen := make(map[datekey.Key]bool)
	for k := range perceptions {
		seen[k] = true
	}
	for k := range investments {
		seen[k] = true
	}
	for k := range thinking {
		seen[k] = true
	}
	days := make([]datekey.Key, 0, len(seen))
	for k := range seen {
		days = append(days, k)
	}
	if len(days) == 0 {
		return nil, fmt.Errorf("no recorded days to export")
	}
	sort.Slice(days, func(i, j int) bool { return days[i] < days[j] })
	if n > 0 && len(days) > n {
		days = days[len(days)-n:]
	}

	first, err := cal.StartOfDay(days[0])
	if err != nil {
		return nil, err
	}
	f := &Fixture{
		Description: fmt.Sprintf("Journal export: %d recorded days, %s to %s", len(days), days[0], days[len(days)-1]),
		Timezone:    timezone,
		Start:       first.Add(replayHour * time.Hour),
		Days:        make([]FixtureDay, 0, len(days)),
	}

	prev := first
	for i, k := range days {
		start, err := cal.StartOfDay(k)
		if err != nil {
			return nil, err
		}
		step := FixtureDay{Label: string(k), Refresh: true}
		if i > 0 {
			step.Gap = int(math.Round(start.Sub(prev).Hours()/24)) - 1
		}
		prev = start

		if p, ok := perceptions[k]; ok {
			step.Perception = &FixturePerception{Mood: p.Mood, Note: p.Note}
		}
		if inv, ok := investments[k]; ok {
			step.Investment = &FixtureInvestment{Action: inv.Action, Memo: inv.Memo}
		}
		if th, ok := thinking[k]; ok {
			step.Thinking = &FixtureThinking{Cause: th.Cause, Effect: th.Effect, Conclusion: th.Conclusion}
		}
		if ins, ok := insights[k]; ok {
			step.Expect = &FixtureExpected{Insight: string(ins.Type)}
		}
		f.Days = append(f.Days, step)
	}
	return f, nil
}

// byDay indexes items by date key; a later item wins.
func byDay[T datekey.Dated](items []T) map[datekey.Key]T {
	out := make(map[datekey.Key]T, len(items))
	for _, it := range items {
		out[it.Day()] = it
	}
	return out
}

// #endregion history
