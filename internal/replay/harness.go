package replay

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/percepta/journal/internal/app"
	"github.com/percepta/journal/internal/blob"
	"github.com/percepta/journal/internal/datekey"
	"github.com/percepta/journal/internal/insight"
	"github.com/percepta/journal/internal/journal"
	"github.com/percepta/journal/internal/userstate"
)

// #region types

// DayResult captures the outcome of one fixture step.
type DayResult struct {
	Label   string
	DateKey datekey.Key
	State   userstate.State
	Action  string // insight.ActionStored | ActionGenerated | ActionSkipped, "" without refresh
	Reason  string
	Insight *insight.Insight
}

// InsightType returns the shown insight's type, or NoInsight.
func (r DayResult) InsightType() string {
	if r.Insight == nil {
		return NoInsight
	}
	return string(r.Insight.Type)
}

// Mismatch is one failed expectation.
type Mismatch struct {
	Step  int
	Label string
	Field string
	Want  string
	Got   string
}

func (m Mismatch) String() string {
	return fmt.Sprintf("step %d (%s): %s want %q, got %q", m.Step, m.Label, m.Field, m.Want, m.Got)
}

// Summary provides aggregate stats from a replay run.
type Summary struct {
	Steps     int
	Generated int
	Stored    int
	Skipped   int
	ByType    map[insight.Type]int
}

// #endregion types

// #region replay

// Replay runs f against a fresh in-memory journal with a fixed clock.
// Entry errors abort the run: a fixture that cannot be recorded is malformed.
func Replay(f *Fixture, log *zap.Logger) ([]DayResult, error) {
	loc, err := datekey.LoadZone(f.Timezone)
	if err != nil {
		return nil, err
	}
	retention, err := f.Config.ToRetention()
	if err != nil {
		return nil, err
	}

	store, err := blob.NewBadgerStore(blob.InMemoryBadgerConfig())
	if err != nil {
		return nil, err
	}
	defer store.Close()

	clock := &datekey.FixedClock{T: f.Start}
	cal := datekey.NewCalendar(loc, clock)
	svc := app.New(app.Options{
		Store:     store,
		Calendar:  cal,
		Retention: retention,
		Insight:   f.Config.ToInsightConfig(),
		Logger:    log,
	})

	ctx := context.Background()
	results := make([]DayResult, 0, len(f.Days))
	for i, day := range f.Days {
		if i > 0 && !day.SameDay {
			clock.Advance(time.Duration(1+day.Gap) * 24 * time.Hour)
		}
		if err := record(ctx, svc, day); err != nil {
			return results, fmt.Errorf("step %d (%s): %w", i, day.Label, err)
		}

		res := DayResult{Label: day.Label, DateKey: cal.Today()}
		if day.Refresh {
			state, d, err := svc.RefreshInsight()
			if err != nil {
				return results, fmt.Errorf("step %d (%s): %w", i, day.Label, err)
			}
			res.State, res.Action, res.Reason, res.Insight = state, d.Action, d.Reason, d.Insight
		} else {
			res.State = svc.State()
		}
		results = append(results, res)
	}
	return results, nil
}

func record(ctx context.Context, svc *app.Service, day FixtureDay) error {
	if p := day.Perception; p != nil {
		if _, err := svc.RecordPerception(ctx, journal.PerceptionDraft{Mood: p.Mood, Note: p.Note}); err != nil {
			return err
		}
	}
	if inv := day.Investment; inv != nil {
		if _, err := svc.RecordInvestment(ctx, journal.InvestmentDraft{Action: inv.Action, Memo: inv.Memo}); err != nil {
			return err
		}
	}
	if th := day.Thinking; th != nil {
		draft := journal.ThinkingDraft{Cause: th.Cause, Effect: th.Effect, Conclusion: th.Conclusion}
		if _, err := svc.RecordThinking(ctx, draft); err != nil {
			return err
		}
	}
	return nil
}

// Compare checks results against each step's expectations.
func Compare(f *Fixture, results []DayResult) []Mismatch {
	var out []Mismatch
	for i, day := range f.Days {
		if i >= len(results) {
			out = append(out, Mismatch{Step: i, Label: day.Label, Field: "result", Want: "present", Got: "missing"})
			continue
		}
		exp, got := day.Expect, results[i]
		if exp == nil {
			continue
		}
		check := func(field, want, have string) {
			if want != "" && want != have {
				out = append(out, Mismatch{Step: i, Label: day.Label, Field: field, Want: want, Got: have})
			}
		}
		check("state", exp.State, string(got.State))
		check("insight", exp.Insight, got.InsightType())
		check("action", exp.Action, got.Action)
	}
	return out
}

// Summarize computes aggregate stats from replay results.
func Summarize(results []DayResult) Summary {
	s := Summary{Steps: len(results), ByType: make(map[insight.Type]int)}
	for _, r := range results {
		switch r.Action {
		case insight.ActionGenerated:
			s.Generated++
		case insight.ActionStored:
			s.Stored++
		case insight.ActionSkipped:
			s.Skipped++
		}
		if r.Insight != nil && r.Action == insight.ActionGenerated {
			s.ByType[r.Insight.Type]++
		}
	}
	return s
}

// #endregion replay
