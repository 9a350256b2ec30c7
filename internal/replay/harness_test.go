package replay

import (
	"testing"
	"time"

	"github.com/percepta/journal/internal/datekey"
	"github.com/percepta/journal/internal/insight"
	"github.com/percepta/journal/internal/journal"
	"github.com/percepta/journal/internal/userstate"
)

// helper: fixture starting on 2026-03-01 21:00 KST.
func fixture(days ...FixtureDay) *Fixture {
	return &Fixture{
		Timezone: "+09:00",
		Start:    time.Date(2026, 3, 1, 21, 0, 0, 0, datekey.DefaultZone),
		Days:     days,
	}
}

func moodDay(m journal.Mood) FixtureDay {
	return FixtureDay{Label: string(m), Perception: &FixturePerception{Mood: m}, Refresh: true}
}

// 1. Silent-free start: nothing recorded means New and no insight.
func TestReplay_EmptyDay(t *testing.T) {
	results, err := Replay(fixture(FixtureDay{Label: "open", Refresh: true}), nil)
	if err != nil {
		t.Fatalf("Replay: %v", err)
	}
	r := results[0]
	if r.State != userstate.New {
		t.Errorf("expected new, got %s", r.State)
	}
	if r.Action != insight.ActionSkipped || r.Insight != nil {
		t.Errorf("expected skipped without insight, got %s %+v", r.Action, r.Insight)
	}
}

// 2. Without refresh the state is still reported but no insight is asked for.
func TestReplay_NoRefresh(t *testing.T) {
	day := moodDay(journal.MoodStable)
	day.Refresh = false
	results, err := Replay(fixture(day), nil)
	if err != nil {
		t.Fatalf("Replay: %v", err)
	}
	if results[0].State != userstate.Light || results[0].Action != "" {
		t.Errorf("unexpected result %+v", results[0])
	}
	if results[0].InsightType() != NoInsight {
		t.Errorf("expected no insight, got %s", results[0].InsightType())
	}
}

// 3. A malformed entry aborts the run and reports the step.
func TestReplay_BadEntry(t *testing.T) {
	bad := FixtureDay{Label: "half", Thinking: &FixtureThinking{Cause: journal.CausePolicy}}
	results, err := Replay(fixture(moodDay(journal.MoodStable), bad), nil)
	if err == nil {
		t.Fatal("expected error for incomplete thinking")
	}
	if len(results) != 1 {
		t.Errorf("expected results up to the failing step, got %d", len(results))
	}
}

// 4. Config overrides reach the engine.
func TestReplay_ConfigPassthrough(t *testing.T) {
	f := fixture(moodDay(journal.MoodAnxious), moodDay(journal.MoodAnxious))
	f.Config = FixtureConfig{MinEntries: 2, RepeatThreshold: 2}

	results, err := Replay(f, nil)
	if err != nil {
		t.Fatalf("Replay: %v", err)
	}
	if got := results[1].InsightType(); got != string(insight.Repetition) {
		t.Errorf("expected repetition with lowered thresholds, got %s", got)
	}
}

// 5. Compare reports each failed field once.
func TestCompare(t *testing.T) {
	f := fixture(
		FixtureDay{Label: "a", Expect: &FixtureExpected{State: "light", Insight: "none"}},
		FixtureDay{Label: "b"},
		FixtureDay{Label: "c", Expect: &FixtureExpected{Action: "generated"}},
	)
	results := []DayResult{
		{Label: "a", State: userstate.New},
		{Label: "b", State: userstate.Light},
	}

	ms := Compare(f, results)
	if len(ms) != 2 {
		t.Fatalf("expected 2 mismatches, got %d: %v", len(ms), ms)
	}
	if ms[0].Field != "state" || ms[0].Want != "light" || ms[0].Got != "new" {
		t.Errorf("unexpected first mismatch %+v", ms[0])
	}
	if ms[1].Field != "result" || ms[1].Step != 2 {
		t.Errorf("unexpected second mismatch %+v", ms[1])
	}
}

// 6. Summarize counts actions and generated types.
func TestReplay_Summarize(t *testing.T) {
	results := []DayResult{
		{Action: insight.ActionSkipped},
		{Action: insight.ActionGenerated, Insight: &insight.Insight{Type: insight.NeutralSummary}},
		{Action: insight.ActionStored, Insight: &insight.Insight{Type: insight.NeutralSummary}},
		{Action: insight.ActionGenerated, Insight: &insight.Insight{Type: insight.Repetition}},
		{},
	}
	s := Summarize(results)
	if s.Steps != 5 || s.Generated != 2 || s.Stored != 1 || s.Skipped != 1 {
		t.Errorf("unexpected summary %+v", s)
	}
	if s.ByType[insight.NeutralSummary] != 1 || s.ByType[insight.Repetition] != 1 {
		t.Errorf("unexpected type counts %v", s.ByType)
	}
}

// 7. Determinism: two runs of the same fixture agree on everything but IDs.
func TestReplay_Deterministic(t *testing.T) {
	f := fixture(moodDay(journal.MoodStable), moodDay(journal.MoodStable), moodDay(journal.MoodStable))

	r1, err := Replay(f, nil)
	if err != nil {
		t.Fatalf("Replay: %v", err)
	}
	r2, err := Replay(f, nil)
	if err != nil {
		t.Fatalf("Replay: %v", err)
	}
	for i := range r1 {
		if r1[i].State != r2[i].State || r1[i].Action != r2[i].Action || r1[i].InsightType() != r2[i].InsightType() {
			t.Errorf("step %d diverged: %+v vs %+v", i, r1[i], r2[i])
		}
		if r1[i].Insight != nil && r1[i].Insight.Message != r2[i].Insight.Message {
			t.Errorf("step %d message diverged", i)
		}
	}
}
