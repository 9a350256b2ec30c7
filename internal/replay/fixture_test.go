package replay

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/percepta/journal/internal/repository"
)

// #region fixture-tests

// TestFixture_TwoWeeks replays the two_weeks fixture and checks every step's
// state, insight type and action. Threshold or cascade changes show up here.
func TestFixture_TwoWeeks(t *testing.T) {
	f, err := LoadFixture(filepath.Join("testdata", "two_weeks.json"))
	if err != nil {
		t.Fatalf("LoadFixture: %v", err)
	}

	results, err := Replay(f, nil)
	if err != nil {
		t.Fatalf("Replay: %v", err)
	}
	if len(results) != len(f.Days) {
		t.Fatalf("expected %d results, got %d", len(f.Days), len(results))
	}
	for _, m := range Compare(f, results) {
		t.Error(m.String())
	}

	if results[5].DateKey != "2026-03-09" {
		t.Errorf("expected gap step on 2026-03-09, got %s", results[5].DateKey)
	}
	if results[9].Insight == nil || results[8].Insight == nil || results[9].Insight.ID != results[8].Insight.ID {
		t.Error("expected same-day refresh to return the stored insight")
	}
}

func TestLoadFixture_Errors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadFixture(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}

	bad := filepath.Join(dir, "bad.json")
	os.WriteFile(bad, []byte("{"), 0o644)
	if _, err := LoadFixture(bad); err == nil {
		t.Error("expected error for malformed JSON")
	}

	noStart := filepath.Join(dir, "nostart.json")
	os.WriteFile(noStart, []byte(`{"days": []}`), 0o644)
	if _, err := LoadFixture(noStart); err == nil {
		t.Error("expected error for missing start")
	}
}

func TestFixtureConfig_Overrides(t *testing.T) {
	fc := FixtureConfig{Retention: "insertion", MaxEntries: 5, RepeatThreshold: 2}

	r, err := fc.ToRetention()
	if err != nil {
		t.Fatalf("ToRetention: %v", err)
	}
	if r.Policy != repository.RetainByInsertion || r.Max != 5 {
		t.Errorf("unexpected retention %+v", r)
	}

	cfg := fc.ToInsightConfig()
	if cfg.RepeatThreshold != 2 || cfg.Window != 7 || cfg.MinEntries != 3 {
		t.Errorf("unexpected insight config %+v", cfg)
	}

	if _, err := (&FixtureConfig{Retention: "fifo"}).ToRetention(); err == nil {
		t.Error("expected error for unknown retention")
	}
}

// #endregion fixture-tests
