package replay

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/percepta/journal/internal/insight"
	"github.com/percepta/journal/internal/journal"
	"github.com/percepta/journal/internal/repository"
)

// #region fixture-types

// Fixture is the top-level JSON structure for a replay fixture.
type Fixture struct {
	Description string        `json:"description"`
	Timezone    string        `json:"timezone"`
	Start       time.Time     `json:"start"`
	Config      FixtureConfig `json:"config"`
	Days        []FixtureDay  `json:"days"`
}

// FixtureDay is one step of the replay. Unless SameDay is set the clock moves
// forward 1+Gap days before the step runs; the first step runs at Start.
type FixtureDay struct {
	Label      string             `json:"label"`
	Gap        int                `json:"gap,omitempty"`
	SameDay    bool               `json:"same_day,omitempty"`
	Perception *FixturePerception `json:"perception,omitempty"`
	Investment *FixtureInvestment `json:"investment,omitempty"`
	Thinking   *FixtureThinking   `json:"thinking,omitempty"`
	Refresh    bool               `json:"refresh"`
	Expect     *FixtureExpected   `json:"expect,omitempty"`
}

type FixturePerception struct {
	Mood journal.Mood `json:"mood"`
	Note string       `json:"note,omitempty"`
}

type FixtureInvestment struct {
	Action journal.InvestmentAction `json:"action"`
	Memo   string                   `json:"memo,omitempty"`
}

type FixtureThinking struct {
	Cause      journal.Cause      `json:"cause"`
	Effect     journal.Effect     `json:"effect"`
	Conclusion journal.Conclusion `json:"conclusion"`
}

// NoInsight in FixtureExpected.Insight asserts that nothing was shown.
const NoInsight = "none"

// FixtureExpected holds the checks for a step. Empty fields are not checked.
type FixtureExpected struct {
	State   string `json:"state,omitempty"`
	Insight string `json:"insight,omitempty"` // insight type or NoInsight
	Action  string `json:"action,omitempty"`
}

// FixtureConfig overrides engine thresholds and retention. Zero values keep defaults.
type FixtureConfig struct {
	Retention       string `json:"retention,omitempty"`
	MaxEntries      int    `json:"max_entries,omitempty"`
	Window          int    `json:"window,omitempty"`
	MinEntries      int    `json:"min_entries,omitempty"`
	RepeatThreshold int    `json:"repeat_threshold,omitempty"`
}

// #endregion fixture-types

// #region fixture-loader

// LoadFixture reads and parses a JSON fixture file.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture %s: %w", path, err)
	}
	var f Fixture
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixture %s: %w", path, err)
	}
	if f.Start.IsZero() {
		return nil, fmt.Errorf("fixture %s: start is required", path)
	}
	return &f, nil
}

// ToInsightConfig applies the overrides to insight.DefaultConfig.
func (fc *FixtureConfig) ToInsightConfig() insight.Config {
	cfg := insight.DefaultConfig()
	if fc.Window > 0 {
		cfg.Window = fc.Window
	}
	if fc.MinEntries > 0 {
		cfg.MinEntries = fc.MinEntries
	}
	if fc.RepeatThreshold > 0 {
		cfg.RepeatThreshold = fc.RepeatThreshold
	}
	return cfg
}

// ToRetention applies the overrides to repository.DefaultRetention.
func (fc *FixtureConfig) ToRetention() (repository.Retention, error) {
	r := repository.DefaultRetention
	if fc.Retention != "" {
		p, err := repository.ParseRetentionPolicy(fc.Retention)
		if err != nil {
			return r, err
		}
		r.Policy = p
	}
	if fc.MaxEntries > 0 {
		r.Max = fc.MaxEntries
	}
	return r, nil
}

// #endregion fixture-loader
