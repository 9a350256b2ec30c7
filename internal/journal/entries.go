package journal

import (
	"time"

	"github.com/google/uuid"

	"github.com/percepta/journal/internal/datekey"
)

// #region limits

const (
	// MaxNoteLength caps a perception note, counted in characters.
	MaxNoteLength = 100
	// MaxMemoLength caps an investment memo, counted in characters.
	MaxMemoLength = 60
)

// #endregion limits

// #region perception-entry

// PerceptionEntry is one day's mood check-in.
type PerceptionEntry struct {
	ID        string      `json:"id"`
	DateKey   datekey.Key `json:"dateKey"`
	Mood      Mood        `json:"mood"`
	Note      string      `json:"note"`
	CreatedAt time.Time   `json:"createdAt"`
}

// Day implements datekey.Dated.
func (e PerceptionEntry) Day() datekey.Key { return e.DateKey }

// #endregion perception-entry

// #region investment-entry

// InvestmentEntry is one day's investment action log.
type InvestmentEntry struct {
	ID        string           `json:"id"`
	DateKey   datekey.Key      `json:"dateKey"`
	Action    InvestmentAction `json:"action"`
	Memo      string           `json:"memo"`
	CreatedAt time.Time        `json:"createdAt"`
}

// Day implements datekey.Dated.
func (e InvestmentEntry) Day() datekey.Key { return e.DateKey }

// #endregion investment-entry

// #region macro-thinking

// MacroThinking is one day's cause → effect → conclusion selection.
type MacroThinking struct {
	ID         string      `json:"id"`
	DateKey    datekey.Key `json:"dateKey"`
	Cause      Cause       `json:"cause"`
	Effect     Effect      `json:"effect"`
	Conclusion Conclusion  `json:"conclusion"`
	CreatedAt  time.Time   `json:"createdAt"`
}

// Day implements datekey.Dated.
func (e MacroThinking) Day() datekey.Key { return e.DateKey }

// #endregion macro-thinking

// #region drafts

// PerceptionDraft is the user's unsaved perception input.
type PerceptionDraft struct {
	Mood Mood `validate:"required,oneof=stable neutral anxious"`
	Note string
}

// Entry validates the draft and builds the entry for day.
func (d PerceptionDraft) Entry(day datekey.Key, now time.Time) (PerceptionEntry, error) {
	if err := validateDraft(d, ErrMissingSelection); err != nil {
		return PerceptionEntry{}, err
	}
	return PerceptionEntry{
		ID:        uuid.New().String(),
		DateKey:   day,
		Mood:      d.Mood,
		Note:      truncate(d.Note, MaxNoteLength),
		CreatedAt: now,
	}, nil
}

// InvestmentDraft is the user's unsaved investment input. An empty action means none.
type InvestmentDraft struct {
	Action InvestmentAction `validate:"omitempty,oneof=none buy sell watch"`
	Memo   string
}

// Entry validates the draft and builds the entry for day.
func (d InvestmentDraft) Entry(day datekey.Key, now time.Time) (InvestmentEntry, error) {
	if err := validateDraft(d, ErrMissingSelection); err != nil {
		return InvestmentEntry{}, err
	}
	action := d.Action
	if action == "" {
		action = ActionNone
	}
	return InvestmentEntry{
		ID:        uuid.New().String(),
		DateKey:   day,
		Action:    action,
		Memo:      truncate(d.Memo, MaxMemoLength),
		CreatedAt: now,
	}, nil
}

// ThinkingDraft holds the three button selections. All three are mandatory.
type ThinkingDraft struct {
	Cause      Cause      `validate:"required,oneof=interest_rate inflation employment policy global_event market_sentiment"`
	Effect     Effect     `validate:"required,oneof=asset_price_up asset_price_down consumption_change uncertainty_increase stabilization no_significant_change"`
	Conclusion Conclusion `validate:"required,oneof=observe_more stay_calm prepare_slowly no_action_needed need_more_info"`
}

// Complete reports whether every selection is set, without checking the vocabulary.
func (d ThinkingDraft) Complete() bool {
	return d.Cause != "" && d.Effect != "" && d.Conclusion != ""
}

// Entry validates the draft and builds the entry for day.
// An incomplete draft fails with ErrIncompleteThinking.
func (d ThinkingDraft) Entry(day datekey.Key, now time.Time) (MacroThinking, error) {
	if err := validateDraft(d, ErrIncompleteThinking); err != nil {
		return MacroThinking{}, err
	}
	return MacroThinking{
		ID:         uuid.New().String(),
		DateKey:    day,
		Cause:      d.Cause,
		Effect:     d.Effect,
		Conclusion: d.Conclusion,
		CreatedAt:  now,
	}, nil
}

// #endregion drafts

// #region helpers

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}

// #endregion helpers
