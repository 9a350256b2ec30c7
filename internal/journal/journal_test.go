package journal

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/percepta/journal/internal/datekey"
)

var testNow = time.Date(2026, 4, 1, 21, 0, 0, 0, datekey.DefaultZone)

func TestThinkingDraftRefusesMissingSelections(t *testing.T) {
	tests := []struct {
		name  string
		draft ThinkingDraft
	}{
		{"empty", ThinkingDraft{}},
		{"no-cause", ThinkingDraft{Effect: EffectStabilization, Conclusion: ConclusionStayCalm}},
		{"no-effect", ThinkingDraft{Cause: CauseInflation, Conclusion: ConclusionStayCalm}},
		{"no-conclusion", ThinkingDraft{Cause: CauseInflation, Effect: EffectStabilization}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, tt.draft.Complete())
			_, err := tt.draft.Entry("2026-04-01", testNow)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrIncompleteThinking), "got %v", err)
		})
	}
}

func TestThinkingDraftRejectsUnknownValues(t *testing.T) {
	d := ThinkingDraft{Cause: "weather", Effect: EffectStabilization, Conclusion: ConclusionStayCalm}
	assert.True(t, d.Complete())
	_, err := d.Entry("2026-04-01", testNow)
	assert.ErrorIs(t, err, ErrInvalidSelection)
}

func TestThinkingDraftEntry(t *testing.T) {
	d := ThinkingDraft{Cause: CauseInterestRate, Effect: EffectAssetPriceDown, Conclusion: ConclusionObserveMore}
	e, err := d.Entry("2026-04-01", testNow)
	require.NoError(t, err)
	assert.NotEmpty(t, e.ID)
	assert.Equal(t, datekey.Key("2026-04-01"), e.Day())
	assert.Equal(t, CauseInterestRate, e.Cause)
	assert.Equal(t, testNow, e.CreatedAt)
}

func TestPerceptionDraft(t *testing.T) {
	_, err := PerceptionDraft{}.Entry("2026-04-01", testNow)
	assert.ErrorIs(t, err, ErrMissingSelection)

	_, err = PerceptionDraft{Mood: "euphoric"}.Entry("2026-04-01", testNow)
	assert.ErrorIs(t, err, ErrInvalidSelection)

	long := strings.Repeat("가", 150)
	e, err := PerceptionDraft{Mood: MoodAnxious, Note: long}.Entry("2026-04-01", testNow)
	require.NoError(t, err)
	assert.Equal(t, MaxNoteLength, utf8.RuneCountInString(e.Note))
}

func TestInvestmentDraft(t *testing.T) {
	e, err := InvestmentDraft{}.Entry("2026-04-01", testNow)
	require.NoError(t, err)
	assert.Equal(t, ActionNone, e.Action)

	e, err = InvestmentDraft{Action: ActionWatch, Memo: strings.Repeat("a", 80)}.Entry("2026-04-01", testNow)
	require.NoError(t, err)
	assert.Len(t, e.Memo, MaxMemoLength)

	_, err = InvestmentDraft{Action: "short"}.Entry("2026-04-01", testNow)
	assert.ErrorIs(t, err, ErrInvalidSelection)
}

func TestEntryIDsAreUnique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		e, err := PerceptionDraft{Mood: MoodStable}.Entry("2026-04-01", testNow)
		require.NoError(t, err)
		require.False(t, seen[e.ID])
		seen[e.ID] = true
	}
}

func TestPersistedFieldNames(t *testing.T) {
	e := MacroThinking{ID: "x", DateKey: "2026-04-01", Cause: CausePolicy, Effect: EffectStabilization, Conclusion: ConclusionStayCalm, CreatedAt: testNow}
	raw, err := json.Marshal(e)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(raw, &m))
	for _, k := range []string{"id", "dateKey", "cause", "effect", "conclusion", "createdAt"} {
		assert.Contains(t, m, k)
	}
	assert.Equal(t, "policy", m["cause"])
}

func TestVocabularySizes(t *testing.T) {
	assert.Len(t, AllMoods(), 3)
	assert.Len(t, AllActions(), 4)
	assert.Len(t, AllCauses(), 6)
	assert.Len(t, AllEffects(), 6)
	assert.Len(t, AllConclusions(), 5)

	for _, c := range AllCauses() {
		assert.NotEqual(t, string(c), c.DisplayName())
	}
	for _, c := range AllConclusions() {
		assert.NotEqual(t, string(c), c.DisplayName())
	}
}
