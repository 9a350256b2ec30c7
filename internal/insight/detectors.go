package insight

import (
	"fmt"

	"github.com/percepta/journal/internal/journal"
	"github.com/percepta/journal/internal/userstate"
)

// #region evidence

// Evidence is what the detectors look at: the recent window of each kind plus the user state.
type Evidence struct {
	State       userstate.State
	Perceptions []journal.PerceptionEntry
	Thinking    []journal.MacroThinking
}

// #endregion evidence

// #region cascade

// detector inspects evidence and returns a message when its pattern is present.
type detector struct {
	kind   Type
	detect func(Evidence, Config) (string, bool)
}

// cascade is evaluated in order; the first allowed detector that fires wins.
var cascade = []detector{
	{Repetition, detectRepetition},
	{Convergence, detectConvergence},
	{MoodCorrelation, detectMoodCorrelation},
	{NeutralSummary, detectNeutralSummary},
}

// #endregion cascade

// #region repetition

// detectRepetition looks for one mood, then one cause, seen RepeatThreshold times.
// Candidates are scanned in vocabulary declaration order, so when two moods tie
// the one declared first (stable, neutral, anxious) is named.
func detectRepetition(ev Evidence, cfg Config) (string, bool) {
	moods := countMoods(ev.Perceptions)
	for _, m := range journal.AllMoods() {
		if n := moods[m]; n >= cfg.RepeatThreshold {
			return fmt.Sprintf("최근 %d일 동안 '%s' 상태가 이어지고 있습니다. 흐름이 유지되고 있네요.", n, m.DisplayName()), true
		}
	}

	causes := make(map[journal.Cause]int)
	for _, t := range ev.Thinking {
		causes[t.Cause]++
	}
	for _, c := range journal.AllCauses() {
		if n := causes[c]; n >= cfg.RepeatThreshold {
			return fmt.Sprintf("최근 %d번의 생각에서 '%s'에 대한 관심이 이어지고 있습니다.", n, c.DisplayName()), true
		}
	}
	return "", false
}

// #endregion repetition

// #region convergence

func detectConvergence(ev Evidence, cfg Config) (string, bool) {
	if len(ev.Thinking) < cfg.MinEntries {
		return "", false
	}
	conclusions := make(map[journal.Conclusion]int)
	for _, t := range ev.Thinking {
		conclusions[t.Conclusion]++
	}
	for _, c := range journal.AllConclusions() {
		if conclusions[c] >= cfg.RepeatThreshold {
			name := c.DisplayName()
			return fmt.Sprintf("최근 생각들이 '%s'%s 모이고 있습니다.", name, directionParticle(name)), true
		}
	}
	return "", false
}

// #endregion convergence

// #region mood-correlation

// detectMoodCorrelation counts anxious moods and uncertainty effects independently;
// the two need not fall on the same days.
func detectMoodCorrelation(ev Evidence, cfg Config) (string, bool) {
	if len(ev.Perceptions) < cfg.MinEntries || len(ev.Thinking) < cfg.MinEntries {
		return "", false
	}
	anxious := countMoods(ev.Perceptions)[journal.MoodAnxious]
	uncertain := 0
	for _, t := range ev.Thinking {
		if t.Effect == journal.EffectUncertaintyIncrease {
			uncertain++
		}
	}
	if anxious >= cfg.CorrelationMood && uncertain >= cfg.CorrelationEffect {
		return "불안한 체감과 불확실성에 대한 생각이 함께 나타나고 있습니다. 자연스러운 반응입니다.", true
	}
	return "", false
}

// #endregion mood-correlation

// #region neutral-summary

// welcomeBackMessage is shown to Returning users regardless of content.
const welcomeBackMessage = "다시 돌아오셨네요. 그동안 남겨 둔 기록이 그대로 있습니다."

func detectNeutralSummary(ev Evidence, _ Config) (string, bool) {
	if ev.State == userstate.Returning {
		return welcomeBackMessage, true
	}
	if len(ev.Perceptions) == 0 {
		return "", false
	}
	mood := dominantMood(ev.Perceptions)
	return fmt.Sprintf("최근 %d일간 '%s' 체감이 많았습니다.", len(ev.Perceptions), mood.DisplayName()), true
}

// dominantMood returns the most frequent mood. Ties go to the mood declared first.
func dominantMood(entries []journal.PerceptionEntry) journal.Mood {
	counts := countMoods(entries)
	best := journal.MoodNeutral
	bestCount := 0
	for _, m := range journal.AllMoods() {
		if counts[m] > bestCount {
			best, bestCount = m, counts[m]
		}
	}
	return best
}

// #endregion neutral-summary

// #region helpers

func countMoods(entries []journal.PerceptionEntry) map[journal.Mood]int {
	counts := make(map[journal.Mood]int, 3)
	for _, e := range entries {
		counts[e.Mood]++
	}
	return counts
}

// directionParticle picks 으로 or 로 for the final syllable of word.
// 로 follows a vowel or a ㄹ final consonant.
func directionParticle(word string) string {
	r := []rune(word)
	if len(r) == 0 {
		return "로"
	}
	last := r[len(r)-1]
	if last < 0xAC00 || last > 0xD7A3 {
		return "로"
	}
	final := (last - 0xAC00) % 28
	if final == 0 || final == 8 {
		return "로"
	}
	return "으로"
}

// #endregion helpers
