package userstate

import (
	"github.com/percepta/journal/internal/datekey"
	"github.com/percepta/journal/internal/journal"
)

// #region state

// State is a coarse usage-recency classification. Derived, never persisted.
type State string

const (
	New        State = "new"
	Light      State = "light"
	Silent     State = "silent"
	Returning  State = "returning"
	Consistent State = "consistent"
)

// All returns every state in declaration order.
func All() []State {
	return []State{New, Light, Silent, Returning, Consistent}
}

// DisplayName returns the Korean label.
func (s State) DisplayName() string {
	switch s {
	case New:
		return "새로운 사용자"
	case Light:
		return "가벼운 사용자"
	case Silent:
		return "조용한 사용자"
	case Returning:
		return "돌아온 사용자"
	case Consistent:
		return "꾸준한 사용자"
	}
	return string(s)
}

// Parse maps a raw value to a State.
func Parse(s string) (State, bool) {
	for _, st := range All() {
		if string(st) == s {
			return st, true
		}
	}
	return "", false
}

// #endregion state

// #region thresholds

const (
	// LightBelow is the combined recent count under which a user is Light.
	LightBelow = 3
	// ConsistentFrom is the combined recent count from which a user is Consistent.
	ConsistentFrom = 10
	// Window is how many recent entries of each kind are classified.
	Window = 7
)

// #endregion thresholds

// #region classify

// Classify derives the state from the recent perception and thinking sets.
// Rules are checked in order and the first match wins. Silent is never
// produced here; it exists for the calibration table only.
func Classify(perceptions []journal.PerceptionEntry, thinking []journal.MacroThinking, today, yesterday datekey.Key) State {
	count := len(perceptions) + len(thinking)

	switch {
	case count == 0:
		return New
	case count < LightBelow:
		return Light
	case count >= ConsistentFrom:
		return Consistent
	}

	if !seenOn(perceptions, thinking, today) && !seenOn(perceptions, thinking, yesterday) {
		return Returning
	}
	return Light
}

func seenOn(perceptions []journal.PerceptionEntry, thinking []journal.MacroThinking, day datekey.Key) bool {
	for _, p := range perceptions {
		if p.DateKey == day {
			return true
		}
	}
	for _, m := range thinking {
		if m.DateKey == day {
			return true
		}
	}
	return false
}

// #endregion classify

// #region classifier

// Classifier binds Classify to a calendar so callers need not compute today and yesterday.
type Classifier struct {
	cal *datekey.Calendar
}

// NewClassifier returns a classifier for cal.
func NewClassifier(cal *datekey.Calendar) *Classifier {
	return &Classifier{cal: cal}
}

// Classify derives the state using the calendar's today and yesterday.
func (c *Classifier) Classify(perceptions []journal.PerceptionEntry, thinking []journal.MacroThinking) State {
	return Classify(perceptions, thinking, c.cal.Today(), c.cal.Yesterday())
}

// #endregion classifier
