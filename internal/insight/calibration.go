package insight

import "github.com/percepta/journal/internal/userstate"

// #region calibration

// AllowedTypes returns the insight types a user in state s may be shown.
// Silent (and any unknown state) gets none.
func AllowedTypes(s userstate.State) []Type {
	switch s {
	case userstate.New:
		return []Type{NeutralSummary}
	case userstate.Light:
		return []Type{NeutralSummary, Repetition}
	case userstate.Returning:
		return []Type{NeutralSummary}
	case userstate.Consistent:
		return AllTypes()
	}
	return nil
}

// Allows reports whether t is in the allowed set for s.
func Allows(s userstate.State, t Type) bool {
	for _, a := range AllowedTypes(s) {
		if a == t {
			return true
		}
	}
	return false
}

// #endregion calibration
