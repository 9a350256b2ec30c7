package insight

import (
	"time"

	"github.com/percepta/journal/internal/datekey"
)

// #region insight-type

// Type names the pattern an insight describes.
type Type string

const (
	Repetition      Type = "repetition"
	Convergence     Type = "convergence"
	Narrowing       Type = "narrowing"
	MoodCorrelation Type = "moodCorrelation"
	NeutralSummary  Type = "neutralSummary"
)

// AllTypes returns every type in declaration order.
func AllTypes() []Type {
	return []Type{Repetition, Convergence, Narrowing, MoodCorrelation, NeutralSummary}
}

// DisplayName returns the Korean card title.
func (t Type) DisplayName() string {
	switch t {
	case Repetition:
		return "반복 패턴"
	case Convergence:
		return "수렴"
	case Narrowing:
		return "초점 집중"
	case MoodCorrelation:
		return "체감 연결"
	case NeutralSummary:
		return "요약"
	}
	return string(t)
}

// #endregion insight-type

// #region insight

// Insight is the single observation generated for one calendar day.
type Insight struct {
	ID        string      `json:"id"`
	DateKey   datekey.Key `json:"dateKey"`
	Type      Type        `json:"type"`
	Message   string      `json:"message"`
	CreatedAt time.Time   `json:"createdAt"`
}

// Day implements datekey.Dated.
func (i Insight) Day() datekey.Key { return i.DateKey }

// #endregion insight

// #region config

// Config holds the engine's thresholds.
type Config struct {
	Window            int // recent entries read per kind
	MinEntries        int // history needed in at least one kind before any detector runs
	RepeatThreshold   int // same value this many times counts as repetition/convergence
	CorrelationMood   int // anxious perceptions needed for mood correlation
	CorrelationEffect int // uncertainty effects needed for mood correlation
}

// DefaultConfig returns the thresholds the product ships with.
func DefaultConfig() Config {
	return Config{
		Window:            7,
		MinEntries:        3,
		RepeatThreshold:   3,
		CorrelationMood:   2,
		CorrelationEffect: 2,
	}
}

// #endregion config

// #region decision

// Action values reported in a Decision.
const (
	ActionStored    = "stored"    // today's insight already existed
	ActionGenerated = "generated" // a detector fired and the insight was saved
	ActionSkipped   = "skipped"   // no insight today
)

// Decision is the outcome of one generation request.
type Decision struct {
	Action  string
	Reason  string
	Insight *Insight // nil when skipped
}

// #endregion decision
