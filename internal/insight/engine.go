package insight

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/percepta/journal/internal/datekey"
	"github.com/percepta/journal/internal/journal"
	"github.com/percepta/journal/internal/userstate"
)

// #region dependencies

// PerceptionReader is the read side of the perception repository.
type PerceptionReader interface {
	GetRecent(n int) ([]journal.PerceptionEntry, error)
}

// ThinkingReader is the read side of the macro thinking repository.
type ThinkingReader interface {
	GetRecent(n int) ([]journal.MacroThinking, error)
}

// Recorder is the insight store as the engine sees it.
type Recorder interface {
	Find(day datekey.Key) (Insight, bool, error)
	Save(ins Insight) error
}

// #endregion dependencies

// #region engine

// Engine turns recent entries into at most one insight per calendar day.
type Engine struct {
	perceptions PerceptionReader
	thinking    ThinkingReader
	store       Recorder
	cal         *datekey.Calendar
	config      Config
	log         *zap.Logger
}

// NewEngine wires an engine. log may be nil.
func NewEngine(perceptions PerceptionReader, thinking ThinkingReader, store Recorder, cal *datekey.Calendar, config Config, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{
		perceptions: perceptions,
		thinking:    thinking,
		store:       store,
		cal:         cal,
		config:      config,
		log:         log,
	}
}

// #endregion engine

// #region generate

// GenerateToday returns today's insight for a user in state, creating it if
// today has none yet. Once an insight exists for a day it is returned
// unchanged and the detectors are not run again.
//
// Read failures degrade to "no data". The returned error only reports a
// failed persistence write; the Decision still carries the generated insight.
func (e *Engine) GenerateToday(state userstate.State) (Decision, error) {
	allowed := AllowedTypes(state)
	if len(allowed) == 0 {
		return Decision{Action: ActionSkipped, Reason: fmt.Sprintf("state %s allows no insight", state)}, nil
	}

	today := e.cal.Today()
	existing, ok, err := e.store.Find(today)
	if err != nil {
		e.log.Warn("read insights failed, treating as none", zap.Error(err))
	}
	if ok {
		return Decision{Action: ActionStored, Reason: "insight already exists for " + string(today), Insight: &existing}, nil
	}

	ev := e.gather(state)
	if len(ev.Perceptions) < e.config.MinEntries && len(ev.Thinking) < e.config.MinEntries {
		return Decision{
			Action: ActionSkipped,
			Reason: fmt.Sprintf("insufficient history: %d perceptions, %d thoughts", len(ev.Perceptions), len(ev.Thinking)),
		}, nil
	}

	kind, message, fired := e.runCascade(ev, allowed)
	if !fired {
		return Decision{Action: ActionSkipped, Reason: "no pattern detected"}, nil
	}

	ins := Insight{
		ID:        uuid.New().String(),
		DateKey:   today,
		Type:      kind,
		Message:   message,
		CreatedAt: e.cal.Now(),
	}
	d := Decision{Action: ActionGenerated, Reason: "detector fired: " + string(kind), Insight: &ins}
	if err := e.store.Save(ins); err != nil {
		return d, fmt.Errorf("save insight: %w", err)
	}
	e.log.Debug("insight generated", zap.String("type", string(kind)), zap.String("state", string(state)))
	return d, nil
}

// TodayInsight returns today's stored insight without generating one.
func (e *Engine) TodayInsight() (*Insight, error) {
	ins, ok, err := e.store.Find(e.cal.Today())
	if err != nil || !ok {
		return nil, err
	}
	return &ins, nil
}

// #endregion generate

// #region cascade-run

func (e *Engine) gather(state userstate.State) Evidence {
	perceptions, err := e.perceptions.GetRecent(e.config.Window)
	if err != nil {
		e.log.Warn("read perceptions failed, treating as empty", zap.Error(err))
		perceptions = nil
	}
	thinking, err := e.thinking.GetRecent(e.config.Window)
	if err != nil {
		e.log.Warn("read macro thinking failed, treating as empty", zap.Error(err))
		thinking = nil
	}
	return Evidence{State: state, Perceptions: perceptions, Thinking: thinking}
}

func (e *Engine) runCascade(ev Evidence, allowed []Type) (Type, string, bool) {
	for _, d := range cascade {
		if !contains(allowed, d.kind) {
			continue
		}
		message, ok := d.detect(ev, e.config)
		if !ok {
			continue
		}
		if err := CheckTone(message); err != nil {
			e.log.Error("detector produced directive message", zap.String("type", string(d.kind)), zap.Error(err))
			continue
		}
		return d.kind, message, true
	}
	return "", "", false
}

func contains(types []Type, t Type) bool {
	for _, x := range types {
		if x == t {
			return true
		}
	}
	return false
}

// #endregion cascade-run
