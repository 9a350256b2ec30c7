package app

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/percepta/journal/internal/blob"
	"github.com/percepta/journal/internal/brief"
	"github.com/percepta/journal/internal/datekey"
	"github.com/percepta/journal/internal/insight"
	"github.com/percepta/journal/internal/journal"
	"github.com/percepta/journal/internal/logging"
	"github.com/percepta/journal/internal/notify"
	"github.com/percepta/journal/internal/repository"
	"github.com/percepta/journal/internal/userstate"
)

// #region options

// Options wires a Service. Store and Calendar are required.
type Options struct {
	Store     blob.Store
	Calendar  *datekey.Calendar
	Retention repository.Retention
	Insight   insight.Config
	Notifier  *notify.Manager // optional
	Briefs    *brief.Source   // optional, defaults to the built-in brief
	Logger    *zap.Logger
}

// #endregion options

// #region service

// Service is the boundary the presentation layer talks to.
type Service struct {
	cal         *datekey.Calendar
	perceptions *repository.Perceptions
	investments *repository.Investments
	thinking    *repository.Thinking
	insights    *insight.Store
	classifier  *userstate.Classifier
	engine      *insight.Engine
	events      *logging.EventLog
	notifier    *notify.Manager
	briefs      *brief.Source
	log         *zap.Logger

	firstInteraction sync.Once
}

// New builds a Service over opts.Store.
func New(opts Options) *Service {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	retention := opts.Retention
	if retention.Max == 0 {
		retention = repository.DefaultRetention
	}
	cfg := opts.Insight
	if cfg.Window == 0 {
		cfg = insight.DefaultConfig()
	}
	briefs := opts.Briefs
	if briefs == nil {
		briefs = brief.NewSource(opts.Calendar)
	}

	s := &Service{
		cal:         opts.Calendar,
		perceptions: repository.NewPerceptions(opts.Store, opts.Calendar, retention, log),
		investments: repository.NewInvestments(opts.Store, opts.Calendar, retention, log),
		thinking:    repository.NewThinking(opts.Store, opts.Calendar, retention, log),
		insights:    insight.NewStore(opts.Store, retention, log),
		classifier:  userstate.NewClassifier(opts.Calendar),
		events:      logging.NewEventLog(opts.Store, opts.Calendar, log),
		notifier:    opts.Notifier,
		briefs:      briefs,
		log:         log,
	}
	s.engine = insight.NewEngine(s.perceptions, s.thinking, s.insights, opts.Calendar, cfg, log)
	return s
}

// Calendar returns the calendar every key is computed with.
func (s *Service) Calendar() *datekey.Calendar { return s.cal }

// Events returns the interaction log.
func (s *Service) Events() *logging.EventLog { return s.events }

// Notifier returns the evening prompt manager, or nil.
func (s *Service) Notifier() *notify.Manager { return s.notifier }

// #endregion service

// #region record

// RecordPerception saves today's perception, replacing any earlier one today.
func (s *Service) RecordPerception(ctx context.Context, draft journal.PerceptionDraft) (journal.PerceptionEntry, error) {
	entry, err := draft.Entry(s.cal.Today(), s.cal.Now())
	if err != nil {
		return journal.PerceptionEntry{}, err
	}
	if err := s.perceptions.SaveToday(entry); err != nil {
		return journal.PerceptionEntry{}, fmt.Errorf("save perception: %w", err)
	}
	s.events.Log(logging.PerceptionSaved, map[string]string{"mood": string(entry.Mood)})
	return entry, nil
}

// RecordInvestment saves today's investment action.
func (s *Service) RecordInvestment(ctx context.Context, draft journal.InvestmentDraft) (journal.InvestmentEntry, error) {
	entry, err := draft.Entry(s.cal.Today(), s.cal.Now())
	if err != nil {
		return journal.InvestmentEntry{}, err
	}
	if err := s.investments.SaveToday(entry); err != nil {
		return journal.InvestmentEntry{}, fmt.Errorf("save investment: %w", err)
	}
	s.events.Log(logging.InvestmentSaved, map[string]string{"action": string(entry.Action)})
	return entry, nil
}

// RecordThinking saves today's cause, effect and conclusion. An incomplete
// draft is refused before anything is written.
func (s *Service) RecordThinking(ctx context.Context, draft journal.ThinkingDraft) (journal.MacroThinking, error) {
	entry, err := draft.Entry(s.cal.Today(), s.cal.Now())
	if err != nil {
		return journal.MacroThinking{}, err
	}
	if err := s.thinking.SaveToday(entry); err != nil {
		return journal.MacroThinking{}, fmt.Errorf("save macro thinking: %w", err)
	}
	s.events.Log(logging.MacroAnswerSaved, map[string]string{
		"cause":      string(entry.Cause),
		"effect":     string(entry.Effect),
		"conclusion": string(entry.Conclusion),
	})
	s.onFirstInteraction(ctx)
	return entry, nil
}

func (s *Service) onFirstInteraction(ctx context.Context) {
	if s.notifier == nil {
		return
	}
	s.firstInteraction.Do(func() {
		if err := s.notifier.OnFirstSuccessfulInteraction(ctx); err != nil {
			s.log.Warn("notification permission request failed", zap.Error(err))
		}
	})
}

// #endregion record

// #region insight

// State classifies the user from the last userstate.Window entries of each kind.
func (s *Service) State() userstate.State {
	return s.classifier.Classify(s.recentPerceptions(), s.recentThinking())
}

// RefreshInsight classifies the user afresh and asks the engine for today's insight.
func (s *Service) RefreshInsight() (userstate.State, insight.Decision, error) {
	state := s.State()
	d, err := s.engine.GenerateToday(state)
	s.log.Debug("insight refresh",
		zap.String("state", string(state)),
		zap.String("action", d.Action),
		zap.String("reason", d.Reason))
	return state, d, err
}

// TodayInsight returns today's stored insight without generating one.
func (s *Service) TodayInsight() *insight.Insight {
	ins, err := s.engine.TodayInsight()
	if err != nil {
		s.log.Warn("read today's insight failed", zap.Error(err))
		return nil
	}
	return ins
}

// #endregion insight

// #region reads

func (s *Service) recentPerceptions() []journal.PerceptionEntry {
	entries, err := s.perceptions.GetRecent(userstate.Window)
	if err != nil {
		s.log.Warn("read perceptions failed, treating as empty", zap.Error(err))
	}
	return entries
}

func (s *Service) recentThinking() []journal.MacroThinking {
	entries, err := s.thinking.GetRecent(userstate.Window)
	if err != nil {
		s.log.Warn("read macro thinking failed, treating as empty", zap.Error(err))
	}
	return entries
}

// Brief returns today's five-part macro brief.
func (s *Service) Brief() brief.Brief {
	return s.briefs.Today()
}

// #endregion reads
