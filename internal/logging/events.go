package logging

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/percepta/journal/internal/blob"
	"github.com/percepta/journal/internal/datekey"
	"github.com/percepta/journal/internal/repository"
)

// #region event-type

// EventType names a product interaction.
type EventType string

const (
	ScreenView               EventType = "screen_view"
	PerceptionMoodSelected   EventType = "perception_mood_selected"
	PerceptionSaved          EventType = "perception_saved"
	InvestmentActionSelected EventType = "investment_action_selected"
	InvestmentSaved          EventType = "investment_saved"
	NewsCardViewed           EventType = "news_card_viewed"
	NewsItemTapped           EventType = "news_item_tapped"
	MacroQuestionViewed      EventType = "macro_question_viewed"
	MacroAnswerSaved         EventType = "macro_answer_saved"
	SheetOpened              EventType = "sheet_opened"
	SheetClosed              EventType = "sheet_closed"
)

// AllEventTypes returns every event type in declaration order.
func AllEventTypes() []EventType {
	return []EventType{
		ScreenView, PerceptionMoodSelected, PerceptionSaved,
		InvestmentActionSelected, InvestmentSaved,
		NewsCardViewed, NewsItemTapped,
		MacroQuestionViewed, MacroAnswerSaved,
		SheetOpened, SheetClosed,
	}
}

// ParseEventType accepts the wire name of an event type.
func ParseEventType(s string) (EventType, bool) {
	for _, t := range AllEventTypes() {
		if string(t) == s {
			return t, true
		}
	}
	return "", false
}

// #endregion event-type

// #region event

// Event is one logged interaction.
type Event struct {
	ID         string            `json:"id"`
	Type       EventType         `json:"type"`
	Parameters map[string]string `json:"parameters"`
	Timestamp  time.Time         `json:"timestamp"`
	DateKey    datekey.Key       `json:"dateKey"`
}

// Day implements datekey.Dated.
func (e Event) Day() datekey.Key { return e.DateKey }

// #endregion event

// #region event-log

const (
	MaxEvents     = 500
	DefaultRecent = 50
)

// EventLog appends interaction events to the event_logs blob, keeping the newest MaxEvents.
type EventLog struct {
	col *repository.Collection[Event]
	cal *datekey.Calendar
	log *zap.Logger
}

// NewEventLog binds an event log to store. log may be nil.
func NewEventLog(store blob.Store, cal *datekey.Calendar, log *zap.Logger) *EventLog {
	if log == nil {
		log = zap.NewNop()
	}
	retention := repository.Retention{Max: MaxEvents, Policy: repository.RetainByInsertion}
	return &EventLog{
		col: repository.NewCollection[Event](store, blob.KeyEventLogs, retention, log),
		cal: cal,
		log: log,
	}
}

// Log records an event. Failures are logged and otherwise ignored.
func (l *EventLog) Log(t EventType, params map[string]string) {
	if params == nil {
		params = map[string]string{}
	}
	now := l.cal.Now()
	ev := Event{
		ID:         uuid.New().String(),
		Type:       t,
		Parameters: params,
		Timestamp:  now,
		DateKey:    l.cal.For(now),
	}
	if err := l.col.Append(ev); err != nil {
		l.log.Warn("event not recorded", zap.String("type", string(t)), zap.Error(err))
		return
	}
	l.log.Debug("event", zap.String("type", string(t)), zap.Any("params", params))
}

// LogScreenView records a screen_view event for screen.
func (l *EventLog) LogScreenView(screen string) {
	l.Log(ScreenView, map[string]string{"screen": screen})
}

// LogNewsTap records a news_item_tapped event.
func (l *EventLog) LogNewsTap(newsID, source string) {
	l.Log(NewsItemTapped, map[string]string{"news_id": newsID, "source": source})
}

// Recent returns the last limit events in insertion order. limit <= 0 means DefaultRecent.
func (l *EventLog) Recent(limit int) []Event {
	if limit <= 0 {
		limit = DefaultRecent
	}
	events := l.load()
	if len(events) > limit {
		events = events[len(events)-limit:]
	}
	return events
}

// Today returns the events recorded under today's date key.
func (l *EventLog) Today() []Event {
	today := l.cal.Today()
	var out []Event
	for _, e := range l.load() {
		if e.DateKey == today {
			out = append(out, e)
		}
	}
	return out
}

func (l *EventLog) load() []Event {
	events, err := l.col.Load()
	if err != nil {
		l.log.Warn("read event log failed, treating as empty", zap.Error(err))
		return nil
	}
	return events
}

// #endregion event-log
