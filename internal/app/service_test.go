package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/percepta/journal/internal/blob"
	"github.com/percepta/journal/internal/datekey"
	"github.com/percepta/journal/internal/insight"
	"github.com/percepta/journal/internal/journal"
	"github.com/percepta/journal/internal/logging"
	"github.com/percepta/journal/internal/notify"
	"github.com/percepta/journal/internal/userstate"
)

// #region helpers

type fixture struct {
	svc   *Service
	store *blob.BadgerStore
	clock *datekey.FixedClock
}

func newFixture(t *testing.T, notifier func(blob.Store, *datekey.FixedClock) *notify.Manager) *fixture {
	t.Helper()
	store, err := blob.NewBadgerStore(blob.InMemoryBadgerConfig())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	clock := &datekey.FixedClock{T: time.Date(2026, 6, 1, 20, 0, 0, 0, datekey.DefaultZone)}
	opts := Options{Store: store, Calendar: datekey.NewCalendar(datekey.DefaultZone, clock)}
	if notifier != nil {
		opts.Notifier = notifier(store, clock)
	}
	return &fixture{svc: New(opts), store: store, clock: clock}
}

func (f *fixture) nextDay() { f.clock.Advance(24 * time.Hour) }

// #endregion helpers

func TestRecordPerceptionOverwritesToday(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)

	_, err := f.svc.RecordPerception(ctx, journal.PerceptionDraft{Mood: journal.MoodStable})
	require.NoError(t, err)
	second, err := f.svc.RecordPerception(ctx, journal.PerceptionDraft{Mood: journal.MoodAnxious, Note: "금리 발표"})
	require.NoError(t, err)

	snap := f.svc.Today()
	require.NotNil(t, snap.Perception)
	assert.Equal(t, second.ID, snap.Perception.ID)
	assert.Equal(t, journal.MoodAnxious, snap.Perception.Mood)
	assert.Equal(t, "오늘", snap.Label)
	assert.True(t, snap.Daytime)

	all, err := f.svc.perceptions.All()
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestRecordRejectsInvalidDrafts(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)

	_, err := f.svc.RecordThinking(ctx, journal.ThinkingDraft{Cause: journal.CausePolicy, Conclusion: journal.ConclusionStayCalm})
	assert.ErrorIs(t, err, journal.ErrIncompleteThinking)

	_, err = f.svc.RecordPerception(ctx, journal.PerceptionDraft{})
	assert.ErrorIs(t, err, journal.ErrMissingSelection)

	_, err = f.svc.RecordInvestment(ctx, journal.InvestmentDraft{Action: "hold"})
	assert.ErrorIs(t, err, journal.ErrInvalidSelection)

	assert.True(t, f.svc.Today().Empty())
	assert.Empty(t, f.svc.Events().Recent(10))
}

func TestRecordInvestmentDefaultsToNone(t *testing.T) {
	f := newFixture(t, nil)
	entry, err := f.svc.RecordInvestment(context.Background(), journal.InvestmentDraft{Memo: "지켜보는 중"})
	require.NoError(t, err)
	assert.Equal(t, journal.ActionNone, entry.Action)
}

func TestRefreshInsightAcrossDays(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)

	state, d, err := f.svc.RefreshInsight()
	require.NoError(t, err)
	assert.Equal(t, userstate.New, state)
	assert.Nil(t, d.Insight)

	for i := 0; i < 3; i++ {
		if i > 0 {
			f.nextDay()
		}
		_, err := f.svc.RecordPerception(ctx, journal.PerceptionDraft{Mood: journal.MoodStable})
		require.NoError(t, err)
	}

	state, first, err := f.svc.RefreshInsight()
	require.NoError(t, err)
	assert.Equal(t, userstate.Light, state)
	require.NotNil(t, first.Insight)
	assert.Equal(t, insight.Repetition, first.Insight.Type)

	_, second, err := f.svc.RefreshInsight()
	require.NoError(t, err)
	require.NotNil(t, second.Insight)
	assert.Equal(t, first.Insight.ID, second.Insight.ID)
	assert.Equal(t, insight.ActionStored, second.Action)

	got := f.svc.TodayInsight()
	require.NotNil(t, got)
	assert.Equal(t, first.Insight.ID, got.ID)
}

func TestStateIgnoresInsightWindow(t *testing.T) {
	ctx := context.Background()
	store, err := blob.NewBadgerStore(blob.InMemoryBadgerConfig())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	clock := &datekey.FixedClock{T: time.Date(2026, 6, 1, 20, 0, 0, 0, datekey.DefaultZone)}
	cfg := insight.DefaultConfig()
	cfg.Window = 2
	svc := New(Options{Store: store, Calendar: datekey.NewCalendar(datekey.DefaultZone, clock), Insight: cfg})

	for i := 0; i < 5; i++ {
		if i > 0 {
			clock.Advance(24 * time.Hour)
		}
		_, err := svc.RecordPerception(ctx, journal.PerceptionDraft{Mood: journal.MoodStable})
		require.NoError(t, err)
		_, err = svc.RecordThinking(ctx, journal.ThinkingDraft{
			Cause:      journal.CausePolicy,
			Effect:     journal.EffectAssetPriceUp,
			Conclusion: journal.ConclusionStayCalm,
		})
		require.NoError(t, err)
	}

	// ten entries inside the classifier's own window
	assert.Equal(t, userstate.Consistent, svc.State())
}

func TestTimelineIncludesGaps(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)

	_, err := f.svc.RecordThinking(ctx, journal.ThinkingDraft{
		Cause: journal.CauseInflation, Effect: journal.EffectConsumptionChange, Conclusion: journal.ConclusionObserveMore,
	})
	require.NoError(t, err)
	f.nextDay()
	f.nextDay()
	_, err = f.svc.RecordPerception(ctx, journal.PerceptionDraft{Mood: journal.MoodNeutral})
	require.NoError(t, err)

	rows := f.svc.Timeline(3)
	require.Len(t, rows, 3)
	assert.Equal(t, datekey.Key("2026-06-03"), rows[0].DateKey)
	assert.NotNil(t, rows[0].Perception)
	assert.True(t, rows[1].Empty())
	assert.Equal(t, "어제", rows[1].Label)
	require.NotNil(t, rows[2].Thinking)
	assert.Equal(t, journal.CauseInflation, rows[2].Thinking.Cause)
	assert.Equal(t, "6월 1일", rows[2].Label)

	assert.Len(t, f.svc.Timeline(0), 1)
}

func TestCorruptCollectionDegrades(t *testing.T) {
	f := newFixture(t, nil)
	require.NoError(t, f.store.Put(blob.KeyPerceptions, []byte("not json")))
	require.NoError(t, f.store.Put(blob.KeyMacroThinking, []byte("[")))

	assert.True(t, f.svc.Today().Empty())
	state, d, err := f.svc.RefreshInsight()
	require.NoError(t, err)
	assert.Equal(t, userstate.New, state)
	assert.Nil(t, d.Insight)

	// The next save replaces the unreadable blob.
	_, err = f.svc.RecordPerception(context.Background(), journal.PerceptionDraft{Mood: journal.MoodStable})
	require.NoError(t, err)
	assert.NotNil(t, f.svc.Today().Perception)
}

func TestSavesAreLogged(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)

	_, err := f.svc.RecordPerception(ctx, journal.PerceptionDraft{Mood: journal.MoodAnxious})
	require.NoError(t, err)
	_, err = f.svc.RecordInvestment(ctx, journal.InvestmentDraft{Action: journal.ActionWatch})
	require.NoError(t, err)

	events := f.svc.Events().Today()
	require.Len(t, events, 2)
	assert.Equal(t, logging.PerceptionSaved, events[0].Type)
	assert.Equal(t, "anxious", events[0].Parameters["mood"])
	assert.Equal(t, logging.InvestmentSaved, events[1].Type)
}

func TestFirstThinkingRequestsPermissionOnce(t *testing.T) {
	ctx := context.Background()
	var center *notify.LocalCenter
	f := newFixture(t, func(store blob.Store, clock *datekey.FixedClock) *notify.Manager {
		center = notify.NewLocalCenter(notify.StatusNotDetermined, true, clock)
		return notify.NewManager(center, store, datekey.DefaultZone, nil)
	})

	draft := journal.ThinkingDraft{Cause: journal.CausePolicy, Effect: journal.EffectStabilization, Conclusion: journal.ConclusionStayCalm}
	_, err := f.svc.RecordThinking(ctx, draft)
	require.NoError(t, err)

	status, err := center.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, notify.StatusAuthorized, status)
	pending, _ := center.Pending(ctx)
	assert.Empty(t, pending, "toggle is still off")

	require.NoError(t, f.svc.Notifier().HandleToggle(ctx, true))
	center.SetStatus(notify.StatusDenied)
	_, err = f.svc.RecordThinking(ctx, draft)
	require.NoError(t, err)
	pending, _ = center.Pending(ctx)
	assert.Len(t, pending, 1)
}

func TestBriefIsKeyedToday(t *testing.T) {
	f := newFixture(t, nil)
	assert.Equal(t, datekey.Key("2026-06-01"), f.svc.Brief().DateKey)
}
