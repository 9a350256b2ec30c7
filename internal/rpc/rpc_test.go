package rpc

import (
	"context"
	"net"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/percepta/journal/internal/app"
	"github.com/percepta/journal/internal/blob"
	"github.com/percepta/journal/internal/datekey"
	"github.com/percepta/journal/internal/insight"
	"github.com/percepta/journal/internal/journal"
	"github.com/percepta/journal/internal/logging"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// #region helpers

type env struct {
	client *Client
	svc    *app.Service
	clock  *datekey.FixedClock
}

func startServer(t *testing.T) *env {
	t.Helper()
	store, err := blob.NewSQLiteStore(filepath.Join(t.TempDir(), "rpc.db"))
	require.NoError(t, err)

	clock := &datekey.FixedClock{T: time.Date(2026, 7, 1, 21, 0, 0, 0, datekey.DefaultZone)}
	svc := app.New(app.Options{Store: store, Calendar: datekey.NewCalendar(datekey.DefaultZone, clock)})

	lis := bufconn.Listen(1 << 20)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- NewServer(svc, nil).Serve(ctx, lis) }()

	client, err := NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }))
	require.NoError(t, err)

	t.Cleanup(func() {
		client.Close()
		cancel()
		if err := <-done; err != nil {
			t.Errorf("serve: %v", err)
		}
		store.Close()
	})
	return &env{client: client, svc: svc, clock: clock}
}

func requireCode(t *testing.T, err error, want codes.Code) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, want, status.Code(err), "error: %v", err)
}

// #endregion helpers

func TestRecordAndReadBack(t *testing.T) {
	e := startServer(t)
	ctx := context.Background()

	entry, err := e.client.RecordPerception(ctx, journal.PerceptionDraft{Mood: journal.MoodNeutral, Note: "조용한 하루"})
	require.NoError(t, err)
	assert.NotEmpty(t, entry.ID)
	assert.Equal(t, datekey.Key("2026-07-01"), entry.DateKey)

	inv, err := e.client.RecordInvestment(ctx, journal.InvestmentDraft{Action: journal.ActionWatch, Memo: "관망"})
	require.NoError(t, err)
	assert.Equal(t, journal.ActionWatch, inv.Action)

	th, err := e.client.RecordThinking(ctx, journal.ThinkingDraft{
		Cause: journal.CauseEmployment, Effect: journal.EffectStabilization, Conclusion: journal.ConclusionNoActionNeeded,
	})
	require.NoError(t, err)
	assert.Equal(t, journal.ConclusionNoActionNeeded, th.Conclusion)

	snap, err := e.client.Today(ctx)
	require.NoError(t, err)
	require.NotNil(t, snap.Perception)
	assert.Equal(t, entry.ID, snap.Perception.ID)
	require.NotNil(t, snap.Investment)
	require.NotNil(t, snap.Thinking)
	assert.Equal(t, "오늘", snap.Label)
}

func TestValidationIsInvalidArgument(t *testing.T) {
	e := startServer(t)
	ctx := context.Background()

	_, err := e.client.RecordThinking(ctx, journal.ThinkingDraft{Cause: journal.CausePolicy})
	requireCode(t, err, codes.InvalidArgument)

	_, err = e.client.RecordPerception(ctx, journal.PerceptionDraft{Mood: "euphoric"})
	requireCode(t, err, codes.InvalidArgument)

	_, err = e.client.Timeline(ctx, 0)
	requireCode(t, err, codes.InvalidArgument)

	err = e.client.LogEvent(ctx, "tap", nil)
	requireCode(t, err, codes.InvalidArgument)
}

func TestInsightOverRPC(t *testing.T) {
	e := startServer(t)
	ctx := context.Background()

	got, err := e.client.TodayInsight(ctx)
	require.NoError(t, err)
	assert.Nil(t, got, "no insight is an empty reply, not an error")

	for i := 0; i < 3; i++ {
		if i > 0 {
			e.clock.Advance(24 * time.Hour)
		}
		_, err := e.client.RecordPerception(ctx, journal.PerceptionDraft{Mood: journal.MoodAnxious})
		require.NoError(t, err)
	}

	res, err := e.client.RefreshInsight(ctx)
	require.NoError(t, err)
	require.NotNil(t, res.Insight)
	assert.Equal(t, insight.Repetition, res.Insight.Type)
	assert.Equal(t, insight.ActionGenerated, res.Action)
	assert.Contains(t, res.Insight.Message, "불안")

	again, err := e.client.TodayInsight(ctx)
	require.NoError(t, err)
	require.NotNil(t, again)
	assert.Equal(t, res.Insight.ID, again.ID)
	assert.True(t, res.Insight.CreatedAt.Equal(again.CreatedAt))
}

func TestTimelineAndBrief(t *testing.T) {
	e := startServer(t)
	ctx := context.Background()

	_, err := e.client.RecordPerception(ctx, journal.PerceptionDraft{Mood: journal.MoodStable})
	require.NoError(t, err)
	e.clock.Advance(24 * time.Hour)

	days, err := e.client.Timeline(ctx, 2)
	require.NoError(t, err)
	require.Len(t, days, 2)
	assert.Nil(t, days[0].Perception)
	require.NotNil(t, days[1].Perception)
	assert.Equal(t, "어제", days[1].Label)

	b, err := e.client.Brief(ctx)
	require.NoError(t, err)
	assert.Equal(t, datekey.Key("2026-07-02"), b.DateKey)
	assert.NotEmpty(t, b.Relief.Message)
}

func TestLogEvent(t *testing.T) {
	e := startServer(t)
	ctx := context.Background()

	require.NoError(t, e.client.LogEvent(ctx, logging.NewsItemTapped, map[string]string{"news_id": "n7"}))

	events := e.svc.Events().Today()
	require.Len(t, events, 1)
	assert.Equal(t, logging.NewsItemTapped, events[0].Type)
	assert.Equal(t, "n7", events[0].Parameters["news_id"])
}

func TestServiceDescCoversServer(t *testing.T) {
	assert.Len(t, JournalServiceDesc.Methods, 9)
	for _, m := range JournalServiceDesc.Methods {
		assert.NotNil(t, m.Handler, m.MethodName)
	}
}

func TestEncodeDecode(t *testing.T) {
	s, err := encode(timelineRequest{Days: 5})
	require.NoError(t, err)
	assert.Equal(t, float64(5), s.Fields["days"].GetNumberValue())

	var req timelineRequest
	require.NoError(t, decode(s, &req))
	assert.Equal(t, 5, req.Days)

	req = timelineRequest{Days: 7}
	require.NoError(t, decode(&structpb.Struct{}, &req))
	assert.Equal(t, 7, req.Days, "empty struct leaves defaults")
}
