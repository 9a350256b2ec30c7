package rpc

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/percepta/journal/internal/app"
	"github.com/percepta/journal/internal/brief"
	"github.com/percepta/journal/internal/insight"
	"github.com/percepta/journal/internal/journal"
	"github.com/percepta/journal/internal/logging"
)

// #region client-struct

// Client calls a journal server.
type Client struct {
	conn *grpc.ClientConn
	cc   grpc.ClientConnInterface
}

// NewClient connects to the journal server at addr.
func NewClient(addr string, opts ...grpc.DialOption) (*Client, error) {
	opts = append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)
	conn, err := grpc.NewClient(addr, opts...)
	if err != nil {
		return nil, fmt.Errorf("grpc dial %s: %w", addr, err)
	}
	return &Client{conn: conn, cc: conn}, nil
}

// NewClientWithConn wraps an existing connection. Close is then a no-op.
func NewClientWithConn(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

// Close shuts down the connection opened by NewClient.
func (c *Client) Close() error {
	if c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

func (c *Client) invoke(ctx context.Context, method string, req, resp any) error {
	in, err := encode(req)
	if err != nil {
		return err
	}
	out := &structpb.Struct{}
	if err := c.cc.Invoke(ctx, fullMethod(method), in, out); err != nil {
		return fmt.Errorf("%s rpc: %w", method, err)
	}
	if resp == nil {
		return nil
	}
	return decode(out, resp)
}

// #endregion client-struct

// #region record

func (c *Client) RecordPerception(ctx context.Context, draft journal.PerceptionDraft) (journal.PerceptionEntry, error) {
	var entry journal.PerceptionEntry
	err := c.invoke(ctx, MethodRecordPerception, perceptionRequest{Mood: draft.Mood, Note: draft.Note}, &entry)
	return entry, err
}

func (c *Client) RecordInvestment(ctx context.Context, draft journal.InvestmentDraft) (journal.InvestmentEntry, error) {
	var entry journal.InvestmentEntry
	err := c.invoke(ctx, MethodRecordInvestment, investmentRequest{Action: draft.Action, Memo: draft.Memo}, &entry)
	return entry, err
}

func (c *Client) RecordThinking(ctx context.Context, draft journal.ThinkingDraft) (journal.MacroThinking, error) {
	var entry journal.MacroThinking
	err := c.invoke(ctx, MethodRecordThinking, thinkingRequest{Cause: draft.Cause, Effect: draft.Effect, Conclusion: draft.Conclusion}, &entry)
	return entry, err
}

// #endregion record

// #region read

func (c *Client) RefreshInsight(ctx context.Context) (RefreshResult, error) {
	var res RefreshResult
	err := c.invoke(ctx, MethodRefreshInsight, struct{}{}, &res)
	return res, err
}

// TodayInsight returns nil when no insight exists today.
func (c *Client) TodayInsight(ctx context.Context) (*insight.Insight, error) {
	var ins insight.Insight
	if err := c.invoke(ctx, MethodTodayInsight, struct{}{}, &ins); err != nil {
		return nil, err
	}
	if ins.ID == "" {
		return nil, nil
	}
	return &ins, nil
}

func (c *Client) Today(ctx context.Context) (app.Snapshot, error) {
	var snap app.Snapshot
	err := c.invoke(ctx, MethodToday, struct{}{}, &snap)
	return snap, err
}

func (c *Client) Timeline(ctx context.Context, days int) ([]app.Day, error) {
	var resp timelineResponse
	if err := c.invoke(ctx, MethodTimeline, timelineRequest{Days: days}, &resp); err != nil {
		return nil, err
	}
	return resp.Days, nil
}

func (c *Client) Brief(ctx context.Context) (brief.Brief, error) {
	var b brief.Brief
	err := c.invoke(ctx, MethodBrief, struct{}{}, &b)
	return b, err
}

func (c *Client) LogEvent(ctx context.Context, t logging.EventType, params map[string]string) error {
	return c.invoke(ctx, MethodLogEvent, eventRequest{Type: string(t), Parameters: params}, nil)
}

// #endregion read
