package main

import (
	"context"

	"go.uber.org/zap"

	"github.com/percepta/journal/internal/app"
	"github.com/percepta/journal/internal/brief"
	"github.com/percepta/journal/internal/journal"
	"github.com/percepta/journal/internal/rpc"
)

// journalAPI is what the record and read commands need, served either by an
// in-process Service or by a remote server.
type journalAPI interface {
	RecordPerception(ctx context.Context, draft journal.PerceptionDraft) (journal.PerceptionEntry, error)
	RecordInvestment(ctx context.Context, draft journal.InvestmentDraft) (journal.InvestmentEntry, error)
	RecordThinking(ctx context.Context, draft journal.ThinkingDraft) (journal.MacroThinking, error)
	RefreshInsight(ctx context.Context) (rpc.RefreshResult, error)
	Today(ctx context.Context) (app.Snapshot, error)
	Timeline(ctx context.Context, days int) ([]app.Day, error)
	Brief(ctx context.Context) (brief.Brief, error)
}

// #region local

type localAPI struct {
	svc *app.Service
	log *zap.Logger
}

func (l *localAPI) RecordPerception(ctx context.Context, draft journal.PerceptionDraft) (journal.PerceptionEntry, error) {
	return l.svc.RecordPerception(ctx, draft)
}

func (l *localAPI) RecordInvestment(ctx context.Context, draft journal.InvestmentDraft) (journal.InvestmentEntry, error) {
	return l.svc.RecordInvestment(ctx, draft)
}

func (l *localAPI) RecordThinking(ctx context.Context, draft journal.ThinkingDraft) (journal.MacroThinking, error) {
	return l.svc.RecordThinking(ctx, draft)
}

// RefreshInsight behaves like the server: a failed save is logged, the
// insight is still shown.
func (l *localAPI) RefreshInsight(context.Context) (rpc.RefreshResult, error) {
	state, d, err := l.svc.RefreshInsight()
	if err != nil {
		l.log.Warn("insight not persisted", zap.Error(err))
	}
	return rpc.RefreshResult{State: state, Action: d.Action, Reason: d.Reason, Insight: d.Insight}, nil
}

func (l *localAPI) Today(context.Context) (app.Snapshot, error) {
	return l.svc.Today(), nil
}

func (l *localAPI) Timeline(_ context.Context, days int) ([]app.Day, error) {
	return l.svc.Timeline(days), nil
}

func (l *localAPI) Brief(context.Context) (brief.Brief, error) {
	return l.svc.Brief(), nil
}

// #endregion local

// #region remote

type remoteAPI struct {
	client *rpc.Client
}

func (r *remoteAPI) RecordPerception(ctx context.Context, draft journal.PerceptionDraft) (journal.PerceptionEntry, error) {
	return r.client.RecordPerception(ctx, draft)
}

func (r *remoteAPI) RecordInvestment(ctx context.Context, draft journal.InvestmentDraft) (journal.InvestmentEntry, error) {
	return r.client.RecordInvestment(ctx, draft)
}

func (r *remoteAPI) RecordThinking(ctx context.Context, draft journal.ThinkingDraft) (journal.MacroThinking, error) {
	return r.client.RecordThinking(ctx, draft)
}

func (r *remoteAPI) RefreshInsight(ctx context.Context) (rpc.RefreshResult, error) {
	return r.client.RefreshInsight(ctx)
}

func (r *remoteAPI) Today(ctx context.Context) (app.Snapshot, error) {
	return r.client.Today(ctx)
}

func (r *remoteAPI) Timeline(ctx context.Context, days int) ([]app.Day, error) {
	return r.client.Timeline(ctx, days)
}

func (r *remoteAPI) Brief(ctx context.Context) (brief.Brief, error) {
	return r.client.Brief(ctx)
}

// #endregion remote
