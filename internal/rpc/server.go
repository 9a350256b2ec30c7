package rpc

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/percepta/journal/internal/app"
	"github.com/percepta/journal/internal/journal"
	"github.com/percepta/journal/internal/logging"
)

// #region server

// Server exposes an app.Service over gRPC. Calls are handled one at a time.
type Server struct {
	mu  sync.Mutex
	svc *app.Service
	log *zap.Logger
}

// NewServer wraps svc. log may be nil.
func NewServer(svc *app.Service, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{svc: svc, log: log}
}

// GRPCServer builds a grpc.Server with the journal service registered.
func (s *Server) GRPCServer(opts ...grpc.ServerOption) *grpc.Server {
	opts = append([]grpc.ServerOption{grpc.UnaryInterceptor(s.logCall)}, opts...)
	gs := grpc.NewServer(opts...)
	RegisterJournalServer(gs, s)
	return gs
}

// Serve accepts connections on lis until ctx is done, then stops gracefully.
func (s *Server) Serve(ctx context.Context, lis net.Listener) error {
	gs := s.GRPCServer()
	stopped := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			gs.GracefulStop()
		case <-stopped:
		}
	}()

	s.log.Info("journal rpc listening", zap.String("addr", lis.Addr().String()))
	err := gs.Serve(lis)
	close(stopped)
	if err != nil && ctx.Err() == nil {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}

func (s *Server) logCall(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()
	resp, err := handler(ctx, req)
	s.log.Debug("rpc",
		zap.String("method", info.FullMethod),
		zap.Duration("elapsed", time.Since(start)),
		zap.String("code", status.Code(err).String()))
	return resp, err
}

// #endregion server

// #region handlers

func (s *Server) RecordPerception(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req perceptionRequest
	if err := decode(in, &req); err != nil {
		return nil, toStatus(fmt.Errorf("%w: %v", errBadRequest, err))
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, err := s.svc.RecordPerception(ctx, journal.PerceptionDraft{Mood: req.Mood, Note: req.Note})
	if err != nil {
		return nil, toStatus(err)
	}
	return reply(encode(entry))
}

func (s *Server) RecordInvestment(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req investmentRequest
	if err := decode(in, &req); err != nil {
		return nil, toStatus(fmt.Errorf("%w: %v", errBadRequest, err))
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, err := s.svc.RecordInvestment(ctx, journal.InvestmentDraft{Action: req.Action, Memo: req.Memo})
	if err != nil {
		return nil, toStatus(err)
	}
	return reply(encode(entry))
}

func (s *Server) RecordThinking(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req thinkingRequest
	if err := decode(in, &req); err != nil {
		return nil, toStatus(fmt.Errorf("%w: %v", errBadRequest, err))
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, err := s.svc.RecordThinking(ctx, journal.ThinkingDraft{Cause: req.Cause, Effect: req.Effect, Conclusion: req.Conclusion})
	if err != nil {
		return nil, toStatus(err)
	}
	return reply(encode(entry))
}

// RefreshInsight never fails on a persistence error; the generated insight is
// still returned and the failure is logged.
func (s *Server) RefreshInsight(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, d, err := s.svc.RefreshInsight()
	if err != nil {
		s.log.Warn("insight not persisted", zap.Error(err))
	}
	return reply(encode(RefreshResult{State: state, Action: d.Action, Reason: d.Reason, Insight: d.Insight}))
}

// TodayInsight replies with an empty struct when no insight exists today.
func (s *Server) TodayInsight(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ins := s.svc.TodayInsight()
	if ins == nil {
		return &structpb.Struct{}, nil
	}
	return reply(encode(ins))
}

func (s *Server) Today(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return reply(encode(s.svc.Today()))
}

func (s *Server) Timeline(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	req := timelineRequest{Days: 7}
	if err := decode(in, &req); err != nil {
		return nil, toStatus(fmt.Errorf("%w: %v", errBadRequest, err))
	}
	if req.Days < 1 || req.Days > 366 {
		return nil, status.Errorf(codes.InvalidArgument, "days must be between 1 and 366, got %d", req.Days)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return reply(encode(timelineResponse{Days: s.svc.Timeline(req.Days)}))
}

type timelineResponse struct {
	Days []app.Day `json:"days"`
}

func (s *Server) Brief(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return reply(encode(s.svc.Brief()))
}

func (s *Server) LogEvent(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req eventRequest
	if err := decode(in, &req); err != nil {
		return nil, toStatus(fmt.Errorf("%w: %v", errBadRequest, err))
	}
	t, ok := logging.ParseEventType(req.Type)
	if !ok {
		return nil, status.Errorf(codes.InvalidArgument, "unknown event type %q", req.Type)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.svc.Events().Log(t, req.Parameters)
	return &structpb.Struct{}, nil
}

// #endregion handlers

// #region errors

func reply(out *structpb.Struct, err error) (*structpb.Struct, error) {
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return out, nil
}

func toStatus(err error) error {
	switch {
	case errors.Is(err, errBadRequest),
		errors.Is(err, journal.ErrIncompleteThinking),
		errors.Is(err, journal.ErrMissingSelection),
		errors.Is(err, journal.ErrInvalidSelection):
		return status.Error(codes.InvalidArgument, err.Error())
	}
	return status.Error(codes.Internal, err.Error())
}

// #endregion errors
