package rpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// #region service-desc

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "percepta.v1.Journal"

// Method names served under ServiceName.
const (
	MethodRecordPerception = "RecordPerception"
	MethodRecordInvestment = "RecordInvestment"
	MethodRecordThinking   = "RecordThinking"
	MethodRefreshInsight   = "RefreshInsight"
	MethodTodayInsight     = "TodayInsight"
	MethodToday            = "Today"
	MethodTimeline         = "Timeline"
	MethodBrief            = "Brief"
	MethodLogEvent         = "LogEvent"
)

// JournalServer is the server side of percepta.v1.Journal. Every message is a
// google.protobuf.Struct carrying the JSON form of the domain type.
type JournalServer interface {
	RecordPerception(context.Context, *structpb.Struct) (*structpb.Struct, error)
	RecordInvestment(context.Context, *structpb.Struct) (*structpb.Struct, error)
	RecordThinking(context.Context, *structpb.Struct) (*structpb.Struct, error)
	RefreshInsight(context.Context, *structpb.Struct) (*structpb.Struct, error)
	TodayInsight(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Today(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Timeline(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Brief(context.Context, *structpb.Struct) (*structpb.Struct, error)
	LogEvent(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type call func(JournalServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unary(method string, fn call) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return fn(srv.(JournalServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod(method)}
			return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
				return fn(srv.(JournalServer), ctx, req.(*structpb.Struct))
			})
		},
	}
}

func fullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

// JournalServiceDesc describes percepta.v1.Journal without generated code.
var JournalServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*JournalServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(MethodRecordPerception, JournalServer.RecordPerception),
		unary(MethodRecordInvestment, JournalServer.RecordInvestment),
		unary(MethodRecordThinking, JournalServer.RecordThinking),
		unary(MethodRefreshInsight, JournalServer.RefreshInsight),
		unary(MethodTodayInsight, JournalServer.TodayInsight),
		unary(MethodToday, JournalServer.Today),
		unary(MethodTimeline, JournalServer.Timeline),
		unary(MethodBrief, JournalServer.Brief),
		unary(MethodLogEvent, JournalServer.LogEvent),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "percepta/v1/journal.proto",
}

// RegisterJournalServer registers srv on s.
func RegisterJournalServer(s grpc.ServiceRegistrar, srv JournalServer) {
	s.RegisterService(&JournalServiceDesc, srv)
}

// #endregion service-desc
