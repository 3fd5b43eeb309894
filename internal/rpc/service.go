// Package rpc defines the chatlens.v1.Analyzer gRPC contract: plain Go
// message types carried by a JSON codec, the service descriptor, and a
// typed client.
package rpc

import (
	"context"

	"google.golang.org/grpc"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "chatlens.v1.Analyzer"

// MaxMessageSize bounds a single request or response; exports are sent
// whole in one LoadExport call.
const MaxMessageSize = 64 << 20

// AnalyzerServer is implemented by the daemon.
type AnalyzerServer interface {
	LoadExport(context.Context, *LoadExportRequest) (*LoadExportResponse, error)
	GetStatus(context.Context, *GetStatusRequest) (*GetStatusResponse, error)
	ListParticipants(context.Context, *ListParticipantsRequest) (*ListParticipantsResponse, error)
	CountWord(context.Context, *CountWordRequest) (*CountWordResponse, error)
	TopWords(context.Context, *TopWordsRequest) (*TopWordsResponse, error)
	Ask(context.Context, *AskRequest) (*AskResponse, error)
	Summarize(context.Context, *SummarizeRequest) (*SummarizeResponse, error)
	WatchEvents(*WatchEventsRequest, EventSender) error
}

// EventSender is the server side of a WatchEvents stream.
type EventSender interface {
	Send(*Event) error
	Context() context.Context
}

// RegisterAnalyzerServer attaches srv to a gRPC server.
func RegisterAnalyzerServer(s grpc.ServiceRegistrar, srv AnalyzerServer) {
	s.RegisterService(&serviceDesc, srv)
}

func fullMethod(name string) string {
	return "/" + ServiceName + "/" + name
}

// unary builds the MethodDesc for one request/response method.
func unary[Req, Resp any](name string, call func(AnalyzerServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(AnalyzerServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod(name)}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(AnalyzerServer), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

type eventSender struct {
	grpc.ServerStream
}

func (s *eventSender) Send(e *Event) error { return s.ServerStream.SendMsg(e) }

func watchEventsHandler(srv any, stream grpc.ServerStream) error {
	in := new(WatchEventsRequest)
	if err := stream.RecvMsg(in); err != nil {
		return err
	}
	return srv.(AnalyzerServer).WatchEvents(in, &eventSender{stream})
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*AnalyzerServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("LoadExport", AnalyzerServer.LoadExport),
		unary("GetStatus", AnalyzerServer.GetStatus),
		unary("ListParticipants", AnalyzerServer.ListParticipants),
		unary("CountWord", AnalyzerServer.CountWord),
		unary("TopWords", AnalyzerServer.TopWords),
		unary("Ask", AnalyzerServer.Ask),
		unary("Summarize", AnalyzerServer.Summarize),
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "WatchEvents",
			Handler:       watchEventsHandler,
			ServerStreams: true,
		},
	},
	Metadata: "chatlens/v1/analyzer",
}
