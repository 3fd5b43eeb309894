package rpc

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// Dial connects to a daemon socket with the JSON codec selected for every
// call.
func Dial(socketPath string) (*grpc.ClientConn, error) {
	conn, err := grpc.NewClient(
		"unix://"+socketPath,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(
			grpc.CallContentSubtype(CodecName),
			grpc.MaxCallRecvMsgSize(MaxMessageSize),
			grpc.MaxCallSendMsgSize(MaxMessageSize),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("dial daemon: %w", err)
	}
	return conn, nil
}

// AnalyzerClient is the typed client of chatlens.v1.Analyzer.
type AnalyzerClient struct {
	cc grpc.ClientConnInterface
}

// NewAnalyzerClient wraps cc. Connections not created by Dial must still
// select the JSON codec, which every method here does explicitly.
func NewAnalyzerClient(cc grpc.ClientConnInterface) *AnalyzerClient {
	return &AnalyzerClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, fullMethod(method), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *AnalyzerClient) LoadExport(ctx context.Context, in *LoadExportRequest, opts ...grpc.CallOption) (*LoadExportResponse, error) {
	return invoke[LoadExportResponse](ctx, c.cc, "LoadExport", in, opts)
}

func (c *AnalyzerClient) GetStatus(ctx context.Context, in *GetStatusRequest, opts ...grpc.CallOption) (*GetStatusResponse, error) {
	return invoke[GetStatusResponse](ctx, c.cc, "GetStatus", in, opts)
}

func (c *AnalyzerClient) ListParticipants(ctx context.Context, in *ListParticipantsRequest, opts ...grpc.CallOption) (*ListParticipantsResponse, error) {
	return invoke[ListParticipantsResponse](ctx, c.cc, "ListParticipants", in, opts)
}

func (c *AnalyzerClient) CountWord(ctx context.Context, in *CountWordRequest, opts ...grpc.CallOption) (*CountWordResponse, error) {
	return invoke[CountWordResponse](ctx, c.cc, "CountWord", in, opts)
}

func (c *AnalyzerClient) TopWords(ctx context.Context, in *TopWordsRequest, opts ...grpc.CallOption) (*TopWordsResponse, error) {
	return invoke[TopWordsResponse](ctx, c.cc, "TopWords", in, opts)
}

func (c *AnalyzerClient) Ask(ctx context.Context, in *AskRequest, opts ...grpc.CallOption) (*AskResponse, error) {
	return invoke[AskResponse](ctx, c.cc, "Ask", in, opts)
}

func (c *AnalyzerClient) Summarize(ctx context.Context, in *SummarizeRequest, opts ...grpc.CallOption) (*SummarizeResponse, error) {
	return invoke[SummarizeResponse](ctx, c.cc, "Summarize", in, opts)
}

// EventStream is the client side of WatchEvents.
type EventStream struct {
	grpc.ClientStream
}

// Recv blocks for the next event.
func (s *EventStream) Recv() (*Event, error) {
	e := new(Event)
	if err := s.ClientStream.RecvMsg(e); err != nil {
		return nil, err
	}
	return e, nil
}

func (c *AnalyzerClient) WatchEvents(ctx context.Context, in *WatchEventsRequest, opts ...grpc.CallOption) (*EventStream, error) {
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	stream, err := c.cc.NewStream(ctx, &serviceDesc.Streams[0], fullMethod("WatchEvents"), opts...)
	if err != nil {
		return nil, err
	}
	if err := stream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := stream.CloseSend(); err != nil {
		return nil, err
	}
	return &EventStream{stream}, nil
}
