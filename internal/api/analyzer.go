// Package api implements the chatlens.v1.Analyzer service.
package api

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	grpcstatus "google.golang.org/grpc/status"

	"github.com/matheus3301/chatlens/internal/analytics"
	"github.com/matheus3301/chatlens/internal/answer"
	"github.com/matheus3301/chatlens/internal/bus"
	"github.com/matheus3301/chatlens/internal/corpus"
	"github.com/matheus3301/chatlens/internal/export"
	"github.com/matheus3301/chatlens/internal/rpc"
)

// maxTopWords caps a TopWords limit.
const maxTopWords = 200

// defaultExportName is used when a load request carries no name.
const defaultExportName = "export.txt"

// WordQueryEvent is the payload of query.word.
type WordQueryEvent struct {
	Term   string
	Sender string
	Total  int
}

// AskQueryEvent is the payload of query.ask. The question text is not
// carried.
type AskQueryEvent struct {
	ContextSize int
	Summary     bool
	Failed      bool
}

// Analyzer serves queries over the session's corpus.
type Analyzer struct {
	sessionName string
	startedAt   time.Time
	holder      *corpus.Holder
	gen         *answer.Generator
	bus         *bus.Bus
	logger      *zap.Logger
}

var _ rpc.AnalyzerServer = (*Analyzer)(nil)

// NewAnalyzer creates the service.
func NewAnalyzer(sessionName string, holder *corpus.Holder, gen *answer.Generator, b *bus.Bus, logger *zap.Logger) *Analyzer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Analyzer{
		sessionName: sessionName,
		startedAt:   time.Now(),
		holder:      holder,
		gen:         gen,
		bus:         b,
		logger:      logger,
	}
}

func (a *Analyzer) LoadExport(ctx context.Context, req *rpc.LoadExportRequest) (*rpc.LoadExportResponse, error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, grpcstatus.Error(codes.InvalidArgument, "export text is empty")
	}
	name := req.Name
	if name == "" {
		name = defaultExportName
	}
	c, err := a.holder.Load(ctx, name, req.Text)
	if err != nil {
		return nil, toStatus(err)
	}
	return &rpc.LoadExportResponse{
		Name:         c.Name,
		Messages:     c.Seq.Len(),
		Participants: c.Participants,
		Stats:        statsToRPC(c.Stats),
	}, nil
}

func (a *Analyzer) GetStatus(_ context.Context, _ *rpc.GetStatusRequest) (*rpc.GetStatusResponse, error) {
	state, _, reason := a.holder.Status().Snapshot()
	resp := &rpc.GetStatusResponse{
		Session:     a.sessionName,
		State:       string(state),
		StateReason: reason,
		UptimeMs:    time.Since(a.startedAt).Milliseconds(),
		Backend:     a.holder.Backend(),
	}
	if a.gen != nil {
		resp.Provider = a.gen.Provider()
		resp.EnvKey = a.gen.HasKey("")
	}
	if c, err := a.holder.Current(); err == nil {
		st := statsToRPC(c.Stats)
		resp.Loaded = true
		resp.Name = c.Name
		resp.LoadedMs = c.LoadedAt.UnixMilli()
		resp.Stats = &st
	}
	return resp, nil
}

func (a *Analyzer) ListParticipants(_ context.Context, _ *rpc.ListParticipantsRequest) (*rpc.ListParticipantsResponse, error) {
	c, err := a.holder.Current()
	if err != nil {
		return nil, toStatus(err)
	}
	return &rpc.ListParticipantsResponse{Participants: c.Participants}, nil
}

func (a *Analyzer) CountWord(_ context.Context, req *rpc.CountWordRequest) (*rpc.CountWordResponse, error) {
	c, err := a.holder.Current()
	if err != nil {
		return nil, toStatus(err)
	}
	res, err := analytics.CountWord(c.Seq, req.Term, req.Sender)
	if err != nil {
		return nil, toStatus(err)
	}

	resp := &rpc.CountWordResponse{
		Term:   res.Term,
		Sender: res.Sender,
		Total:  res.Total,
		Counts: make([]rpc.SenderCount, len(res.Counts)),
	}
	for i, sc := range res.Counts {
		resp.Counts[i] = rpc.SenderCount{Sender: sc.Sender, Count: sc.Count}
	}
	a.publish(bus.KindWordQuery, WordQueryEvent{Term: res.Term, Sender: res.Sender, Total: res.Total})
	return resp, nil
}

func (a *Analyzer) TopWords(_ context.Context, req *rpc.TopWordsRequest) (*rpc.TopWordsResponse, error) {
	c, err := a.holder.Current()
	if err != nil {
		return nil, toStatus(err)
	}
	limit := min(req.Limit, maxTopWords)
	words := analytics.TopWords(c.Seq, req.Sender, limit)

	resp := &rpc.TopWordsResponse{Words: make([]rpc.WordCount, len(words))}
	for i, w := range words {
		resp.Words[i] = rpc.WordCount{Word: w.Word, Count: w.Count}
	}
	return resp, nil
}

func (a *Analyzer) Ask(ctx context.Context, req *rpc.AskRequest) (*rpc.AskResponse, error) {
	if strings.TrimSpace(req.Question) == "" {
		return nil, toStatus(answer.ErrEmptyQuestion)
	}
	c, err := a.holder.Current()
	if err != nil {
		return nil, toStatus(err)
	}
	retrieved, err := c.Retrieve(ctx, req.Question)
	if err != nil {
		return nil, toStatus(err)
	}

	out, err := a.gen.Answer(ctx, retrieved, req.Question, req.APIKey)
	a.publish(bus.KindAskQuery, AskQueryEvent{ContextSize: len(retrieved), Failed: err != nil})
	if err != nil {
		return nil, toStatus(err)
	}
	return &rpc.AskResponse{Answer: out, ContextSize: len(retrieved)}, nil
}

func (a *Analyzer) Summarize(ctx context.Context, req *rpc.SummarizeRequest) (*rpc.SummarizeResponse, error) {
	c, err := a.holder.Current()
	if err != nil {
		return nil, toStatus(err)
	}
	sample := min(c.Seq.Len(), answer.SummarySample)
	out, err := a.gen.Summarize(ctx, c.Seq, req.APIKey)
	a.publish(bus.KindAskQuery, AskQueryEvent{ContextSize: sample, Summary: true, Failed: err != nil})
	if err != nil {
		return nil, toStatus(err)
	}
	return &rpc.SummarizeResponse{Summary: out, SampleSize: sample}, nil
}

func (a *Analyzer) WatchEvents(req *rpc.WatchEventsRequest, stream rpc.EventSender) error {
	if a.bus == nil {
		return grpcstatus.Error(codes.Unavailable, "event bus not configured")
	}
	sub := a.bus.Subscribe(req.Namespace, 64)
	defer func() {
		sub.Close()
		if n := sub.Dropped(); n > 0 {
			a.logger.Warn("event watcher fell behind",
				zap.String("namespace", req.Namespace), zap.Uint64("dropped", n))
		}
	}()

	ctx := stream.Context()
	for {
		select {
		case <-ctx.Done():
			return nil
		case evt := <-sub.C:
			if err := stream.Send(eventToRPC(evt)); err != nil {
				return err
			}
		}
	}
}

func (a *Analyzer) publish(kind string, payload any) {
	if a.bus != nil {
		a.bus.Publish(bus.NewEvent(kind, payload))
	}
}

func statsToRPC(s export.Stats) rpc.Stats {
	out := rpc.Stats{
		TotalMessages: s.TotalMessages,
		Participants:  s.Participants,
		DateRange:     s.DateRange(),
		PerSender:     make([]rpc.SenderTotal, len(s.PerSender)),
	}
	if !s.First.IsZero() {
		out.FirstMs = s.First.UnixMilli()
		out.LastMs = s.Last.UnixMilli()
	}
	for i, st := range s.PerSender {
		out.PerSender[i] = rpc.SenderTotal{Sender: st.Sender, Messages: st.Messages}
	}
	return out
}

func eventToRPC(evt bus.Event) *rpc.Event {
	out := &rpc.Event{
		ID:           evt.ID,
		Kind:         evt.Kind,
		OccurredAtMs: evt.Timestamp.UnixMilli(),
	}
	if evt.Payload != nil {
		out.Detail = fmt.Sprintf("%+v", evt.Payload)
	}
	return out
}
