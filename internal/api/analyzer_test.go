package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"google.golang.org/grpc/codes"
	grpcstatus "google.golang.org/grpc/status"

	"github.com/matheus3301/chatlens/internal/analytics"
	"github.com/matheus3301/chatlens/internal/answer"
	"github.com/matheus3301/chatlens/internal/bus"
	"github.com/matheus3301/chatlens/internal/corpus"
	"github.com/matheus3301/chatlens/internal/export"
	"github.com/matheus3301/chatlens/internal/llm"
	"github.com/matheus3301/chatlens/internal/rpc"
)

const chat = `[05/06/2024, 18:30:00] Alice: pizza tonight? PIZZA!
[05/06/2024, 18:31:12] Bob: no thanks
[05/06/2024, 18:32:40] Carol: I'll bring dessert
`

type llmStub struct {
	mu      sync.Mutex
	prompts []string
	status  int
	delay   time.Duration
}

func (s *llmStub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	s.mu.Lock()
	s.prompts = append(s.prompts, string(body))
	s.mu.Unlock()
	if s.delay > 0 {
		select {
		case <-r.Context().Done():
			return
		case <-time.After(s.delay):
		}
	}
	if s.status != 0 {
		w.WriteHeader(s.status)
		_, _ = io.WriteString(w, `{"error":{"message":"stub failure"}}`)
		return
	}
	_, _ = io.WriteString(w, `{"candidates":[{"content":{"parts":[{"text":"Alice wants pizza."}]}}]}`)
}

func newTestAnalyzer(t *testing.T, stub *llmStub, timeout time.Duration) (*Analyzer, *bus.Bus) {
	t.Helper()
	srv := httptest.NewServer(stub)
	t.Cleanup(srv.Close)

	gen, err := answer.New(answer.Options{
		LLM:     llm.Config{Provider: llm.ProviderGemini, BaseURL: srv.URL},
		Timeout: timeout,
	})
	if err != nil {
		t.Fatal(err)
	}
	b := bus.New()
	holder := corpus.NewHolder(corpus.Options{Bus: b})
	t.Cleanup(func() { _ = holder.Close() })
	return NewAnalyzer("test", holder, gen, b, nil), b
}

func codeOf(err error) codes.Code {
	return grpcstatus.Code(err)
}

func load(t *testing.T, a *Analyzer) {
	t.Helper()
	if _, err := a.LoadExport(context.Background(), &rpc.LoadExportRequest{Name: "chat.txt", Text: chat}); err != nil {
		t.Fatalf("LoadExport: %v", err)
	}
}

func TestQueriesBeforeLoad(t *testing.T) {
	a, _ := newTestAnalyzer(t, &llmStub{}, time.Second)
	ctx := context.Background()

	_, err := a.ListParticipants(ctx, &rpc.ListParticipantsRequest{})
	if codeOf(err) != codes.FailedPrecondition {
		t.Errorf("ListParticipants code = %s", codeOf(err))
	}
	_, err = a.CountWord(ctx, &rpc.CountWordRequest{Term: "pizza"})
	if codeOf(err) != codes.FailedPrecondition {
		t.Errorf("CountWord code = %s", codeOf(err))
	}
	_, err = a.Ask(ctx, &rpc.AskRequest{Question: "who?", APIKey: "k"})
	if codeOf(err) != codes.FailedPrecondition {
		t.Errorf("Ask code = %s", codeOf(err))
	}

	st, err := a.GetStatus(ctx, &rpc.GetStatusRequest{})
	if err != nil {
		t.Fatal(err)
	}
	if st.Loaded || st.State != "IDLE" || st.Session != "test" {
		t.Errorf("status = %+v", st)
	}
}

func TestLoadExport(t *testing.T) {
	a, _ := newTestAnalyzer(t, &llmStub{}, time.Second)

	resp, err := a.LoadExport(context.Background(), &rpc.LoadExportRequest{Text: chat})
	if err != nil {
		t.Fatal(err)
	}
	if resp.Name != defaultExportName || resp.Messages != 3 {
		t.Errorf("resp = %+v", resp)
	}
	if strings.Join(resp.Participants, ",") != "Alice,Bob,Carol" {
		t.Errorf("participants = %v", resp.Participants)
	}
	if resp.Stats.DateRange != "Jun 05, 2024 - Jun 05, 2024" {
		t.Errorf("date range = %q", resp.Stats.DateRange)
	}

	st, err := a.GetStatus(context.Background(), &rpc.GetStatusRequest{})
	if err != nil {
		t.Fatal(err)
	}
	if !st.Loaded || st.State != "READY" || st.Stats == nil || st.Stats.TotalMessages != 3 {
		t.Errorf("status = %+v", st)
	}
	if st.Provider != llm.ProviderGemini || st.Backend != "lexical" {
		t.Errorf("provider/backend = %q/%q", st.Provider, st.Backend)
	}
}

func TestLoadExportErrors(t *testing.T) {
	a, _ := newTestAnalyzer(t, &llmStub{}, time.Second)
	ctx := context.Background()

	_, err := a.LoadExport(ctx, &rpc.LoadExportRequest{Text: "   \n"})
	if codeOf(err) != codes.InvalidArgument {
		t.Errorf("empty text code = %s", codeOf(err))
	}
	_, err = a.LoadExport(ctx, &rpc.LoadExportRequest{Text: "dear diary\ntoday was fine\n"})
	if codeOf(err) != codes.FailedPrecondition {
		t.Errorf("unparseable code = %s", codeOf(err))
	}
	st, _ := a.GetStatus(ctx, &rpc.GetStatusRequest{})
	if st.State != "FAILED" || st.StateReason == "" {
		t.Errorf("status = %+v", st)
	}
}

func TestCountWord(t *testing.T) {
	a, b := newTestAnalyzer(t, &llmStub{}, time.Second)
	sub := b.Subscribe("query.", 4)
	defer sub.Close()
	load(t, a)

	resp, err := a.CountWord(context.Background(), &rpc.CountWordRequest{Term: "pizza"})
	if err != nil {
		t.Fatal(err)
	}
	want := []rpc.SenderCount{{Sender: "Alice", Count: 2}, {Sender: "Bob", Count: 0}, {Sender: "Carol", Count: 0}}
	if fmt.Sprint(resp.Counts) != fmt.Sprint(want) || resp.Total != 2 {
		t.Errorf("resp = %+v", resp)
	}

	select {
	case evt := <-sub.C:
		if evt.Kind != bus.KindWordQuery {
			t.Errorf("event kind = %s", evt.Kind)
		}
	case <-time.After(time.Second):
		t.Error("no query.word event")
	}

	resp, err = a.CountWord(context.Background(), &rpc.CountWordRequest{Term: "pizza", Sender: "Bob"})
	if err != nil {
		t.Fatal(err)
	}
	if len(resp.Counts) != 1 || resp.Counts[0] != (rpc.SenderCount{Sender: "Bob", Count: 0}) {
		t.Errorf("filtered = %+v", resp.Counts)
	}

	_, err = a.CountWord(context.Background(), &rpc.CountWordRequest{Term: " "})
	if codeOf(err) != codes.InvalidArgument {
		t.Errorf("blank term code = %s", codeOf(err))
	}
}

func TestTopWords(t *testing.T) {
	a, _ := newTestAnalyzer(t, &llmStub{}, time.Second)
	load(t, a)

	resp, err := a.TopWords(context.Background(), &rpc.TopWordsRequest{Limit: 1})
	if err != nil {
		t.Fatal(err)
	}
	if len(resp.Words) != 1 || resp.Words[0] != (rpc.WordCount{Word: "pizza", Count: 2}) {
		t.Errorf("words = %+v", resp.Words)
	}
}

func TestAsk(t *testing.T) {
	stub := &llmStub{}
	a, _ := newTestAnalyzer(t, stub, time.Second)
	load(t, a)

	resp, err := a.Ask(context.Background(), &rpc.AskRequest{Question: "who wants pizza?", APIKey: "k"})
	if err != nil {
		t.Fatal(err)
	}
	if resp.Answer != "Alice wants pizza." || resp.ContextSize != 1 {
		t.Errorf("resp = %+v", resp)
	}
	if len(stub.prompts) != 1 || !strings.Contains(stub.prompts[0], "Alice: pizza tonight? PIZZA!") {
		t.Errorf("prompts = %q", stub.prompts)
	}
}

func TestAskErrors(t *testing.T) {
	tests := []struct {
		name    string
		stub    *llmStub
		timeout time.Duration
		req     *rpc.AskRequest
		want    codes.Code
	}{
		{"blank question", &llmStub{}, time.Second, &rpc.AskRequest{Question: "  ", APIKey: "k"}, codes.InvalidArgument},
		{"missing key", &llmStub{}, time.Second, &rpc.AskRequest{Question: "q"}, codes.Unauthenticated},
		{"rejected key", &llmStub{status: 401}, time.Second, &rpc.AskRequest{Question: "q", APIKey: "k"}, codes.Unauthenticated},
		{"rate limited", &llmStub{status: 429}, time.Second, &rpc.AskRequest{Question: "q", APIKey: "k"}, codes.ResourceExhausted},
		{"server error", &llmStub{status: 503}, time.Second, &rpc.AskRequest{Question: "q", APIKey: "k"}, codes.Unavailable},
		{"timeout", &llmStub{delay: 5 * time.Second}, 50 * time.Millisecond, &rpc.AskRequest{Question: "q", APIKey: "k"}, codes.DeadlineExceeded},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, _ := newTestAnalyzer(t, tt.stub, tt.timeout)
			load(t, a)
			_, err := a.Ask(context.Background(), tt.req)
			if codeOf(err) != tt.want {
				t.Errorf("code = %s (%v), want %s", codeOf(err), err, tt.want)
			}
		})
	}
}

func TestSummarize(t *testing.T) {
	stub := &llmStub{}
	a, _ := newTestAnalyzer(t, stub, time.Second)

	_, err := a.Summarize(context.Background(), &rpc.SummarizeRequest{APIKey: "k"})
	if codeOf(err) != codes.FailedPrecondition {
		t.Errorf("code before load = %s", codeOf(err))
	}

	load(t, a)
	resp, err := a.Summarize(context.Background(), &rpc.SummarizeRequest{APIKey: "k"})
	if err != nil {
		t.Fatal(err)
	}
	if resp.SampleSize != 3 || resp.Summary == "" {
		t.Errorf("resp = %+v", resp)
	}
}

func TestToStatus(t *testing.T) {
	tests := []struct {
		err  error
		want codes.Code
	}{
		{export.ErrUnrecognizedFormat, codes.FailedPrecondition},
		{corpus.ErrNoCorpus, codes.FailedPrecondition},
		{answer.ErrNoContext, codes.FailedPrecondition},
		{analytics.ErrInvalidQuery, codes.InvalidArgument},
		{answer.ErrEmptyQuestion, codes.InvalidArgument},
		{&llm.AuthError{Message: "bad"}, codes.Unauthenticated},
		{&llm.ServiceError{Timeout: true}, codes.DeadlineExceeded},
		{&llm.ServiceError{RateLimited: true}, codes.ResourceExhausted},
		{&llm.ServiceError{StatusCode: 500}, codes.Unavailable},
		{fmt.Errorf("wrapped: %w", &llm.AuthError{}), codes.Unauthenticated},
		{context.DeadlineExceeded, codes.DeadlineExceeded},
		{context.Canceled, codes.Canceled},
		{errors.New("boom"), codes.Internal},
	}
	for _, tt := range tests {
		if got := codeOf(toStatus(tt.err)); got != tt.want {
			t.Errorf("toStatus(%v) = %s, want %s", tt.err, got, tt.want)
		}
	}
	if toStatus(nil) != nil {
		t.Error("toStatus(nil) != nil")
	}
}
