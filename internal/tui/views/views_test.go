package views

import (
	"fmt"
	"strings"
	"testing"

	"github.com/matheus3301/chatlens/internal/rpc"
	"github.com/matheus3301/chatlens/internal/tui/ui"
)

func TestSanitizeForTerminal(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain text", "plain text"},
		{"\U0001F44D\U0001F3FB", "\U0001F44D"},
		{"\U0001F468\u200d\U0001F469", "\U0001F468\U0001F469"},
		{"\u2764\uFE0F", "\u2764"},
		{"\u200eAlice\u200f", "Alice"},
		{"10:00\u202fPM", "10:00 PM"},
	}
	for _, tt := range tests {
		if got := sanitizeForTerminal(tt.in); got != tt.want {
			t.Errorf("sanitizeForTerminal(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestWordsViewSenderSelection(t *testing.T) {
	wv := NewWordsView(ui.DefaultTheme())
	if wv.Sender() != "" {
		t.Fatalf("default sender = %q, want everyone", wv.Sender())
	}

	wv.SetParticipants([]string{"Alice", "Bob"})
	wv.sender.SetCurrentOption(2)
	if wv.Sender() != "Bob" {
		t.Fatalf("Sender() = %q, want Bob", wv.Sender())
	}

	// Selection survives a refresh that still contains the participant.
	wv.SetParticipants([]string{"Alice", "Bob", "Carol"})
	if wv.Sender() != "Bob" {
		t.Errorf("after refresh Sender() = %q, want Bob", wv.Sender())
	}

	// And resets when it does not.
	wv.SetParticipants([]string{"Carol"})
	if wv.Sender() != "" {
		t.Errorf("after removal Sender() = %q, want everyone", wv.Sender())
	}
}

func TestWordsViewQuery(t *testing.T) {
	wv := NewWordsView(ui.DefaultTheme())
	wv.SetParticipants([]string{"Alice"})
	wv.sender.SetCurrentOption(1)

	var gotTerm, gotSender string
	calls := 0
	wv.SetOnQuery(func(term, sender string) {
		calls++
		gotTerm, gotSender = term, sender
	})

	wv.Query("  ")
	if calls != 0 {
		t.Fatal("blank term should not be submitted")
	}
	wv.Query(" good morning ")
	if calls != 1 || gotTerm != "good morning" || gotSender != "Alice" {
		t.Errorf("query = (%q, %q) after %d calls", gotTerm, gotSender, calls)
	}

	var topFor *string
	wv.SetOnTop(func(sender string) { topFor = &sender })
	wv.RequestTop()
	if topFor == nil || *topFor != "Alice" {
		t.Errorf("RequestTop sender = %v", topFor)
	}
}

func TestWordsViewRendersCounts(t *testing.T) {
	wv := NewWordsView(ui.DefaultTheme())
	wv.UpdateCounts(&rpc.CountWordResponse{
		Term:   "pizza",
		Total:  3,
		Counts: []rpc.SenderCount{{Sender: "Alice", Count: 2}, {Sender: "Bob", Count: 1}},
	})
	text := wv.counts.GetText(true)
	if !strings.Contains(text, "Alice") || !strings.Contains(text, "Bob") {
		t.Errorf("counts text = %q", text)
	}
	if !strings.Contains(wv.counts.GetTitle(), "3 total") {
		t.Errorf("title = %q", wv.counts.GetTitle())
	}
}

func TestAssistantViewBusy(t *testing.T) {
	av := NewAssistantView(ui.DefaultTheme())
	av.ShowPending("who planned the trip?")
	if !av.Busy() {
		t.Fatal("expected busy after ShowPending")
	}
	av.ShowAnswer("who planned the trip?", "Alice did")
	if av.Busy() {
		t.Fatal("expected idle after ShowAnswer")
	}
	if text := av.answer.GetText(true); !strings.Contains(text, "Alice did") {
		t.Errorf("answer text = %q", text)
	}

	av.ShowPending("q")
	av.ShowError("q", "rate limited")
	if av.Busy() || !strings.Contains(av.answer.GetText(true), "rate limited") {
		t.Errorf("error not rendered: %q", av.answer.GetText(true))
	}
}

func TestEventLogBounded(t *testing.T) {
	el := NewEventLog(ui.DefaultTheme())
	for i := range maxEvents + 5 {
		el.Append(&rpc.Event{ID: fmt.Sprint(i), Kind: "query.word", Detail: "term"})
	}
	if el.Len() != maxEvents {
		t.Fatalf("Len() = %d, want %d", el.Len(), maxEvents)
	}
	if el.events[0].ID != "5" {
		t.Errorf("oldest kept event = %s, want 5", el.events[0].ID)
	}
}

func TestOverviewWithoutExport(t *testing.T) {
	o := NewOverview(ui.DefaultTheme())
	o.Update(&rpc.GetStatusResponse{State: "FAILED", StateReason: "unrecognized format"})
	text := o.summary.GetText(true)
	if !strings.Contains(text, "unrecognized format") || !strings.Contains(text, ":load") {
		t.Errorf("summary = %q", text)
	}

	o.Update(&rpc.GetStatusResponse{
		Loaded: true,
		Name:   "chat.txt",
		Stats: &rpc.Stats{
			TotalMessages: 3,
			Participants:  2,
			DateRange:     "Jan 02, 2024 - Jan 03, 2024",
			PerSender:     []rpc.SenderTotal{{Sender: "Alice", Messages: 2}, {Sender: "Bob", Messages: 1}},
		},
	})
	if text := o.summary.GetText(true); !strings.Contains(text, "chat.txt") {
		t.Errorf("summary = %q", text)
	}
	if text := o.chart.GetText(true); !strings.Contains(text, "Alice") {
		t.Errorf("chart = %q", text)
	}
}

func TestStatusBarColorsState(t *testing.T) {
	theme := ui.DefaultTheme()
	sb := NewStatusBar(theme)
	sb.SetSession("friends")
	sb.SetState("FAILED", "fts")

	text := sb.GetText(false)
	want := "[" + ui.ColorTag(theme.FailedColor) + "]FAILED[-]"
	if !strings.Contains(text, want) {
		t.Errorf("status bar %q does not contain %q", text, want)
	}
	if !strings.Contains(text, "friends") || !strings.Contains(text, "fts") {
		t.Errorf("status bar %q", text)
	}
}
