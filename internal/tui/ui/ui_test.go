package ui

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestBar(t *testing.T) {
	tests := []struct {
		n, max, width int
		want          int
	}{
		{10, 10, 20, 20},
		{5, 10, 20, 10},
		{1, 1000, 20, 1},
		{0, 10, 20, 0},
		{3, 0, 20, 0},
		{20, 10, 10, 10},
	}
	for _, tt := range tests {
		got := len([]rune(Bar(tt.n, tt.max, tt.width)))
		if got != tt.want {
			t.Errorf("Bar(%d, %d, %d) has %d cells, want %d", tt.n, tt.max, tt.width, got, tt.want)
		}
	}
}

func TestBarChart(t *testing.T) {
	out := BarChart(DefaultTheme(), []BarRow{{"Alice", 4}, {"Bo", 2}}, 8)
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), out)
	}
	if !strings.Contains(lines[0], "Alice") || !strings.Contains(lines[0], strings.Repeat("█", 8)) {
		t.Errorf("first line = %q", lines[0])
	}
	if !strings.Contains(lines[1], "Bo   ") || strings.Contains(lines[1], strings.Repeat("█", 5)) {
		t.Errorf("second line = %q", lines[1])
	}
}

func TestPagesStack(t *testing.T) {
	p := NewPages()
	var last []string
	p.SetOnChange(func(stack []string) { last = stack })

	for _, name := range []string{"overview", "words", "help"} {
		p.AddPage(name, NewMenu(DefaultTheme(), 6), true, false)
	}

	p.Reset("overview")
	p.Push("words")
	p.Push("help")
	if p.Current() != "help" || p.Depth() != 3 {
		t.Fatalf("current = %q depth = %d", p.Current(), p.Depth())
	}
	if got := p.Pop(); got != "help" {
		t.Errorf("Pop() = %q, want help", got)
	}
	if strings.Join(last, ">") != "overview>words" {
		t.Errorf("onChange stack = %v", last)
	}
	p.Push("words")
	p.Push("words")
	if p.Depth() != 2 {
		t.Errorf("pushing the top page again changed depth to %d", p.Depth())
	}
	p.Reset("overview")
	if p.Depth() != 1 {
		t.Errorf("depth after reset = %d", p.Depth())
	}
	if p.Pop() != "" || p.Current() != "overview" {
		t.Error("the last page must not be popped")
	}
}

func TestPagesBack(t *testing.T) {
	p := NewPages()
	for _, name := range []string{"overview", "words", "help"} {
		p.AddPage(name, NewMenu(DefaultTheme(), 6), true, false)
	}

	p.Reset("words")
	p.Push("help")
	if !p.Back("overview") || p.Current() != "words" {
		t.Fatalf("Back from help: current = %q", p.Current())
	}
	if !p.Back("overview") || p.Current() != "overview" {
		t.Fatalf("Back from words: current = %q", p.Current())
	}
	if p.Back("overview") {
		t.Error("Back at home reported a change")
	}
}

func TestFlashModel(t *testing.T) {
	f := NewFlashModel()
	if f.Current() != nil {
		t.Fatal("expected no message initially")
	}
	f.Warn("careful")
	msg := f.Current()
	if msg == nil || msg.Text != "careful" || msg.Level != FlashWarn {
		t.Fatalf("Current() = %+v", msg)
	}
	select {
	case m := <-f.Watch():
		if m.Text != "careful" {
			t.Errorf("watched %q", m.Text)
		}
	default:
		t.Error("expected a message on the watch channel")
	}
}

func TestPromptKeyModeMasks(t *testing.T) {
	p := NewPrompt(DefaultTheme())
	var got string
	var mode PromptMode
	p.SetOnSubmit(func(m PromptMode, text string) { mode, got = m, text })

	p.Activate(PromptKey)
	if p.GetLabel() != "key> " {
		t.Errorf("label = %q", p.GetLabel())
	}
	p.SetText("sk-test")
	p.done(tcell.KeyEnter)
	if mode != PromptKey || got != "sk-test" {
		t.Errorf("submitted (%v, %q)", mode, got)
	}
	if p.GetText() != "" {
		t.Error("key left in the input after submit")
	}

	p.Activate(PromptCommand)
	if p.GetLabel() != ":" {
		t.Errorf("label = %q", p.GetLabel())
	}
}

func TestMenuLayoutColumns(t *testing.T) {
	m := NewMenu(DefaultTheme(), 2)
	out := m.layout([]MenuHint{
		{Key: "Enter", Description: "Count"},
		{Key: "Tab", Description: "Participant"},
		{Key: "q", Description: "Quit"},
	})
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 rows, got %d: %q", len(lines), out)
	}
	if !strings.Contains(lines[0], "Count") || !strings.Contains(lines[0], "Quit") {
		t.Errorf("first row = %q", lines[0])
	}
	if !strings.Contains(lines[1], "Participant") || strings.Contains(lines[1], "Quit") {
		t.Errorf("second row = %q", lines[1])
	}
}

func TestFlashErrDescribesDaemonErrors(t *testing.T) {
	f := NewFlashModel()
	f.Err(status.Error(codes.ResourceExhausted, "quota"))
	msg := f.Current()
	if msg == nil || msg.Level != FlashErr || !strings.Contains(msg.Text, "rate limited") {
		t.Errorf("Current() = %+v", msg)
	}
}

func TestThemeStateColor(t *testing.T) {
	theme := DefaultTheme()
	tests := []struct {
		state string
		want  tcell.Color
	}{
		{"READY", theme.ReadyColor},
		{"LOADING", theme.LoadingColor},
		{"FAILED", theme.FailedColor},
		{"IDLE", theme.FgColor},
	}
	for _, tt := range tests {
		if got := theme.StateColor(tt.state); got != tt.want {
			t.Errorf("StateColor(%s) = %v, want %v", tt.state, got, tt.want)
		}
	}
	if got := ColorTag(tcell.NewRGBColor(1, 2, 3)); got != "#010203" {
		t.Errorf("ColorTag(rgb) = %q", got)
	}
}

func TestCrumbsTrail(t *testing.T) {
	c := NewCrumbs(DefaultTheme())
	c.Update([]string{"Words", "Help"}, "family.txt")

	text := c.GetText(true)
	if !strings.Contains(text, "Words  >  Help") {
		t.Errorf("trail = %q", text)
	}
	if !strings.Contains(text, "family.txt") {
		t.Errorf("export name missing: %q", text)
	}

	c.Update(nil, "ignored")
	if c.GetText(true) != "" {
		t.Errorf("empty trail rendered %q", c.GetText(true))
	}
}
