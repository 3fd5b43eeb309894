package views

import (
	"fmt"
	"time"

	"github.com/matheus3301/chatlens/internal/rpc"
	"github.com/matheus3301/chatlens/internal/tui/ui"
	"github.com/rivo/tview"
)

// maxEvents bounds the log kept on screen.
const maxEvents = 200

// EventLog lists daemon events as they arrive.
type EventLog struct {
	*tview.TextView
	theme  *ui.Theme
	events []*rpc.Event
}

// NewEventLog creates the events page.
func NewEventLog(theme *ui.Theme) *EventLog {
	tv := tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true)
	tv.SetBorder(true)
	tv.SetBorderColor(theme.BorderColor)
	tv.SetBackgroundColor(theme.BgColor)
	tv.SetTextColor(theme.FgColor)
	tv.SetTitle(" Events ")
	tv.SetTitleColor(theme.TitleColor)

	return &EventLog{TextView: tv, theme: theme}
}

// Name implements Component.
func (el *EventLog) Name() string { return "Events" }

// Hints implements Component.
func (el *EventLog) Hints() []ui.MenuHint {
	return []ui.MenuHint{
		{Key: "j/k", Description: "Scroll"},
	}
}

// Append adds ev to the log, dropping the oldest past maxEvents.
func (el *EventLog) Append(ev *rpc.Event) {
	el.events = append(el.events, ev)
	if len(el.events) > maxEvents {
		el.events = el.events[len(el.events)-maxEvents:]
	}
	el.render()
}

// Len returns the number of events shown.
func (el *EventLog) Len() int {
	return len(el.events)
}

func (el *EventLog) render() {
	el.Clear()
	kind := ui.ColorTag(el.theme.MenuKeyColor)
	for _, ev := range el.events {
		at := time.UnixMilli(ev.OccurredAtMs).Format(time.TimeOnly)
		_, _ = fmt.Fprintf(el, " %s [%s]%-22s[-] %s\n", at, kind, ev.Kind, tview.Escape(sanitizeForTerminal(ev.Detail)))
	}
	el.ScrollToEnd()
	el.SetTitle(fmt.Sprintf(" Events (%d) ", len(el.events)))
}
