package ui

import (
	"fmt"
	"time"

	"github.com/rivo/tview"
)

// SessionData holds daemon and corpus information for display.
type SessionData struct {
	Session      string
	State        string
	Export       string
	Messages     int
	Participants int
	Provider     string
	KeySet       bool
	Uptime       time.Duration
}

// SessionInfo displays session metadata in the header.
type SessionInfo struct {
	*tview.TextView
	theme *Theme
}

// NewSessionInfo creates a new session info panel.
func NewSessionInfo(theme *Theme) *SessionInfo {
	tv := tview.NewTextView().
		SetDynamicColors(true)
	tv.SetBackgroundColor(theme.BgColor)
	tv.SetBorderPadding(0, 0, 1, 1)

	return &SessionInfo{
		TextView: tv,
		theme:    theme,
	}
}

// Update renders the session info.
func (si *SessionInfo) Update(data *SessionData) {
	si.Clear()
	if data == nil {
		return
	}

	fgColor := ColorTag(si.theme.FgColor)
	counterColor := ColorTag(si.theme.CounterColor)

	export := data.Export
	if export == "" {
		export = "-"
	}
	provider := data.Provider
	if !data.KeySet {
		provider += " (no key)"
	}

	text := fmt.Sprintf(
		"[%s::b]Session:[-:-:-] [%s]%s[-]\n"+
			"[%s::b]State:[-:-:-]   [%s]%s[-]\n"+
			"[%s::b]Export:[-:-:-]  [%s]%s[-]\n"+
			"[%s::b]Msgs:[-:-:-]    [%s]%d[-] [%s::b]People:[-:-:-] [%s]%d[-]\n"+
			"[%s::b]LLM:[-:-:-]     [%s]%s[-]\n"+
			"[%s::b]Uptime:[-:-:-]  [%s]%s[-]",
		fgColor, counterColor, data.Session,
		fgColor, ColorTag(si.theme.StateColor(data.State)), data.State,
		fgColor, counterColor, tview.Escape(export),
		fgColor, counterColor, data.Messages, fgColor, counterColor, data.Participants,
		fgColor, counterColor, provider,
		fgColor, counterColor, formatDuration(data.Uptime),
	)

	_, _ = fmt.Fprint(si, text)
}

func formatDuration(d time.Duration) string {
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	if h > 0 {
		return fmt.Sprintf("%dh%dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}
