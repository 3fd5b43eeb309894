package views

import (
	"fmt"
	"time"

	"github.com/matheus3301/chatlens/internal/tui/ui"
	"github.com/rivo/tview"
)

// StatusBar is the bottom line: session, corpus state, retrieval backend
// and a busy marker while a request is in flight.
type StatusBar struct {
	*tview.TextView
	theme   *ui.Theme
	session string
	state   string
	backend string
	busy    bool
}

func NewStatusBar(theme *ui.Theme) *StatusBar {
	tv := tview.NewTextView().SetDynamicColors(true)
	tv.SetBackgroundColor(tview.Styles.MoreContrastBackgroundColor)
	return &StatusBar{TextView: tv, theme: theme}
}

func (sb *StatusBar) SetSession(name string) {
	sb.session = name
	sb.render()
}

func (sb *StatusBar) SetState(state, backend string) {
	sb.state = state
	sb.backend = backend
	sb.render()
}

func (sb *StatusBar) SetBusy(busy bool) {
	sb.busy = busy
	sb.render()
}

func (sb *StatusBar) render() {
	sb.Clear()

	busy := " "
	if sb.busy {
		busy = fmt.Sprintf("[%s]~[-]", ui.ColorTag(sb.theme.LoadingColor))
	}
	state := sb.state
	if state != "" {
		state = fmt.Sprintf("[%s]%s[-]", ui.ColorTag(sb.theme.StateColor(state)), state)
	}
	_, _ = fmt.Fprintf(sb, " [::b]%s[-:-:-] | %s %s | %s | %s",
		tview.Escape(sb.session), state, busy, sb.backend, time.Now().Format("15:04"))
}
